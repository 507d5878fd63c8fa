package page

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is a scrollable page backed by a viewport. Its scroll container node
// is what a picker's scroll lock disables.
type Model struct {
	viewport viewport.Model
	node     *Node
}

// New returns a page whose scroll container is node.
func New(node *Node, width, height int) Model {
	vp := viewport.New(width, height)
	return Model{viewport: vp, node: node}
}

func (m Model) Node() *Node { return m.node }

func (m *Model) SetContent(content string) {
	m.viewport.SetContent(content)
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}

// YOffset is the number of content lines scrolled off the top.
func (m Model) YOffset() int { return m.viewport.YOffset }

// ScrollTo moves the page unless scrolling is locked.
func (m *Model) ScrollTo(offset int) {
	if m.node.ScrollEnabled() {
		m.viewport.SetYOffset(offset)
	}
}

// Update forwards scroll input to the viewport. While the page is locked
// all scroll input is dropped.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	enabled := m.node.ScrollEnabled()
	m.viewport.MouseWheelEnabled = enabled
	if !enabled {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}
