package shared

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpBind represents a single keybind entry
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related keybinds
type HelpSection struct {
	Title string
	Binds []HelpBind
}

// BindingsSection builds a section from key bindings, skipping disabled ones.
func BindingsSection(title string, bindings ...key.Binding) HelpSection {
	s := HelpSection{Title: title}
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		s.Binds = append(s.Binds, HelpBind{Key: h.Key, Desc: h.Desc})
	}
	return s
}

var (
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	helpKeyStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	helpDescStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	helpBoxStyle     = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("4")).
				Padding(0, 1)
	helpDismissStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderHelpBox renders the sections as a bordered box.
func RenderHelpBox(sections []HelpSection) string {
	line := func(key, desc string) string {
		return helpKeyStyle.Width(12).Render(key) + helpDescStyle.Render(desc)
	}

	var content string
	for i, section := range sections {
		if i > 0 {
			content += "\n"
		}
		content += helpSectionStyle.Render(section.Title) + "\n"
		for _, bind := range section.Binds {
			content += line(bind.Key, bind.Desc) + "\n"
		}
	}

	content += "\n" + helpDismissStyle.Render("Press any key to close")

	// Trim trailing newline before boxing
	content = strings.TrimRight(content, "\n")

	return helpBoxStyle.Render(content)
}

// RenderHelpPopup renders a centered help popup with the given sections
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, RenderHelpBox(sections))
}
