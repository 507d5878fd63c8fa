package calendar

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"datepick/internal/tui/theme"
)

// Info is the content of the calendar info panel, parsed from markdown with
// optional YAML front matter.
type Info struct {
	Title string
	Lines []InfoLine
}

// InfoKind classifies a line of the info panel.
type InfoKind int

const (
	InfoHeading InfoKind = iota
	InfoParagraph
	InfoItem
)

type InfoLine struct {
	Kind InfoKind
	Text string
}

// ParseInfo reads markdown such as
//
//	---
//	title: Availability
//	---
//	## Notes
//	Weekends are blocked.
//	- Check-in after 3pm
func ParseInfo(src []byte) (Info, error) {
	body, title, err := stripInfoFrontmatter(src)
	if err != nil {
		return Info{}, err
	}
	info := Info{Title: title}

	doc := goldmark.DefaultParser().Parse(text.NewReader(body))
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			info.Lines = append(info.Lines, InfoLine{Kind: InfoHeading, Text: string(node.Text(body))})
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			info.Lines = append(info.Lines, InfoLine{Kind: InfoItem, Text: itemText(node, body)})
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if t := string(node.Text(body)); t != "" {
				info.Lines = append(info.Lines, InfoLine{Kind: InfoParagraph, Text: t})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return info, nil
}

func itemText(item *ast.ListItem, source []byte) string {
	var parts []string
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if t := string(c.Text(source)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func stripInfoFrontmatter(content []byte) ([]byte, string, error) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, "", nil
	}

	var end int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			end = i
			break
		}
	}
	if end == 0 {
		return content, "", nil
	}

	var fm struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal(bytes.Join(lines[1:end], []byte("\n")), &fm); err != nil {
		return nil, "", fmt.Errorf("calendar info front matter: %w", err)
	}
	body := bytes.TrimLeft(bytes.Join(lines[end+1:], []byte("\n")), "\n")
	return body, fm.Title, nil
}

// Render draws the panel for the given width.
func (i Info) Render(width int) string {
	var s strings.Builder
	if i.Title != "" {
		s.WriteString(theme.Title.Render(i.Title))
		s.WriteString("\n")
	}
	wrap := lipgloss.NewStyle().Width(width)
	for _, line := range i.Lines {
		switch line.Kind {
		case InfoHeading:
			s.WriteString(theme.Subtitle.Render(line.Text))
		case InfoItem:
			s.WriteString(wrap.Render("• " + line.Text))
		default:
			s.WriteString(wrap.Render(line.Text))
		}
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

// InfoHook adapts i to Hooks.RenderCalendarInfo.
func InfoHook(i Info, width int) func() string {
	if i.Title == "" && len(i.Lines) == 0 {
		return nil
	}
	return func() string { return i.Render(width) }
}
