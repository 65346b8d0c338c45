package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Inline substitution order is load-bearing: each pass replaces its matches
// with placeholder tokens so later passes never re-match an already
// substituted span. The order below reproduces the original renderer:
// wiki links, bold-italic, bold, italic, inline code, then external links.
var (
	wikiRe       = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	boldItalicRe = regexp.MustCompile(`\*\*\*(.*?)\*\*\*`)
	boldRe       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.*?)\*`)
	codeRe       = regexp.MustCompile("`([^`]+)`")
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	imageRe      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	numberedRe   = regexp.MustCompile(`^(\d+)\. (.*)$`)
	tokenRe      = regexp.MustCompile("\x00(\\d+)\x00")
)

type styles struct {
	H1         lipgloss.Style
	H2         lipgloss.Style
	H3         lipgloss.Style
	Bold       lipgloss.Style
	Italic     lipgloss.Style
	BoldItalic lipgloss.Style
	Code       lipgloss.Style
	Link       lipgloss.Style
	WikiLink   lipgloss.Style
	Quote      lipgloss.Style
	Muted      lipgloss.Style
	CodeBlock  lipgloss.Style
	Checked    lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		return styles{}
	}
	return styles{
		H1:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		H2:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA")),
		H3:         lipgloss.NewStyle().Bold(true),
		Bold:       lipgloss.NewStyle().Bold(true),
		Italic:     lipgloss.NewStyle().Italic(true),
		BoldItalic: lipgloss.NewStyle().Bold(true).Italic(true),
		Code:       lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		Link:       lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")).Underline(true),
		WikiLink:   lipgloss.NewStyle().Foreground(lipgloss.Color("#CBA6F7")).Underline(true),
		Quote:      lipgloss.NewStyle().Faint(true),
		Muted:      lipgloss.NewStyle().Faint(true),
		CodeBlock:  lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		Checked:    lipgloss.NewStyle().Faint(true).Strikethrough(true),
	}
}

// Renderer turns markdown into styled terminal text.
type Renderer struct {
	styles styles
}

// New returns a color renderer.
func New() *Renderer { return &Renderer{styles: newStyles(true)} }

// NewPlain returns a renderer without any ANSI styling, for pipes and tests.
func NewPlain() *Renderer { return &Renderer{styles: newStyles(false)} }

// Render transforms a whole document.
func (r *Renderer) Render(content string) string {
	var out strings.Builder
	for _, b := range Blocks(content) {
		switch b.Kind {
		case KindCode:
			label := b.Lang
			if b.Runnable {
				label += "  (runnable)"
			}
			out.WriteString(r.styles.Muted.Render("┌─ "+label) + "\n")
			for _, line := range strings.Split(b.Code, "\n") {
				out.WriteString(r.styles.CodeBlock.Render("│ "+line) + "\n")
			}
			out.WriteString(r.styles.Muted.Render("└─") + "\n")
		default:
			out.WriteString(r.renderText(b.Text))
		}
	}
	return out.String()
}

func (r *Renderer) renderText(text string) string {
	var out strings.Builder
	for _, line := range strings.Split(text, "\n") {
		out.WriteString(r.RenderLine(line))
		out.WriteString("\n")
	}
	return strings.TrimSuffix(out.String(), "\n")
}

// RenderLine transforms one line of a text block.
func (r *Renderer) RenderLine(line string) string {
	switch {
	case strings.HasPrefix(line, "# "):
		return r.styles.H1.Render(line[2:])
	case strings.HasPrefix(line, "## "):
		return r.styles.H2.Render(line[3:])
	case strings.HasPrefix(line, "### "):
		return r.styles.H3.Render(line[4:])
	case strings.HasPrefix(line, "- [ ] "):
		return "☐ " + r.renderInline(line[6:])
	case strings.HasPrefix(line, "- [x] "):
		return "✓ " + r.styles.Checked.Render(r.renderInline(line[6:]))
	case strings.HasPrefix(line, "- "):
		return "• " + r.renderInline(line[2:])
	case strings.HasPrefix(line, "> "):
		return r.styles.Quote.Render("▎ " + r.renderInline(line[2:]))
	}
	if m := numberedRe.FindStringSubmatch(line); m != nil {
		return m[1] + ". " + r.renderInline(m[2])
	}
	// Images render before the inline pass so their ![alt](src) syntax is
	// never picked apart by the link rule.
	line = imageRe.ReplaceAllStringFunc(line, func(s string) string {
		m := imageRe.FindStringSubmatch(s)
		alt := m[1]
		if alt == "" {
			alt = "image"
		}
		return r.styles.Muted.Render(fmt.Sprintf("🖼 %s (%s)", alt, m[2]))
	})
	return r.renderInline(line)
}

// renderInline runs the sequential substitution passes over one span.
func (r *Renderer) renderInline(text string) string {
	var stash []string
	keep := func(rendered string) string {
		stash = append(stash, rendered)
		return fmt.Sprintf("\x00%d\x00", len(stash)-1)
	}

	text = wikiRe.ReplaceAllStringFunc(text, func(s string) string {
		return keep(r.styles.WikiLink.Render(wikiRe.FindStringSubmatch(s)[1]))
	})
	text = boldItalicRe.ReplaceAllStringFunc(text, func(s string) string {
		return keep(r.styles.BoldItalic.Render(boldItalicRe.FindStringSubmatch(s)[1]))
	})
	text = boldRe.ReplaceAllStringFunc(text, func(s string) string {
		return keep(r.styles.Bold.Render(boldRe.FindStringSubmatch(s)[1]))
	})
	text = italicRe.ReplaceAllStringFunc(text, func(s string) string {
		return keep(r.styles.Italic.Render(italicRe.FindStringSubmatch(s)[1]))
	})
	text = codeRe.ReplaceAllStringFunc(text, func(s string) string {
		return keep(r.styles.Code.Render(codeRe.FindStringSubmatch(s)[1]))
	})
	text = linkRe.ReplaceAllStringFunc(text, func(s string) string {
		m := linkRe.FindStringSubmatch(s)
		return keep(r.styles.Link.Render(m[1]) + r.styles.Muted.Render(" ("+m[2]+")"))
	})

	// A later pass can swallow an earlier placeholder (a bold span inside
	// backticks, say), so expansion repeats until no tokens remain.
	for range stash {
		if !tokenRe.MatchString(text) {
			break
		}
		text = tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
			var i int
			fmt.Sscanf(tok, "\x00%d\x00", &i)
			return stash[i]
		})
	}
	return text
}
