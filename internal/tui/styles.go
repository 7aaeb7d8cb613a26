// ABOUTME: Lipgloss styles for the alias browser, resolved from a theme name
// ABOUTME: Built-in themes: default, ocean, forest, monochrome

package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the resolved lipgloss styles for one theme.
type Styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Dim      lipgloss.Style
	Accent   lipgloss.Style
	Tag      lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Border   lipgloss.Style
	Help     lipgloss.Style
}

// palette is the color set a theme supplies.
type palette struct {
	primary   string
	accent    string
	muted     string
	selection string
	tag       string
	errc      string
}

var palettes = map[string]palette{
	"default": {
		primary:   "#cdd6f4",
		accent:    "#89b4fa",
		muted:     "#6c7086",
		selection: "#45475a",
		tag:       "#f9e2af",
		errc:      "#f38ba8",
	},
	"ocean": {
		primary:   "#c0caf5",
		accent:    "#7dcfff",
		muted:     "#565f89",
		selection: "#283457",
		tag:       "#73daca",
		errc:      "#f7768e",
	},
	"forest": {
		primary:   "#d3c6aa",
		accent:    "#a7c080",
		muted:     "#859289",
		selection: "#3d484d",
		tag:       "#dbbc7f",
		errc:      "#e67e80",
	},
	"monochrome": {
		primary:   "#ffffff",
		accent:    "#ffffff",
		muted:     "#888888",
		selection: "#444444",
		tag:       "#bbbbbb",
		errc:      "#ffffff",
	},
}

// ThemeStyles resolves a theme name to its styles. Unknown names get
// the default theme.
func ThemeStyles(name string) Styles {
	p, ok := palettes[name]
	if !ok {
		p = palettes["default"]
	}
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.accent)),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color(p.selection)).Foreground(lipgloss.Color(p.primary)).Bold(true),
		Normal:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.primary)),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)),
		Tag:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.tag)),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Italic(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.errc)).Bold(true),
		Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.muted)).Padding(0, 1),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
	}
}

// ThemeNames lists the built-in theme names.
func ThemeNames() []string {
	return []string{"default", "forest", "monochrome", "ocean"}
}
