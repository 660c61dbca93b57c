package tui

import "github.com/charmbracelet/lipgloss"

const AppName = "newsrack"

// ThemeNames lists the selectable palettes in cycling order.
var ThemeNames = []string{"night", "dawn", "dusk"}

// Palette holds the colors of one theme.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Highlight  lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
}

var palettes = map[string]Palette{
	"night": {
		Primary:    lipgloss.Color("#FF6B6B"),
		Secondary:  lipgloss.Color("#4ECDC4"),
		Accent:     lipgloss.Color("#95E1D3"),
		Background: lipgloss.Color("#1A1A2E"),
		Surface:    lipgloss.Color("#16213E"),
		Text:       lipgloss.Color("#EAEAEA"),
		Muted:      lipgloss.Color("#94A3B8"),
		Highlight:  lipgloss.Color("#FFE66D"),
		Error:      lipgloss.Color("#EF4444"),
		Success:    lipgloss.Color("#10B981"),
	},
	"dawn": {
		Primary:    lipgloss.Color("#D9480F"),
		Secondary:  lipgloss.Color("#0B7285"),
		Accent:     lipgloss.Color("#E8590C"),
		Background: lipgloss.Color("#FFF9F2"),
		Surface:    lipgloss.Color("#FFE8CC"),
		Text:       lipgloss.Color("#343A40"),
		Muted:      lipgloss.Color("#868E96"),
		Highlight:  lipgloss.Color("#F59F00"),
		Error:      lipgloss.Color("#C92A2A"),
		Success:    lipgloss.Color("#2B8A3E"),
	},
	"dusk": {
		Primary:    lipgloss.Color("#DA77F2"),
		Secondary:  lipgloss.Color("#748FFC"),
		Accent:     lipgloss.Color("#B197FC"),
		Background: lipgloss.Color("#1F1B2E"),
		Surface:    lipgloss.Color("#2B2640"),
		Text:       lipgloss.Color("#E9E4F5"),
		Muted:      lipgloss.Color("#8B84A8"),
		Highlight:  lipgloss.Color("#FFD43B"),
		Error:      lipgloss.Color("#FA5252"),
		Success:    lipgloss.Color("#51CF66"),
	},
}

// Styles is the rendered style set for the active theme. The whole set is
// rebuilt when the theme cycles.
type Styles struct {
	Theme   string
	Palette Palette

	Title    lipgloss.Style
	Header   lipgloss.Style
	Tag      lipgloss.Style
	TagOn    lipgloss.Style
	Card     lipgloss.Style
	CardOn   lipgloss.Style
	CardHead lipgloss.Style
	Anchor   lipgloss.Style
	Meta     lipgloss.Style
	Summary  lipgloss.Style
	ImageBox lipgloss.Style
	ImageErr lipgloss.Style
	PageOn   lipgloss.Style
	PageOff  lipgloss.Style
	PageDim  lipgloss.Style
	Notice   lipgloss.Style
	Help     lipgloss.Style
	Status   lipgloss.Style
	ErrText  lipgloss.Style
	Overlay  lipgloss.Style
	Link     lipgloss.Style
}

// NewStyles builds the style set for a theme name. Unknown names fall back
// to the default theme.
func NewStyles(theme string) *Styles {
	p, ok := palettes[theme]
	if !ok {
		theme = ThemeNames[0]
		p = palettes[theme]
	}

	return &Styles{
		Theme:   theme,
		Palette: p,

		Title:    lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Header:   lipgloss.NewStyle().Foreground(p.Secondary).Bold(true),
		Tag:      lipgloss.NewStyle().Foreground(p.Muted),
		TagOn:    lipgloss.NewStyle().Foreground(p.Background).Background(p.Accent).Bold(true).Padding(0, 1),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Muted).Padding(0, 1),
		CardOn:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Accent).Padding(0, 1),
		CardHead: lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Anchor:   lipgloss.NewStyle().Foreground(p.Muted).Faint(true),
		Meta:     lipgloss.NewStyle().Foreground(p.Muted),
		Summary:  lipgloss.NewStyle().Foreground(p.Text),
		ImageBox: lipgloss.NewStyle().Foreground(p.Secondary),
		ImageErr: lipgloss.NewStyle().Foreground(p.Muted).Faint(true),
		PageOn:   lipgloss.NewStyle().Foreground(p.Background).Background(p.Accent).Bold(true).Padding(0, 1),
		PageOff:  lipgloss.NewStyle().Foreground(p.Text).Padding(0, 1),
		PageDim:  lipgloss.NewStyle().Foreground(p.Muted).Faint(true).Padding(0, 1),
		Notice:   lipgloss.NewStyle().Foreground(p.Highlight).Bold(true),
		Help:     lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Status:   lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		ErrText:  lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Overlay:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.Accent).Padding(1, 3),
		Link:     lipgloss.NewStyle().Foreground(p.Secondary),
	}
}

// NextTheme returns the theme after the given one in cycling order.
func NextTheme(current string) string {
	for i, name := range ThemeNames {
		if name == current {
			return ThemeNames[(i+1)%len(ThemeNames)]
		}
	}
	return ThemeNames[0]
}
