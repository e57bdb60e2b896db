package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskpad/internal/notify"
	"github.com/nibzard/taskpad/internal/todo"
)

// Styles holds the rendered styles of one display mode.
type Styles struct {
	Mode    Mode
	Palette *ColorPalette

	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Completed lipgloss.Style
	Cursor    lipgloss.Style
	Empty     lipgloss.Style
	Help      lipgloss.Style
	HelpKey   lipgloss.Style

	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Selected    lipgloss.Style
}

// StylesFor builds the styles of m.
func StylesFor(m Mode) *Styles {
	p := PaletteFor(m)
	return &Styles{
		Mode:    m,
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		Text:  lipgloss.NewStyle().Foreground(p.Text),
		Muted: lipgloss.NewStyle().Foreground(p.Muted),
		Completed: lipgloss.NewStyle().
			Foreground(p.Muted).
			Strikethrough(true),
		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Empty: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true).
			Padding(1, 2),
		Help:    lipgloss.NewStyle().Foreground(p.Muted),
		HelpKey: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),

		High:   lipgloss.NewStyle().Foreground(p.High).Bold(true),
		Medium: lipgloss.NewStyle().Foreground(p.Medium),
		Low:    lipgloss.NewStyle().Foreground(p.Low),

		ToastSuccess: lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		ToastError:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Background(p.Surface).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
	}
}

// Priority returns the style of a priority label. Tasks without a
// priority use the plain text style.
func (s *Styles) Priority(p todo.Priority) lipgloss.Style {
	switch p {
	case todo.PriorityHigh:
		return s.High
	case todo.PriorityMedium:
		return s.Medium
	case todo.PriorityLow:
		return s.Low
	default:
		return s.Text
	}
}

// Notice returns the style of a notice.
func (s *Styles) Notice(kind notify.Kind) lipgloss.Style {
	if kind == notify.KindError {
		return s.ToastError
	}
	return s.ToastSuccess
}
