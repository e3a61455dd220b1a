package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tiwariParth/task-cli/internal/models"
)

// Adaptive colors for light and dark terminals.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// styles are bound to the renderer of the output writer, so a disabled
// color profile applies to every table cell.
type styles struct {
	header lipgloss.Style
	cell   lipgloss.Style
	id     lipgloss.Style
	dim    lipgloss.Style
	border lipgloss.Style

	badgeTodo       lipgloss.Style
	badgeInProgress lipgloss.Style
	badgeDone       lipgloss.Style
	badgeUnknown    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	cell := r.NewStyle().Padding(0, 1)
	return styles{
		header:          cell.Bold(true).Foreground(colorWhite),
		cell:            cell,
		id:              cell.Bold(true),
		dim:             cell.Foreground(colorDim),
		border:          r.NewStyle().Foreground(colorDim),
		badgeTodo:       cell.Foreground(colorYellow),
		badgeInProgress: cell.Foreground(colorCyan),
		badgeDone:       cell.Foreground(colorGreen),
		badgeUnknown:    cell.Foreground(colorRed),
	}
}

func (st styles) badge(s models.Status) lipgloss.Style {
	switch s {
	case models.StatusTodo:
		return st.badgeTodo
	case models.StatusInProgress:
		return st.badgeInProgress
	case models.StatusDone:
		return st.badgeDone
	default:
		return st.badgeUnknown
	}
}
