package cli

import (
	"github.com/fatih/color"

	"github.com/tiwariParth/task-cli/internal/models"
)

// palette holds the fatih/color printers for one run. Each printer is
// switched on or off explicitly so output does not depend on the global
// color.NoColor.
type palette struct {
	bold   *color.Color
	red    *color.Color
	green  *color.Color
	yellow *color.Color
	cyan   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		bold:   color.New(color.Bold),
		red:    color.New(color.FgRed, color.Bold),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.bold, p.red, p.green, p.yellow, p.cyan} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Bold returns a bold string
func (p palette) Bold(a ...interface{}) string {
	return p.bold.Sprint(a...)
}

// Red returns a red string
func (p palette) Red(a ...interface{}) string {
	return p.red.Sprint(a...)
}

// Status renders a status in its color.
func (p palette) Status(s models.Status) string {
	switch s {
	case models.StatusTodo:
		return p.yellow.Sprint(s)
	case models.StatusInProgress:
		return p.cyan.Sprint(s)
	case models.StatusDone:
		return p.green.Sprint(s)
	default:
		return p.red.Sprint(s)
	}
}
