package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tiwariParth/task-cli/internal/models"
)

const noTasksMessage = "No tasks found."

func formatTimestamp(ts *models.Timestamp) string {
	if ts == nil {
		return "-"
	}
	return ts.String()
}

// printTable renders tasks as a bordered table.
func (s *session) printTable(w io.Writer, tasks []models.Task) {
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		rows[i] = []string{
			strconv.Itoa(t.ID),
			t.Description,
			t.Status.String(),
			formatTimestamp(t.CreatedAt),
			formatTimestamp(t.UpdatedAt),
		}
	}

	st := s.styles
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.border).
		Headers("ID", "DESCRIPTION", "STATUS", "CREATED", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			switch col {
			case 0:
				return st.id
			case 2:
				if row >= 0 && row < len(tasks) {
					return st.badge(tasks[row].Status)
				}
			case 3, 4:
				return st.dim
			}
			return st.cell
		})
	fmt.Fprintln(w, tbl.String())
}

// printPlain renders one line per task: "N. [status] description", followed
// by the timestamps that are present.
func (s *session) printPlain(w io.Writer, tasks []models.Task) {
	for _, t := range tasks {
		line := fmt.Sprintf("%s. [%s] %s", s.colors.Bold(t.ID), s.colors.Status(t.Status), t.Description)
		var stamps []string
		if t.CreatedAt != nil {
			stamps = append(stamps, "created "+t.CreatedAt.String())
		}
		if t.UpdatedAt != nil {
			stamps = append(stamps, "updated "+t.UpdatedAt.String())
		}
		if len(stamps) > 0 {
			line += " (" + strings.Join(stamps, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
}
