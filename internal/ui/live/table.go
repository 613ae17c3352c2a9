package live

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns declares the version table layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Version", Width: 24},
		{Title: "Status", Width: 14},
		{Title: "Questions", Width: 10},
		{Title: "Points", Width: 8},
		{Title: "Elapsed", Width: 10},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", row.Ordinal+1),
			row.Version,
			string(row.Status),
			formatQuestions(row),
			formatPoints(row),
			formatRowDuration(row, now),
		})
	}
	return rows
}

func formatQuestions(row VersionRow) string {
	if row.Questions == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", row.Questions)
}

func formatPoints(row VersionRow) string {
	if row.Points == 0 {
		return "-"
	}
	return fmt.Sprintf("%.4g", row.Points)
}

// formatRowDuration renders elapsed time for an in-flight or finished row.
func formatRowDuration(row VersionRow, now time.Time) string {
	if row.StartedAt.IsZero() {
		return "-"
	}
	end := row.FinishedAt
	if end.IsZero() {
		end = now
	}
	if end.Before(row.StartedAt) {
		return "-"
	}
	return end.Sub(row.StartedAt).Round(time.Millisecond).String()
}
