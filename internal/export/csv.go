// Package export derives billing rows from tracked tasks and writes
// them as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"time"

	"lawos/case-tracker/internal/models"
	"lawos/case-tracker/internal/timer"
)

const rowTimeLayout = "2006-01-02 15:04"

// Row is one billing line for a task.
type Row struct {
	CaseName string
	TaskDesc string
	Assignee string
	Start    string
	End      string
	Hours    float64
}

// Rows derives one row per live task. Start is the first session's
// start; tasks with no sessions still appear, falling back to their
// creation time with zero hours. End is the completion time when set,
// otherwise the last session's end, otherwise empty for a task still
// in progress.
func Rows(cases []models.Case, now time.Time) []Row {
	var rows []Row
	for _, c := range cases {
		for _, t := range c.Tasks {
			rows = append(rows, taskRow(c, t, now))
		}
	}
	return rows
}

func taskRow(c models.Case, t models.Task, now time.Time) Row {
	seconds := timer.TaskDuration(t, now)
	hours := math.Round(float64(seconds)/3600*100) / 100

	start := t.CreatedAt.Format(rowTimeLayout)
	if len(t.Sessions) > 0 {
		start = t.Sessions[0].Start.Format(rowTimeLayout)
	}

	end := ""
	if t.CompletedAt != nil {
		end = t.CompletedAt.Format(rowTimeLayout)
	} else if len(t.Sessions) > 0 {
		if last := t.Sessions[len(t.Sessions)-1].End; last != nil {
			end = last.Format(rowTimeLayout)
		}
	}

	return Row{
		CaseName: c.Name,
		TaskDesc: t.Desc,
		Assignee: t.Assignee,
		Start:    start,
		End:      end,
		Hours:    hours,
	}
}

// WriteCSV writes the billing rows for all cases to w.
func WriteCSV(w io.Writer, cases []models.Case, now time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"case", "task", "assignee", "start", "end", "hours"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range Rows(cases, now) {
		record := []string{
			row.CaseName,
			row.TaskDesc,
			row.Assignee,
			row.Start,
			row.End,
			fmt.Sprintf("%.2f", row.Hours),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
