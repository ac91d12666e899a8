// Package report renders a workflow run as an HTML page for inspection,
// either written to disk or served locally.
package report

import (
	"context"
	"fmt"
	"html"
	"io"
	"sort"

	"github.com/a-h/templ"

	"github.com/IBM/regression-optimization-code-pattern/internal/app"
	"github.com/IBM/regression-optimization-code-pattern/internal/domain"
	"github.com/IBM/regression-optimization-code-pattern/internal/table"
)

// Page composes the full report: one section per job run, each with its ack
// and solution tables.
func Page(title string, runs map[string]*app.RunResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>%s</title>", html.EscapeString(title)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<style>body{font-family:sans-serif;margin:2rem}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:0.25rem 0.5rem}h2{margin-top:2rem}</style></head><body>"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>", html.EscapeString(title)); err != nil {
			return err
		}

		names := make([]string, 0, len(runs))
		for name := range runs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if err := runSection(name, runs[name]).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func runSection(name string, run *app.RunResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h2>%s</h2>", html.EscapeString(name)); err != nil {
			return err
		}
		if err := jobCard(run.Ack).Render(ctx, w); err != nil {
			return err
		}

		solutions := make([]string, 0, len(run.Solutions))
		for solution := range run.Solutions {
			solutions = append(solutions, solution)
		}
		sort.Strings(solutions)

		for _, solution := range solutions {
			if err := tableView(solution, run.Solutions[solution]).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func jobCard(ack *domain.JobAck) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if ack == nil {
			_, err := io.WriteString(w, "<p>no acknowledgment received</p>")
			return err
		}
		_, err := fmt.Fprintf(w, "<p>job <code>%s</code> status <strong>%s</strong>, submitted %s %s</p>",
			html.EscapeString(ack.Id),
			html.EscapeString(string(ack.Status)),
			html.EscapeString(ack.SubmittedAt),
			html.EscapeString(ack.Detail))
		return err
	})
}

func tableView(name string, t *table.Table) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h3>%s</h3><table><tr>", html.EscapeString(name)); err != nil {
			return err
		}
		for _, col := range t.Columns {
			if _, err := fmt.Fprintf(w, "<th>%s</th>", html.EscapeString(col)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tr>"); err != nil {
			return err
		}
		for _, row := range t.Rows {
			if _, err := io.WriteString(w, "<tr>"); err != nil {
				return err
			}
			for _, cell := range row {
				if _, err := fmt.Fprintf(w, "<td>%s</td>", html.EscapeString(cell)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</tr>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>")
		return err
	})
}
