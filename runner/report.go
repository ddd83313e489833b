package runner

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteSummary 输出单次运行的汇总
func WriteSummary(w io.Writer, r *Result) error {
	_, err := fmt.Fprintf(w,
		"\n -- Results after %d episodes: -- \nAverage wait time per completed episode: %.2f\nAverage collisions per episode: %.2f\n",
		r.Episodes, r.AverageWaitTime, r.AverageCollisions,
	)
	return err
}

// WriteTable 以表格形式输出多次运行的汇总，每次运行一行
func WriteTable(w io.Writer, results ...*Result) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Method", "Episodes", "Completed", "Avg Wait", "Avg Collisions", "Run"})
	for _, r := range results {
		t.AppendRow(table.Row{
			r.Method,
			r.Episodes,
			r.Completed,
			fmt.Sprintf("%.2f", r.AverageWaitTime),
			fmt.Sprintf("%.2f", r.AverageCollisions),
			r.ID.String(),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}
