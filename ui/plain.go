package ui

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/pngsqueeze/batch"
)

// PlainSink renders a batch as log-style lines under a single progress bar.
// It is used when stdout is not a terminal or the TUI is disabled.
type PlainSink struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewPlainSink creates a sink writing to out
func NewPlainSink(out io.Writer) *PlainSink {
	return &PlainSink{out: out}
}

// Reset starts a new progress bar sized to the item rows
func (s *PlainSink) Reset(rows []string) {
	if s.bar != nil {
		_ = s.bar.Finish()
	}
	items := len(rows) - batch.HeaderRows
	if items < 0 {
		items = 0
	}
	s.bar = progressbar.NewOptions(items,
		progressbar.OptionSetWriter(s.out),
		progressbar.OptionSetDescription("Waiting..."),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	fmt.Fprintln(s.out, ProcessingStyle.Render(fmt.Sprintf("Optimizing %d files:", items)))
}

// SetLabel updates the progress bar description
func (s *PlainSink) SetLabel(label string) {
	if s.bar == nil {
		return
	}
	s.bar.Describe(label)
}

// SetRow prints finished rows and advances the bar
func (s *PlainSink) SetRow(_ int, line string) {
	if !isTerminal(line) {
		return
	}

	if s.bar != nil {
		_ = s.bar.Clear()
	}
	fmt.Fprintln(s.out, formatLine(line))
	if s.bar != nil {
		_ = s.bar.Add(1)
	}
}

// Finish removes the progress bar
func (s *PlainSink) Finish() {
	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}
}

func formatLine(line string) string {
	f := splitRow(line)
	switch f[1] {
	case batch.StatusError:
		return ErrorStyle.Render(fmt.Sprintf("❌ %s", f[0]))
	case batch.StatusDone:
		if f[4] == "" {
			return OptimalStyle.Render(fmt.Sprintf("➖ %s %s, already optimal", f[0], f[2]))
		}
		return SuccessStyle.Render(fmt.Sprintf("✅ %s", f[0])) +
			InfoStyle.Render(fmt.Sprintf(" %s → %s", f[2], f[3])) +
			SavingStyle.Render(fmt.Sprintf(" (-%s)", f[4]))
	}
	return line
}

// PrintSummary writes the final table of a batch with a totals footer
func PrintSummary(out io.Writer, board *batch.Board) {
	s := board.Summary()

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columnTitles))
	for i, title := range columnTitles {
		header[i] = title
	}
	tw.AppendHeader(header)

	for _, line := range board.ItemRows() {
		fields := splitRow(line)
		row := make(table.Row, len(fields))
		for i, f := range fields {
			row[i] = f
		}
		tw.AppendRow(row)
	}

	saved := s.Saved()
	if saved < 0 {
		saved = 0
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d done, %d errors", s.Done, s.Failed),
		"",
		humanize.IBytes(uint64(s.OriginalBytes)),
		humanize.IBytes(uint64(s.TransformedBytes)),
		batch.FormatPercent(batch.ReductionRatio(s.OriginalBytes, s.TransformedBytes)),
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	tw.Render()

	fmt.Fprintf(out, "\n%s\n", SuccessStyle.Render(fmt.Sprintf("💾 Saved %s", humanize.IBytes(uint64(saved)))))
}
