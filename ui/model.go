package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/pngsqueeze/batch"
)

// Column widths of the item table; the file column takes the rest
const (
	stateWidth    = 11
	sizeWidth     = 11
	percentWidth  = 8
	minFileWidth  = 20
	defaultWidth  = 100
	chromeHeight  = 9
	minTableRows  = 3
	defaultHeight = 24
)

// TUIModel drives a batch.Consumer from the bubbletea event loop. Every
// batch message reaches the consumer through Update, so the consumer and
// its board are only touched on the bubbletea goroutine.
type TUIModel struct {
	consumer   *batch.Consumer
	mailbox    *batch.Mailbox
	submission batch.StartMsg

	// UI components
	table    table.Model
	progress progress.Model
	spinner  spinner.Model

	// Layout
	width  int
	height int

	// Control state
	finished bool
	quitting bool

	// Version for display
	Version string
}

// NewTUIModel creates the model. The submission is posted to the mailbox
// when the program starts and again on every re-run request.
func NewTUIModel(consumer *batch.Consumer, mailbox *batch.Mailbox, submission batch.StartMsg, version string) TUIModel {
	t := table.New(
		table.WithColumns(columnsFor(defaultWidth)),
		table.WithHeight(defaultHeight-chromeHeight),
		table.WithFocused(true),
	)

	return TUIModel{
		consumer:   consumer,
		mailbox:    mailbox,
		submission: submission,
		table:      t,
		progress:   progress.New(progress.WithDefaultGradient()),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:      defaultWidth,
		height:     defaultHeight,
		Version:    version,
	}
}

func columnsFor(width int) []table.Column {
	fileWidth := width - stateWidth - 2*sizeWidth - percentWidth - 12
	if fileWidth < minFileWidth {
		fileWidth = minFileWidth
	}
	widths := []int{fileWidth, stateWidth, sizeWidth, sizeWidth, percentWidth}

	cols := make([]table.Column, len(columnTitles))
	for i, title := range columnTitles {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

// submit posts the batch submission to the mailbox
func (m TUIModel) submit() tea.Cmd {
	mb, start := m.mailbox, m.submission
	return func() tea.Msg {
		mb.Send(start)
		return nil
	}
}

// waitForBatchMsg blocks until the next batch message arrives
func waitForBatchMsg(mb *batch.Mailbox) tea.Cmd {
	return func() tea.Msg {
		msg, err := mb.Recv(context.Background())
		if err != nil {
			return mailboxClosedMsg{err: err}
		}
		return mailboxMsg{msg: msg}
	}
}

// Init implements tea.Model
func (m TUIModel) Init() tea.Cmd {
	return tea.Batch(m.submit(), waitForBatchMsg(m.mailbox), m.spinner.Tick)
}

// Update implements tea.Model
func (m TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.mailbox.Close()
			return m, tea.Quit
		case "r":
			// Resubmission waits for the running batch to finish
			if !m.consumer.Running() {
				m.finished = false
				return m, tea.Batch(m.submit(), m.spinner.Tick)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columnsFor(msg.Width))
		m.table.SetHeight(max(msg.Height-chromeHeight, minTableRows))
		m.progress.Width = max(msg.Width-30, 10)

	case mailboxMsg:
		if m.consumer.Handle(msg.msg) {
			m.finished = true
		}
		m.syncRows()
		return m, waitForBatchMsg(m.mailbox)

	case mailboxClosedMsg:
		return m, nil

	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// syncRows copies the board rows into the table
func (m *TUIModel) syncRows() {
	lines := m.consumer.Board().ItemRows()
	rows := make([]table.Row, len(lines))
	for i, line := range lines {
		rows[i] = table.Row(splitRow(line))
	}
	m.table.SetRows(rows)
}

// View implements tea.Model
func (m TUIModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	board := m.consumer.Board()
	summary := board.Summary()

	// Header
	header := HeaderStyle.Render(fmt.Sprintf("PNG Squeeze %s", m.Version))

	// Overall progress
	label := board.Label()
	if label == "" {
		label = "Waiting..."
	}
	status := ProcessingStyle.Render(m.spinner.View() + " " + label)
	if m.finished {
		status = SuccessStyle.Render("✅ " + label)
	}
	overallView := fmt.Sprintf("%s\n%s (%d/%d)",
		status,
		m.progress.ViewAs(progressFraction(summary)),
		summary.Done+summary.Failed,
		summary.Total)

	// Totals
	totals := MutedStyle.Render(fmt.Sprintf("Done: %d  Errors: %d  Saved: %s",
		summary.Done, summary.Failed, batch.FormatSize(max(summary.Saved(), 0))))
	if summary.Failed > 0 {
		totals = ErrorStyle.Render(fmt.Sprintf("Done: %d  Errors: %d", summary.Done, summary.Failed)) +
			MutedStyle.Render(fmt.Sprintf("  Saved: %s", batch.FormatSize(max(summary.Saved(), 0))))
	}

	// Controls
	controls := "Controls: [q] Quit  [↑/↓] Scroll"
	if m.finished {
		controls += "  [r] Run again"
	}

	sections := []string{
		header,
		overallView,
		m.table.View(),
		totals,
		controls,
	}

	return strings.Join(sections, "\n\n")
}

// Board returns the display state of the consumer
func (m TUIModel) Board() *batch.Board {
	return m.consumer.Board()
}
