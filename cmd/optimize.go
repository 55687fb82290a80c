package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/lepinkainen/pngsqueeze/batch"
	"github.com/lepinkainen/pngsqueeze/logging"
	"github.com/lepinkainen/pngsqueeze/pngopt"
	"github.com/lepinkainen/pngsqueeze/types"
	"github.com/lepinkainen/pngsqueeze/ui"
)

// OptimizeCmd rewrites PNG files in place, one at a time, keeping a file
// only when the rewritten version is smaller.
type OptimizeCmd struct {
	Paths      []string       `arg:"" name:"paths" help:"PNG files or directories to optimize" type:"path"`
	Reductions ReductionFlags `embed:""`
	NoTUI      bool           `name:"no-tui" help:"Print progress lines instead of the interactive view"`
}

func (cmd *OptimizeCmd) Run(appCtx *types.AppContext) error {
	version, cfg, logger := appCtx.Unpack()

	// Expand directories to PNG files
	files, err := pngopt.ExpandPaths(cmd.Paths)
	if err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}

	if len(files) == 0 {
		fmt.Println("🎯 No PNG files found.")
		return nil
	}

	start := batch.StartMsg{Paths: files, Options: cmd.Reductions.Options(cfg)}

	if !cmd.NoTUI && isatty.IsTerminal(os.Stdout.Fd()) {
		// The TUI owns the terminal, so only a configured log file gets the logs
		if cfg.Logging.File == "" {
			logger = logging.Discard()
		}
		return cmd.runTUI(version, start, logger)
	}

	return cmd.runPlain(os.Stdout, version, start, logger)
}

// newPipeline wires a mailbox, an optimizing worker and a consumer together
func newPipeline(sink batch.Sink, logger *slog.Logger) (*batch.Mailbox, *batch.Consumer) {
	mb := batch.NewMailbox()
	worker := batch.NewWorker(pngopt.NewOptimizer(logger), mb, logger)
	consumer := batch.NewConsumer(batch.SpawnWorker(worker), sink, logger)
	return mb, consumer
}

// runPlain processes the batch with line output, for pipes and CI logs
func (cmd *OptimizeCmd) runPlain(out io.Writer, version string, start batch.StartMsg, logger *slog.Logger) error {
	fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("PNG Squeeze %s", version)))

	sink := ui.NewPlainSink(out)
	mb, consumer := newPipeline(sink, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mb.Send(start)
	if err := consumer.Run(ctx, mb); err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}
	sink.Finish()

	fmt.Fprintln(out)
	ui.PrintSummary(out, consumer.Board())
	return nil
}

// runTUI processes the batch inside the interactive view
func (cmd *OptimizeCmd) runTUI(version string, start batch.StartMsg, logger *slog.Logger) error {
	mb, consumer := newPipeline(nil, logger)

	model := ui.NewTUIModel(consumer, mb, start, version)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}

	if m, ok := final.(ui.TUIModel); ok && m.Board().Summary().Total > 0 {
		ui.PrintSummary(os.Stdout, m.Board())
	}
	return nil
}
