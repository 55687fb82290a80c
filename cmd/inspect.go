package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/pngsqueeze/batch"
	"github.com/lepinkainen/pngsqueeze/pngopt"
	"github.com/lepinkainen/pngsqueeze/types"
	"github.com/lepinkainen/pngsqueeze/ui"
)

// InspectCmd reports what optimize would do without modifying any file
type InspectCmd struct {
	Paths      []string       `arg:"" name:"paths" help:"PNG files or directories to inspect" type:"path"`
	Reductions ReductionFlags `embed:""`
}

func (cmd *InspectCmd) Run(appCtx *types.AppContext) error {
	version, cfg, logger := appCtx.Unpack()

	files, err := pngopt.ExpandPaths(cmd.Paths)
	if err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("PNG Squeeze %s", version)))
	fmt.Println(ui.ProcessingStyle.Render("🔍 DRY RUN MODE - No files will be modified"))

	if len(files) == 0 {
		fmt.Println("🎯 No PNG files found.")
		return nil
	}

	inspect(os.Stdout, files, cmd.Reductions.Options(cfg), pngopt.NewOptimizer(logger), logger)
	return nil
}

// inspection is the analysis of one file
type inspection struct {
	info   *pngopt.ImageInfo
	result *pngopt.OptimizeResult
	err    error
}

// analyze inspects files concurrently. Nothing is written, so unlike
// optimize the files need not be processed one at a time.
func analyze(files []string, opts batch.Options, optimizer *pngopt.Optimizer, logger *slog.Logger) []inspection {
	out := make([]inspection, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		g.Go(func() error {
			info, err := pngopt.ReadInfo(path)
			if err != nil {
				logger.Warn("cannot read png header", "path", path, "error", err)
				out[i] = inspection{err: err}
				return nil
			}

			result, err := optimizer.Analyze(path, opts)
			if err != nil {
				logger.Warn("cannot analyze png", "path", path, "error", err)
			}
			out[i] = inspection{info: info, result: result, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// inspect analyzes files and writes one table row per file plus a summary
func inspect(out io.Writer, files []string, opts batch.Options, optimizer *pngopt.Optimizer, logger *slog.Logger) {
	fmt.Fprintf(out, "📊 Analyzing %d files:\n\n", len(files))

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Size", "Dimensions", "Color", "Interlaced", "Reductions", "Estimated", "Saving"})

	var totalSize, totalEstimated int64
	improvable := 0

	for i, in := range analyze(files, opts, optimizer, logger) {
		name := batch.Item{Path: files[i]}.ShortName()

		if in.err != nil {
			size := ""
			if in.info != nil {
				size = humanize.IBytes(uint64(in.info.Size))
			}
			tw.AppendRow(table.Row{name, size, "", "", "", ui.ErrorStyle.Render("❌ " + in.err.Error()), "", ""})
			continue
		}
		info, result := in.info, in.result

		reductions := strings.Join(result.Reductions, ", ")
		if result.SkipReason != "" {
			reductions = result.SkipReason
		} else if reductions == "" {
			reductions = "recompress"
		}

		saving := ""
		if result.NewSize < result.OriginalSize {
			saving = batch.FormatPercent(result.SavingsRatio())
			improvable++
		}

		tw.AppendRow(table.Row{
			name,
			humanize.IBytes(uint64(result.OriginalSize)),
			fmt.Sprintf("%dx%d", info.Width, info.Height),
			fmt.Sprintf("%s/%d", info.ColorType, info.BitDepth),
			yesNo(info.Interlaced),
			reductions,
			humanize.IBytes(uint64(result.NewSize)),
			saving,
		})

		totalSize += result.OriginalSize
		totalEstimated += result.NewSize
	}

	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d files", len(files)),
		humanize.IBytes(uint64(totalSize)),
		"", "", "",
		fmt.Sprintf("%d would shrink", improvable),
		humanize.IBytes(uint64(totalEstimated)),
		batch.FormatPercent(batch.ReductionRatio(totalSize, totalEstimated)),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 7, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 8, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	tw.Render()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
