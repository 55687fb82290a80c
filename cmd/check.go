package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/lepinkainen/pngsqueeze/pngopt"
	"github.com/lepinkainen/pngsqueeze/types"
	"github.com/lepinkainen/pngsqueeze/ui"
)

// CheckCmd decodes PNG files completely to detect truncated or corrupt data.
// Useful after an interrupted optimize run or before archiving.
type CheckCmd struct {
	Paths []string `arg:"" name:"paths" help:"PNG files or directories to check" type:"path"`
}

// Run checks every file and fails when at least one of them is broken
func (cmd *CheckCmd) Run(appCtx *types.AppContext) error {
	_, _, logger := appCtx.Unpack()

	files, err := pngopt.ExpandPaths(cmd.Paths)
	if err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}

	verified, failed := check(os.Stdout, files)
	logger.Info("integrity check finished", "verified", verified, "failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed the integrity check", failed, len(files))
	}
	return nil
}

func check(out io.Writer, files []string) (verified, failed int) {
	fmt.Fprintf(out, "%s\n", ui.InfoStyle.Render(fmt.Sprintf("Checking %d files...", len(files))))

	for _, path := range files {
		if err := pngopt.ValidateIntegrity(path); err != nil {
			fmt.Fprintf(out, "%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", path, err)))
			failed++
			continue
		}
		fmt.Fprintf(out, "%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", path)))
		verified++
	}

	fmt.Fprintf(out, "\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("✅ Verified: %d, ❌ Failed: %d", verified, failed)))
	return verified, failed
}
