package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/pngsqueeze/cmd"
	"github.com/lepinkainen/pngsqueeze/config"
	"github.com/lepinkainen/pngsqueeze/logging"
	"github.com/lepinkainen/pngsqueeze/types"
)

var Version = "dev"

type CLI struct {
	Config  string           `help:"Path to the TOML config file" type:"path" placeholder:"FILE"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Optimize   cmd.OptimizeCmd   `cmd:"" help:"Losslessly shrink PNG files in place"`
	Inspect    cmd.InspectCmd    `cmd:"" help:"Show what optimize would do without changing files"`
	Check      cmd.CheckCmd      `cmd:"" help:"Decode PNG files completely to find corrupt ones"`
	ShowConfig cmd.ShowConfigCmd `cmd:"" name:"show-config" help:"Print the effective configuration"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pngsqueeze"),
		kong.Description("Lossless batch PNG optimizer"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	appCtx, cleanup, err := newAppContext(&cli, ctx.Command())
	ctx.FatalIfErrorf(err)
	defer cleanup()

	err = ctx.Run(appCtx)
	ctx.FatalIfErrorf(err)
}

// needsConfig reports whether the selected command reads the config file.
// Printing the config location must work even when the file is broken.
func needsConfig(cli *CLI, command string) bool {
	return !(strings.HasPrefix(command, "show-config") && cli.ShowConfig.Path)
}

// newAppContext loads the config and builds the logger for the selected command
func newAppContext(cli *CLI, command string) (*types.AppContext, func(), error) {
	appCtx := &types.AppContext{Version: Version}
	if !needsConfig(cli, command) {
		return appCtx, func() {}, nil
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, nil, err
	}

	logger, closer, err := logging.NewFromConfig(cfg, os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	appCtx.Config = cfg
	appCtx.Logger = logger
	return appCtx, func() { _ = closer.Close() }, nil
}
