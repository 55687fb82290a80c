package cmd

import (
	"fmt"

	"github.com/lepinkainen/pngsqueeze/config"
	"github.com/lepinkainen/pngsqueeze/types"
)

// ShowConfigCmd prints the effective configuration as TOML
type ShowConfigCmd struct {
	Path bool `help:"Print the default config file location instead"`
}

func (cmd *ShowConfigCmd) Run(appCtx *types.AppContext) error {
	if cmd.Path {
		path, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		fmt.Println(path)
		return nil
	}

	_, cfg, _ := appCtx.Unpack()
	data, err := cfg.Encode()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
