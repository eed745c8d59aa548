package commands

import (
	"fmt"

	"git.home.luguber.info/familyai/adminui/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing configuration file"`
	Path  string `short:"p" help:"Where to write the configuration file (default: --config or adminui.yaml)"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := i.Path
	if path == "" {
		path = root.Config
	}
	if path == "" {
		path = config.DefaultFileName
	}

	out := stdout(g)
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
