package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/familyai/adminui/cmd/adminui/commands"
	ferrors "git.home.luguber.info/familyai/adminui/internal/foundation/errors"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli, commands.Options()...)

	err := ctx.Run(&commands.Global{Stdout: os.Stdout}, &cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
