package main

import (
	"context"
	"log"
	"os"

	"github.com/rxtech-lab/argo-trading-halt/internal/version"
	"github.com/urfave/cli/v3"
)

// newApp builds the haltdata command tree.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "haltdata",
		Usage:   "Prepare and inspect trading halt data files",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			convertCommand(),
			replayCommand(),
			schemaCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
