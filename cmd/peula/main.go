package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tzofim/peula/internal/cli"
	"github.com/tzofim/peula/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{Config: config.Load()}

	root := cli.NewRootCmd(app)
	// Bare "peula" runs the server.
	if len(os.Args) == 1 {
		root.SetArgs([]string{"serve"})
	}
	return root.ExecuteContext(context.Background())
}
