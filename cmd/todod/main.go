package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/todod/internal/cli"
	"github.com/alexanderramin/todod/internal/cli/formatter"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, formatter.Error(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	rootCmd := cli.NewRootCmd(&cli.App{Version: version})
	return rootCmd.ExecuteContext(context.Background())
}
