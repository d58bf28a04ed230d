package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/stepmill/internal/app"
	"github.com/vk/stepmill/internal/cli"
	"github.com/vk/stepmill/internal/hcl_adapter"
	"github.com/vk/stepmill/internal/registry"
)

// main is the entrypoint for the stepmill application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	newLoader := func(r *registry.Registry) app.Loader {
		return hcl_adapter.NewLoader(r)
	}
	stepmillApp, err := app.NewApp(outW, appConfig, newLoader)
	if err != nil {
		return err
	}

	return stepmillApp.Run(context.Background(), appConfig)
}
