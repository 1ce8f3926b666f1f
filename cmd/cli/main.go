package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/mlcbuild/internal/app"
	"github.com/vk/mlcbuild/internal/backend"
	"github.com/vk/mlcbuild/internal/cli"
	"github.com/vk/mlcbuild/internal/target"
)

// main is the entrypoint for the mlcbuild application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. The manifest goes to outW unless --emit names a file; logs go to
// errW.
func run(outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on a broken registry, so we recover here to provide
	// a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	// Buffer the manifest so a failed run never leaves a partial file behind.
	manifest := &bytes.Buffer{}
	be := backend.NewManifestWriter(manifest, appConfig.EmitFormat)
	mlcApp := app.NewApp(errW, appConfig, target.NewLocalEnvironment(), be)

	if err := mlcApp.Run(context.Background()); err != nil {
		return err
	}

	if appConfig.EmitPath == "-" {
		_, err = outW.Write(manifest.Bytes())
		return err
	}
	if err := os.WriteFile(appConfig.EmitPath, manifest.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
