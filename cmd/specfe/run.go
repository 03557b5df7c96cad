package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/accelforge/specfe/backend"
	"github.com/accelforge/specfe/encode"
	"github.com/accelforge/specfe/eval"
	"github.com/accelforge/specfe/load"
	"github.com/accelforge/specfe/pipeline"

	"github.com/scott-cotton/cli"
)

func specfeMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	setupLogging(cfg)
	if cfg.Funcs {
		fmt.Fprintf(cc.Out, "available custom expression functions:\n")
		for _, s := range eval.Symbols() {
			fmt.Fprintf(cc.Out, "\t- %s\n", s)
		}
		return nil
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func runApp(cfg *AppConfig, cc *cli.Context, app string, args []string) error {
	args, err := cfg.App.Parse(cc, args)
	if err != nil {
		return err
	}
	setupLogging(cfg.MainConfig)
	if len(args) == 0 {
		return fmt.Errorf("%w: no input files", cli.ErrUsage)
	}
	outputDir := cfg.outputDir()

	// An already-processed file goes to the application as-is.
	if file, ok := processedInput(args); ok {
		if len(args) > 1 {
			return fmt.Errorf("%w: %s must be the only input", cli.ErrUsage, backend.ProcessedFileName)
		}
		if len(cfg.Data) > 0 {
			return fmt.Errorf("%w: -d data cannot be combined with %s", cli.ErrUsage, backend.ProcessedFileName)
		}
		return call(cc, cfg.MainConfig, app, []string{file}, outputDir)
	}

	data, err := load.ParseData(cfg.Data)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	s, err := load.Files(args,
		load.WithData(data),
		load.WithProcessors(
			pipeline.NewReferenceResolver(),
			eval.New(nil),
		))
	if err != nil {
		return err
	}
	if err := s.Run(); err != nil {
		return err
	}
	processed, err := backend.WriteProcessed(s, outputDir)
	if err != nil {
		return err
	}
	slog.Debug("wrote processed specification", "path", processed)
	if cfg.DryRun {
		return encode.Encode(s.Root, cc.Out, encodeOpts(cfg.MainConfig, cc)...)
	}
	return call(cc, cfg.MainConfig, app, []string{processed}, outputDir)
}

func call(cc *cli.Context, cfg *MainConfig, app string, files []string, outputDir string) error {
	apps := []string{app}
	if cfg.AlsoApp != "" && cfg.AlsoApp != app {
		apps = append(apps, cfg.AlsoApp)
	}
	if cfg.DryRun {
		fmt.Fprintf(cc.Out, "dry run: would call %v on %v\n", apps, files)
		return nil
	}
	caller := backend.NewExecCaller()
	caller.Stdout = cc.Out
	for _, a := range apps {
		if err := caller.Call(context.Background(), a, files, outputDir); err != nil {
			return err
		}
	}
	return nil
}

func processedInput(args []string) (string, bool) {
	for _, a := range args {
		if filepath.Base(a) == backend.ProcessedFileName {
			return a, true
		}
	}
	return "", false
}

func encodeOpts(cfg *MainConfig, cc *cli.Context) []encode.EncodeOption {
	if cfg.Color {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	return []encode.EncodeOption{encode.EncodeColors(encode.TerminalColors(cc.Out))}
}

func setupLogging(cfg *MainConfig) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
