package main

import (
	"os"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='force color output'"`
	DryRun  bool `cli:"name=n aliases=dry-run desc='process inputs but call no application'"`
	Verbose bool `cli:"name=v aliases=verbose desc='verbose logging'"`
	Funcs   bool `cli:"name=funcs desc='list the available custom expression functions'"`

	OutputDir string
	Data      []string
	AlsoApp   string

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.OutputDir = a
	return a, nil
}

func (cfg *MainConfig) dataOpt(cc *cli.Context, a string) (any, error) {
	cfg.Data = append(cfg.Data, a)
	return a, nil
}

func (cfg *MainConfig) alsoOpt(cc *cli.Context, a string) (any, error) {
	cfg.AlsoApp = a
	return a, nil
}

func (cfg *MainConfig) outputDir() string {
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

type AppConfig struct {
	*MainConfig

	App *cli.Command
}
