package main

import (
	"github.com/accelforge/specfe/backend"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Aliases:     []string{"output-dir"},
			Description: "output directory (default current directory)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(dir)"),
		},
		&cli.Opt{
			Name:        "d",
			Aliases:     []string{"data"},
			Description: "template data for expressions, repeatable",
			Type:        cli.NamedFuncOpt(cfg.dataOpt, "(key=value)"),
		},
		&cli.Opt{
			Name:        "a",
			Aliases:     []string{"also"},
			Description: "second application to run on the same processed inputs",
			Type:        cli.NamedFuncOpt(cfg.alsoOpt, "(application)"),
		}}...)

	subs := make([]*cli.Command, 0, len(backend.Apps()))
	for _, app := range backend.Apps() {
		subs = append(subs, AppCommand(cfg, app))
	}
	return cli.NewCommandAt(&cfg.Main, "specfe").
		WithSynopsis("specfe [opts] <application> [opts] files...").
		WithDescription("specfe processes accelerator specifications and feeds them to evaluation applications.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return specfeMain(cfg, cc, args)
		}).
		WithSubs(subs...)
}

func AppCommand(mainCfg *MainConfig, app string) *cli.Command {
	cfg := &AppConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.App, app).
		WithSynopsis(app + " [opts] files...").
		WithDescription("process specification files and run " + app + " on the result").
		WithRun(func(cc *cli.Context, args []string) error {
			return runApp(cfg, cc, app, args)
		})
}
