package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/formguard/pkg/apiclient"
	"github.com/dmitrymomot/formguard/pkg/config"
	"github.com/dmitrymomot/formguard/pkg/cookie"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

// Populated at build time via -ldflags.
var version = "dev"

type appConfig struct {
	API           apiclient.Config `envPrefix:"FORMGUARD_API_"`
	Cookie        cookie.Config    `envPrefix:"FORMGUARD_"`
	Log           logger.Config
	DefaultLocale string `env:"FORMGUARD_DEFAULT_LOCALE" envDefault:"en"`
}

func buildVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if mv := info.Main.Version; mv != "" && mv != "(devel)" {
			return mv
		}
	}
	return version
}

func newApp(cfg appConfig) *cli.Command {
	app := &cli.Command{
		Name:      "formguard",
		Usage:     "Validate form values against local and remote rules",
		UsageText: "formguard [global options] command [command options]",
		Version:   buildVersion(),
	}
	return newCheckCmd(cfg, os.Stdout, os.Stderr).Register(app)
}

func main() {
	ctx := context.Background()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newApp(cfg).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
