package main

import (
	"os"

	"github.com/danieldin95/openmac/src/cli/cmd"
	"github.com/danieldin95/openmac/src/libom"
	"github.com/urfave/cli/v2"
)

type App struct {
	Url string
}

func (a App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"l"},
			Usage:   "station api url",
			Value:   a.Url,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format: json, yaml",
			Value:   "json",
		},
	}
}

func (a App) New() *cli.App {
	app := &cli.App{
		Usage: "OpenMAC station utility",
		Flags: a.Flags(),
	}
	cmd.Link{}.Commands(app)
	return app
}

func main() {
	url := os.Getenv("OM_URL")
	if url == "" {
		url = "http://127.0.0.1:10180"
	}
	app := App{Url: url}.New()
	if err := app.Run(os.Args); err != nil {
		libom.Error("omctl: %s", err)
		os.Exit(1)
	}
}
