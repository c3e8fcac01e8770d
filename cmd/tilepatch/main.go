package main

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/tilepatch"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func apply(c *cli.Context) error {
	if c.NArg() < 1 {
		if c.Command != nil && c.Command.Name != "" {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}
		cli.ShowAppHelpAndExit(c, 1)
	}

	p := tilepatch.New(c.String("dir"), newLogger(c))

	for _, file := range c.Args().Slice() {
		if err := p.ApplyFile(file); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "tilepatch"
	app.Usage = "Patch 4bpp tile graphics using edit scripts"
	app.Version = "1.0.0"
	app.ArgsUsage = "SCRIPT"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"C"},
			EnvVars: []string{"TILEPATCH_DIR"},
			Usage:   "resolve relative paths in scripts against `DIRECTORY`",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"TILEPATCH_VERBOSE"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = apply

	app.Commands = []*cli.Command{
		{
			Name:        "apply",
			Usage:       "Apply edit scripts",
			Description: "Each script is applied in turn, stopping at the first error.",
			ArgsUsage:   "SCRIPT...",
			Action:      apply,
		},
		{
			Name:        "dump",
			Usage:       "Render a tile table as an image",
			Description: "The image is written as a PGM if OUTPUT ends in .pgm, otherwise as a PNG.",
			ArgsUsage:   "FILE OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := tilepatch.Dump(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert an image into a tile table",
			Description: "The image must be 128 pixels wide and a multiple of 8 pixels high.",
			ArgsUsage:   "IMAGE OUTPUT",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "quantize",
					Aliases: []string{"q"},
					Usage:   "reduce the image to 16 colors and use the color index",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := tilepatch.Convert(c.Args().Get(0), c.Args().Get(1), c.Bool("quantize")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
