package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bodgit/wings"
	"github.com/bodgit/wings/palette"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// setup builds a converter from the global flags. The returned function
// must be called once finished with it.
func setup(c *cli.Context, opts wings.Options) (*wings.Wings, func(), error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	format, err := wings.ParseFormat(c.String("format"))
	if err != nil {
		return nil, nil, err
	}
	opts.Format = format
	opts.Scale = c.Int("scale")

	var db *wings.IndexDB
	if file := c.String("db"); file != "" {
		if db, err = wings.NewIndexDB(file); err != nil {
			return nil, nil, err
		}
	}

	return wings.New(db, logger, opts), func() {
		if db != nil {
			db.Close()
		}
	}, nil
}

func requireArgs(c *cli.Context, n int) {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "wings"
	app.Usage = "Wings font, ship and level extraction utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"WINGS_DB"},
			Usage:   "record extracted assets in this database",
		},
		&cli.StringFlag{
			Name:    "format",
			EnvVars: []string{"WINGS_FORMAT"},
			Value:   "png",
			Usage:   "image format to write; png, gif or bmp",
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: 1,
			Usage: "enlarge images by this factor",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	paletteFlag := &cli.StringFlag{
		Name:      "palette",
		Aliases:   []string{"p"},
		TakesFile: true,
		Usage:     "PCX image to take the ship palette from",
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert everything in a Wings data directory",
			Description: "Fonts, ships and levels are found by walking WINGS_DIR and written to OUTPUT_DIR. Without --palette the first PCX image in WINGS_DIR provides the ship palette.",
			ArgsUsage:   "WINGS_DIR OUTPUT_DIR",
			Flags: []cli.Flag{
				paletteFlag,
				&cli.IntFlag{
					Name:  "workers",
					Value: runtime.NumCPU(),
					Usage: "number of files to convert at once",
				},
				&cli.BoolFlag{
					Name:  "keep-going",
					Usage: "skip files that fail to convert",
				},
			},
			Action: func(c *cli.Context) error {
				requireArgs(c, 2)

				w, done, err := setup(c, wings.Options{
					Palette:   c.String("palette"),
					Workers:   c.Int("workers"),
					KeepGoing: c.Bool("keep-going"),
				})
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				if err := w.Convert(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "font",
			Usage:     "Convert a font to a font sheet",
			ArgsUsage: "FILE OUTPUT",
			Action: func(c *cli.Context) error {
				requireArgs(c, 2)

				w, done, err := setup(c, wings.Options{})
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				if err := w.ConvertFont(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "ship",
			Usage:     "Convert a ship to a strip of frames",
			ArgsUsage: "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:      paletteFlag.Name,
					Aliases:   paletteFlag.Aliases,
					TakesFile: true,
					Required:  true,
					Usage:     paletteFlag.Usage,
				},
			},
			Action: func(c *cli.Context) error {
				requireArgs(c, 2)

				p, err := palette.LoadPCX(c.String("palette"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				w, done, err := setup(c, wings.Options{})
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				if err := w.ConvertShip(c.Args().Get(0), c.Args().Get(1), p); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "level",
			Usage:       "Convert a level to background, parallax and info files",
			Description: "The files written to OUTPUT_DIR are named after FILE.",
			ArgsUsage:   "FILE OUTPUT_DIR",
			Action: func(c *cli.Context) error {
				requireArgs(c, 2)

				w, done, err := setup(c, wings.Options{})
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				file, dir := c.Args().Get(0), c.Args().Get(1)
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return cli.Exit(err, 1)
				}

				base := filepath.Base(file)
				base = base[:len(base)-len(filepath.Ext(base))]

				if err := w.ConvertLevel(file, filepath.Join(dir, base)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
