// Command tabextract rebuilds tables from positioned text tokens read from a
// PDF text layer or a JSON token document.
//
//	tabextract extract --page 2 --use-lines --format csv invoice.pdf
//	tabextract extract --tokens page.json --rulings lines.json --output table.xlsx
//	tabextract inspect --page 1 --x1 40 --y1 100 --x2 560 --y2 400 report.pdf
//	tabextract tokens --pdf report.pdf --output report.json
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tabextract",
		Usage: "rebuild tables from positioned text tokens",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with engine settings",
				EnvVars: []string{"TABEXTRACT_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "log errors only",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log debug events",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "rebuild a table and write it as csv, tsv, json, markdown, html or xlsx",
				ArgsUsage: "[input]",
				Flags: append(inputFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "output format; defaults to the --output extension, then the config",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output file; stdout when omitted",
					},
					&cli.StringFlag{
						Name:  "debug-png",
						Usage: "also draw tokens, bands and rulings into this PNG",
					},
					&cli.IntFlag{
						Name:  "jobs",
						Usage: "pages processed in parallel",
						Value: 4,
					},
				),
				Action: extractAction,
			},
			{
				Name:      "inspect",
				Usage:     "print row and column bands as YAML",
				ArgsUsage: "[input]",
				Flags:     inputFlags(),
				Action:    inspectAction,
			},
			{
				Name:      "tokens",
				Usage:     "dump the word tokens and rulings of PDF pages as a JSON token document",
				ArgsUsage: "[input.pdf]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pdf", Usage: "PDF file"},
					&cli.IntSliceFlag{Name: "page", Aliases: []string{"p"}, Usage: "pages to dump; all when omitted"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file; stdout when omitted"},
				},
				Action: tokensAction,
			},
			{
				Name:   "config",
				Usage:  "print the effective settings as YAML",
				Action: configAction,
			},
		},
	}
}

// inputFlags are shared by the commands that rebuild tables.
func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "tokens", Usage: "JSON token document"},
		&cli.StringFlag{Name: "pdf", Usage: "PDF file"},
		&cli.IntSliceFlag{Name: "page", Aliases: []string{"p"}, Usage: "1-indexed page; repeat for several"},
		&cli.Float64Flag{Name: "x1", Usage: "region left"},
		&cli.Float64Flag{Name: "y1", Usage: "region top"},
		&cli.Float64Flag{Name: "x2", Usage: "region right"},
		&cli.Float64Flag{Name: "y2", Usage: "region bottom"},
		&cli.BoolFlag{Name: "use-lines", Usage: "use ruling lines as cell boundaries"},
		&cli.StringFlag{Name: "rulings", Usage: "JSON array of rulings in raster pixels; implies --use-lines"},
		&cli.IntFlag{Name: "raster-width", Usage: "width in pixels of the image the rulings were found on"},
	}
}
