package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "entail: %v\n", err)
}

func corpusFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "corpus",
		Aliases: []string{"c"},
		Usage:   "corpus `PATH`: an .xml or .json file, a directory of them, or an SQLite file",
		EnvVars: []string{"ENTAIL_CORPUS"},
	}
}

func newApp(ui UI) *cli.App {
	pool := &Pool{}

	return &cli.App{
		Name:      "entail",
		Usage:     "textual entailment by tree edit distance",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML config `FILE`",
				EnvVars: []string{"ENTAIL_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "log JSON records to stderr",
			},
		},
		After: func(*cli.Context) error {
			return pool.Close()
		},
		Commands: []*cli.Command{
			{
				Name:  "score",
				Usage: "score every pair of a corpus",
				Flags: []cli.Flag{
					corpusFlag(),
					&cli.Float64Flag{Name: "threshold", Usage: "entailment threshold of the normalized distance"},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "number of pairs scored concurrently"},
					&cli.StringFlag{Name: "idf", Usage: "SQLite `FILE` with the lemma counts of the weighted distance"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: formatText, Usage: "text or json"},
					&cli.StringFlag{Name: "results", Usage: "SQLite `FILE` where the results are stored"},
					&cli.BoolFlag{Name: "progress", Usage: "show a progress bar"},
					&cli.BoolFlag{Name: "no-color", Usage: "disable colors"},
				},
				Action: func(c *cli.Context) error {
					opts, err := parseScoreOptions(c)
					if err != nil {
						return err
					}
					return scoreCommand(pool, opts, ui)
				},
			},
			{
				Name:      "pair",
				Usage:     "show the trees and the score of a pair",
				ArgsUsage: "<pair id>",
				Flags: []cli.Flag{
					corpusFlag(),
					&cli.Float64Flag{Name: "threshold", Usage: "entailment threshold of the normalized distance"},
					&cli.StringFlag{Name: "idf", Usage: "SQLite `FILE` with the lemma counts of the weighted distance"},
					&cli.BoolFlag{Name: "no-color", Usage: "disable colors"},
				},
				Action: func(c *cli.Context) error {
					opts, err := parsePairOptions(c)
					if err != nil {
						return err
					}
					return pairCommand(pool, opts, ui)
				},
			},
			{
				Name:  "idf",
				Usage: "count lemma occurrences over a corpus",
				Flags: []cli.Flag{
					corpusFlag(),
					&cli.StringFlag{Name: "db", Usage: "SQLite `FILE` where the counts are stored"},
					&cli.IntFlag{Name: "top", Aliases: []string{"n"}, Value: 20, Usage: "number of lemmas shown"},
					&cli.BoolFlag{Name: "progress", Usage: "show a progress bar"},
				},
				Action: func(c *cli.Context) error {
					opts, err := parseIdfOptions(c)
					if err != nil {
						return err
					}
					return idfCommand(pool, opts, ui)
				},
			},
			{
				Name:  "import",
				Usage: "copy a corpus into an SQLite file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "corpus `PATH`", Required: true},
					&cli.StringFlag{Name: "to", Usage: "SQLite `FILE`", Required: true},
				},
				Action: func(c *cli.Context) error {
					opts := ImportOptions{From: c.String("from"), To: c.String("to")}
					return importCommand(pool, opts, ui)
				},
			},
			{
				Name:  "export",
				Usage: "write the pairs of an SQLite file to an .xml or .json corpus",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "SQLite `FILE`", Required: true},
					&cli.StringFlag{Name: "to", Usage: "corpus `FILE`", Required: true},
				},
				Action: func(c *cli.Context) error {
					opts := ExportOptions{From: c.String("from"), To: c.String("to")}
					return exportCommand(pool, opts, ui)
				},
			},
			{
				Name:  "results",
				Usage: "show the results stored by score --results",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Usage: "SQLite `FILE`", Required: true},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: formatText, Usage: "text or json"},
					&cli.BoolFlag{Name: "no-color", Usage: "disable colors"},
				},
				Action: func(c *cli.Context) error {
					opts := ResultsOptions{DbPath: c.String("db"), Format: c.String("format"), NoColor: c.Bool("no-color")}
					if opts.Format != formatText && opts.Format != formatJSON {
						return fmt.Errorf("format %q: allowed values are %s, %s", opts.Format, formatText, formatJSON)
					}
					return resultsCommand(pool, opts, ui)
				},
			},
			{
				Name:  "query",
				Usage: "interactive prompt over a corpus",
				Flags: []cli.Flag{
					corpusFlag(),
					&cli.Float64Flag{Name: "threshold", Usage: "entailment threshold of the normalized distance"},
					&cli.StringFlag{Name: "idf", Usage: "SQLite `FILE` with the lemma counts of the weighted distance"},
					&cli.BoolFlag{Name: "no-color", Usage: "disable colors"},
				},
				Action: func(c *cli.Context) error {
					opts, err := parsePairOptions(c)
					if err != nil {
						return err
					}
					return queryCommand(pool, opts, ui)
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					return versionCommand(ui)
				},
			},
		},
	}
}
