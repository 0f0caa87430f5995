package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/entail/config"
	"github.com/revelaction/entail/internal/logging"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// Option structs for subcommands that have flags
type ScoreOptions struct {
	Config     config.Config
	CorpusPath string
	IdfPath    string
	Format     string
	ResultPath string
	Progress   bool
	NoColor    bool
}

type PairOptions struct {
	Config     config.Config
	CorpusPath string
	IdfPath    string
	PairId     string
	NoColor    bool
}

type IdfOptions struct {
	CorpusPath string
	DbPath     string
	Top        int
	Progress   bool
}

type ImportOptions struct {
	From string
	To   string
}

// loadConfig reads the config file, when given, applies the command flags
// over it and initializes the logger.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()

	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if c.IsSet("threshold") {
		cfg.Threshold = c.Float64("threshold")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-json") {
		cfg.LogJSON = c.Bool("log-json")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logging.Init(cfg.LogJSON, logging.ParseLevel(cfg.LogLevel))
	slog.Debug("config", "threshold", cfg.Threshold, "workers", cfg.Workers, "cost", cfg.Cost)

	return cfg, nil
}

func corpusPath(c *cli.Context) (string, error) {
	path := c.String("corpus")
	if path == "" {
		return "", errors.New("corpus path must be specified via -c or ENTAIL_CORPUS")
	}
	return path, nil
}

func parseScoreOptions(c *cli.Context) (ScoreOptions, error) {
	var opts ScoreOptions
	var err error

	if opts.Config, err = loadConfig(c); err != nil {
		return opts, err
	}
	if opts.CorpusPath, err = corpusPath(c); err != nil {
		return opts, err
	}

	opts.IdfPath = c.String("idf")
	opts.ResultPath = c.String("results")
	opts.Progress = c.Bool("progress")
	opts.NoColor = c.Bool("no-color")

	opts.Format = c.String("format")
	switch opts.Format {
	case formatText, formatJSON:
	default:
		return opts, fmt.Errorf("format %q: allowed values are %s, %s", opts.Format, formatText, formatJSON)
	}

	return opts, nil
}

// parsePairOptions parses the flags of the pair and query commands. The
// pair id is only required by pair.
func parsePairOptions(c *cli.Context) (PairOptions, error) {
	var opts PairOptions
	var err error

	if opts.Config, err = loadConfig(c); err != nil {
		return opts, err
	}
	if opts.CorpusPath, err = corpusPath(c); err != nil {
		return opts, err
	}

	opts.IdfPath = c.String("idf")
	opts.NoColor = c.Bool("no-color")

	if c.Command.Name == "pair" {
		if c.NArg() != 1 {
			return opts, errors.New("pair command requires exactly one pair id")
		}
		opts.PairId = c.Args().First()
	}

	return opts, nil
}

func parseIdfOptions(c *cli.Context) (IdfOptions, error) {
	var opts IdfOptions
	var err error

	if _, err = loadConfig(c); err != nil {
		return opts, err
	}
	if opts.CorpusPath, err = corpusPath(c); err != nil {
		return opts, err
	}

	opts.DbPath = c.String("db")
	opts.Top = c.Int("top")
	opts.Progress = c.Bool("progress")

	return opts, nil
}
