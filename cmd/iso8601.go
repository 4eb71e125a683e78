package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jamespfennell/iso8601/config"
	"github.com/jamespfennell/iso8601/internal/convert"
	"github.com/jamespfennell/iso8601/internal/encode"
	"github.com/jamespfennell/iso8601/internal/monitoring"
	"github.com/jamespfennell/iso8601/internal/server"
	"github.com/jamespfennell/iso8601/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const configFile = "config-file"
const logLevel = "log-level"
const inputFile = "input"
const outputFile = "output"

var formatFlags = []struct {
	name  string
	usage string
	field func(p *encode.Patch) **bool
}{
	{"hyphens", "separate the date fields with hyphens", func(p *encode.Patch) **bool { return &p.Hyphens }},
	{"colons", "separate the time fields with colons", func(p *encode.Patch) **bool { return &p.Colons }},
	{"offset", "append Z or the local UTC offset", func(p *encode.Patch) **bool { return &p.Offset }},
	{"milliseconds", "append the milliseconds", func(p *encode.Patch) **bool { return &p.Milliseconds }},
	{"local", "render in the local zone instead of UTC", func(p *encode.Patch) **bool { return &p.Local }},
}

func newFormatFlags() []cli.Flag {
	var flags []cli.Flag
	for _, f := range formatFlags {
		flags = append(flags, &cli.BoolFlag{
			Name:  f.name,
			Usage: f.usage + " (overrides the config file)",
		})
	}
	return flags
}

func main() {
	app := &cli.App{
		Name:  "iso8601",
		Usage: "convert between ISO 8601 strings and instants",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configFile,
				Usage: "path to the YAML config file; defaults are used if omitted",
			},
			&cli.StringFlag{
				Name:  logLevel,
				Usage: "log level, overriding the config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "encode instants given as unix milliseconds, or 'now'",
				ArgsUsage: "MILLIS|now...",
				Flags:     newFormatFlags(),
				Action: func(c *cli.Context) error {
					cfg, err := configFromContext(c)
					if err != nil {
						return err
					}
					return encodeArgs(cfg, c.Args().Slice())
				},
			},
			{
				Name:      "decode",
				Usage:     "decode ISO 8601 strings into unix milliseconds",
				ArgsUsage: "TEXT...",
				Action: func(c *cli.Context) error {
					cfg, err := configFromContext(c)
					if err != nil {
						return err
					}
					return decodeArgs(cfg, c.Args().Slice())
				},
			},
			{
				Name:  "convert",
				Usage: "re-encode a file of timestamps, one per line",
				Flags: append(newFormatFlags(),
					&cli.StringFlag{
						Name:  inputFile,
						Usage: "input file, compressed if it ends in .gz, .xz or .zstd; defaults to stdin",
					},
					&cli.StringFlag{
						Name:  outputFile,
						Usage: "output file, compressed if it ends in .gz, .xz or .zstd; defaults to stdout",
					},
				),
				Action: func(c *cli.Context) error {
					cfg, err := configFromContext(c)
					if err != nil {
						return err
					}
					return convert.NewConverter(cfg).Files(c.String(inputFile), c.String(outputFile), cfg.Compression)
				},
			},
			{
				Name:  "serve",
				Usage: "run the HTTP server",
				Action: func(c *cli.Context) error {
					cfg, err := configFromContext(c)
					if err != nil {
						return err
					}
					ctx, cancel := signal.NotifyContext(c.Context,
						syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
					defer cancel()
					return server.Run(ctx, cfg)
				},
			},
			{
				Name:  "config",
				Usage: "print a sample config file",
				Action: func(*cli.Context) error {
					fmt.Print(config.SampleConfig)
					return nil
				},
			},
		},
	}
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configFromContext(c *cli.Context) (*config.Config, error) {
	cfg := config.NewConfigWithDefaults()
	if path := c.String(configFile); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read the config file %s: %w", path, err)
		}
		cfg, err = config.NewConfig(b)
		if err != nil {
			return nil, err
		}
	}
	if c.IsSet(logLevel) {
		cfg.LogLevel = c.String(logLevel)
	}
	for _, f := range formatFlags {
		if c.IsSet(f.name) {
			b := c.Bool(f.name)
			*f.field(&cfg.Format) = &b
		}
	}
	logrus.SetLevel(cfg.LogLevelParsed())
	logrus.WithField("options", cfg.Options()).Debug("Loaded config")
	return cfg, nil
}

func encodeArgs(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		args = []string{"now"}
	}
	encoder := cfg.Encoder()
	var errs []error
	for _, arg := range args {
		var t time.Time
		if arg == "now" {
			t = time.Now()
		} else {
			millis, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%q is not unix milliseconds: %w", arg, encode.ErrInvalidInput))
				monitoring.RecordEncode(monitoring.CLI, encode.ErrInvalidInput)
				continue
			}
			t = time.UnixMilli(millis)
		}
		s, err := encoder.Encode(t)
		monitoring.RecordEncode(monitoring.CLI, err)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Println(s)
	}
	return util.NewMultipleError(errs...)
}

func decodeArgs(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("nothing to decode")
	}
	decoder := cfg.Decoder()
	var errs []error
	for _, arg := range args {
		t, err := decoder.Decode(arg)
		monitoring.RecordDecode(monitoring.CLI, err)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Printf("%d\t%s\n", t.UnixMilli(), t.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	}
	return util.NewMultipleError(errs...)
}
