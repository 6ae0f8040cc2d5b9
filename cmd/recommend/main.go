// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the Marquee terminal tool.
//
// It asks for a name and an age (or takes -name and -age), draws the age
// group's genre chart, then prints yesterday's box office ranked for that
// group. Configuration is the same as the server's.
//
//	marquee -name Mina -age 25 -csv picks.csv
//	marquee -list
//
// The exit code is 1 when no recommendation could be produced.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/tomtom215/marquee/internal/app"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/report"
)

type options struct {
	name       string
	age        int
	csvPath    string
	configPath string
	list       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("marquee", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.name, "name", "", "viewer name (prompted when empty)")
	fs.IntVar(&opts.age, "age", 0, "viewer age (prompted when zero)")
	fs.StringVar(&opts.csvPath, "csv", "", "also write the recommendations to this CSV file")
	fs.StringVar(&opts.configPath, "config", "", "config file (default: CONFIG_PATH or config.yaml)")
	fs.BoolVar(&opts.list, "list", false, "print yesterday's box office without ranking and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
		Caller: cfg.Logging.Caller,
		Output: stderr,
	})

	components, err := app.Build(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		if err := components.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error releasing resources")
		}
	}()

	if opts.list {
		return printBoxOffice(ctx, components.Engine, stdout, stderr)
	}

	if err := prompt(opts, stdin, stdout); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	csvPath := opts.csvPath
	if csvPath == "" && cfg.Export.Enabled {
		csvPath = cfg.Export.Path
	}
	return printRecommendations(ctx, components.Engine, opts, csvPath, stdout, stderr)
}

// prompt fills in whatever the flags left empty. A blank answer stays blank
// and is rejected by the engine.
func prompt(opts *options, stdin io.Reader, stdout io.Writer) error {
	in := bufio.NewReader(stdin)
	if opts.name == "" {
		fmt.Fprint(stdout, "Name: ")
		line, err := readLine(in)
		if err != nil {
			return err
		}
		opts.name = line
	}
	if opts.age == 0 {
		fmt.Fprint(stdout, "Age: ")
		line, err := readLine(in)
		if err != nil {
			return err
		}
		if line != "" {
			age, err := strconv.Atoi(line)
			if err != nil {
				return fmt.Errorf("age must be a number, got %q", line)
			}
			opts.age = age
		}
	}
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printRecommendations(ctx context.Context, engine *recommend.Engine, opts *options, csvPath string, stdout, stderr io.Writer) int {
	res, err := engine.Recommend(ctx, recommend.Request{Name: opts.name, Age: opts.age})
	if res != nil {
		// Present on success and when only the box office failed.
		if werr := report.WriteGenreChart(stdout, res.Name, res.Bucket, res.GenreScores, report.DefaultBarWidth); werr != nil {
			fmt.Fprintf(stderr, "error: %v\n", werr)
			return 1
		}
		fmt.Fprintln(stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", failureMessage(err))
		return 1
	}

	if err := report.WriteTable(stdout, res.Name, res.Recommendations); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if csvPath != "" {
		if err := report.ExportCSV(csvPath, res.Recommendations); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "\nSaved %d recommendations to %s\n", len(res.Recommendations), csvPath)
	}
	return 0
}

func printBoxOffice(ctx context.Context, engine *recommend.Engine, stdout, stderr io.Writer) int {
	entries, target, err := engine.BoxOffice(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", failureMessage(err))
		return 1
	}
	if err := report.WriteBoxOffice(stdout, target, entries); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// failureMessage shows the viewer the sentinel text and keeps transport
// detail in the log.
func failureMessage(err error) string {
	for _, sentinel := range []error{
		recommend.ErrMissingInput,
		recommend.ErrNoBucket,
		recommend.ErrEmptyBucket,
		recommend.ErrNoBoxOffice,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
