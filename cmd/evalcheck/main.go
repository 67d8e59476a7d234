// Package main provides the evalcheck CLI: it loads a JSONL dataset, runs a
// built-in check against the remote scoring service, and writes the dataset
// back out with score columns attached.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/ahrav/go-evalcheck"
	"github.com/ahrav/go-evalcheck/check"
	"github.com/ahrav/go-evalcheck/table"
)

var (
	settingsPath = flag.String("settings", "", "Path to YAML settings file (required unless -list)")
	inputPath    = flag.String("input", "", "Path to input JSONL dataset (required unless -list)")
	outputPath   = flag.String("output", "", "Path to output JSONL dataset (defaults to stdout)")
	checkName    = flag.String("check", "", "Name of the built-in check to run (required unless -list)")
	listChecks   = flag.Bool("list", false, "List built-in checks and exit")
	verbose      = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()

	if *listChecks {
		builtins := check.Builtins()
		names := make([]string, 0, len(builtins))
		for name := range builtins {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	if *settingsPath == "" || *inputPath == "" || *checkName == "" {
		fmt.Fprintln(os.Stderr, "Usage: evalcheck -settings FILE -input FILE -check NAME [-output FILE]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("evalcheck failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	settings, err := evalcheck.LoadSettings(*settingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settings.Logger = logger

	c, ok := check.Builtins()[*checkName]
	if !ok {
		return fmt.Errorf("unknown check %q (use -list to see built-in checks)", *checkName)
	}

	bound, err := c.Bind(settings)
	if err != nil {
		return err
	}
	defer func() { _ = bound.Close() }()

	in, err := os.Open(*inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	tbl, err := table.ReadJSONL(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	logger.Info("dataset loaded", "rows", tbl.Len(), "columns", len(tbl.ColumnNames()))

	out, err := bound.Run(ctx, tbl)
	if err != nil {
		return err
	}

	dst := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		dst = f
	}

	if err := table.WriteJSONL(dst, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("check completed", "check", c.Name, "rows", out.Len())
	return nil
}
