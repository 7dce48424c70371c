package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leengari/rowkit/internal/config"
	"github.com/leengari/rowkit/internal/domain/data"
	"github.com/leengari/rowkit/internal/ident"
	"github.com/leengari/rowkit/internal/logging"
)

// stringList collects repeated flags
type stringList []string

func (s *stringList) String() string     { return fmt.Sprint(*s) }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

// setupLogging installs the default logger on w. stdout carries the document.
func setupLogging(cfg *config.Config, w io.Writer) func() {
	logger, closeFn := logging.SetupLogger(cfg, w)
	slog.SetDefault(logger)
	return closeFn
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	closeFn := setupLogging(cfg, os.Stderr)
	defer closeFn()

	gen, err := ident.ForStrategy(cfg.IDStrategy)
	if err != nil {
		slog.Error("invalid id strategy", "error", err)
		closeFn()
		os.Exit(1)
	}
	data.SetDefaultIDGenerator(gen)

	var opts options
	var sets, deletes stringList
	flag.StringVar(&opts.in, "in", "-", "input document (- for stdin)")
	flag.StringVar(&opts.out, "out", "-", "output document (- for stdout)")
	flag.Var(&sets, "set", "key=value to update on every row; value is read as JSON, else as a string (repeatable)")
	flag.Var(&deletes, "delete", "column to delete from every row (repeatable)")
	flag.Parse()

	opts.deletes = deletes
	for _, s := range sets {
		op, err := parseSet(s)
		if err != nil {
			slog.Error("invalid -set flag", "value", s, "error", err)
			closeFn()
			os.Exit(2)
		}
		opts.sets = append(opts.sets, op)
	}

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		slog.Error("rowctl failed", "error", err)
		closeFn()
		os.Exit(1)
	}
}
