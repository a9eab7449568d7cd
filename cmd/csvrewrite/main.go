package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/athenavillarin/lugar-app/internal/logger"
	"github.com/athenavillarin/lugar-app/internal/tables"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	RouteStopsFile string `short:"r" long:"route-stops" env:"ROUTE_STOPS_FILE" description:"Route-stop CSV to rewrite in place"`
	FaresFile      string `short:"f" long:"fares"       env:"FARES_FILE"       description:"Fare CSV to rewrite in place"`
}

type rewriteFunc func(*tables.Table, io.Writer) (int, []error, error)

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if opts.RouteStopsFile == "" && opts.FaresFile == "" {
		log.Fatal().Msg("Nothing to rewrite, pass --route-stops and/or --fares")
	}

	// route stops first, fares only after it is fully written
	jobs := []struct {
		path string
		fn   rewriteFunc
	}{
		{opts.RouteStopsFile, tables.RewriteRouteStops},
		{opts.FaresFile, tables.RewriteFares},
	}
	for _, job := range jobs {
		if job.path == "" {
			continue
		}
		if err := rewriteInPlace(job.path, job.fn); err != nil {
			log.Fatal().Err(err).Str("file", job.path).Msg("Rewrite failed")
		}
	}
}

// rewriteInPlace runs fn over the table at path and atomically replaces the
// file with the result, keeping its permissions. The original is left
// untouched on error.
func rewriteInPlace(path string, fn rewriteFunc) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	written, problems, err := fn(tables.Open(path), tmp)
	if err == nil {
		err = tmp.Chmod(info.Mode().Perm())
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}

	for _, p := range problems {
		log.Warn().Err(p).Str("file", path).Msg("Row dropped")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	log.Info().
		Str("file", path).
		Int("rows", written).
		Int("dropped", len(problems)).
		Msg("Table rewritten")
	return nil
}
