// Package processor drives a batch run: it loads the stop tables, extracts
// every KML source, splits the geometries into directional paths and writes
// the dumps.
package processor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/athenavillarin/lugar-app/internal/config"
	"github.com/athenavillarin/lugar-app/internal/geo"
	"github.com/athenavillarin/lugar-app/internal/kml"
	"github.com/athenavillarin/lugar-app/internal/metrics"
	"github.com/athenavillarin/lugar-app/internal/splitter"
	"github.com/athenavillarin/lugar-app/internal/tables"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Options controls a run beyond the configuration file.
type Options struct {
	// KeepExisting fails the run instead of replacing output files left by
	// an earlier run.
	KeepExisting bool
	Metrics      *metrics.Metrics
}

// Run executes one batch over cfg. Failures of individual sources are logged
// and counted; the returned error is reserved for unusable tables, an
// unreadable input directory, or output that cannot be written.
func Run(cfg *config.Config, opts Options) (*Summary, error) {
	summary := &Summary{RunID: uuid.NewString(), StartedAt: time.Now()}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	loadOpts := tables.LoadOptions{LenientNumbers: cfg.LenientNumbers}

	stopsTable := tables.Open(cfg.StopsFile)
	stops, problems, err := tables.LoadStops(stopsTable, loadOpts)
	if err != nil {
		return nil, fmt.Errorf("load stops: %w", err)
	}
	reportProblems(stopsTable.Name(), problems, summary, m)

	ordersTable := tables.Open(cfg.RouteStopsFile)
	orders, problems, err := tables.LoadRouteStops(ordersTable, loadOpts)
	if err != nil {
		return nil, fmt.Errorf("load route stops: %w", err)
	}
	reportProblems(ordersTable.Name(), problems, summary, m)

	summary.Stops = len(stops)
	summary.RouteVariants = len(orders)
	log.Info().
		Int("stops", len(stops)).
		Int("route_variants", len(orders)).
		Msg("Tables loaded")

	sources, err := listSources(cfg.InputDir, cfg.Routes)
	if err != nil {
		return nil, err
	}
	summary.SourcesFound = len(sources)

	log.Info().
		Str("input_dir", cfg.InputDir).
		Int("sources", len(sources)).
		Msg("Starting route splitting")

	sp := splitter.New(stops, orders, splitter.Options{SuffixA: cfg.Variants.A, SuffixB: cfg.Variants.B})
	ex := kml.Extractor{MaxTokenBytes: cfg.MaxTokenBytes}

	routePaths := make(map[string][]geo.GeoPoint, len(sources))
	splitPaths := make(map[string]geo.DirectionalPath)

	for _, path := range sources {
		outcome := processSource(path, ex, sp, routePaths, splitPaths, summary)
		m.SourcesTotal.WithLabelValues(outcome).Inc()
	}

	for _, d := range summary.Variants {
		m.PathPoints.Observe(float64(d.Points))
	}
	m.VariantsProduced.Add(float64(summary.VariantsProduced))
	m.SinglePointPaths.Add(float64(summary.SinglePointPaths))
	m.OrientationWarnings.Add(float64(summary.OrientationWarnings))

	if err := writeOutputs(cfg, opts.KeepExisting, routePaths, splitPaths, summary); err != nil {
		return summary, err
	}

	summary.FinishedAt = time.Now()
	m.LastRunTimestamp.Set(float64(summary.FinishedAt.Unix()))

	if _, err := saveFile(cfg.OutputDir, SummaryName+"."+cfg.Format, cfg.Format, summary); err != nil {
		return summary, fmt.Errorf("write summary: %w", err)
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("Failed to write metrics textfile")
		}
	}

	return summary, nil
}

// processSource extracts and splits one KML file and returns its metrics
// outcome. Nothing it does aborts the run.
func processSource(
	path string,
	ex kml.Extractor,
	sp *splitter.Splitter,
	routePaths map[string][]geo.GeoPoint,
	splitPaths map[string]geo.DirectionalPath,
	summary *Summary,
) string {
	line, err := ex.ExtractFile(path)
	if err != nil {
		log.Error().Err(err).Str("source", path).Msg("Failed to extract geometry")
		summary.SourcesFailed++
		return metrics.OutcomeFailed
	}

	routePaths[line.SourceID] = line.Points

	logEvent := log.Info().
		Str("source", line.SourceID).
		Int("points", len(line.Points))
	if len(line.Points) > 0 {
		first, last := line.Points[0], line.Points[len(line.Points)-1]
		logEvent = logEvent.
			Floats64("first", []float64{first.Latitude, first.Longitude}).
			Floats64("last", []float64{last.Latitude, last.Longitude})
	}
	logEvent.Msg("Extracted coordinates")

	if _, _, ok := sp.Variants(line.SourceID); !ok {
		log.Debug().Str("source", line.SourceID).Msg("No A/B variant pair, skipping split")
		summary.SourcesSkipped++
		return metrics.OutcomeSkipped
	}

	res, err := sp.Split(line.SourceID, line)
	if err != nil {
		var ige *splitter.InsufficientGeometryError
		if errors.As(err, &ige) {
			log.Warn().Err(err).Str("source", line.SourceID).Msg("Insufficient geometry, skipping split")
			summary.SourcesSkipped++
			return metrics.OutcomeSkipped
		}

		var mre *splitter.MissingReferenceError
		if !errors.As(err, &mre) {
			log.Error().Err(err).Str("source", line.SourceID).Msg("Failed to split route")
			summary.SourcesFailed++
			return metrics.OutcomeFailed
		}
		log.Error().Err(err).Str("source", line.SourceID).Msg("Variant references unknown stop")
		summary.VariantErrors += 2 - len(res.Paths)
	}

	for _, d := range res.Diagnostics {
		splitPaths[d.VariantID] = res.Paths[d.VariantID]
		summary.Variants = append(summary.Variants, d)
		summary.VariantsProduced++

		log.Info().
			Str("variant", d.VariantID).
			Int("points", d.Points).
			Float64("length_m", d.LengthM).
			Int("start_index", d.StartIndex).
			Int("end_index", d.EndIndex).
			Msg("Directional path produced")

		if d.SinglePoint {
			summary.SinglePointPaths++
			log.Warn().
				Str("variant", d.VariantID).
				Int("index", d.StartIndex).
				Msg("Both terminal stops matched the same point, path cannot be rendered")
		}
		if d.Suspicious() {
			summary.OrientationWarnings++
			log.Warn().
				Str("variant", d.VariantID).
				Bool("reversed", d.Reversed).
				Bool("terminal_flip", d.TerminalFlip).
				Int("mismatches", d.Mismatches).
				Msg("Stop order disagrees with assumed path direction")
		}
	}

	if len(res.Paths) == 0 {
		summary.SourcesFailed++
		return metrics.OutcomeFailed
	}
	summary.SourcesSplit++
	return metrics.OutcomeProcessed
}

// writeOutputs saves the dumps of a run. With keepExisting nothing is written
// when any of them is already present.
func writeOutputs(
	cfg *config.Config,
	keepExisting bool,
	routePaths map[string][]geo.GeoPoint,
	splitPaths map[string]geo.DirectionalPath,
	summary *Summary,
) error {
	outputs := []output{
		{RoutePathsName + "." + cfg.Format, cfg.Format, routePaths},
		{SplitPathsName + "." + cfg.Format, cfg.Format, pointsByID(splitPaths)},
	}
	if cfg.GeoJSON {
		outputs = append(outputs, output{GeoJSONFile, "geojson", geo.PathsToGeoJSON(splitPaths)})
	}
	if cfg.Encoded {
		outputs = append(outputs, output{SplitPathsName + EncodedPathsExt + "." + cfg.Format, cfg.Format, EncodePaths(splitPaths)})
	}

	if keepExisting {
		for _, o := range outputs {
			path := filepath.Join(cfg.OutputDir, o.fileName)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%w: %s", ErrOutputExists, path)
			}
		}
	}

	for _, o := range outputs {
		path, err := saveFile(cfg.OutputDir, o.fileName, o.format, o.value)
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		summary.Outputs = append(summary.Outputs, path)
		log.Info().Str("path", path).Msg("Saved output")
	}

	return nil
}

// listSources returns the .kml files in dir sorted by name. When limit is
// non-empty only those base route ids are kept.
func listSources(dir string, limit []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	wanted := make(map[string]bool, len(limit))
	for _, id := range limit {
		wanted[id] = false
	}

	var sources []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".kml" {
			continue
		}
		id := kml.SourceID(e.Name())
		if len(limit) > 0 {
			if _, ok := wanted[id]; !ok {
				continue
			}
			wanted[id] = true
		}
		sources = append(sources, filepath.Join(dir, e.Name()))
	}

	for _, id := range sortedKeys(wanted) {
		if !wanted[id] {
			log.Error().
				Str("route", id).
				Msg("Route specified in --limit has no KML source")
		}
	}

	return sources, nil
}

func reportProblems(table string, problems []error, summary *Summary, m *metrics.Metrics) {
	for _, p := range problems {
		log.Warn().Err(p).Str("table", table).Msg("Table row skipped or defaulted")
	}
	summary.SkippedRows += len(problems)
	m.SkippedRowsTotal.WithLabelValues(table).Add(float64(len(problems)))
}
