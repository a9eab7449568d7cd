package processor

import (
	"time"

	"github.com/athenavillarin/lugar-app/internal/splitter"

	"github.com/rs/zerolog/log"
)

// Summary is the outcome of one batch run, meant for a human reviewer.
type Summary struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	Stops          int `json:"stops" yaml:"stops"`
	RouteVariants  int `json:"route_variants" yaml:"route_variants"`
	SkippedRows    int `json:"skipped_rows" yaml:"skipped_rows"`
	SourcesFound   int `json:"sources_found" yaml:"sources_found"`
	SourcesSplit   int `json:"sources_split" yaml:"sources_split"`
	SourcesSkipped int `json:"sources_skipped" yaml:"sources_skipped"`
	SourcesFailed  int `json:"sources_failed" yaml:"sources_failed"`

	VariantsProduced    int `json:"variants_produced" yaml:"variants_produced"`
	VariantErrors       int `json:"variant_errors" yaml:"variant_errors"`
	SinglePointPaths    int `json:"single_point_paths" yaml:"single_point_paths"`
	OrientationWarnings int `json:"orientation_warnings" yaml:"orientation_warnings"`

	Variants []splitter.VariantDiagnostics `json:"variants" yaml:"variants"`
	Outputs  []string                      `json:"outputs" yaml:"outputs"`
}

// SourcesProcessed counts sources that were read without error.
func (s *Summary) SourcesProcessed() int {
	return s.SourcesSplit + s.SourcesSkipped
}

// Log writes the summary counters at info level.
func (s *Summary) Log() {
	log.Info().
		Str("run_id", s.RunID).
		Int("sources_found", s.SourcesFound).
		Int("sources_processed", s.SourcesProcessed()).
		Int("sources_split", s.SourcesSplit).
		Int("sources_skipped", s.SourcesSkipped).
		Int("sources_failed", s.SourcesFailed).
		Int("variants_produced", s.VariantsProduced).
		Int("variant_errors", s.VariantErrors).
		Int("single_point_paths", s.SinglePointPaths).
		Int("orientation_warnings", s.OrientationWarnings).
		Int("skipped_rows", s.SkippedRows).
		Dur("duration", s.FinishedAt.Sub(s.StartedAt)).
		Msg("Route splitting finished")
}
