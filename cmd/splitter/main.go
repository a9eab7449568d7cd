package main

import (
	"os"

	"github.com/athenavillarin/lugar-app/internal/config"
	"github.com/athenavillarin/lugar-app/internal/logger"
	"github.com/athenavillarin/lugar-app/internal/metrics"
	"github.com/athenavillarin/lugar-app/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile     string   `short:"c" long:"config"      env:"CONFIG_FILE"      description:"Path to configuration file (optional)"`
	InputDir       string   `short:"i" long:"input"       env:"INPUT_DIR"        description:"Directory with KML route geometries"`
	StopsFile      string   `short:"s" long:"stops"       env:"STOPS_FILE"       description:"Stop table CSV"`
	RouteStopsFile string   `short:"r" long:"route-stops" env:"ROUTE_STOPS_FILE" description:"Route-stop ordering CSV"`
	OutputDir      string   `short:"o" long:"output"      env:"OUTPUT_DIR"       description:"Directory for output dumps"`
	Format         string   `short:"f" long:"format"      env:"OUTPUT_FORMAT"    description:"Dump format" choice:"json" choice:"yaml"`
	MetricsFile    string   `short:"m" long:"metrics"     env:"METRICS_FILE"     description:"Write Prometheus textfile metrics to this path"`
	Limit          []string `short:"l" long:"limit"       env:"LIMIT_ROUTES"     env-delim:"," description:"Limit processing to specific base route ids"`
	GeoJSON        bool     `short:"g" long:"geojson"     description:"Also write split paths as GeoJSON"`
	Encoded        bool     `short:"e" long:"encoded"     description:"Also write split paths as encoded polylines"`
	Lenient        bool     `long:"lenient-numbers"       description:"Default unparseable numbers to 0 instead of skipping rows"`
	KeepExisting   bool     `short:"k" long:"keep-existing" description:"Fail instead of replacing output files from an earlier run"`
}

func main() {
	// .env only fills variables that are not already set
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg := config.Default()
	if opts.ConfigFile != "" {
		loaded, err := config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		cfg = loaded
	}
	opts.apply(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	summary, err := processor.Run(cfg, processor.Options{
		KeepExisting: opts.KeepExisting,
		Metrics:      metrics.New(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Route splitting failed")
	}

	summary.Log()
}

// apply overrides configuration values with the flags that were given.
func (o Options) apply(cfg *config.Config) {
	if o.InputDir != "" {
		cfg.InputDir = o.InputDir
	}
	if o.StopsFile != "" {
		cfg.StopsFile = o.StopsFile
	}
	if o.RouteStopsFile != "" {
		cfg.RouteStopsFile = o.RouteStopsFile
	}
	if o.OutputDir != "" {
		cfg.OutputDir = o.OutputDir
	}
	if o.Format != "" {
		cfg.Format = o.Format
	}
	if o.MetricsFile != "" {
		cfg.MetricsFile = o.MetricsFile
	}
	if len(o.Limit) > 0 {
		cfg.Routes = o.Limit
	}
	cfg.GeoJSON = cfg.GeoJSON || o.GeoJSON
	cfg.Encoded = cfg.Encoded || o.Encoded
	cfg.LenientNumbers = cfg.LenientNumbers || o.Lenient
}
