package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/athenavillarin/lugar-app/internal/geo"
	"github.com/athenavillarin/lugar-app/internal/kml"
	"github.com/athenavillarin/lugar-app/internal/logger"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input    string `short:"i" long:"in" description:"Input KML file path. Reads from stdin if empty"`
	Output   string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format   string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" choice:"geojson" default:"json"`
	ID       string `long:"id" description:"Source id for the output key. Defaults to the input file name, or \"stdin\""`
	MaxToken int    `long:"max-token" description:"Maximum bytes of one coordinate tuple" default:"256"`
}

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

	// Read Input
	var inputData []byte
	var err error

	id := opts.ID
	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
		if id == "" {
			id = kml.SourceID(opts.Input)
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		if id == "" {
			id = "stdin"
		}
	}

	points, err := kml.Extractor{MaxTokenBytes: opts.MaxToken}.Extract(bytes.NewReader(inputData))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting coordinates: %v\n", err)
		os.Exit(1)
	}
	if len(points) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: %s has no LineString geometry\n", id)
	}

	outputData, err := marshal(opts.Format, id, points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully extracted %d coordinates to %s (format: %s)\n", len(points), opts.Output, opts.Format)
	} else {
		fmt.Println(string(outputData))
	}
}

// marshal renders the coordinate dump of one source.
func marshal(format, id string, points []geo.GeoPoint) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(map[string][]geo.GeoPoint{id: points})
	case "geojson":
		fc := geo.PathsToGeoJSON(map[string]geo.DirectionalPath{id: {VariantID: id, Points: points}})
		return json.MarshalIndent(fc, "", "  ")
	default:
		return json.MarshalIndent(map[string][]geo.GeoPoint{id: points}, "", "  ")
	}
}
