package main

import (
	"testing"

	"github.com/athenavillarin/lugar-app/internal/config"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsApply(t *testing.T) {
	cfg := config.Default()
	cfg.GeoJSON = true

	Options{
		InputDir: "kml",
		Format:   "yaml",
		Limit:    []string{"R01"},
		Lenient:  true,
	}.apply(cfg)

	assert.Equal(t, "kml", cfg.InputDir)
	assert.Equal(t, "stops.csv", cfg.StopsFile)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, []string{"R01"}, cfg.Routes)
	assert.True(t, cfg.LenientNumbers)
	assert.True(t, cfg.GeoJSON, "flags never switch off config options")
	assert.False(t, cfg.Encoded)
	assert.NoError(t, cfg.Validate())
}

func TestLimitFromEnv(t *testing.T) {
	t.Setenv("LIMIT_ROUTES", "R01,R02")

	var opts Options
	_, err := flags.NewParser(&opts, flags.Default).ParseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"R01", "R02"}, opts.Limit)
}
