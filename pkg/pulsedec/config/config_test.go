package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestUnmarshal(t *testing.T) {
	doc := `
verbose: true
viz_server:
  port: 8080
influxdb:
  host: http://localhost:8086
  organization: lab
  bucket: pulsedec
protocols:
  - name: weather-station
    modulation: manchester_zerobit
    short_limit: 122
    reset_limit: 600
  - name: doorbell
    modulation: pwm_ternary
    short_limit: 60
    long_limit: 120
    reset_limit: 2000
    sync_band: long
  - name: thermometer
    modulation: pwm_precise
    short_limit: 500
    long_limit: 1000
    reset_limit: 3000
    pulse_tolerance: 100
    pulse_sync_width: 1500
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))

	assert.True(t, cfg.Verbose)
	assert.Equal(t, 8080, cfg.VizServer.Port)
	assert.Equal(t, "http://localhost:8086", cfg.InfluxDB.Host)

	require.Len(t, cfg.Protocols, 3)
	assert.Equal(t, ModulationManchesterZeroBit, cfg.Protocols[0].Modulation)
	assert.Equal(t, 122, cfg.Protocols[0].ShortLimit)
	assert.Equal(t, "long", cfg.Protocols[1].SyncBand)
	assert.Equal(t, 100, cfg.Protocols[2].PulseTolerance)
	assert.Equal(t, 1500, cfg.Protocols[2].PulseSyncWidth)
}
