package config

// Modulation selects one of the supported line codings.
type Modulation string

const (
	ModulationPCM               Modulation = "pcm"
	ModulationPPM               Modulation = "ppm"
	ModulationPWM               Modulation = "pwm"
	ModulationPWMPrecise        Modulation = "pwm_precise"
	ModulationPWMTernary        Modulation = "pwm_ternary"
	ModulationManchesterZeroBit Modulation = "manchester_zerobit"
)

type Config struct {
	Verbose   bool       `yaml:"verbose"`
	Protocols []Protocol `yaml:"protocols"`
	VizServer struct {
		Port int `yaml:"port"`
	} `yaml:"viz_server"`
	InfluxDB struct {
		Host         string `yaml:"host"`
		Organization string `yaml:"organization"`
		Bucket       string `yaml:"bucket"`
	} `yaml:"influxdb"`
}

// Protocol describes one device protocol to search for.  Limits are in
// sample-time units.  The trailing fields only apply to the modulation
// named in their comment.
type Protocol struct {
	Name       string     `yaml:"name"`
	Modulation Modulation `yaml:"modulation"`
	ShortLimit int        `yaml:"short_limit"`
	LongLimit  int        `yaml:"long_limit"`
	ResetLimit int        `yaml:"reset_limit"`

	// StartBit makes the pwm decoder swallow a leading framing bit.
	StartBit bool `yaml:"start_bit"`

	// PulseTolerance and PulseSyncWidth parameterize pwm_precise.
	PulseTolerance int `yaml:"pulse_tolerance"`
	PulseSyncWidth int `yaml:"pulse_sync_width"`

	// SyncBand picks the pwm_ternary separator band:
	// short, middle, long or none.
	SyncBand string `yaml:"sync_band"`
}
