package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"ascii-earth/globe"
)

// Config holds every tunable of the program. Values come from defaults, then
// the TOML file named by -config, then flags given on the command line.
type Config struct {
	Display struct {
		RotationSpeed float64       `toml:"rotation_speed"`
		FrameInterval time.Duration `toml:"frame_interval"`
		Charset       string        `toml:"charset"`
		Ramp          string        `toml:"ramp"`
		Theme         string        `toml:"theme"`
		Monochrome    bool          `toml:"monochrome"`
	} `toml:"display"`

	Land struct {
		GeoJSON string `toml:"geojson"`
	} `toml:"land"`

	Markers struct {
		GeoIPDB string   `toml:"geoip_db"`
		Points  []string `toml:"points"`
	} `toml:"markers"`

	Output struct {
		Record      string `toml:"record"`
		MetricsAddr string `toml:"metrics_addr"`
		DebugLog    string `toml:"debug_log"`
	} `toml:"output"`

	ConfigPath string `toml:"-"`
	Help       bool   `toml:"-"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Display.RotationSpeed = 3
	cfg.Display.FrameInterval = 50 * time.Millisecond
	cfg.Display.Charset = "ascii"
	cfg.Display.Theme = "default"
	return cfg
}

// LoadConfig decodes the TOML file at path over cfg. Keys absent from the
// file keep their current values.
func LoadConfig(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// parseConfig builds the configuration from the command line. Flags are
// parsed twice: once to find -config, and again after the file is loaded so
// flags given explicitly override it.
func parseConfig(args []string) (*Config, error) {
	cfg := DefaultConfig()
	if err := newFlagSet(cfg).Parse(args); err != nil {
		return nil, err
	}
	if cfg.Help {
		return cfg, nil
	}
	if cfg.ConfigPath != "" {
		if err := LoadConfig(cfg.ConfigPath, cfg); err != nil {
			return nil, err
		}
		if err := newFlagSet(cfg).Parse(args); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// newFlagSet binds every flag to a field of cfg, using the field's current
// value as the default.
func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("ascii-earth", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&cfg.Help, "h", false, "Show help")
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Load settings from TOML config file")

	fs.Float64Var(&cfg.Display.RotationSpeed, "s", cfg.Display.RotationSpeed, "Rotation speed in degrees per frame")
	fs.DurationVar(&cfg.Display.FrameInterval, "r", cfg.Display.FrameInterval, "Frame interval")
	fs.StringVar(&cfg.Display.Charset, "charset", cfg.Display.Charset, "Character set: ascii|blocks|braille")
	fs.StringVar(&cfg.Display.Ramp, "ramp", cfg.Display.Ramp, "Custom glyph ramp, darkest first")
	fs.StringVar(&cfg.Display.Theme, "theme", cfg.Display.Theme, "Theme name")
	fs.BoolVar(&cfg.Display.Monochrome, "m", cfg.Display.Monochrome, "Enable monochrome mode")

	fs.StringVar(&cfg.Land.GeoJSON, "land", cfg.Land.GeoJSON, "GeoJSON file with land polygons")

	fs.StringVar(&cfg.Markers.GeoIPDB, "geoip", cfg.Markers.GeoIPDB, "MaxMind City database for IP markers")
	fs.Var(&pointList{points: &cfg.Markers.Points}, "mark", "Marker as lat,lon or IP address (repeatable)")

	fs.StringVar(&cfg.Output.Record, "record", cfg.Output.Record, "Record session to asciinema file")
	fs.StringVar(&cfg.Output.MetricsAddr, "metrics", cfg.Output.MetricsAddr, "Serve Prometheus metrics on host:port")
	fs.StringVar(&cfg.Output.DebugLog, "d", cfg.Output.DebugLog, "Debug log filename")
	return fs
}

// pointList is a repeatable string flag. The first use on a command line
// replaces the points loaded from the config file.
type pointList struct {
	points *[]string
	set    bool
}

func (p *pointList) String() string {
	if p.points == nil {
		return ""
	}
	return strings.Join(*p.points, " ")
}

func (p *pointList) Set(v string) error {
	if !p.set {
		*p.points = nil
		p.set = true
	}
	*p.points = append(*p.points, v)
	return nil
}

// Glyphs returns the ramp to shade with: the custom ramp if set, otherwise
// the ramp of the configured charset.
func (c *Config) Glyphs() string {
	if c.Display.Ramp != "" {
		return c.Display.Ramp
	}
	return globe.Charsets[c.Display.Charset]
}

// Validate checks every value against its allowed range.
func (c *Config) Validate() error {
	var errs []error
	if s := c.Display.RotationSpeed; s < -45 || s > 45 {
		errs = append(errs, fmt.Errorf("rotation speed must be between -45 and 45 degrees per frame, got %v", s))
	}
	if d := c.Display.FrameInterval; d < 10*time.Millisecond || d > time.Second {
		errs = append(errs, fmt.Errorf("frame interval must be between 10ms and 1s, got %v", d))
	}
	if _, ok := globe.Charsets[c.Display.Charset]; !ok && c.Display.Ramp == "" {
		errs = append(errs, fmt.Errorf("unknown charset %q", c.Display.Charset))
	} else if _, err := globe.NewRamp(c.Glyphs()); err != nil {
		errs = append(errs, err)
	}
	if _, ok := themes[c.Display.Theme]; !ok {
		errs = append(errs, fmt.Errorf("unknown theme %q", c.Display.Theme))
	}
	if addr := c.Output.MetricsAddr; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errs = append(errs, fmt.Errorf("metrics address: %w", err))
		}
	}
	return errors.Join(errs...)
}
