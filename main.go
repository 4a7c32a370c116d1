// Command ascii-earth renders a rotating, day/night shaded text map of the
// Earth in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/oschwald/geoip2-golang"
	"github.com/prometheus/client_golang/prometheus"

	"ascii-earth/globe"
	"ascii-earth/shapes"
)

func showHelp() {
	fmt.Printf(`ascii-earth - rotating day/night ASCII map of the Earth

DESCRIPTION:
    Renders an equirectangular map of the Earth in the terminal. Land is
    shaded by a day/night ramp that follows the sun, the map spins by a few
    degrees of longitude per frame, and only changed rows are redrawn.

USAGE:
    ascii-earth [OPTIONS]

OPTIONS:
    -h                  Show this help message
    -config <file>      Load settings from TOML config file
    -d <filename>       Enable debug logging to specified file
    -s <degrees>        Rotation speed in degrees per frame (-45 to 45, default: 3)
    -r <duration>       Frame interval (10ms to 1s, default: 50ms)
    -m                  Enable monochrome mode
    -charset <type>     Character set: ascii|blocks|braille (default: ascii)
    -ramp <glyphs>      Custom glyph ramp, darkest first (overrides -charset)
    -theme <name>       Theme: default|matrix|amber|solarized|nord|dracula|mono
    -land <file>        GeoJSON file with land polygons (default: built-in map)
    -mark <lat,lon|ip>  Draw a marker; repeatable
    -geoip <file>       MaxMind City database used to place IP markers
    -record <file>      Record session to asciinema file
    -metrics <addr>     Serve Prometheus metrics on addr (e.g. :9100)

ENVIRONMENT:
    LOG_LEVEL           debug|info|warn|error (default: info)
    LOG_FORMAT          text|json (default: text)

INTERACTIVE CONTROLS:
    Space       - Pause/Resume rotation
    [/]         - Decrease/Increase spin speed
    T           - Cycle through themes
    Q/X/Esc     - Exit

EXAMPLES:
    # Default globe
    ./ascii-earth

    # Braille glyphs in the matrix theme, spinning westward
    ./ascii-earth -charset braille -theme matrix -s -5

    # Mark Kansas City and an IP address
    ./ascii-earth -mark 39.1,-94.6 -mark 8.8.8.8 -geoip GeoLite2-City.mmdb

    # Record a session
    ./ascii-earth -record earth.cast

`)
}

func main() {
	_ = godotenv.Load()

	cfg, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) || (cfg != nil && cfg.Help) {
		showHelp()
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *Config) error {
	logger, closeLog, err := openLogger(cfg.Output.DebugLog)
	if err != nil {
		return err
	}
	defer closeLog()
	start := time.Now()
	logger.Info("starting",
		"charset", cfg.Display.Charset,
		"theme", cfg.Display.Theme,
		"speed", cfg.Display.RotationSpeed,
		"interval", cfg.Display.FrameInterval)

	ramp, err := globe.NewRamp(cfg.Glyphs())
	if err != nil {
		return err
	}

	polys, err := shapes.Load(cfg.Land.GeoJSON)
	if err != nil {
		return err
	}
	land := globe.NewShapes(polys...)
	logger.Info("land_loaded", "polygons", land.Len(), "source", cfg.Land.GeoJSON)

	var lookup cityLookup
	if cfg.Markers.GeoIPDB != "" {
		db, err := geoip2.Open(cfg.Markers.GeoIPDB)
		if err != nil {
			return fmt.Errorf("open geoip database: %w", err)
		}
		defer db.Close()
		lookup = db
	}
	markers, err := parseMarkers(cfg.Markers.Points, lookup)
	if err != nil {
		return err
	}

	var metrics globe.Metrics = globe.NoopMetrics{}
	if cfg.Output.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = newPromMetrics(reg)
		srv := serveMetrics(cfg.Output.MetricsAddr, reg, logger)
		defer srv.Close()
	}

	rasterizer := globe.NewRasterizer(land)
	rasterizer.Metrics = metrics
	rasterizer.Logger = logger
	renderer := globe.NewRenderer(rasterizer, globe.NewShader(ramp))
	renderer.Markers = markers
	renderer.Metrics = metrics

	theme := themes[cfg.Display.Theme]
	if cfg.Display.Monochrome {
		theme = themes["mono"]
	}

	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	tui := NewTUI(screen, theme, ramp)
	defer tui.Close()

	var recorder *Recorder
	if cfg.Output.Record != "" {
		cols, rows := screen.Size()
		recorder, err = CreateRecorder(cfg.Output.Record, cols, rows)
		if err != nil {
			logger.Error("recorder_failed", "err", err)
		} else {
			defer recorder.Close()
		}
	}

	app := &App{
		Renderer: renderer,
		TUI:      tui,
		Recorder: recorder,
		Logger:   logger,
		Speed:    cfg.Display.RotationSpeed,
		Interval: cfg.Display.FrameInterval,
		Now:      time.Now,
	}
	app.Run(tui.PollEvents())
	logger.Info("stopped", "cached_grids", rasterizer.Cached(), "uptime", time.Since(start))
	return nil
}
