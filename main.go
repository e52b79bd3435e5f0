package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/iburimskiy/meshfield/internal/config"
	"github.com/iburimskiy/meshfield/internal/game"
	"github.com/iburimskiy/meshfield/internal/props"
	"github.com/iburimskiy/meshfield/internal/snapshot"
)

var (
	configPath   = flag.String("config", "", "INI config file")
	snapshotPath = flag.String("snapshot", "", "render headless to this PNG and exit")
	frames       = flag.Int("frames", 120, "steps to simulate before -snapshot")
	width        = flag.Int("width", 0, "window or snapshot width (overrides config)")
	height       = flag.Int("height", 0, "window or snapshot height (overrides config)")
	fullscreen   = flag.Bool("fullscreen", false, "run fullscreen as a wallpaper")
	fps          = flag.Float64("fps", 0, "target frame rate (overrides config)")
	fgColor      = flag.String("color", "", `point and line color, "r g b" in 0..1 or #rrggbb`)
	bgColor      = flag.String("background", "", `background color, "r g b" in 0..1 or #rrggbb`)
	propsStdin   = flag.Bool("props-stdin", false, "read JSON property updates from stdin, one object per line")
	noPicker     = flag.Bool("no-picker", false, "disable the C/B color picker dialogs")
	overlay      = flag.Bool("overlay", false, "show stats overlay")
	debug        = flag.Bool("debug", false, "verbose logging")
	logPath      = flag.String("log", "", "write logs to this file instead of stderr")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	logFile, err := setupLogging(*logPath, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if *snapshotPath != "" {
		if err := writeSnapshot(*snapshotPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
			return 1
		}
		return 0
	}

	bridge := props.NewBridge(config.PropertyBuffer)
	opts := []game.Option{game.WithBridge(bridge), game.WithOverlay(*overlay)}
	if *propsStdin {
		bridge.Register("stdin", props.NewReaderSource(os.Stdin))
	}
	if !*noPicker {
		picker := props.NewPicker()
		bridge.Register("picker", picker)
		opts = append(opts, game.WithPicker(picker))
	}

	g, err := game.New(cfg, opts...)
	if err != nil {
		bridge.Close()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}
	if err := g.Run(); err != nil {
		reportExit(logFile, err)
		return 1
	}
	return 0
}

// reportExit prints err to stderr, and also to the log file when logs are redirected.
func reportExit(logFile *os.File, err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	if logFile != nil {
		log.Printf("exit: %v", err)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return config.Config{}, err
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *fullscreen {
		cfg.Window.Fullscreen = true
	}
	if *fps != 0 {
		cfg.Wallpaper.FPS = *fps
	}
	if *fgColor != "" {
		cfg.Wallpaper.Color = *fgColor
	}
	if *bgColor != "" {
		cfg.Wallpaper.Background = *bgColor
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func writeSnapshot(path string, cfg config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snapshot.Write(f, cfg, snapshot.Options{Frames: *frames}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d, %d frames)", path, cfg.Window.Width, cfg.Window.Height, *frames)
	return nil
}

// setupLogging routes the standard logger to path, or stderr when path is
// empty. The returned file, if any, must be closed by the caller.
func setupLogging(path string, verbose bool) (*os.File, error) {
	game.Verbose = verbose
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if path == "" {
		log.SetOutput(os.Stderr)
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}
