// pomoclock is a terminal Pomodoro clock.
//
// Usage:
//
//	pomoclock [--session=25] [--break=5] [--sound=beep.wav] [--log-level=verbose]
package main

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/hammamikhairi/pomoclock/internal/audio"
	"github.com/hammamikhairi/pomoclock/internal/config"
	"github.com/hammamikhairi/pomoclock/internal/display"
	"github.com/hammamikhairi/pomoclock/internal/domain"
	"github.com/hammamikhairi/pomoclock/internal/logger"
	"github.com/hammamikhairi/pomoclock/internal/timer"
)

// Version is injected at build time via -ldflags "-X main.Version=...".
var Version = "dev"

// CLI holds command-line flags. Each flag can also come from the
// environment or a .env file in the working directory.
type CLI struct {
	Config   string  `help:"Path to the YAML config file (default: user config dir)." type:"path" env:"POMOCLOCK_CONFIG"`
	LogLevel string  `help:"Log verbosity: off, normal or verbose." env:"POMOCLOCK_LOG_LEVEL"`
	LogFile  string  `help:"File to write logs to (use \"stderr\" to log to console)." env:"POMOCLOCK_LOG_FILE"`
	Sound    string  `help:"16-bit PCM WAV file to play at the end of each phase." type:"path" env:"POMOCLOCK_SOUND"`
	ToneHz   float64 `help:"Pitch of the generated beep when no sound file is set." env:"POMOCLOCK_TONE_HZ"`
	Volume   float64 `help:"Cue volume between 0 and 1." env:"POMOCLOCK_VOLUME"`
	NoSound  bool    `help:"Never play a cue." env:"POMOCLOCK_NO_SOUND"`
	Session  int     `help:"Session length in minutes for this run (1-60)." env:"POMOCLOCK_SESSION"`
	Break    int     `help:"Break length in minutes for this run (1-60)." env:"POMOCLOCK_BREAK"`

	Version kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("pomoclock"),
		kong.Description("A Pomodoro clock for the terminal."),
		kong.Vars{"version": "pomoclock " + Version},
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(cli.Run())
}

// Run loads configuration, wires the timer to the audio cue and the
// terminal UI, and blocks until the UI quits.
func (c *CLI) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	// Direct logs to a file by default so the UI stays clean.
	logOut, closeLog := openLogOutput(cfg.LogFile)
	defer closeLog()

	// Third-party libraries that use the standard logger end up in the
	// same place.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(level, logOut)
	log.Info("pomoclock %s starting (session=%d, break=%d)", Version, cfg.SessionMinutes, cfg.BreakMinutes)

	cue := buildCue(cfg, log.Named("audio"))

	machine := timer.New(cue, log.Named("timer"),
		timer.WithInitialConfig(cfg.TimerConfig()),
	)
	defer machine.Close()

	ui := display.NewUI(machine, log.Named("display"))
	machine.SetNotifier(ui)

	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
		return fmt.Errorf("run ui: %w", err)
	}
	log.Info("pomoclock exiting")
	return nil
}

func (c *CLI) loadConfig() (config.Config, error) {
	path := c.Config
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default().Apply(c.overrides())
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	return cfg.Apply(c.overrides())
}

func (c *CLI) overrides() config.Overrides {
	return config.Overrides{
		LogLevel:       c.LogLevel,
		LogFile:        c.LogFile,
		Sound:          c.Sound,
		ToneHz:         c.ToneHz,
		Volume:         c.Volume,
		NoSound:        c.NoSound,
		SessionMinutes: c.Session,
		BreakMinutes:   c.Break,
	}
}

// openLogOutput opens the log file, creating its directory. Any failure
// falls back to stderr.
func openLogOutput(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not create log dir %s: %v (falling back to stderr)\n", dir, err)
			return os.Stderr, func() {}
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

// buildCue picks the best available cue: the configured WAV file, a
// generated beep, or the terminal bell when the audio device cannot be
// opened.
func buildCue(cfg config.Config, log *logger.Logger) domain.AudioCue {
	if cfg.NoSound {
		log.Info("sound disabled")
		return audio.Silent{}
	}

	wav := audio.GenerateBeep(cfg.ToneHz, audio.DefaultBeepLength, audio.DefaultSampleRate)
	if cfg.Sound != "" {
		data, err := os.ReadFile(cfg.Sound)
		if err != nil {
			log.Warn("reading sound file %s, using generated beep: %v", cfg.Sound, err)
		} else {
			wav = data
		}
	}

	player := audio.NewPlayer(wav, log, audio.WithVolume(cfg.Volume))
	err := player.Load()
	if errors.Is(err, domain.ErrInvalidWAV) && cfg.Sound != "" {
		log.Warn("sound file %s unusable, using generated beep: %v", cfg.Sound, err)
		beep := audio.GenerateBeep(cfg.ToneHz, audio.DefaultBeepLength, audio.DefaultSampleRate)
		player = audio.NewPlayer(beep, log, audio.WithVolume(cfg.Volume))
		err = player.Load()
	}
	if err != nil {
		log.Error("audio player init failed, falling back to terminal bell: %v", err)
		return audio.NewBell(os.Stdout)
	}
	return player
}
