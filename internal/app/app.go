// Package app wires the settings, resolver, codecs and registry client into
// the actions the CLI exposes.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/186526/arin-irr-syncer/internal/settings"
)

// App encapsulates the application's dependencies, configuration and
// lifecycle.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	settings *settings.Settings
}

// NewApp constructs the application: an isolated logger plus the decoded
// settings file. Logs go to errW so action output on outW stays clean for
// piping.
func NewApp(outW, errW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	s, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	logger.Debug("Settings loaded.", "path", cfg.SettingsPath,
		"registry", s.Registry != nil, "expander", s.Expander != nil)

	return &App{outW: outW, errW: errW, logger: logger, settings: s}, nil
}

// writeResult writes encoded output to cfg.OutPath, or outW when no path is
// configured.
func (a *App) writeResult(cfg *Config, data []byte) error {
	if cfg.OutPath == "" {
		_, err := a.outW.Write(data)
		return err
	}
	if err := os.WriteFile(cfg.OutPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutPath, err)
	}
	a.logger.Info("Wrote as-set object.", "path", cfg.OutPath)
	return nil
}
