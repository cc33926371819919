package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/jask/centraldogma/internal/catalog"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Animation AnimationConfig `mapstructure:"animation"`
	Canvas    CanvasConfig    `mapstructure:"canvas"`
	Export    ExportConfig    `mapstructure:"export"`
	Log       LogConfig       `mapstructure:"log"`
	Parts     []PartConfig    `mapstructure:"parts"`
}

// DatabaseConfig holds the parts registry location.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AnimationConfig holds timeline settings.
type AnimationConfig struct {
	StageDuration time.Duration `mapstructure:"stage_duration"`
	FrameRate     int           `mapstructure:"frame_rate"`
}

// CanvasConfig holds raster settings.
type CanvasConfig struct {
	Scale int `mapstructure:"scale"`
}

// ExportConfig holds where exported frames and animations go.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds the log file and level. The TUI owns the terminal, so logs
// always go to a file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// PartConfig is an extra catalog part declared in the config file.
type PartConfig struct {
	ID          string `mapstructure:"id"`
	ShortName   string `mapstructure:"short_name"`
	FullName    string `mapstructure:"full_name"`
	Color       string `mapstructure:"color"`
	Description string `mapstructure:"description"`
}

const envPrefix = "CENTRALDOGMA"

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

// DefaultPath is the config file used when CENTRALDOGMA_CONFIG is unset.
func DefaultPath() string {
	if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home(), ".config", "centraldogma", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(home(), ".local", "share", "centraldogma", "parts.db"))
	v.SetDefault("animation.stage_duration", catalog.DefaultStageDuration)
	v.SetDefault("animation.frame_rate", 60)
	v.SetDefault("canvas.scale", 1)
	v.SetDefault("export.dir", ".")
	v.SetDefault("log.path", filepath.Join(home(), ".local", "state", "centraldogma", "centraldogma.log"))
	v.SetDefault("log.level", "info")
}

// Load reads configuration from file and env. Env var overrides use prefix
// CENTRALDOGMA_.
func Load() (Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads configuration from path, which may be missing.
func LoadFrom(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

// Validate rejects settings the simulator cannot run with.
func Validate(c Config) error {
	var errs []error
	if c.Animation.StageDuration <= 0 {
		errs = append(errs, fmt.Errorf("animation.stage_duration must be positive, got %v", c.Animation.StageDuration))
	}
	if c.Animation.FrameRate < 1 || c.Animation.FrameRate > 240 {
		errs = append(errs, fmt.Errorf("animation.frame_rate must be within 1..240, got %d", c.Animation.FrameRate))
	}
	if c.Canvas.Scale < 1 || c.Canvas.Scale > 8 {
		errs = append(errs, fmt.Errorf("canvas.scale must be within 1..8, got %d", c.Canvas.Scale))
	}
	seen := map[string]bool{}
	for _, p := range catalog.DefaultParts() {
		seen[p.ID] = true
	}
	for i, p := range c.Parts {
		if strings.TrimSpace(p.ShortName) == "" {
			errs = append(errs, fmt.Errorf("parts[%d]: short_name is required", i))
		}
		if _, err := catalog.ParseColor(p.Color); err != nil {
			errs = append(errs, fmt.Errorf("parts[%d]: %w", i, err))
		}
		id := partID(p)
		if seen[id] {
			errs = append(errs, fmt.Errorf("parts[%d]: duplicate id %q", i, id))
		}
		seen[id] = true
	}
	return errors.Join(errs...)
}

func partID(p PartConfig) string {
	if id := strings.TrimSpace(p.ID); id != "" {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("part:"+strings.ToLower(p.ShortName))).String()
}

// CatalogParts returns the built-in parts followed by the configured extras.
func (c Config) CatalogParts() []catalog.Part {
	parts := catalog.DefaultParts()
	for _, p := range c.Parts {
		full := p.FullName
		if full == "" {
			full = p.ShortName
		}
		parts = append(parts, catalog.Part{
			ID:          partID(p),
			ShortName:   p.ShortName,
			FullName:    full,
			ColorHex:    strings.ToUpper(p.Color),
			Description: p.Description,
		})
	}
	return parts
}

// Save writes the provided config to path, creating its directory if needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("animation.stage_duration", cfg.Animation.StageDuration.String())
	v.Set("animation.frame_rate", cfg.Animation.FrameRate)
	v.Set("canvas.scale", cfg.Canvas.Scale)
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	if len(cfg.Parts) > 0 {
		parts := make([]map[string]any, 0, len(cfg.Parts))
		for _, p := range cfg.Parts {
			parts = append(parts, map[string]any{
				"id":          p.ID,
				"short_name":  p.ShortName,
				"full_name":   p.FullName,
				"color":       p.Color,
				"description": p.Description,
			})
		}
		v.Set("parts", parts)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
