package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"listmenu/internal/eventbus"
	"listmenu/internal/grid"
	"listmenu/internal/keymap"
)

const (
	FrontendCell = "cell"
	FrontendTea  = "tea"
)

// ErrUnknownFrontend is returned for a frontend other than "cell" or "tea"
var ErrUnknownFrontend = errors.New("unknown frontend")

// Config represents the application configuration
type Config struct {
	Version  int                 `toml:"version"`
	Wrap     bool                `toml:"wrap"`
	Frontend string              `toml:"frontend"`
	Header   string              `toml:"header"`
	Palette  PaletteSettings     `toml:"palette"`
	Keys     map[string][]string `toml:"keys"`
	Log      LogSettings         `toml:"log"`
}

// ColorPair is a foreground and background color by name or palette index
type ColorPair struct {
	Fg string `toml:"fg"`
	Bg string `toml:"bg"`
}

// PaletteSettings holds the colors of each row kind. Default is painted
// where another palette leaves a color empty.
type PaletteSettings struct {
	Normal  ColorPair `toml:"normal"`
	Active  ColorPair `toml:"active"`
	Header  ColorPair `toml:"header"`
	Default ColorPair `toml:"default"`
}

// LogSettings configures the diagnostics log
type LogSettings struct {
	File   string `toml:"file"`
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	// Path returns the file Load and Save use
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the user config file
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service whose Load and Save use path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{bus: eventbus.NullBus{}, filePath: path}
}

// NewConfigServiceWithBus creates a config service at path with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := NewConfigServiceAt(path).(*configService)
	if bus != nil {
		cs.bus = bus
	}
	return cs
}

// DefaultPath returns listmenu/config.toml under the user config directory
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "listmenu", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the config file, or returns the default config when the file
// does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Default: true})
		return DefaultConfig(), nil
	}
	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Keys == nil {
		cfg.Keys = make(map[string][]string)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Wrap:     true,
		Frontend: FrontendCell,
		Palette: PaletteSettings{
			Normal:  ColorPair{Fg: "default", Bg: "default"},
			Active:  ColorPair{Fg: "black", Bg: "cyan"},
			Header:  ColorPair{Fg: "black", Bg: "red"},
			Default: ColorPair{Fg: "white", Bg: "black"},
		},
		Keys: keymap.DefaultBindings().Names(),
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the frontend, colors and key names
func (c *Config) Validate() error {
	if c.Frontend != FrontendCell && c.Frontend != FrontendTea {
		return fmt.Errorf("%w: %q", ErrUnknownFrontend, c.Frontend)
	}
	if _, err := c.Palettes(); err != nil {
		return err
	}
	if _, _, err := c.DefaultColors(); err != nil {
		return err
	}
	if _, err := c.HeaderPalette(); err != nil {
		return err
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	return nil
}

// Palettes returns the normal and active row palettes
func (c *Config) Palettes() (grid.Palettes, error) {
	normal, err := c.Palette.Normal.palette("normal")
	if err != nil {
		return grid.Palettes{}, err
	}
	active, err := c.Palette.Active.palette("active")
	if err != nil {
		return grid.Palettes{}, err
	}
	return grid.Palettes{Normal: normal, Active: active}, nil
}

// HeaderPalette returns the palette of the header row
func (c *Config) HeaderPalette() (grid.Palette, error) {
	return c.Palette.Header.palette("header")
}

// DefaultColors returns the colors painted where a palette leaves them unset
func (c *Config) DefaultColors() (fg, bg grid.Color, err error) {
	p, err := c.Palette.Default.palette("default")
	return p.Fg, p.Bg, err
}

// Bindings returns the key bindings, starting from the defaults
func (c *Config) Bindings() (keymap.Bindings, error) {
	return keymap.FromNames(c.Keys)
}

func (cp ColorPair) palette(name string) (grid.Palette, error) {
	fg, err := grid.ParseColor(cp.Fg)
	if err != nil {
		return grid.Palette{}, fmt.Errorf("palette.%s.fg: %w", name, err)
	}
	bg, err := grid.ParseColor(cp.Bg)
	if err != nil {
		return grid.Palette{}, fmt.Errorf("palette.%s.bg: %w", name, err)
	}
	return grid.Palette{Fg: fg, Bg: bg}, nil
}
