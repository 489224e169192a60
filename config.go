package pigment

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/esimov/pigment/brush"
	"github.com/esimov/pigment/history"
	"github.com/esimov/pigment/utils"
)

const configFile = "config.toml"

// Config holds the user preferences applied to new editing sessions.
type Config struct {
	Width            int    `toml:"width"`
	Height           int    `toml:"height"`
	BrushSize        int    `toml:"brush_size"`
	EraserSize       int    `toml:"eraser_size"`
	UndoDepth        int    `toml:"undo_depth"`
	CommitDelay      int    `toml:"commit_delay_ms"`
	PrimaryColor     string `toml:"primary_color"`
	SecondaryColor   string `toml:"secondary_color"`
	TextureCacheSize int    `toml:"texture_cache_size"`
	BrushType        string `toml:"brush_type"`
}

// DefaultConfig returns the built in preferences.
func DefaultConfig() *Config {
	return &Config{
		Width:            800,
		Height:           600,
		BrushSize:        3,
		EraserSize:       3,
		UndoDepth:        history.DefaultDepth,
		CommitDelay:      int(history.DefaultDelay / time.Millisecond),
		PrimaryColor:     "#000000ff",
		SecondaryColor:   "#ffffffff",
		TextureCacheSize: brush.DefaultTextureCacheSize,
		BrushType:        brush.Round.String(),
	}
}

// Validate checks the values which can not be used as they are.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	if c.UndoDepth <= 0 {
		return fmt.Errorf("undo depth must be positive, got %d", c.UndoDepth)
	}
	if c.CommitDelay < 0 {
		return fmt.Errorf("commit delay can not be negative, got %d", c.CommitDelay)
	}
	if _, _, err := c.Colors(); err != nil {
		return err
	}
	if _, err := brush.ParseType(c.BrushType); err != nil {
		return err
	}
	return nil
}

// Colors parses the primary and secondary colors.
func (c *Config) Colors() (primary, secondary color.NRGBA, err error) {
	if primary, err = utils.ParseHexColor(c.PrimaryColor); err != nil {
		return primary, secondary, fmt.Errorf("primary color: %w", err)
	}
	if secondary, err = utils.ParseHexColor(c.SecondaryColor); err != nil {
		return primary, secondary, fmt.Errorf("secondary color: %w", err)
	}
	return primary, secondary, nil
}

// Delay returns the idle time after which a stroke is committed.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.CommitDelay) * time.Millisecond
}

// ConfigDir returns the directory holding the configuration file.
func ConfigDir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "pigment")
}

// ConfigPath returns the location of the configuration file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFile)
}

// LoadConfig reads the configuration file at path. Settings missing from the
// file keep their default value.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("couldn't read config file: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return conf, nil
}

// WriteConfig stores conf at path.
func WriteConfig(path string, conf *Config) error {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(conf); err != nil {
		return fmt.Errorf("couldn't encode config: %w", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("couldn't write config file: %w", err)
	}
	return nil
}

// InitConfig creates the default configuration file inside dir,
// unless one already exists. It returns the path of the file.
func InitConfig(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("couldn't create config directory: %w", err)
	}
	path := filepath.Join(dir, configFile)
	ok, err := exists(path)
	if err != nil {
		return "", fmt.Errorf("couldn't check if config file exists: %w", err)
	}
	if !ok {
		if err := WriteConfig(path, DefaultConfig()); err != nil {
			return "", err
		}
	}
	return path, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg string, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			return dir
		}
	}
	return fallback
}
