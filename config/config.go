package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "MATCHSTRIKE"

// Settings are the process level options. Gameplay tuning lives in the
// prefabs.
type Settings struct {
	LogLevel  string        `mapstructure:"log_level"`
	Debug     bool          `mapstructure:"debug"`
	PrefabDir string        `mapstructure:"prefab_dir"`
	Scene     string        `mapstructure:"scene"`
	HotReload bool          `mapstructure:"hot_reload"`
	Window    WindowConfig  `mapstructure:"window"`
	Journal   JournalConfig `mapstructure:"journal"`
}

type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)
	v.SetDefault("prefab_dir", "prefabs")
	v.SetDefault("scene", "scene.yaml")
	v.SetDefault("hot_reload", true)

	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 540)

	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", "matchstrike.db")
}

// Flags returns the command line flags understood by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a settings file (yaml, json or toml)")
	fs.String("log_level", "info", "trace, debug, info, warn or error")
	fs.Bool("debug", false, "draw gizmos and enable debug logging")
	fs.String("prefab_dir", "prefabs", "directory with prefab overrides")
	fs.String("scene", "scene.yaml", "scene prefab to load")
	fs.Bool("hot_reload", true, "rebuild the scene when prefabs change")
	fs.Bool("journal.enabled", false, "record ignition transitions")
	fs.String("journal.path", "matchstrike.db", "sqlite file for the journal")
	return fs
}

// Load merges defaults, the optional settings file, MATCHSTRIKE_* env vars
// and any flags explicitly set on fs, in increasing priority.
func Load(path string, fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Settings{}, fmt.Errorf("config: bind flags: %w", err)
		}
		if path == "" {
			if f := fs.Lookup("config"); f != nil {
				path = f.Value.String()
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

var ErrInvalidWindow = errors.New("config: window size must be positive")

func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, s.Window.Width, s.Window.Height)
	}
	if s.Scene == "" {
		return errors.New("config: scene is required")
	}
	return nil
}
