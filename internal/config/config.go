// Package config merges defaults, the config file, FFWIZARD_* environment
// variables and command-line flags into Settings.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ffwizard/internal/dirs"
	"ffwizard/internal/model"
	"ffwizard/internal/pipeline"
)

const envPrefix = "FFWIZARD"

// Settings is the merged runtime configuration.
type Settings struct {
	Dir      string          `mapstructure:"dir"`
	FFmpeg   string          `mapstructure:"ffmpeg"`
	Verbose  bool            `mapstructure:"verbose"`
	NoUI     bool            `mapstructure:"no_ui"`
	Scan     ScanSettings    `mapstructure:"scan"`
	Defaults DefaultSettings `mapstructure:"defaults"`

	// ConfigFile is the file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

type ScanSettings struct {
	Extensions []string `mapstructure:"extensions"`
}

// DefaultSettings pre-select prompt answers. Values use the same tokens as
// the --resolution/--codec/--device/--quality flags.
type DefaultSettings struct {
	Resolution  string `mapstructure:"resolution"`
	Codec       string `mapstructure:"codec"`
	Device      string `mapstructure:"device"`
	Quality     string `mapstructure:"quality"`
	IncludeDate bool   `mapstructure:"include_date"`
	Continue    bool   `mapstructure:"continue"`
}

// RegisterFlags declares the persistent flags Load binds.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("dir", "d", ".", "Directory to scan for videos and to write outputs to")
	fs.String("ffmpeg", "", "Path to the ffmpeg binary (default: look up in PATH)")
	fs.BoolP("verbose", "v", false, "Echo full ffmpeg command lines")
	fs.Bool("no-ui", false, "Use plain line prompts instead of the interactive UI")
	fs.String("config", "", "Config file (default: <config dir>/config.yaml)")
}

var flagKeys = map[string]string{
	"dir":     "dir",
	"ffmpeg":  "ffmpeg",
	"verbose": "verbose",
	"no_ui":   "no-ui",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dir", ".")
	v.SetDefault("ffmpeg", "")
	v.SetDefault("verbose", false)
	v.SetDefault("no_ui", false)
	v.SetDefault("scan.extensions", []string{".mp4", ".mkv"})
	v.SetDefault("defaults.resolution", "1920x1080")
	v.SetDefault("defaults.codec", "H264")
	v.SetDefault("defaults.device", "CPU")
	v.SetDefault("defaults.quality", "High")
	v.SetDefault("defaults.include_date", true)
	v.SetDefault("defaults.continue", false)
}

// Load builds Settings with precedence flag > env > config file > default.
// A missing config file is not an error.
func Load(root *cobra.Command) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	fs := root.PersistentFlags()
	cfgFile := ""
	if f := fs.Lookup("config"); f != nil {
		cfgFile = f.Value.String()
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if cfgDir, err := dirs.ConfigDir(); err == nil {
		_ = dirs.Ensure(cfgDir)
		v.AddConfigPath(cfgDir)
		v.SetConfigName("config") // config.{yaml|yml|json|toml}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, flag := range flagKeys {
		if f := fs.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Settings{}, errors.Wrapf(err, "bind flag --%s", flag)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return Settings{}, errors.Wrap(err, "read config")
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, errors.Wrap(err, "decode config")
	}
	s.ConfigFile = v.ConfigFileUsed()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that every default parses.
func (s Settings) Validate() error {
	_, err := s.SessionDefaults()
	return err
}

// SessionDefaults parses the configured defaults.
func (s Settings) SessionDefaults() (pipeline.Defaults, error) {
	var d pipeline.Defaults
	var err error
	if d.Resolution, err = model.ParseResolution(s.Defaults.Resolution); err != nil {
		return d, errors.Wrap(err, "defaults.resolution")
	}
	if d.Codec, err = model.ParseCodec(s.Defaults.Codec); err != nil {
		return d, errors.Wrap(err, "defaults.codec")
	}
	if d.Device, err = model.ParseDevice(s.Defaults.Device); err != nil {
		return d, errors.Wrap(err, "defaults.device")
	}
	if d.Quality, err = model.ParseQuality(s.Defaults.Quality); err != nil {
		return d, errors.Wrap(err, "defaults.quality")
	}
	d.IncludeDate = s.Defaults.IncludeDate
	d.Continue = s.Defaults.Continue
	return d, nil
}
