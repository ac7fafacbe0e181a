package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lmousom/uid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. UIDGEN_SIZE.
const EnvPrefix = "UIDGEN"

// HardwareNode selects the host-derived node instead of a hex literal.
const HardwareNode = "hardware"

// Config is the top-level configuration for uidgen.
type Config struct {
	Count  int       `mapstructure:"count" validate:"min=1,max=1000000"`
	Size   int       `mapstructure:"size" validate:"min=16,max=32"`
	Node   string    `mapstructure:"node" validate:"omitempty,node"`
	Output string    `mapstructure:"output" validate:"oneof=hex raw"`
	Log    LogConfig `mapstructure:"log"`
}

// LogConfig selects the level and handler of the command's logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

var configValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("node", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == HardwareNode {
			return true
		}
		b, err := hex.DecodeString(s)
		return err == nil && len(b) == uid.NodeSize
	})
	return v
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Count:  1,
		Size:   uid.Size,
		Output: "hex",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"count":      "count",
	"size":       "size",
	"node":       "node",
	"output":     "output",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// Load builds a Config from defaults, the file at path (skipped when empty),
// UIDGEN_* environment variables and any flags in fs that were set
// explicitly, in increasing order of precedence.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := configValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// NodeBytes returns the node override for the generator. An empty Node
// yields nil so the generator draws a random one.
func (c Config) NodeBytes() ([]byte, error) {
	switch c.Node {
	case "":
		return nil, nil
	case HardwareNode:
		return uid.HardwareNode(), nil
	}
	b, err := hex.DecodeString(c.Node)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", c.Node, err)
	}
	return b, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("count", d.Count)
	v.SetDefault("size", d.Size)
	v.SetDefault("node", d.Node)
	v.SetDefault("output", d.Output)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
