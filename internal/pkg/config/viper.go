package config

import (
	"bytes"
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Option tunes how a Viper config is loaded.
type Option func(*viper.Viper) error

// WithDefaults seeds v with an in-memory document before the primary source
// is read, so keys absent from the file keep their default.
func WithDefaults(configType string, data []byte) Option {
	return func(v *viper.Viper) error {
		if len(data) == 0 {
			return nil
		}

		d := viper.New()
		d.SetConfigType(configType)
		if err := d.ReadConfig(bytes.NewReader(data)); err != nil {
			return err
		}

		for _, key := range d.AllKeys() {
			v.SetDefault(key, d.Get(key))
		}

		return nil
	}
}

// WithEnv lets PREFIX_SECTION_KEY environment variables override section.key.
func WithEnv(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		return nil
	}
}

// WithEnvBinding maps key to explicit environment variable names that do not
// follow the prefix convention (for example RATE_LIMIT_TABLE).
func WithEnvBinding(key string, envs ...string) Option {
	return func(v *viper.Viper) error {
		return v.BindEnv(append([]string{key}, envs...)...)
	}
}

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper loads configuration from the given file path and watches it for
// changes. The config type is inferred from the extension.
func NewViper(pathFile string, opts ...Option) (*Viper, error) {
	v := viper.New()
	if err := apply(v, opts); err != nil {
		return nil, err
	}

	filename := path.Base(pathFile)
	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(strings.TrimSuffix(filename, path.Ext(filename)))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "error", err)
			return
		}
		slog.Info("config reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory. Lambda functions ship
// their defaults embedded in the binary and take overrides from the
// environment only.
func NewViperFromBytes(configType string, data []byte, opts ...Option) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	if err := apply(v, opts); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func apply(v *viper.Viper, opts []Option) error {
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return err
		}
	}
	return nil
}

func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

func (vc *Viper) GetInt64(key string) int64 {
	return vc.v.GetInt64(key)
}

func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

func (vc *Viper) GetMinute(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Minute
}

func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

func (vc *Viper) GetArray(key string) []string {
	var raw []string
	if s, ok := vc.v.Get(key).(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = vc.v.GetStringSlice(key)
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}

func (vc *Viper) GetMap(key string) map[string]string {
	m := make(map[string]string)
	for _, pair := range strings.Split(vc.v.GetString(key), ",") {
		k, val, ok := strings.Cut(pair, ":")
		if ok {
			m[strings.TrimSpace(k)] = strings.TrimSpace(val)
		}
	}

	return m
}

// Close implements io.Closer. Viper holds nothing to release.
func (*Viper) Close() error {
	return nil
}
