package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stepwall/pkg/core/render"
	"github.com/matzehuels/stepwall/pkg/errors"
)

// FileConfig represents the TOML configuration file. Pointer fields tell a
// missing key apart from a zero value.
type FileConfig struct {
	Server     ServerConfig     `toml:"server"`
	Render     RenderConfig     `toml:"render"`
	Palette    PaletteConfig    `toml:"palette"`
	Typography TypographyConfig `toml:"typography"`
	Grid       GridConfig       `toml:"grid"`
	Cache      CacheConfig      `toml:"cache"`
}

// ServerConfig maps [server].
type ServerConfig struct {
	Addr            *string   `toml:"addr"`
	MaxDimension    *int      `toml:"max-dimension"`
	DefaultScale    *float64  `toml:"default-scale"`
	ReadTimeout     *Duration `toml:"read-timeout"`
	WriteTimeout    *Duration `toml:"write-timeout"`
	ShutdownTimeout *Duration `toml:"shutdown-timeout"`
}

// RenderConfig maps [render].
type RenderConfig struct {
	Goal   *int    `toml:"goal"`
	Format *string `toml:"format"`
}

// PaletteConfig maps [palette]. Colors are "#rrggbb".
type PaletteConfig struct {
	Background *string `toml:"background"`
	Met        *string `toml:"met"`
	Missed     *string `toml:"missed"`
	Future     *string `toml:"future"`
	Today      *string `toml:"today"`
	Stats      *string `toml:"stats"`
}

// TypographyConfig maps [typography].
type TypographyConfig struct {
	TodayScale     *float64 `toml:"today-scale"`
	TodayScaleWide *float64 `toml:"today-scale-wide"`
	StatsScale     *float64 `toml:"stats-scale"`
	StatsY         *float64 `toml:"stats-y"`
}

// GridConfig maps [grid].
type GridConfig struct {
	Columns      *int     `toml:"columns"`
	Rows         *int     `toml:"rows"`
	TaperRows    *int     `toml:"taper-rows"`
	MaxTaper     *int     `toml:"max-taper"`
	RadiusRatio  *float64 `toml:"radius-ratio"`
	MarginTop    *float64 `toml:"margin-top"`
	MarginBottom *float64 `toml:"margin-bottom"`
	MarginSide   *float64 `toml:"margin-side"`
}

// CacheConfig maps [cache].
type CacheConfig struct {
	Backend         *string   `toml:"backend"`
	TTL             *Duration `toml:"ttl"`
	Dir             *string   `toml:"dir"`
	Prefix          *string   `toml:"prefix"`
	RedisAddr       *string   `toml:"redis-addr"`
	RedisPassword   *string   `toml:"redis-password"`
	RedisDB         *int      `toml:"redis-db"`
	MongoURI        *string   `toml:"mongo-uri"`
	MongoDatabase   *string   `toml:"mongo-database"`
	MongoCollection *string   `toml:"mongo-collection"`
}

// Duration decodes TOML strings such as "30s" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var fc FileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return FileConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return fc, nil
}

// Load reads path on top of the defaults, applies the environment and
// validates the result.
func Load(path string) (Config, error) {
	fc, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := fc.Apply(Default())
	if err != nil {
		return Config{}, err
	}
	cfg = ApplyEnv(cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides read through getenv.
func ApplyEnv(cfg Config, getenv func(string) string) Config {
	if port := getenv("PORT"); port != "" {
		cfg.Server.Addr = WithPort(cfg.Server.Addr, port)
	}
	return cfg
}

// Apply overlays the keys present in fc onto base.
func (fc FileConfig) Apply(base Config) (Config, error) {
	cfg := base

	s := fc.Server
	set(&cfg.Server.Addr, s.Addr)
	set(&cfg.Pipeline.MaxDimension, s.MaxDimension)
	set(&cfg.Server.DefaultScale, s.DefaultScale)
	setDuration(&cfg.Server.ReadTimeout, s.ReadTimeout)
	setDuration(&cfg.Server.WriteTimeout, s.WriteTimeout)
	setDuration(&cfg.Server.ShutdownTimeout, s.ShutdownTimeout)

	set(&cfg.Goal, fc.Render.Goal)
	set(&cfg.Format, fc.Render.Format)

	p := &cfg.Pipeline.Style.Palette
	colors := []struct {
		name string
		hex  *string
		dst  *color.Color
	}{
		{"background", fc.Palette.Background, &p.Background},
		{"met", fc.Palette.Met, &p.Met},
		{"missed", fc.Palette.Missed, &p.Missed},
		{"future", fc.Palette.Future, &p.Future},
		{"today", fc.Palette.Today, &p.Today},
		{"stats", fc.Palette.Stats, &p.Stats},
	}
	for _, c := range colors {
		if c.hex == nil {
			continue
		}
		rgba, err := render.ParseColor(*c.hex)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette.%s", c.name)
		}
		*c.dst = rgba
	}

	t := &cfg.Pipeline.Style.Typography
	set(&t.TodayScale, fc.Typography.TodayScale)
	set(&t.TodayScaleWide, fc.Typography.TodayScaleWide)
	set(&t.StatsScale, fc.Typography.StatsScale)
	set(&t.StatsY, fc.Typography.StatsY)

	g := &cfg.Pipeline.Grid
	set(&g.Columns, fc.Grid.Columns)
	set(&g.Rows, fc.Grid.Rows)
	set(&g.TaperRows, fc.Grid.TaperRows)
	set(&g.MaxTaper, fc.Grid.MaxTaper)
	set(&g.RadiusRatio, fc.Grid.RadiusRatio)
	set(&g.Margins.Top, fc.Grid.MarginTop)
	set(&g.Margins.Bottom, fc.Grid.MarginBottom)
	set(&g.Margins.Side, fc.Grid.MarginSide)

	c := fc.Cache
	set(&cfg.Cache.Backend, c.Backend)
	setDuration(&cfg.Cache.TTL, c.TTL)
	set(&cfg.Cache.Dir, c.Dir)
	set(&cfg.Cache.Prefix, c.Prefix)
	set(&cfg.Cache.RedisAddr, c.RedisAddr)
	set(&cfg.Cache.RedisPassword, c.RedisPassword)
	set(&cfg.Cache.RedisDB, c.RedisDB)
	set(&cfg.Cache.MongoURI, c.MongoURI)
	set(&cfg.Cache.MongoDatabase, c.MongoDatabase)
	set(&cfg.Cache.MongoCollection, c.MongoCollection)

	return cfg, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *Duration) {
	if src != nil {
		*dst = src.Duration
	}
}
