package preset

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvUnit      = "INCLINEPACE_UNIT"
	EnvPace      = "INCLINEPACE_PACE"
	EnvIncline   = "INCLINEPACE_INCLINE"
	EnvTableFrom = "INCLINEPACE_TABLE_FROM"
	EnvTableTo   = "INCLINEPACE_TABLE_TO"
	EnvLogLevel  = "INCLINEPACE_LOG_LEVEL"
	EnvLogFormat = "INCLINEPACE_LOG_FORMAT"
	EnvPreset    = "INCLINEPACE_PRESET"
)

// LoadDotEnv loads path (default ".env") into the process environment without
// overriding variables that are already set.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ReadEnvFile builds a preset from a .env file without touching the process
// environment.
func ReadEnvFile(path string) (Preset, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read env file %s: %w", path, err)
	}
	return FromEnv(func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	})
}

// Environ builds a preset from the process environment.
func Environ() (Preset, error) { return FromEnv(os.LookupEnv) }

// FromEnv builds a preset from the INCLINEPACE_* variables returned by lookup.
// Empty values are treated as unset.
func FromEnv(lookup func(string) (string, bool)) (Preset, error) {
	var p Preset

	get := func(k string) (string, bool) {
		v, ok := lookup(k)
		return v, ok && v != ""
	}

	if v, ok := get(EnvUnit); ok {
		p.Unit = Ptr(v)
	}
	if v, ok := get(EnvLogLevel); ok {
		p.LogLevel = Ptr(v)
	}
	if v, ok := get(EnvLogFormat); ok {
		p.LogFormat = Ptr(v)
	}

	for _, f := range []struct {
		key string
		dst **float64
	}{
		{EnvPace, &p.Pace},
		{EnvIncline, &p.Incline},
	} {
		v, ok := get(f.key)
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Preset{}, fmt.Errorf("%w: %s=%q: %w", ErrBadPreset, f.key, v, err)
		}
		*f.dst = &x
	}

	var t Table
	for _, f := range []struct {
		key string
		dst **int
	}{
		{EnvTableFrom, &t.From},
		{EnvTableTo, &t.To},
	} {
		v, ok := get(f.key)
		if !ok {
			continue
		}
		x, err := strconv.Atoi(v)
		if err != nil {
			return Preset{}, fmt.Errorf("%w: %s=%q: %w", ErrBadPreset, f.key, v, err)
		}
		*f.dst = &x
	}
	if t.From != nil || t.To != nil {
		p.Table = &t
	}

	return p, nil
}
