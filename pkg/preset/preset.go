// Package preset resolves the reference condition and model coefficients from
// layered sources: HCL preset files, environment variables (optionally loaded
// from a .env file) and command-line overrides.
//
// A preset file looks like:
//
//	unit    = "imperial"
//	pace    = 8.0
//	incline = 1.0
//
//	table {
//	  from = 0
//	  to   = 12
//	}
//
//	model {
//	  resting_vo2 = 3.5
//	  horizontal  = 0.2
//	  vertical    = 0.9
//	}
//
// Every field is optional. Unset fields fall through to the next layer and
// finally to the built-in defaults (metric, 5:00 pace, 1.5% incline, 1..10%).
package preset

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/ja7ad/inclinepace/pkg/equivalence"
	"github.com/ja7ad/inclinepace/pkg/types"
)

const (
	DefaultPace    = 5.0
	DefaultIncline = 1.5
)

// ErrBadPreset indicates a preset that could not be parsed, decoded or resolved.
var ErrBadPreset = errors.New("preset: invalid preset")

// Preset is one configuration layer. Nil fields are unset.
type Preset struct {
	Unit      *string  `hcl:"unit,optional"`
	Pace      *float64 `hcl:"pace,optional"`
	Incline   *float64 `hcl:"incline,optional"`
	LogLevel  *string  `hcl:"log_level,optional"`
	LogFormat *string  `hcl:"log_format,optional"`

	Table *Table `hcl:"table,block"`
	Model *Model `hcl:"model,block"`
}

// Table is the inclusive incline range of the equivalence table.
type Table struct {
	From *int `hcl:"from,optional"`
	To   *int `hcl:"to,optional"`
}

// Model overrides the ACSM coefficients.
type Model struct {
	RestingVO2 *float64 `hcl:"resting_vo2,optional"`
	Horizontal *float64 `hcl:"horizontal,optional"`
	Vertical   *float64 `hcl:"vertical,optional"`
}

// LoadFile parses and decodes a single HCL preset file.
func LoadFile(path string) (Preset, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Preset{}, fmt.Errorf("%w: failed to parse %s: %s", ErrBadPreset, path, diags.Error())
	}
	return decode(file, path)
}

// Parse decodes an HCL preset held in memory; filename is used in diagnostics.
func Parse(src []byte, filename string) (Preset, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Preset{}, fmt.Errorf("%w: failed to parse %s: %s", ErrBadPreset, filename, diags.Error())
	}
	return decode(file, filename)
}

func decode(file *hcl.File, name string) (Preset, error) {
	var p Preset
	if diags := gohcl.DecodeBody(file.Body, nil, &p); diags.HasErrors() {
		return Preset{}, fmt.Errorf("%w: failed to decode %s: %s", ErrBadPreset, name, diags.Error())
	}
	return p, nil
}

// Merge returns p with every field set in over taken from over.
func (p Preset) Merge(over Preset) Preset {
	out := p
	out.Unit = pick(p.Unit, over.Unit)
	out.Pace = pick(p.Pace, over.Pace)
	out.Incline = pick(p.Incline, over.Incline)
	out.LogLevel = pick(p.LogLevel, over.LogLevel)
	out.LogFormat = pick(p.LogFormat, over.LogFormat)

	if over.Table != nil {
		t := Table{}
		if p.Table != nil {
			t = *p.Table
		}
		t.From = pick(t.From, over.Table.From)
		t.To = pick(t.To, over.Table.To)
		out.Table = &t
	}
	if over.Model != nil {
		m := Model{}
		if p.Model != nil {
			m = *p.Model
		}
		m.RestingVO2 = pick(m.RestingVO2, over.Model.RestingVO2)
		m.Horizontal = pick(m.Horizontal, over.Model.Horizontal)
		m.Vertical = pick(m.Vertical, over.Model.Vertical)
		out.Model = &m
	}
	return out
}

// Resolve fills unset fields with defaults and returns the engine input and
// config. The input is not validated against the engine bounds.
func (p Preset) Resolve() (equivalence.Input, equivalence.Config, error) {
	in := equivalence.Input{
		Pace:    deref(p.Pace, DefaultPace),
		Incline: deref(p.Incline, DefaultIncline),
		Unit:    types.Metric,
	}
	if p.Unit != nil {
		u, err := types.ParseUnit(*p.Unit)
		if err != nil {
			return equivalence.Input{}, equivalence.Config{}, fmt.Errorf("%w: %w", ErrBadPreset, err)
		}
		in.Unit = u
	}

	var cfg equivalence.Config
	if p.Table != nil {
		cfg.FromIncline = deref(p.Table.From, 1)
		cfg.ToIncline = deref(p.Table.To, 10)
		if cfg.FromIncline < 0 || cfg.ToIncline < 1 || cfg.ToIncline < cfg.FromIncline ||
			cfg.ToIncline > int(equivalence.MaxIncline) {
			return equivalence.Input{}, equivalence.Config{},
				fmt.Errorf("%w: table range %d..%d", ErrBadPreset, cfg.FromIncline, cfg.ToIncline)
		}
	}
	if p.Model != nil {
		for _, c := range []struct {
			name string
			v    *float64
		}{
			{"resting_vo2", p.Model.RestingVO2},
			{"horizontal", p.Model.Horizontal},
			{"vertical", p.Model.Vertical},
		} {
			if c.v != nil && !(*c.v > 0) {
				return equivalence.Input{}, equivalence.Config{},
					fmt.Errorf("%w: model %s must be > 0, got %v", ErrBadPreset, c.name, *c.v)
			}
		}
		cfg.RestingVO2 = deref(p.Model.RestingVO2, 0)
		cfg.HorizontalCost = deref(p.Model.Horizontal, 0)
		cfg.VerticalCost = deref(p.Model.Vertical, 0)
	}
	return in, cfg, nil
}

func pick[T any](base, over *T) *T {
	if over != nil {
		return over
	}
	return base
}

func deref[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// Ptr returns a pointer to v, for building presets in code.
func Ptr[T any](v T) *T { return &v }
