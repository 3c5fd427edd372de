package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ja7ad/inclinepace/pkg/activity"
	"github.com/ja7ad/inclinepace/pkg/equivalence"
	"github.com/ja7ad/inclinepace/pkg/preset"
	"github.com/ja7ad/inclinepace/pkg/types"
	"github.com/ja7ad/inclinepace/pkg/util"
)

type opts struct {
	// reference
	pace     float64
	incline  float64
	unit     string
	imperial bool
	fitPath  string

	// table
	inclines string
	from     int
	to       int

	// model
	restingVO2 float64
	horizontal float64
	vertical   float64

	// config sources
	presetPath string
	envFile    string

	// outputs
	pretty    bool
	csvPath   string
	jsonPath  string
	htmlPath  string
	logLevel  string
	logFormat string
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var o opts

	root := &cobra.Command{
		Use:   "inclinepace",
		Short: "Treadmill pace equivalence calculator for inclines",
		Long: `The inclinepace tool computes the treadmill speed and pace that match the
physiological effort (ACSM VO2 cost) of a reference pace and incline, and prints
the equivalent speeds for a range of inclines (1-10% by default).

Reference inputs may come from flags, INCLINEPACE_* environment variables
(optionally loaded from a .env file), an HCL preset file, or the average speed
of a recorded FIT activity.

* GitHub: https://github.com/ja7ad/inclinepace

Examples:
  inclinepace --pace 5 --incline 1.5
  inclinepace --imperial -p 8 -g 0 --inclines 0,2..6,10
  inclinepace --preset hill.hcl --csv out/table.csv --html out/table.html
  inclinepace --fit run.fit --incline 1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(o, cmd.Flags(), stdout, stderr)
		},
	}

	f := root.Flags()
	f.Float64VarP(&o.pace, "pace", "p", preset.DefaultPace, "reference pace in minutes per unit distance (decimal, e.g. 4.5 = 4:30)")
	f.Float64VarP(&o.incline, "incline", "g", preset.DefaultIncline, "reference incline in percent")
	f.StringVarP(&o.unit, "unit", "u", "metric", "display unit: metric (km) or imperial (mi)")
	f.BoolVar(&o.imperial, "imperial", false, "shorthand for --unit imperial")
	f.StringVar(&o.fitPath, "fit", "", "take the reference pace from a FIT activity's average speed")

	f.StringVar(&o.inclines, "inclines", "", "explicit table inclines, e.g. 1..10 or 0,2..4,8 (overrides --from/--to)")
	f.IntVar(&o.from, "from", 1, "first table incline in percent")
	f.IntVar(&o.to, "to", 10, "last table incline in percent")

	f.Float64Var(&o.restingVO2, "resting-vo2", 3.5, "resting VO2 term (mL/kg/min)")
	f.Float64Var(&o.horizontal, "horizontal", 0.2, "horizontal cost coefficient")
	f.Float64Var(&o.vertical, "vertical", 0.9, "vertical cost coefficient")

	f.StringVar(&o.presetPath, "preset", "", "HCL preset file (default $"+preset.EnvPreset+")")
	f.StringVar(&o.envFile, "env-file", "", "load INCLINEPACE_* variables from this file (default .env if present)")

	f.BoolVar(&o.pretty, "pretty", true, "format output as a table instead of CSV-like lines")
	f.StringVar(&o.csvPath, "csv", "", "write the table to a CSV file")
	f.StringVar(&o.jsonPath, "json", "", "write the reference and table to a JSON file")
	f.StringVar(&o.htmlPath, "html", "", "write the reference and table to an HTML file")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.StringVar(&o.logFormat, "log-format", "text", "log format: text or json")

	return root
}

func run(o opts, flags *pflag.FlagSet, stdout, stderr io.Writer) error {
	var envMissing bool
	if err := preset.LoadDotEnv(o.envFile); err != nil {
		if o.envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		envMissing = true
	}

	p, err := layered(o, flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(deref(p.LogLevel), deref(p.LogFormat), stderr)
	if err != nil {
		return err
	}
	if envMissing {
		logger.Debug("No .env file found, using system environment variables")
	}

	in, cfg, err := p.Resolve()
	if err != nil {
		return err
	}

	if o.fitPath != "" {
		if flags.Changed("pace") {
			return fmt.Errorf("--fit and --pace are mutually exclusive")
		}
		sum, err := activity.ReadFile(o.fitPath)
		if err != nil {
			return fmt.Errorf("fit: %w", err)
		}
		in.Pace = sum.Pace(in.Unit)
		logger.Info("reference pace from activity", "path", o.fitPath,
			"speed_kmh", sum.SpeedKmh, "distance_km", sum.DistanceKm, "pace", types.Pace(in.Pace).Humanized())
	}

	if err := in.Validate(); err != nil {
		return fmt.Errorf("reference: %w", err)
	}

	calc := equivalence.New(&cfg)
	logger.Debug("model", "config", calc.Config(), "input", in)

	ref := calc.Reference(in)
	var rows []equivalence.Row
	if o.inclines != "" {
		list, err := util.ParseInclines(o.inclines, int(equivalence.MaxIncline))
		if err != nil {
			return err
		}
		rows = calc.TableFor(ref.VO2, in.Unit, list)
	} else {
		rows = calc.Table(ref.VO2, in.Unit)
	}
	logger.Debug("computed", "vo2", ref.VO2, "rows", len(rows))

	res := equivalence.Result{Reference: ref, Rows: rows}

	if o.pretty {
		tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		printReference(stdout, ref)
		printTable(tw, ref.Unit, rows)
	} else {
		printCsvLike(stdout, ref, rows)
	}

	if err := writeReports(o, res); err != nil {
		logger.Error("write report", "err", err)
		return err
	}
	return nil
}

// layered merges preset file < environment < explicitly set flags.
func layered(o opts, flags *pflag.FlagSet) (preset.Preset, error) {
	env, err := preset.Environ()
	if err != nil {
		return preset.Preset{}, err
	}

	path := o.presetPath
	if path == "" {
		path, _ = os.LookupEnv(preset.EnvPreset)
	}

	var base preset.Preset
	if path != "" {
		base, err = preset.LoadFile(path)
		if err != nil {
			return preset.Preset{}, err
		}
	}

	return base.Merge(env).Merge(fromFlags(o, flags)), nil
}

// fromFlags returns a preset holding only the flags set on the command line.
func fromFlags(o opts, flags *pflag.FlagSet) preset.Preset {
	var p preset.Preset
	set := flags.Changed

	if set("unit") {
		p.Unit = preset.Ptr(o.unit)
	}
	if set("imperial") && o.imperial {
		p.Unit = preset.Ptr(types.Imperial.String())
	}
	if set("pace") {
		p.Pace = preset.Ptr(o.pace)
	}
	if set("incline") {
		p.Incline = preset.Ptr(o.incline)
	}
	if set("log-level") {
		p.LogLevel = preset.Ptr(o.logLevel)
	}
	if set("log-format") {
		p.LogFormat = preset.Ptr(o.logFormat)
	}

	if set("from") || set("to") {
		p.Table = &preset.Table{}
		if set("from") {
			p.Table.From = preset.Ptr(o.from)
		}
		if set("to") {
			p.Table.To = preset.Ptr(o.to)
		}
	}

	if set("resting-vo2") || set("horizontal") || set("vertical") {
		p.Model = &preset.Model{}
		if set("resting-vo2") {
			p.Model.RestingVO2 = preset.Ptr(o.restingVO2)
		}
		if set("horizontal") {
			p.Model.Horizontal = preset.Ptr(o.horizontal)
		}
		if set("vertical") {
			p.Model.Vertical = preset.Ptr(o.vertical)
		}
	}
	return p
}

func printReference(w io.Writer, ref equivalence.Reference) {
	fmt.Fprintf(w, _console,
		ref.Pace, ref.Unit.PaceLabel(), ref.Incline,
		ref.Unit.SpeedLabel(), ref.Speed,
		ref.Unit.PaceLabel(), ref.Pace,
		ref.VO2,
		ref.Unit.SpeedLabel(),
	)
}

func printTable(tw *tabwriter.Writer, unit types.Unit, rows []equivalence.Row) {
	fmt.Fprintf(tw, "INCLINE (%%)\tSPEED (%s)\tPACE (%s)\n", unit.SpeedLabel(), unit.PaceLabel())
	fmt.Fprintln(tw, "-----------\t----------\t----------")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Incline, util.FmtFloat(r.Speed), r.Pace)
	}
	tw.Flush()
}

func printCsvLike(w io.Writer, ref equivalence.Reference, rows []equivalence.Row) {
	fmt.Fprintf(w, "# reference: %s %s @ %.1f%%, %.2f %s, VO2 %.2f\n",
		ref.Pace, ref.Unit.PaceLabel(), ref.Incline, ref.Speed, ref.Unit.SpeedLabel(), ref.VO2)
	fmt.Fprintf(w, "# incline_percent, speed_%s, pace_%s\n", ref.Unit.SpeedLabel(), ref.Unit.Distance())
	for _, r := range rows {
		fmt.Fprintf(w, "%d, %s, %s\n", r.Incline, util.FmtFloat(r.Speed), r.Pace)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const _console = `Treadmill Pace Equivalence for Inclines

Reference: %s %s at %.1f%% incline

       Treadmill Speed (%s): %.2f
       Pace Format (%s): %s
       VO2 cost: %.2f mL/kg/min

Equivalent speeds at other inclines (%s):

`
