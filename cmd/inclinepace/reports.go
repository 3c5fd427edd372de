package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ja7ad/inclinepace/pkg/equivalence"
	"github.com/ja7ad/inclinepace/pkg/util"
)

type reportRef struct {
	Unit       string  `json:"unit"`
	Pace       string  `json:"pace"`
	Incline    float64 `json:"incline_percent"`
	Speed      float64 `json:"speed"`
	SpeedLabel string  `json:"speed_unit"`
	SpeedKmh   float64 `json:"speed_kmh"`
	VO2        float64 `json:"vo2_ml_kg_min"`
}

type report struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Reference   reportRef         `json:"reference"`
	Rows        []equivalence.Row `json:"rows"`
}

func newReport(res equivalence.Result, at time.Time) report {
	ref := res.Reference
	return report{
		GeneratedAt: at,
		Reference: reportRef{
			Unit:       ref.Unit.String(),
			Pace:       ref.Pace,
			Incline:    ref.Incline,
			Speed:      ref.Speed,
			SpeedLabel: ref.Unit.SpeedLabel(),
			SpeedKmh:   ref.SpeedKmh,
			VO2:        ref.VO2,
		},
		Rows: res.Rows,
	}
}

func writeReports(o opts, res equivalence.Result) error {
	rep := newReport(res, time.Now())

	if o.csvPath != "" {
		if err := writeFile(o.csvPath, func(w io.Writer) error { return writeCSV(w, rep) }); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
	}
	if o.jsonPath != "" {
		if err := writeFile(o.jsonPath, func(w io.Writer) error { return writeJSON(w, rep) }); err != nil {
			return fmt.Errorf("json: %w", err)
		}
	}
	if o.htmlPath != "" {
		if err := writeFile(o.htmlPath, func(w io.Writer) error { return writeHTML(w, rep) }); err != nil {
			return fmt.Errorf("html: %w", err)
		}
	}
	return nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(w io.Writer, rep report) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"incline_percent", "speed_" + rep.Reference.SpeedLabel, "pace"})
	for _, r := range rep.Rows {
		_ = cw.Write([]string{strconv.Itoa(r.Incline), util.FmtFloat(r.Speed), r.Pace})
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, rep report) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

func writeHTML(w io.Writer, rep report) error {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, rep); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Treadmill Pace Equivalence</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
</style>

<h1>Treadmill Pace Equivalence</h1>

<p class="small">
Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}} &nbsp;|&nbsp;
Unit: {{.Reference.Unit}}
</p>

<h2>Reference</h2>
<ul>
<li>Pace: {{.Reference.Pace}} per {{if eq .Reference.Unit "imperial"}}mi{{else}}km{{end}}</li>
<li>Incline: {{printf "%.1f" .Reference.Incline}} %</li>
<li>Treadmill speed: {{printf "%.2f" .Reference.Speed}} {{.Reference.SpeedLabel}}</li>
<li>VO2 cost: {{printf "%.2f" .Reference.VO2}} mL/kg/min</li>
</ul>

<h2>Equivalent speeds</h2>
<table>
<thead>
<tr><th>incline (%)</th><th>speed ({{.Reference.SpeedLabel}})</th><th>pace</th></tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td>{{.Incline}}</td>
<td>{{printf "%.2f" .Speed}}</td>
<td>{{.Pace}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))
