package tracer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/achilleasa/radiant/spectrum"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Probe statistics.
type Stats struct {
	// Completed estimator passes.
	Passes int

	// Primary and bounce rays cast by the estimator. Shadow rays are not
	// included.
	RayCasts uint64

	// The averaged estimate.
	Radiance spectrum.Spectrum

	// Mean luminance of individual passes and its standard error.
	MeanLuminance   float64
	LuminanceStdErr float64

	// Total time spent tracing.
	Elapsed time.Duration
}

func (s *Stats) fill(passes int, rayCasts uint64, elapsed time.Duration, acc *welford) {
	s.Passes = passes
	s.RayCasts = rayCasts
	s.Elapsed = elapsed
	s.MeanLuminance = acc.mean
	s.LuminanceStdErr = acc.stdErr()
}

// Get the number of rays cast per second.
func (s Stats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.RayCasts) / s.Elapsed.Seconds()
}

// Render stats as a table.
func (s Stats) Table() string {
	p := message.NewPrinter(language.English)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Radiance (RGB)", s.Radiance.String()})
	table.Append([]string{"Luminance", fmt.Sprintf("%.6f ± %.6f", s.MeanLuminance, s.LuminanceStdErr)})
	table.Append([]string{"Passes", p.Sprintf("%d", s.Passes)})
	table.Append([]string{"Ray casts", p.Sprintf("%d", s.RayCasts)})
	table.Append([]string{"Rays/sec", p.Sprintf("%.0f", s.RaysPerSecond())})
	table.SetFooter([]string{"Elapsed", s.Elapsed.String()})

	table.Render()
	return buf.String()
}
