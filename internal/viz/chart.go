package viz

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	failureColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	successColor = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// SaveChart renders the distribution as a bar chart. The image format follows
// the file extension (.png, .svg, .pdf, ...). Sizes are in inches.
func SaveChart(d *Distribution, path string, widthIn, heightIn float64) error {
	if len(d.Buckets) == 0 {
		return errors.New("distribution has no labels to plot")
	}
	if widthIn <= 0 || heightIn <= 0 {
		return fmt.Errorf("invalid chart size %gx%g", widthIn, heightIn)
	}

	p := plot.New()
	p.Title.Text = d.Title()
	p.X.Label.Text = "Failure Type"
	p.Y.Label.Text = "Count"
	p.Y.Min = 0

	labels := make([]string, len(d.Buckets))
	for i, b := range d.Buckets {
		labels[i] = b.Label

		// one chart per bucket so each bar gets its own color
		values := make(plotter.Values, len(d.Buckets))
		values[i] = float64(b.Count)

		bars, err := plotter.NewBarChart(values, vg.Points(40))
		if err != nil {
			return fmt.Errorf("bar %q: %w", b.Label, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		if IsFailureLabel(b.Label) {
			bars.Color = failureColor
		} else {
			bars.Color = successColor
		}
		p.Add(bars)
	}
	p.NominalX(labels...)

	if err := p.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path); err != nil {
		return err
	}
	return nil
}
