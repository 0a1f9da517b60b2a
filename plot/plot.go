// PNG rendering of the node-occupancy series.
//
// The plot is a post-step line of node count against time.  In colored mode
// the area under the curve is shaded per pipeline code, one translucent
// polygon per contiguous span where the code was active; in plain mode the
// whole area is filled in one color.

package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lsst-dm/ldf-ops-tools/usage"
)

// Rendering configuration, passed in explicitly rather than shared as module
// state.  Codes not in the table fall back to FallbackColor.

type Style struct {
	Colors        map[string]color.Color
	FallbackColor color.Color
	FillAlpha     uint8
}

func DefaultStyle() *Style {
	return &Style{
		Colors: map[string]color.Color{
			"singleFrame":   color.RGBA{R: 0x00, G: 0xbf, B: 0xbf, A: 0xff}, // cyan
			"mosaic":        color.RGBA{R: 0xdf, G: 0xdf, B: 0x00, A: 0xff}, // yellow
			"coadd":         color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}, // green
			"multiband":     color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, // blue
			"forc":          color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff}, // purple
			"quick":         color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, // orange
			"skyCorrection": color.RGBA{R: 0xbf, G: 0x00, B: 0xbf, A: 0xff}, // magenta
			"unknown":       color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // red
		},
		FallbackColor: color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		FillAlpha:     0x60,
	}
}

func (st *Style) colorFor(code string) color.Color {
	if c, found := st.Colors[code]; found {
		return c
	}
	return st.FallbackColor
}

func (st *Style) fillFor(code string) color.Color {
	r, g, b, _ := st.colorFor(code).RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: st.FillAlpha}
}

// Render the series to filename (a .png path).  With spans non-nil the plot
// is shaded per code; otherwise it is a plain filled curve.

func Render(filename, title string, s *usage.Series, spans map[string][]usage.Span, st *Style) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time [h]"
	p.Y.Label.Text = "N_node"
	p.X.Min = 0
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(stepXYs(s, 0, len(s.Times)-1))
	if err != nil {
		return err
	}
	if spans != nil {
		line.Color = color.Gray{Y: 0x40}
	} else {
		line.Color = color.RGBA{B: 0xff, A: 0xff}
	}
	p.Add(line)

	if spans == nil {
		poly, err := plotter.NewPolygon(fillXYs(s, 0, len(s.Times)-1))
		if err != nil {
			return err
		}
		poly.Color = color.NRGBA{B: 0xff, A: 0x40}
		poly.LineStyle.Width = 0
		p.Add(poly)
	} else {
		// One legend entry per code even when a code has several spans.
		legended := make(map[string]bool)
		for code, runs := range spans {
			for _, run := range runs {
				poly, err := plotter.NewPolygon(fillXYs(s, run.First, run.Last))
				if err != nil {
					return err
				}
				poly.Color = st.fillFor(code)
				poly.LineStyle.Width = 0
				p.Add(poly)
				if !legended[code] {
					legended[code] = true
					p.Legend.Add(code, poly)
				}
			}
		}
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, filename); err != nil {
		return fmt.Errorf("Failed to write plot %s\n%w", filename, err)
	}
	return nil
}

// Post-step coordinates of the curve over buckets [first, last]: each bucket
// holds its value until the next bucket's midpoint.

func stepXYs(s *usage.Series, first, last int) plotter.XYs {
	var xys plotter.XYs
	for k := first; k <= last; k++ {
		xys = append(xys, plotter.XY{X: s.Times[k], Y: float64(s.Nodes[k])})
		if k < last {
			xys = append(xys, plotter.XY{X: s.Times[k+1], Y: float64(s.Nodes[k])})
		}
	}
	return xys
}

// The fill polygon is the step curve closed down to y = 0.  The fill extends
// one bucket past the span's last index when there is one, so adjacent spans
// meet without a gap.

func fillXYs(s *usage.Series, first, last int) plotter.XYs {
	if last < len(s.Times)-1 {
		last++
	}
	xys := stepXYs(s, first, last)
	xys = append(xys,
		plotter.XY{X: s.Times[last], Y: 0},
		plotter.XY{X: s.Times[first], Y: 0},
	)
	return xys
}
