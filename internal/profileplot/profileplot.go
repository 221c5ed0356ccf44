// Package profileplot renders before and after surface profiles.
package profileplot

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/twpayne/go-surfacelength"
)

var errEmptyProfile = errors.New("empty profile")

var (
	beforeColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	afterColor  = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

type options struct {
	title  string
	width  vg.Length
	height vg.Length
}

// An Option sets an option on a plot.
type Option func(*options)

func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

func WithSize(width, height vg.Length) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// New returns a plot of the before and after profiles.
func New(before, after []surfacelength.ProfilePoint, opts ...Option) (*plot.Plot, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Height"
	p.Add(plotter.NewGrid())

	for _, series := range []struct {
		name    string
		profile []surfacelength.ProfilePoint
		color   color.Color
	}{
		{name: "before", profile: before, color: beforeColor},
		{name: "after", profile: after, color: afterColor},
	} {
		xys := profileXYs(series.profile)
		if len(xys) == 0 {
			return nil, errEmptyProfile
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.Color = series.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(series.name, line)
	}
	return p, nil
}

// Save writes a plot of the before and after profiles to filename. The image
// format is taken from filename's extension.
func Save(filename string, before, after []surfacelength.ProfilePoint, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p, err := New(before, after, opts...)
	if err != nil {
		return err
	}
	return p.Save(o.width, o.height, filename)
}

func defaultOptions() options {
	return options{
		title:  "Surface profile",
		width:  8 * vg.Inch,
		height: 4 * vg.Inch,
	}
}

// profileXYs returns the points of profile, skipping missing samples.
func profileXYs(profile []surfacelength.ProfilePoint) plotter.XYs {
	xys := make(plotter.XYs, 0, len(profile))
	for _, point := range profile {
		if math.IsNaN(point.Height) {
			continue
		}
		xys = append(xys, plotter.XY{X: point.Distance, Y: point.Height})
	}
	return xys
}
