package viz

import (
	"bytes"
	"sync"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/norasector/pulsedec/pkg/ook/pulse"
)

const histBins = 40

// PulsePlotter renders a histogram of the pulse widths seen in the
// most recent trains.  Bimodal humps show up immediately, which makes
// it a quick check on whether configured limits sit between them.
type PulsePlotter struct {
	name   string
	size   int
	widths []float64
	mu     sync.Mutex
}

// NewPulsePlotter keeps the last size pulse widths.
func NewPulsePlotter(name string, size int) *PulsePlotter {
	return &PulsePlotter{
		name: name,
		size: size,
	}
}

func (p *PulsePlotter) Name() string {
	return p.name
}

// Observe records every pulse width in the train.
func (p *PulsePlotter) Observe(train *pulse.Train) {
	p.mu.Lock()
	for n := 0; n < train.Len(); n++ {
		p.widths = append(p.widths, float64(train.Pulse(n)))
	}
	if len(p.widths) > p.size {
		p.widths = p.widths[len(p.widths)-p.size:]
	}
	p.mu.Unlock()
}

func (p *PulsePlotter) GetImage() *ImageContainer {
	p.mu.Lock()
	widths := make(plotter.Values, len(p.widths))
	copy(widths, p.widths)
	p.mu.Unlock()

	if len(widths) == 0 {
		return nil
	}

	plt := plotWithDefaults()
	plt.Title.Text = p.name
	plt.X.Label.Text = "pulse width (samples)"
	plt.Y.Label.Text = "count"

	hist, err := plotter.NewHist(widths, histBins)
	if err != nil {
		return nil
	}
	plt.Add(hist)

	var imageData bytes.Buffer
	w, err := plt.WriterTo(8*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return nil
	}
	w.WriteTo(&imageData)
	return &ImageContainer{name: p.name, data: imageData.Bytes()}
}
