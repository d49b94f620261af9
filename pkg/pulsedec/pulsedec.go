// Package pulsedec runs a set of protocol decoders over incoming
// pulse trains.  Each train is fanned out to every configured decoder
// in parallel; decoders share the read-only train but each owns its
// bit accumulation, so no further synchronization is needed.
package pulsedec

import (
	"context"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/influxdata/influxdb-client-go/api"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/norasector/pulsedec/pkg/ook/demod"
	"github.com/norasector/pulsedec/pkg/ook/pulse"
	"github.com/norasector/pulsedec/pkg/pulsedec/config"
	"github.com/norasector/pulsedec/pkg/util"
	"github.com/norasector/pulsedec/pkg/viz"
)

type Options struct {
	Protocols []config.Protocol
	Verbose   bool

	// FrameHandler receives every decoded frame.  nil runs the
	// decoders in diagnostic-only mode.
	FrameHandler FrameHandler
}

type Pipeline struct {
	opts      Options
	writeAPI  api.WriteAPI
	vizServer *viz.Server
	pulsePlot *viz.PulsePlotter
	logger    zerolog.Logger

	trainChan chan *pulse.Train
	done      chan struct{}
	decoders  []demod.Demodulator

	mu          sync.RWMutex
	eventCounts map[string]int

	ctx    context.Context
	cancel context.CancelFunc
}

type Option func(p *Pipeline) error

func WithInfluxDB(writeAPI api.WriteAPI) Option {
	return func(p *Pipeline) error {
		p.writeAPI = writeAPI
		return nil
	}
}

func WithVizServer(server *viz.Server) Option {
	return func(p *Pipeline) error {
		p.vizServer = server
		return nil
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) error {
		p.logger = logger
		return nil
	}
}

func New(options Options, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		opts:        options,
		writeAPI:    &util.NoopWriteAPI{}, // overwritten with option
		trainChan:   make(chan *pulse.Train, 1),
		done:        make(chan struct{}),
		eventCounts: make(map[string]int),
		logger:      log.Logger,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	for _, proto := range options.Protocols {
		dec, err := buildDemodulator(proto, options.FrameHandler, p.logger, options.Verbose)
		if err != nil {
			return nil, err
		}
		p.decoders = append(p.decoders, dec)
	}

	if p.vizServer != nil {
		p.pulsePlot = viz.NewPulsePlotter("pulse-widths", 4096)
		p.vizServer.Register(p.pulsePlot)
	}

	return p, nil
}

// Receive is the train input channel.
func (p *Pipeline) Receive() chan<- *pulse.Train {
	return p.trainChan
}

// Close marks the end of input.  Trains already queued are still
// processed; Done is closed once the last one finishes.
func (p *Pipeline) Close() {
	close(p.trainChan)
}

// Done is closed when train processing has finished, either because
// the input was closed and drained or the context was canceled.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

// EventCounts returns the total events decoded so far per protocol.
func (p *Pipeline) EventCounts() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	counts := make(map[string]int, len(p.eventCounts))
	for name, c := range p.eventCounts {
		counts[name] = c
	}
	return counts
}

func (p *Pipeline) Stop() error {
	p.cancel()
	if p.vizServer != nil {
		p.vizServer.Stop(context.TODO())
	}
	return nil
}

func (p *Pipeline) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	p.ctx, p.cancel = context.WithCancel(ctx)

	if p.vizServer != nil {
		eg.Go(func() error {
			return p.vizServer.Run(p.ctx)
		})
	}

	eg.Go(p.processTrains)

	p.logger.Info().
		Int("protocols", len(p.decoders)).
		Msg("starting pipeline")

	return eg.Wait()
}

func (p *Pipeline) processTrains() error {
	defer close(p.done)
	trainNum := 0
	for {
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		case train, ok := <-p.trainChan:
			if !ok {
				return nil
			}
			trainNum++
			if err := p.processTrain(train, trainNum); err != nil {
				return err
			}
		}
	}
}

func (p *Pipeline) processTrain(train *pulse.Train, trainNum int) error {
	start := time.Now()

	if p.pulsePlot != nil {
		p.pulsePlot.Observe(train)
	}

	totalEvents := 0
	var countMu sync.Mutex

	eg, _ := errgroup.WithContext(p.ctx)
	for _, dec := range p.decoders {
		thisDec := dec
		eg.Go(func() error {
			events := thisDec.Demodulate(train)
			if events > 0 {
				countMu.Lock()
				totalEvents += events
				countMu.Unlock()

				p.mu.Lock()
				p.eventCounts[thisDec.Name()] += events
				p.mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	go p.writeAPI.WritePoint(influxdb2.NewPoint("demod.train.processed",
		map[string]string{
			"pipeline": "pulsedec",
		},
		map[string]interface{}{
			"train_num": trainNum,
			"pulses":    train.Len(),
			"events":    totalEvents,
			"duration":  time.Since(start).Microseconds(),
		}, start))

	return nil
}
