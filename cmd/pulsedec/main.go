package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/norasector/pulsedec/pkg/ook/analyzer"
	"github.com/norasector/pulsedec/pkg/ook/bitbuffer"
	"github.com/norasector/pulsedec/pkg/ook/pulse"
	"github.com/norasector/pulsedec/pkg/pulsedec"
	"github.com/norasector/pulsedec/pkg/pulsedec/config"
	"github.com/norasector/pulsedec/pkg/viz"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)
	configFile := flag.String("config", "pulsedec.yaml", "YAML config file")
	analyze := flag.Bool("analyze", false, "print timing statistics per train instead of decoding")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: pulsedec [flags] capture.ook ...")
		flag.Usage()
		os.Exit(1)
	}

	trains, err := readCaptures(files)
	if err != nil {
		log.Fatal().Err(err).Msg("error reading captures")
	}
	log.Info().Int("trains", len(trains)).Msg("loaded captures")

	if *analyze {
		for i, train := range trains {
			fmt.Printf("--- train %d ---\n%s", i, analyzer.Analyze(train))
		}
		return
	}

	configContents, err := os.ReadFile(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("error reading config file")
	}
	var cfg config.Config
	if err := yaml.Unmarshal(configContents, &cfg); err != nil {
		log.Fatal().Err(err).Msg("error unmarshaling yaml file")
	}
	if cfg.Verbose {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}

	opts := []pulsedec.Option{pulsedec.WithLogger(log.Logger)}
	if cfg.InfluxDB.Host != "" {
		writeAPI := influxdb2.NewClient(cfg.InfluxDB.Host, "").
			WriteAPI(cfg.InfluxDB.Organization, cfg.InfluxDB.Bucket)
		opts = append(opts, pulsedec.WithInfluxDB(writeAPI))
	}
	serveViz := cfg.VizServer.Port != 0
	if serveViz {
		opts = append(opts, pulsedec.WithVizServer(viz.NewServer(cfg.VizServer.Port)))
	}

	pipeline, err := pulsedec.New(pulsedec.Options{
		Protocols:    cfg.Protocols,
		Verbose:      cfg.Verbose,
		FrameHandler: logFrames,
	}, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create pipeline")
	}

	eg, ctx := errgroup.WithContext(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	eg.Go(func() error {
		// With the viz server up, stay alive for inspection until
		// interrupted; otherwise shut down once the input is drained.
		var doneChan <-chan struct{}
		if !serveViz {
			doneChan = pipeline.Done()
		}
		select {
		case <-sigChan:
		case <-ctx.Done():
		case <-doneChan:
		}
		return pipeline.Stop()
	})

	eg.Go(func() error {
		return pipeline.Start(ctx)
	})

	eg.Go(func() error {
		for _, train := range trains {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case pipeline.Receive() <- train:
			}
		}
		pipeline.Close()
		<-pipeline.Done()

		for name, count := range pipeline.EventCounts() {
			log.Info().Str("protocol", name).Int("events", count).Msg("decoded")
		}
		return nil
	})

	if err := eg.Wait(); err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("exited program")
	}
}

func readCaptures(files []string) ([]*pulse.Train, error) {
	var trains []*pulse.Train
	for _, name := range files {
		var r io.Reader
		if name == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(name)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		fileTrains, err := pulse.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		trains = append(trains, fileTrains...)
	}
	return trains, nil
}

// logFrames is the default frame handler: it logs each non-empty row
// and counts it as one message.
func logFrames(protocol string, bits *bitbuffer.BitBuffer) int {
	messages := 0
	for n := 0; n < bits.NumRows(); n++ {
		if bits.RowLen(n) == 0 {
			continue
		}
		messages++
		log.Info().
			Str("protocol", protocol).
			Int("row", n).
			Int("bits", bits.RowLen(n)).
			Hex("data", bits.RowBytes(n)).
			Msg("frame")
	}
	return messages
}
