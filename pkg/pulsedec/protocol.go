package pulsedec

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/norasector/pulsedec/pkg/ook/bitbuffer"
	"github.com/norasector/pulsedec/pkg/ook/demod"
	"github.com/norasector/pulsedec/pkg/pulsedec/config"
)

// FrameHandler consumes the bit rows of one decoded frame for the
// named protocol and returns how many valid messages it extracted.
type FrameHandler func(protocol string, bits *bitbuffer.BitBuffer) int

// buildDemodulator compiles one protocol definition into its decoder.
// handler may be nil, which leaves the decoder in diagnostic-only
// mode.
func buildDemodulator(p config.Protocol, handler FrameHandler, logger zerolog.Logger, verbose bool) (demod.Demodulator, error) {
	cfg := demod.Config{
		Name:       p.Name,
		ShortLimit: p.ShortLimit,
		LongLimit:  p.LongLimit,
		ResetLimit: p.ResetLimit,
		Logger:     logger,
		Verbose:    verbose,
	}
	if handler != nil {
		name := p.Name
		cfg.OnFrame = func(bits *bitbuffer.BitBuffer) int {
			return handler(name, bits)
		}
	}

	switch p.Modulation {
	case config.ModulationPCM:
		return demod.NewPCM(cfg), nil
	case config.ModulationPPM:
		return demod.NewPPM(cfg), nil
	case config.ModulationPWM:
		return demod.NewPWM(cfg, p.StartBit), nil
	case config.ModulationPWMPrecise:
		return demod.NewPWMPrecise(cfg, demod.PreciseTiming{
			PulseTolerance: p.PulseTolerance,
			PulseSyncWidth: p.PulseSyncWidth,
		}), nil
	case config.ModulationPWMTernary:
		sync, err := parseSyncBand(p.SyncBand)
		if err != nil {
			return nil, fmt.Errorf("protocol %s: %w", p.Name, err)
		}
		return demod.NewPWMTernary(cfg, sync), nil
	case config.ModulationManchesterZeroBit:
		return demod.NewManchesterZeroBit(cfg), nil
	default:
		return nil, fmt.Errorf("protocol %s: unknown modulation %q", p.Name, p.Modulation)
	}
}

func parseSyncBand(s string) (demod.SyncBand, error) {
	switch s {
	case "short":
		return demod.SyncBandShort, nil
	case "middle":
		return demod.SyncBandMiddle, nil
	case "long":
		return demod.SyncBandLong, nil
	case "none", "":
		return demod.SyncBandNone, nil
	default:
		return 0, fmt.Errorf("unknown sync band %q", s)
	}
}
