package features

import (
	"fmt"
	"math"
)

// Weighting scales a per-observation metric by the strength of the opponent
// it was earned against. The transform is a pure function of the opponent's
// rank and must be monotonic: a numerically lower (stronger) rank yields a
// larger weighted value.
type Weighting interface {
	Apply(value, opponentRank float64) float64
	Name() string
}

// Scheme names accepted by NewWeighting.
const (
	SchemeInverseRank = "inverse_rank"
	SchemeExpDecay    = "exp_decay"
)

// Weighting parameter defaults.
const (
	DefaultInverseScale = 100.0
	DefaultDecayRate    = 0.005
)

// InverseRank computes value / (1 + rank/scale). With the default scale of
// 100, a point earned against the #1 team counts ~0.99 and against the #100
// team 0.5.
type InverseRank struct {
	Scale float64
}

func (w InverseRank) Apply(value, opponentRank float64) float64 {
	return value / (1 + opponentRank/w.Scale)
}

func (w InverseRank) Name() string { return SchemeInverseRank }

// ExpDecay computes value * e^(-rate*(rank-1)), so a point earned against
// the #1 team keeps its full value and decays exponentially down the table.
type ExpDecay struct {
	Rate float64
}

func (w ExpDecay) Apply(value, opponentRank float64) float64 {
	return value * math.Exp(-w.Rate*(opponentRank-1))
}

func (w ExpDecay) Name() string { return SchemeExpDecay }

// DefaultWeighting returns the inverse-rank transform with scale 100.
func DefaultWeighting() Weighting {
	return InverseRank{Scale: DefaultInverseScale}
}

// NewWeighting builds a weighting from a scheme name and its parameters.
// Zero or negative parameters fall back to the scheme default.
func NewWeighting(scheme string, scale, rate float64) (Weighting, error) {
	switch scheme {
	case SchemeInverseRank, "":
		if scale <= 0 {
			scale = DefaultInverseScale
		}
		return InverseRank{Scale: scale}, nil
	case SchemeExpDecay:
		if rate <= 0 {
			rate = DefaultDecayRate
		}
		return ExpDecay{Rate: rate}, nil
	default:
		return nil, fmt.Errorf("unknown weighting scheme %q", scheme)
	}
}
