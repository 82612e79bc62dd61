package scenario

import (
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/san-kum/aviasim/internal/dynamo"
)

// Ranges for randomly sampled scenarios. Later indicators get stricter
// restrictions.
var (
	RandomInitialRange      = [2]float64{0.05, 0.95}
	RandomRestrictionRanges = [dynamo.NumIndicators][2]float64{
		{0.3, 1.0}, {0.3, 1.0}, {0.3, 1.0}, {0.3, 1.0},
		{0.3, 0.6}, {0.3, 0.6}, {0.3, 0.6},
		{0.2, 0.4},
	}
)

// Builder produces scenarios. It owns its random source, so a Builder must
// not be shared between goroutines; create one per request.
type Builder struct {
	rng          *rand.Rand
	policy       Policy
	acceptParams bool
	logger       *slog.Logger
}

type Option func(*Builder)

func WithSeed(seed int64) Option {
	return func(b *Builder) { b.rng = rand.New(rand.NewSource(seed)) }
}

func WithRand(r *rand.Rand) Option {
	return func(b *Builder) { b.rng = r }
}

func WithPolicy(p Policy) Option {
	return func(b *Builder) { b.policy = p }
}

// WithParams lets override input replace driver and coupling parameters.
func WithParams(accept bool) Option {
	return func(b *Builder) { b.acceptParams = accept }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		policy: Strict,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(0))
	}
	return b
}

func (b *Builder) Policy() Policy { return b.policy }

// Build dispatches on mode. overrides is read only in Override mode.
func (b *Builder) Build(mode Mode, overrides map[string]string) (*Scenario, error) {
	switch mode {
	case Random:
		return b.Random(), nil
	case Override:
		return b.FromOverrides(overrides)
	default:
		return b.Fixed(), nil
	}
}

func (b *Builder) Fixed() *Scenario {
	return Canonical()
}

// Random samples initial values and restrictions, rounded to two decimals.
// Draws that violate restriction > initial are always auto-corrected since
// the caller supplied nothing to fix.
func (b *Builder) Random() *Scenario {
	sc := Canonical()
	for i := range sc.Initial {
		sc.Initial[i] = b.uniform(RandomInitialRange)
	}
	for i := range sc.Restrictions {
		sc.Restrictions[i] = b.uniform(RandomRestrictionRanges[i])
	}
	corrected, fixed := sc.AutoCorrect()
	if len(fixed) > 0 {
		b.logger.Debug("random restrictions raised", "indices", fixed)
	}
	return corrected
}

// FromOverrides parses user input and applies the builder's policy.
func (b *Builder) FromOverrides(values map[string]string) (*Scenario, error) {
	sc, perrs := ParseOverrides(values, b.acceptParams)
	for _, perr := range perrs {
		if perr.Value == "" {
			b.logger.Debug("override missing, using default", "field", perr.Field, "default", perr.Default)
			continue
		}
		b.logger.Warn("override replaced by default", "field", perr.Field, "value", perr.Value, "default", perr.Default)
	}

	if b.policy == AutoCorrect {
		corrected, fixed := sc.AutoCorrect()
		for _, i := range fixed {
			b.logger.Info("restriction raised above initial value",
				"indicator", i+1, "initial", sc.Initial[i], "restriction", corrected.Restrictions[i])
		}
		return corrected, nil
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Jitter returns a copy whose initial values are perturbed by uniform noise
// in [-amplitude, amplitude] and clamped to [0.05, 0.95]. Noise can push an
// initial value past its restriction: random scenarios are always
// auto-corrected, the others are re-checked under the builder's policy.
func (b *Builder) Jitter(sc *Scenario, mode Mode, amplitude float64) (*Scenario, error) {
	c := sc.Clone()
	if amplitude <= 0 {
		return c, nil
	}
	for i := range c.Initial {
		noise := (b.rng.Float64()*2 - 1) * amplitude
		c.Initial[i] = clamp(c.Initial[i]+noise, RandomInitialRange[0], RandomInitialRange[1])
	}
	if mode == Random || b.policy == AutoCorrect {
		corrected, fixed := c.AutoCorrect()
		if len(fixed) > 0 {
			b.logger.Debug("jittered restrictions raised", "indices", fixed)
		}
		return corrected, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *Builder) uniform(r [2]float64) float64 {
	v := r[0] + b.rng.Float64()*(r[1]-r[0])
	return math.Round(v*100) / 100
}
