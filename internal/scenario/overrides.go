package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/model"
)

// Defaults substituted for missing or unparsable override fields.
const (
	DefaultInitial     = 0.1
	DefaultRestriction = 1.0
)

// Valid ranges applied to override values after parsing.
var (
	InitialRange         = [2]float64{0.05, 0.95}
	RestrictionRange     = [2]float64{0.05, 1.0}
	DriverInterceptRange = [2]float64{0, 1}
	DriverSlopeRange     = [2]float64{-0.5, 0.5}
	CouplingSlopeRange   = [2]float64{-0.8, 0.8}
	CouplingBiasRange    = [2]float64{0.1, 0.9}
)

func InitialField(i int) string     { return fmt.Sprintf("u%d", i+1) }
func RestrictionField(i int) string { return fmt.Sprintf("u_restrictions%d", i+1) }
func DriverFields(i int) (string, string) {
	return fmt.Sprintf("fak%d_a", i+1), fmt.Sprintf("fak%d_b", i+1)
}
func CouplingFields(k int) (string, string) {
	return fmt.Sprintf("f%d_k", k+1), fmt.Sprintf("f%d_b", k+1)
}

// ParseOverrides converts raw key/value input into a scenario. Every field
// is read independently: a missing or unparsable value is replaced by its
// default and reported as a *dynamo.ParseError. Parsed values are clamped
// into their valid range; defaults are used as they are. Driver and coupling fields are read only when
// acceptParams is set; otherwise the canonical constants are used.
// Restrictions are not checked against initial values here.
func ParseOverrides(values map[string]string, acceptParams bool) (*Scenario, []*dynamo.ParseError) {
	sc := Canonical()
	var perrs []*dynamo.ParseError

	read := func(field string, def float64, bounds [2]float64) float64 {
		v, perr := parseField(values, field, def)
		if perr != nil {
			perrs = append(perrs, perr)
			return v
		}
		return clamp(v, bounds[0], bounds[1])
	}

	for i := 0; i < dynamo.NumIndicators; i++ {
		sc.Initial[i] = read(InitialField(i), DefaultInitial, InitialRange)
		sc.Restrictions[i] = read(RestrictionField(i), DefaultRestriction, RestrictionRange)
	}

	if !acceptParams {
		return sc, perrs
	}

	for i := 0; i < dynamo.NumDrivers; i++ {
		fa, fb := DriverFields(i)
		def := model.CanonicalDrivers[i]
		sc.Drivers[i] = dynamo.Pair{
			read(fa, def[0], DriverInterceptRange),
			read(fb, def[1], DriverSlopeRange),
		}
	}
	for k := 0; k < dynamo.NumCouplings; k++ {
		fk, fb := CouplingFields(k)
		def := model.CanonicalCouplings[k]
		sc.Couplings[k] = dynamo.Pair{
			read(fk, def[0], CouplingSlopeRange),
			read(fb, def[1], CouplingBiasRange),
		}
	}
	return sc, perrs
}

func parseField(values map[string]string, field string, def float64) (float64, *dynamo.ParseError) {
	raw := strings.TrimSpace(values[field])
	if raw == "" {
		return def, &dynamo.ParseError{Field: field, Default: def}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return def, &dynamo.ParseError{Field: field, Value: raw, Default: def, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def, &dynamo.ParseError{Field: field, Value: raw, Default: def, Err: strconv.ErrRange}
	}
	return v, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
