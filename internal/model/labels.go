package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/aviasim/internal/dynamo"
)

var IndicatorNames = [dynamo.NumIndicators]string{
	"average number of pilot instruction violations",
	"share of private aircraft",
	"counterfeit parts enforcement activity",
	"meteorological service headcount",
	"accidents due to weather",
	"accidents due to technical failure",
	"accidents due to human factor",
	"total number of accidents",
}

var DriverNames = [dynamo.NumDrivers]string{
	"average service life before write-off",
	"share of foreign aircraft",
	"average pilot flight experience",
	"aviation fuel cost",
	"number of regulatory acts",
}

func IndicatorSymbol(i int) string { return "X" + strconv.Itoa(i+1) }

func DriverSymbol(i int) string { return "F" + strconv.Itoa(i+1) }

// DriverFormula renders a driver as "a+bt", e.g. "0.63+0.37t" or "1-0.23t".
func DriverFormula(p dynamo.Pair) string {
	return fmt.Sprintf("%s%st", trimFloat(p[0]), signed(p[1]))
}

// CouplingFormula renders f(k+1) against its dependency, e.g. "0.97-0.49*X2".
func CouplingFormula(k int, p dynamo.Pair) string {
	dep := DependencyOf(k + 1)
	return fmt.Sprintf("%s%s*X%d", trimFloat(p[1]), signed(p[0]), dep)
}

func signed(v float64) string {
	if v < 0 {
		return "-" + trimFloat(-v)
	}
	return "+" + trimFloat(v)
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// The normalized horizon [0, 1] spans these calendar years.
const (
	StartYear = 2011
	EndYear   = 2025
)

// Year converts normalized time to a calendar year.
func Year(t float64) float64 {
	return StartYear + t*(EndYear-StartYear)
}
