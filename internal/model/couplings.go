package model

import "github.com/san-kum/aviasim/internal/dynamo"

// Coupling evaluates f(x) = k*x + b for p = (k, b), clamped to [0.05, 0.95].
func Coupling(x float64, p dynamo.Pair) float64 {
	return clamp(p[0]*x+p[1], CouplingMin, CouplingMax)
}

// couplingDeps[k] is the zero-based state index read by coupling f(k+1).
var couplingDeps = [dynamo.NumCouplings]int{
	1, 2, 3, 3, 5, 6, 7, 6, 0, 1, 6, 0, 1, 1, 1, 2, 3, 1,
}

// UnknownDependency is returned by DependencyOf for indices outside 1..18.
const UnknownDependency = -1

// DependencyOf maps a one-based coupling index to the one-based indicator it
// reads: DependencyOf(1) == 2 because f1 depends on X2.
func DependencyOf(coupling int) int {
	if coupling < 1 || coupling > dynamo.NumCouplings {
		return UnknownDependency
	}
	return couplingDeps[coupling-1] + 1
}

// Couplings evaluates all eighteen couplings against state x using the
// dependency table.
func Couplings(x dynamo.State, params [dynamo.NumCouplings]dynamo.Pair) [dynamo.NumCouplings]float64 {
	var out [dynamo.NumCouplings]float64
	for k, p := range params {
		out[k] = Coupling(x[couplingDeps[k]], p)
	}
	return out
}

// CanonicalCouplings are the fitted response coefficients (k, b).
var CanonicalCouplings = [dynamo.NumCouplings]dynamo.Pair{
	{-0.49, 0.97}, // f1(X2)
	{0.10, 0.53},  // f2(X3)
	{0.06, 0.53},  // f3(X4)
	{0.08, 0.75},  // f4(X4)
	{0.20, 0.72},  // f5(X6)
	{-0.20, 0.97}, // f6(X7)
	{0.38, 0.52},  // f7(X8)
	{-0.37, 0.78}, // f8(X7)
	{0.09, 0.45},  // f9(X1)
	{0.17, 0.55},  // f10(X2)
	{-0.44, 1.02}, // f11(X7)
	{0.05, 0.66},  // f12(X1)
	{0.48, 0.45},  // f13(X2)
	{-0.47, 1.18}, // f14(X2)
	{-0.77, 1.37}, // f15(X2)
	{0.22, 0.59},  // f16(X3)
	{-0.71, 1.24}, // f17(X4)
	{-0.02, 0.87}, // f18(X2)
}
