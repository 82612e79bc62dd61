// Package dynamo provides the simulation primitives shared by the
// aviation-safety model, its integrators and the display pipeline.
//
//   - [State]: the 8-component indicator vector X1..X8
//   - [System]: right-hand side dX/dt = f(X, t)
//   - [Integrator], [AdaptiveIntegrator]: numerical steppers
//   - [Trajectory]: immutable samples over the normalized horizon [0, 1]
//
// # Errors
//
// The core classifies every failure as [ErrValidation], [ErrDiverged] or
// [ErrParse]. Use errors.As with [*ValidationError], [*DivergedError] or
// [*ParseError] to inspect the details.
package dynamo
