// Package analysis characterizes finished runs.
//
//   - [Sensitivity]: how strongly each initial value steers the trajectory,
//     by the trajectory separation method
//   - [NewPhasePortrait]: one indicator against another over the run
//
// A separation that grows past the initial perturbation marks an indicator
// whose starting estimate matters:
//
//	report, err := analysis.Sensitivity(ctx, sc, integ, cfg, 1e-3)
//	for _, s := range report {
//	    if s.Peak > 1 {
//	        // perturbation in X(s.Index+1) was amplified
//	    }
//	}
package analysis
