// Package analysis characterizes recorded and live particle life runs.
//
//   - [PowerSpectrum], [DominantFrequency]: oscillation in a sampled series
//   - [Summarize]: mean, spread, range and linear trend of a series
//   - [NewPortrait]: two series plotted against each other
//   - [Sweep]: a tunable varied across runs, recording a metric
//   - [Divergence]: growth rate of a small perturbation between twin runs
//
// # Sensitivity
//
// A positive divergence rate means two runs started one perturbed particle
// apart drift into different patterns:
//
//	rate, err := analysis.Divergence(ctx, cfg, 1e-6)
//	if rate > 0 {
//	    // pattern is sensitive to initial placement
//	}
package analysis
