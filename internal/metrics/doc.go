// Package metrics provides observables over particle sets.
//
// Every metric reports the mean of its per-observation values; Last returns
// the most recent observation. The Of functions compute one observation
// directly for callers that do not need accumulation.
package metrics
