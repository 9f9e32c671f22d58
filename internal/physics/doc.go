// Package physics provides the particle life force law and integrator.
//
// Both depend only on their arguments. The step loop in package sim
// evaluates every force from one position snapshot before any particle moves.
//
//   - [Displacement]: separation vector with optional minimum-image fold
//   - [Force]: scalar magnitude along the separation vector
//   - [Integrator.Integrate]: velocity, position, friction and boundary update
//
// # Force Zones
//
// Below MinDist every pair repels regardless of type, reaching -MaxForce at
// zero separation. Between MinDist and the interaction radius the matrix
// strength sets sign and magnitude, attenuated linearly to zero:
//
//	d < minDist:          (d/minDist - 1) * maxForce
//	minDist <= d < R:     strength * (1 - t) * maxForce
//	                      t = (d - minDist) / (R - minDist)
package physics
