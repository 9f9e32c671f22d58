// Package life provides the core value types shared by the particle life
// engine.
//
// The package defines the data every other layer speaks in:
//
//   - [Particle]: position, velocity and an immutable type index
//   - [ParticleState]: read-only snapshot entry handed to renderers
//   - [Config]: the tunables the engine consumes each step
//
// # Errors
//
// All failures are local and synchronous. Callers test the kind with
// errors.Is against [ErrConfig], [ErrIndex] or [ErrDimensionMismatch].
//
// # Thread Safety
//
// Values in this package carry no synchronization. A simulation owns its
// particles exclusively; see package sim.
package life
