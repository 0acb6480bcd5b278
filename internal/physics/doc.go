// Package physics derives the physical quantities of a star → planet → moon →
// submoon hierarchy from user-chosen masses and orbital radii.
//
// Everything here is a pure function of [Params] and a fixed set of constants:
//
//   - [HillRadius]: sphere of gravitational dominance of a secondary body
//   - [RocheLimit]: tidal disruption distance from assumed densities
//   - [OrbitalPeriod] and [AngularSpeed]: Kepler pacing for the animation
//   - [Derive]: all derived quantities for one parameter set
//
// # Units
//
// Masses are in Jupiter masses and distances in AU-like display units. The
// star is a fixed proxy of [StarMass]. Moon and submoon orbits are given as
// fractions of the parent's Hill radius, so
//
//	moonDistance    = MoonOrbitRadius    × HillRadius(StarMass, PlanetMass, PlanetOrbitRadius)
//	submoonDistance = SubmoonOrbitRadius × HillRadius(PlanetMass, MoonMass, moonDistance)
//
// # Periods
//
// [PeriodScale] and the per-level damping constants pace the animation and
// are not physically calibrated. Only the relative ordering of the three
// orbits is meaningful.
package physics
