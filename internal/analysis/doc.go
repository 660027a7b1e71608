// Package analysis provides structural and time-series analysis tools.
//
// The package includes tools for characterizing simulation output:
//
//   - [RadialDistribution]: pair correlation g(r) over a particle snapshot
//   - [Autocorrelation]: normalized autocorrelation of a scalar series
//   - [PowerSpectrum]: frequency content of a scalar series
//
// # Phase Identification
//
// The radial distribution function distinguishes the phases: a solid
// shows sharp repeated peaks, a liquid a broad first peak with weak
// structure beyond, and a gas a flat profile near 1:
//
//	rdf := analysis.RadialDistribution(particles, width, height, 100, 8.0)
package analysis
