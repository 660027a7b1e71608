package analysis

import (
	"math"

	"github.com/chili-epfl/states-of-matter/internal/engine"
)

// RDFPoint is one bin of a radial distribution function.
type RDFPoint struct {
	R float64
	G float64
}

// RadialDistribution computes the pair correlation g(r) of a particle
// snapshot in a width by height box, over bins up to rMax. Values near 1
// mean no correlation at that distance; peaks mean preferred neighbor
// shells.
func RadialDistribution(particles []engine.Particle, width, height float64, bins int, rMax float64) []RDFPoint {
	n := len(particles)
	if n < 2 || bins <= 0 || rMax <= 0 {
		return nil
	}

	dr := rMax / float64(bins)
	counts := make([]float64, bins)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := particles[i].X - particles[j].X
			dy := particles[i].Y - particles[j].Y
			r := math.Hypot(dx, dy)
			if r >= rMax {
				continue
			}
			// Each pair contributes to both particles' neighborhoods.
			counts[int(r/dr)] += 2
		}
	}

	density := float64(n) / (width * height)
	out := make([]RDFPoint, bins)
	for b := 0; b < bins; b++ {
		rInner := float64(b) * dr
		rOuter := rInner + dr
		annulus := math.Pi * (rOuter*rOuter - rInner*rInner)
		out[b] = RDFPoint{
			R: rInner + dr/2,
			G: counts[b] / (float64(n) * density * annulus),
		}
	}
	return out
}

// FirstPeak returns the radius and height of the highest g(r) bin.
func FirstPeak(rdf []RDFPoint) (r, g float64) {
	for _, p := range rdf {
		if p.G > g {
			r, g = p.R, p.G
		}
	}
	return
}
