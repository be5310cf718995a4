package render

import (
	"math"

	"github.com/marketdna/helixviz/internal/helix"
)

// PulseScale evaluates a pulse's scale at the given elapsed time: a
// sinusoidal oscillation between InitialScale and MaxScale. The random phase
// assigned at generation time desynchronizes simultaneous pulses.
func PulseScale(p helix.Pulse, elapsed float64) float64 {
	span := p.MaxScale - p.InitialScale
	return p.InitialScale + span*(0.5+0.5*math.Sin(elapsed*p.PulseSpeed+p.Phase))
}
