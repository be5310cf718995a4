package helix

// Config holds the shape parameters of one helix build. It is passed by
// value so a build always works from an immutable snapshot; changing a field
// on the visualizer takes effect on the next explicit rebuild.
type Config struct {
	Turns             int
	Radius            float64
	BackboneThickness float64
	Height            float64
	PointsPerTurn     int
	Scale             float64
}

// DefaultConfig matches the initial UI control values.
func DefaultConfig() Config {
	return Config{
		Turns:             5,
		Radius:            10,
		BackboneThickness: 0.35,
		Height:            30,
		PointsPerTurn:     20,
		Scale:             1,
	}
}
