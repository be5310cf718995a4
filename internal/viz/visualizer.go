// Package viz owns the currently displayed helix, its configuration and the
// last loaded dataset, and mediates rebuild-on-change for the glue layer.
package viz

import (
	"github.com/rs/zerolog"

	"github.com/marketdna/helixviz/internal/helix"
	"github.com/marketdna/helixviz/internal/segment"
)

// Visualizer is the façade between the glue layer (file loading, UI
// controls, render loop) and the segment/helix cores. It exclusively owns
// the current group; callers must not retain a group reference across a
// rebuild.
type Visualizer struct {
	log          zerolog.Logger
	cfg          helix.Config
	selectedType string
	lastData     []segment.Segment
	group        *helix.Group
}

// New returns a visualizer showing an empty helix with default settings.
func New(log zerolog.Logger) *Visualizer {
	v := &Visualizer{
		log:          log.With().Str("component", "visualizer").Logger(),
		cfg:          helix.DefaultConfig(),
		selectedType: "all",
	}
	v.group = helix.Build(nil, v.cfg)
	return v
}

// LoadFromText parses a raw payload and rebuilds the helix. On a malformed
// payload the previous dataset and visualization are retained and the error
// is returned after being logged; zero valid segments is a normal state and
// renders an empty helix.
func (v *Visualizer) LoadFromText(text []byte) error {
	segs, err := segment.Parse(text, v.log)
	if err != nil {
		v.log.Error().Err(err).Msg("load failed, keeping previous data")
		return err
	}
	v.lastData = segs
	v.log.Info().Int("segments", len(segs)).Msg("data loaded")
	v.UpdateVisualization()
	return nil
}

// UpdateVisualization discards the current group entirely and builds a new
// one from the last loaded data, the selected type filter and a snapshot of
// the current configuration. There is no partial reuse.
func (v *Visualizer) UpdateVisualization() {
	shown := segment.FilterByType(v.lastData, v.selectedType)
	v.group = helix.Build(shown, v.cfg)
	v.log.Info().
		Int("shown", len(shown)).
		Str("filter", v.selectedType).
		Int("turns", v.cfg.Turns).
		Msg("helix rebuilt")
}

// SetConfig updates one configuration field by UI key. Unknown keys are
// silently ignored. Changing a value does not rebuild; callers follow up
// with UpdateVisualization.
func (v *Visualizer) SetConfig(key string, value float64) {
	switch key {
	case "helixTurns":
		v.cfg.Turns = max(1, int(value))
	case "helixRadius":
		v.cfg.Radius = value
	case "backboneThickness":
		v.cfg.BackboneThickness = value
	case "helixHeight":
		v.cfg.Height = value
	case "pointsPerTurn":
		v.cfg.PointsPerTurn = max(2, int(value))
	case "scale":
		if value > 0 {
			v.cfg.Scale = value
		}
	default:
		v.log.Debug().Str("key", key).Msg("ignoring unknown config key")
	}
}

// Config returns a snapshot of the current configuration.
func (v *Visualizer) Config() helix.Config {
	return v.cfg
}

// DNAGroup returns the current renderable group. Valid only until the next
// rebuild.
func (v *Visualizer) DNAGroup() *helix.Group {
	return v.group
}

// LastLoadedData returns the last validated, unfiltered dataset.
func (v *Visualizer) LastLoadedData() []segment.Segment {
	return v.lastData
}

// SelectedType returns the active type filter ("all" when unfiltered).
func (v *Visualizer) SelectedType() string {
	return v.selectedType
}

// SetSelectedType changes the type filter. Takes effect on the next rebuild.
func (v *Visualizer) SetSelectedType(typ string) {
	v.selectedType = typ
}

// CalculateStats summarizes the full loaded dataset, ignoring the type
// filter. Returns nil when no data is loaded.
func (v *Visualizer) CalculateStats() *segment.Stats {
	return segment.Compute(v.lastData)
}
