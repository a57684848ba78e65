package aggregate

import "fmt"

// MatchConfig tunes the volume-matching walk. The presets differ only
// in configuration; the algorithm is identical for all of them.
type MatchConfig struct {
	Preset             string
	VolumeThresholdPct float64 // relative buy/sell volume difference to accept a close
	MinOrders          int     // orders required before a balanced close may fire
	AllowPartial       bool    // keep the trailing unsealed run as a partial position
}

var presets = map[string]MatchConfig{
	"conservative": {Preset: "conservative", VolumeThresholdPct: 0.02, MinOrders: 2, AllowPartial: false},
	"aggressive":   {Preset: "aggressive", VolumeThresholdPct: 0.10, MinOrders: 1, AllowPartial: true},
	"dca":          {Preset: "dca", VolumeThresholdPct: 0.15, MinOrders: 3, AllowPartial: true},
}

// PresetConfig resolves a named preset.
func PresetConfig(name string) (MatchConfig, error) {
	if c, ok := presets[name]; ok {
		return c, nil
	}
	return MatchConfig{}, fmt.Errorf("unknown position matching preset %q", name)
}

// DefaultMatchConfig is the conservative preset.
func DefaultMatchConfig() MatchConfig {
	return presets["conservative"]
}
