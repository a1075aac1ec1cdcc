package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]Parameters{
	"default": DefaultParameters(),
	"classic": {
		Count: 100000, Size: 0.01, Radius: 5, Branches: 3, Spin: 1,
		Randomness: 0.2, RandomnessPower: 3,
		InsideColor: MustParseColor("#ff6030"), OutsideColor: MustParseColor("#1b3984"),
	},
	"pinwheel": {
		Count: 200000, Size: 0.006, Radius: 6, Branches: 8, Spin: 2.4,
		Randomness: 0.1, RandomnessPower: 4.5,
		InsideColor: MustParseColor("#ffe8b0"), OutsideColor: MustParseColor("#3050ff"),
	},
	"dense-core": {
		Count: 300000, Size: 0.004, Radius: 3, Branches: 4, Spin: 0.8,
		Randomness: 0.3, RandomnessPower: 6,
		InsideColor: MustParseColor("#fff4d6"), OutsideColor: MustParseColor("#6a1b9a"),
	},
	"barred": {
		Count: 150000, Size: 0.008, Radius: 8, Branches: 2, Spin: -1.4,
		Randomness: 0.15, RandomnessPower: 2.5,
		InsideColor: MustParseColor("#ffb347"), OutsideColor: MustParseColor("#0f4c5c"),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Parameters {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

// LookupPreset is GetPreset with an error naming the available presets.
func LookupPreset(name string) (Parameters, error) {
	p := GetPreset(name)
	if p == nil {
		return Parameters{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return *p, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
