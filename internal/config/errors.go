package config

import "errors"

var (
	// ErrInvalidColor indicates a color string that is not #rgb or #rrggbb hex.
	ErrInvalidColor = errors.New("config: invalid color")

	// ErrParameterBounds indicates a parameter value outside its declared range.
	ErrParameterBounds = errors.New("config: parameter out of valid bounds")

	// ErrUnknownPreset indicates a preset name with no registered parameters.
	ErrUnknownPreset = errors.New("config: unknown preset")
)
