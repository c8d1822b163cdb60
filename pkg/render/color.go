package render

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/tilewire/pkg/errors"
)

var namedColors = map[string]string{
	"black": "#000000",
	"white": "#FFFFFF",
	"red":   "#FF0000",
	"green": "#008000",
	"blue":  "#0000FF",
	"gray":  "#808080",
	"grey":  "#808080",
}

// ParseColor parses #RGB, #RRGGBB or one of a few color names.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", s)
	}
	return c, nil
}

// mustColor parses s, falling back to fallback when s is empty or invalid.
func mustColor(s, fallback string) colorful.Color {
	if c, err := ParseColor(s); err == nil {
		return c
	}
	c, _ := ParseColor(fallback)
	return c
}

// rgb255 returns the 0-255 channels of s for sinks that take integers.
func rgb255(s, fallback string) (int, int, int) {
	r, g, b := mustColor(s, fallback).RGB255()
	return int(r), int(g), int(b)
}
