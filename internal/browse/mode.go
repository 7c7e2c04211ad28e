package browse

import (
	"fmt"
	"strings"
)

// RenderMode decides what "load more" does with the cards already on screen
type RenderMode string

const (
	// ModeReplace swaps the grid for the next page
	ModeReplace RenderMode = "replace"
	// ModeAppend adds the next page below the cards already shown
	ModeAppend RenderMode = "append"
)

// ParseRenderMode converts a config value to a RenderMode. Empty means replace.
func ParseRenderMode(raw string) (RenderMode, error) {
	switch RenderMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeReplace:
		return ModeReplace, nil
	case ModeAppend:
		return ModeAppend, nil
	default:
		return "", fmt.Errorf("invalid load_more mode %q (want replace or append)", raw)
	}
}
