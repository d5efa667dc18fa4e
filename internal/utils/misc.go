package utils

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Clamp v into the inclusive range [lo, hi]
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ShortenedOutput returns at most maxNewlines lines of out, with a note
// about how many lines got cut
func ShortenedOutput(out string, maxNewlines int) string {
	lines := strings.Split(out, "\n")
	if len(lines) <= maxNewlines {
		return out
	}
	kept := strings.Join(lines[:maxNewlines], "\n")
	return fmt.Sprintf("%v\n... + %v more lines", kept, len(lines)-maxNewlines)
}
