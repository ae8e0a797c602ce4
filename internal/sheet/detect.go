package sheet

import (
	"github.com/agnivade/levenshtein"

	"mathsheet/internal/engine"
)

// imaginaryUnit is the literal token the engine reports when a complex
// expression is evaluated under a real-valued mode.
const imaginaryUnit = "i"

// unitSymbols is the engine's unit table: SI base and derived units plus the
// imperial units it accepts. A missing definition matching one of these means
// the user almost certainly wanted units mode.
var unitSymbols = []string{
	"Pa", "psi", "bar", "N", "lbf",
	"m", "ft", "in",
	"s", "Hz",
	"kg", "g", "lb",
	"A", "K", "mol", "cd",
}

var unitSymbolSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(unitSymbols))
	for _, u := range unitSymbols {
		set[u] = struct{}{}
	}
	return set
}()

// Detect decides whether a missing-definition symbol implies a different
// evaluation mode. It never mutates state; the one-shot switch latch lives on
// the Controller.
func Detect(symbol string) (engine.Mode, bool) {
	if symbol == imaginaryUnit {
		return engine.ModeComplex, true
	}
	if _, ok := unitSymbolSet[symbol]; ok {
		return engine.ModeUnits, true
	}
	return 0, false
}

// NearestUnit suggests the closest unit symbol for a token that resolved to
// nothing, for "did you mean" hints. Only near misses qualify: distance one,
// or distance two for tokens of at least three runes.
func NearestUnit(symbol string) (string, bool) {
	if symbol == "" {
		return "", false
	}
	if _, ok := unitSymbolSet[symbol]; ok {
		return "", false
	}
	best, bestDist := "", -1
	for _, u := range unitSymbols {
		d := levenshtein.ComputeDistance(symbol, u)
		if bestDist == -1 || d < bestDist {
			best, bestDist = u, d
		}
	}
	limit := 1
	if len([]rune(symbol)) >= 3 {
		limit = 2
	}
	if bestDist > limit {
		return "", false
	}
	return best, true
}
