package heuristic

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var ErrUnknownHeuristic = errors.New("heuristic: unknown heuristic")

var registry = map[string]Heuristic{
	EmptyCells{}.String():   EmptyCells{},
	Monotonicity{}.String(): Monotonicity{},
	Smoothness{}.String():   Smoothness{},
	CornerMax{}.String():    CornerMax{},
	MaxTile{}.String():      MaxTile{},
	Score{}.String():        Score{},
	Merges{}.String():       Merges{},
	EdgeBias{}.String():     EdgeBias{},
}

func ByName(name string) (Heuristic, error) {
	h, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q, available: %s", ErrUnknownHeuristic, name, strings.Join(Names(), ", "))
	}
	return h, nil
}

// Registered heuristic names, sorted
func Names() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}

// The set used when none is configured
func Default() []Heuristic {
	return []Heuristic{
		EmptyCells{},
		Monotonicity{},
		Smoothness{},
		CornerMax{},
		Merges{},
		EdgeBias{},
	}
}

// Parse heuristic specifications, either a registered name or a weighted
// combination like "empty:2.5+smooth:0.1" (weight defaults to 1).
// Empty input yields the Default set
func Parse(specs []string) ([]Heuristic, error) {
	specs = lo.Compact(lo.Map(specs, func(s string, _ int) string { return strings.TrimSpace(s) }))
	if len(specs) == 0 {
		return Default(), nil
	}

	out := make([]Heuristic, 0, len(specs))
	for _, spec := range specs {
		h, err := parseOne(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func parseOne(spec string) (Heuristic, error) {
	if !strings.ContainsAny(spec, ":+") {
		return ByName(spec)
	}

	parts := strings.Split(spec, "+")
	terms := make([]Term, 0, len(parts))
	for _, part := range parts {
		name, weightStr, hasWeight := strings.Cut(part, ":")
		h, err := ByName(name)
		if err != nil {
			return nil, err
		}
		weight := 1.0
		if hasWeight {
			weight, err = strconv.ParseFloat(strings.TrimSpace(weightStr), 64)
			if err != nil {
				return nil, fmt.Errorf("heuristic: invalid weight in %q: %w", spec, err)
			}
		}
		terms = append(terms, Term{Heuristic: h, Weight: weight})
	}
	return NewWeighted(terms...), nil
}
