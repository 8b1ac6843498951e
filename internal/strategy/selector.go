package strategy

import "ced/internal/edit"

// Selector chooses the most specific capable strategy for a file edit. The
// strategy order is an explicit slice constructed per instance, not a
// package-level singleton, so tests can substitute a custom order.
type Selector struct {
	strategies []Strategy
}

// NewSelector creates a selector over the given strategies in priority
// order. The last strategy is expected to handle every extension.
func NewSelector(strategies ...Strategy) *Selector {
	return &Selector{strategies: strategies}
}

// kindToName maps each edit kind to the strategy that implements it. The
// switch is exhaustive over the kind union; an unrecognized tag is an
// error, never a guess from populated fields.
func kindToName(kind edit.EditKind) (string, error) {
	switch kind {
	case edit.KindSemantic:
		return "semantic", nil
	case edit.KindTextPatch:
		return "text-patch", nil
	case edit.KindLineRange:
		return "line-range", nil
	default:
		return "", edit.Errorf(edit.UnknownEditKind, "unknown edit kind %q", kind)
	}
}

// Select returns the strategy for the requested kind if it can handle the
// extension, otherwise the first capable strategy in priority order.
func (s *Selector) Select(kind edit.EditKind, ext string) (Strategy, error) {
	name, err := kindToName(kind)
	if err != nil {
		return nil, err
	}

	for _, st := range s.strategies {
		if st.Name() == name && st.CanHandle(ext) {
			return st, nil
		}
	}
	for _, st := range s.strategies {
		if st.CanHandle(ext) {
			return st, nil
		}
	}
	return nil, edit.Errorf(edit.UnknownEditKind, "no strategy can handle extension %q", ext)
}
