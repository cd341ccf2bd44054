package resolver

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/pmezard/go-difflib/difflib"
)

// Scorer returns how similar a catalog alias is to a normalized name, in [0, 1].
type Scorer func(alias, name string) float64

// SequenceRatio is the Ratcliff/Obershelp ratio 2*M/T, where M is the number of characters
// in the longest matching blocks and T the total length of both strings.
func SequenceRatio(alias, name string) float64 {
	m := difflib.NewMatcher(strings.Split(alias, ""), strings.Split(name, ""))
	return m.Ratio()
}

// JaroWinkler favors strings that share a prefix, it tends to score short typos higher
// than SequenceRatio does.
func JaroWinkler(alias, name string) float64 {
	return matchr.JaroWinkler(alias, name, false)
}

const (
	ScorerRatio       = "ratio"
	ScorerJaroWinkler = "jaro-winkler"
)

// ScorerByName looks up a scorer by its config name, an empty name is ScorerRatio.
func ScorerByName(name string) (Scorer, error) {
	switch name {
	case "", ScorerRatio:
		return SequenceRatio, nil
	case ScorerJaroWinkler:
		return JaroWinkler, nil
	}
	return nil, fmt.Errorf("unknown similarity scorer %q", name)
}
