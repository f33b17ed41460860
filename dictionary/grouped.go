// Package dictionary: the one-to-many validation/test dictionary.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aitorormazabal/latent-variable-vecmap/embedding"
)

// Grouped is a one-to-many reference dictionary: each known source index
// maps to the set of acceptable target indices. It is immutable once
// loaded and carries the out-of-vocabulary count that feeds coverage.
type Grouped struct {
	translations map[int]map[int]struct{}
	oov          int
}

// LoadGrouped parses reference dictionary lines. A source word counts as
// out-of-vocabulary only when none of its listed translations resolve: one
// resolvable pair removes the word from the OOV set.
func LoadGrouped(r io.Reader, srcVocab, trgVocab *embedding.Vocabulary) (*Grouped, error) {
	g := &Grouped{translations: make(map[int]map[int]struct{})}
	oovWords := make(map[string]struct{})
	knownWords := make(map[string]struct{})

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrBadEntry, line)
		}
		si, okS := srcVocab.Index(fields[0])
		ti, okT := trgVocab.Index(fields[1])
		if !okS || !okT {
			oovWords[fields[0]] = struct{}{}
			continue
		}
		if g.translations[si] == nil {
			g.translations[si] = make(map[int]struct{})
		}
		g.translations[si][ti] = struct{}{}
		knownWords[fields[0]] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for w := range knownWords {
		delete(oovWords, w)
	}
	g.oov = len(oovWords)

	return g, nil
}

// Known reports the number of source words with at least one resolvable
// translation.
func (g *Grouped) Known() int { return len(g.translations) }

// OOV reports the number of strictly out-of-vocabulary source words.
func (g *Grouped) OOV() int { return g.oov }

// Coverage is |known| / (|known| + |OOV|). Zero when the dictionary is empty.
func (g *Grouped) Coverage() float64 {
	total := g.Known() + g.oov
	if total == 0 {
		return 0
	}

	return float64(g.Known()) / float64(total)
}

// Sources returns the known source indices in ascending order, giving
// batched evaluation a deterministic walk.
func (g *Grouped) Sources() []int {
	out := make([]int, 0, len(g.translations))
	for si := range g.translations {
		out = append(out, si)
	}
	sort.Ints(out)

	return out
}

// Contains reports whether ti is an acceptable translation of si.
func (g *Grouped) Contains(si, ti int) bool {
	set, ok := g.translations[si]
	if !ok {
		return false
	}
	_, ok = set[ti]

	return ok
}

// Translations returns the acceptable target indices of si in ascending
// order; nil when si is unknown.
func (g *Grouped) Translations(si int) []int {
	set, ok := g.translations[si]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(set))
	for ti := range set {
		out = append(out, ti)
	}
	sort.Ints(out)

	return out
}
