// Package dictionary: file loading and seed construction.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aitorormazabal/latent-variable-vecmap/embedding"
)

// numeralPattern matches latin-numeral words for the numeral seed.
var numeralPattern = regexp.MustCompile(`^[0-9]+$`)

// Load parses "<src_word> <trg_word>" lines into a training Dictionary.
// Entries whose words are absent from either vocabulary are dropped with a
// warning on warn (when non-nil); this is a per-entry recoverable
// condition, never fatal. Malformed lines return ErrBadEntry.
func Load(r io.Reader, srcVocab, trgVocab *embedding.Vocabulary, warn io.Writer) (Dictionary, error) {
	var dict Dictionary
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return Dictionary{}, fmt.Errorf("%w: %q", ErrBadEntry, line)
		}
		si, okS := srcVocab.Index(fields[0])
		ti, okT := trgVocab.Index(fields[1])
		if !okS || !okT {
			if warn != nil {
				fmt.Fprintf(warn, "WARNING: OOV dictionary entry (%s - %s)\n", fields[0], fields[1])
			}
			continue
		}
		dict.Append(si, ti)
	}
	if err := sc.Err(); err != nil {
		return Dictionary{}, err
	}

	return dict, nil
}

// Numerals builds the seed dictionary from words matching ^[0-9]+$ present
// in both vocabularies, paired by spelling. Pairs follow source row order,
// so the seed is deterministic.
func Numerals(srcVocab, trgVocab *embedding.Vocabulary) Dictionary {
	var dict Dictionary
	for si, w := range srcVocab.Words() {
		if !numeralPattern.MatchString(w) {
			continue
		}
		if ti, ok := trgVocab.Index(w); ok {
			dict.Append(si, ti)
		}
	}

	return dict
}

// Identical builds the seed dictionary from words spelled identically in
// both vocabularies, paired by spelling, in source row order.
func Identical(srcVocab, trgVocab *embedding.Vocabulary) Dictionary {
	var dict Dictionary
	seen := make(map[string]bool, srcVocab.Len())
	for si, w := range srcVocab.Words() {
		if seen[w] {
			continue // the vocabulary maps duplicates to their first row
		}
		seen[w] = true
		if ti, ok := trgVocab.Index(w); ok {
			dict.Append(si, ti)
		}
	}

	return dict
}
