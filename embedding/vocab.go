// Package embedding: the immutable word↔index vocabulary.
package embedding

// Vocabulary is a bijection between vocabulary words and matrix row
// indices. It is built once from read order and is read-only afterwards,
// so it may be shared across components without locking.
type Vocabulary struct {
	words []string
	index map[string]int
}

// NewVocabulary builds a Vocabulary from words in row order. Later
// duplicates are ignored so the first (most frequent) occurrence wins.
func NewVocabulary(words []string) *Vocabulary {
	v := &Vocabulary{
		words: words,
		index: make(map[string]int, len(words)),
	}
	for i, w := range words {
		if _, seen := v.index[w]; !seen {
			v.index[w] = i
		}
	}

	return v
}

// Len reports the vocabulary size.
func (v *Vocabulary) Len() int { return len(v.words) }

// Index returns the row index of word and whether it is present.
func (v *Vocabulary) Index(word string) (int, bool) {
	i, ok := v.index[word]

	return i, ok
}

// Word returns the word at row i. Panics on out-of-range i, matching slice
// semantics; callers index with values they obtained from this vocabulary.
func (v *Vocabulary) Word(i int) string { return v.words[i] }

// Words returns the underlying word list in row order. Callers must not
// mutate it.
func (v *Vocabulary) Words() []string { return v.words }
