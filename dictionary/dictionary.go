// Package dictionary: the training-dictionary pair lists.
package dictionary

// Dictionary is a set of (source-index, target-index) correspondence
// pairs, stored as parallel slices. Pairs may repeat (union-direction
// induction concatenates without deduplication).
type Dictionary struct {
	Src []int
	Trg []int
}

// Len reports the number of pairs.
func (d Dictionary) Len() int { return len(d.Src) }

// Append adds one pair.
func (d *Dictionary) Append(src, trg int) {
	d.Src = append(d.Src, src)
	d.Trg = append(d.Trg, trg)
}

// Concat returns the concatenation of d and other, duplicates preserved.
func (d Dictionary) Concat(other Dictionary) Dictionary {
	out := Dictionary{
		Src: make([]int, 0, len(d.Src)+len(other.Src)),
		Trg: make([]int, 0, len(d.Trg)+len(other.Trg)),
	}
	out.Src = append(append(out.Src, d.Src...), other.Src...)
	out.Trg = append(append(out.Trg, d.Trg...), other.Trg...)

	return out
}
