// Package train: the tab-separated iteration log.
package train

import (
	"fmt"
	"io"

	"github.com/aitorormazabal/latent-variable-vecmap/eval"
)

// IterationLog writes one TSV record per iteration:
//
//	iteration  100·objective  [100·similarity  100·accuracy  100·coverage]  seconds
//
// The bracketed validation fields collapse to a single empty field when no
// validation dictionary is configured, matching the historical format.
type IterationLog struct {
	w io.Writer
}

// NewIterationLog wraps w. The caller keeps ownership of w (and closes it
// if it is a file).
func NewIterationLog(w io.Writer) *IterationLog {
	return &IterationLog{w: w}
}

// Append writes the record for one iteration. val may be nil.
func (l *IterationLog) Append(iteration int, objective float64, val *eval.Scores, seconds float64) error {
	mid := ""
	if val != nil {
		mid = fmt.Sprintf("%.6f\t%.6f\t%.6f", 100*val.Similarity, 100*val.Accuracy, 100*val.Coverage)
	}
	_, err := fmt.Fprintf(l.w, "%d\t%.6f\t%s\t%.6f\n", iteration, 100*objective, mid, seconds)

	return err
}
