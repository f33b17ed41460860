// Package embedding: text-format reader and writer.
package embedding

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/backend"
)

// maxLineBytes bounds a single entry line; 300-dimensional fp64 vectors
// stay far below this.
const maxLineBytes = 1 << 20

// Read parses an embedding file. When limit > 0 only the first limit
// entries are kept; files are frequency-ordered so this retains the most
// frequent words. Values are quantized to prec so narrow-precision runs
// behave identically to narrow-precision storage.
func Read(r io.Reader, prec backend.Precision, limit int) ([]string, *mat.Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, nil, err
		}

		return nil, nil, ErrBadHeader
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		return nil, nil, fmt.Errorf("%w: %q", ErrBadHeader, sc.Text())
	}
	count, errC := strconv.Atoi(header[0])
	dim, errD := strconv.Atoi(header[1])
	if errC != nil || errD != nil || count < 0 || dim <= 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrBadHeader, sc.Text())
	}

	keep := count
	if limit > 0 && limit < keep {
		keep = limit
	}

	words := make([]string, 0, keep)
	data := make([]float64, 0, keep*dim)
	for len(words) < keep && sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != dim+1 {
			return nil, nil, fmt.Errorf("%w: entry %d has %d values, want %d",
				ErrBadVector, len(words), len(fields)-1, dim)
		}
		words = append(words, fields[0])
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: entry %d: %v", ErrBadVector, len(words)-1, err)
			}
			data = append(data, prec.Quantize(v))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if len(words) == 0 {
		return nil, nil, fmt.Errorf("%w: no entries", ErrBadVector)
	}

	return words, mat.NewDense(len(words), dim, data), nil
}

// Write emits the header and one line per word, quantizing values to prec.
func Write(w io.Writer, words []string, m mat.Matrix, prec backend.Precision) error {
	rows, dim := m.Dims()
	if rows != len(words) {
		return fmt.Errorf("%w: %d words, %d rows", ErrShapeMismatch, len(words), rows)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", rows, dim); err != nil {
		return err
	}
	var i, j int
	for i = 0; i < rows; i++ {
		if _, err := bw.WriteString(words[i]); err != nil {
			return err
		}
		for j = 0; j < dim; j++ {
			if _, err := fmt.Fprintf(bw, " %.6g", prec.Quantize(m.At(i, j))); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
