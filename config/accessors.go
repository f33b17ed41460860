// Package config: typed accessors and up-front validation.
package config

import (
	"fmt"

	"github.com/aitorormazabal/latent-variable-vecmap/backend"
	"github.com/aitorormazabal/latent-variable-vecmap/embedding"
	"github.com/aitorormazabal/latent-variable-vecmap/induce"
	"github.com/aitorormazabal/latent-variable-vecmap/mapping"
)

// Validate checks every tag and cross-field rule. It must pass before any
// computation starts; every failure here is fatal by design.
func (c Config) Validate() error {
	if c.Encoding != "" && c.Encoding != DefaultEncoding {
		return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, c.Encoding)
	}
	if _, err := backend.ParsePrecision(c.Precision); err != nil {
		return err
	}
	if c.Accel {
		// Probe the device now so the rejection happens before any I/O.
		if _, err := backend.New(backend.DeviceAccel); err != nil {
			return err
		}
	}
	if c.Orthogonal && c.Unconstrained {
		return ErrPolicyConflict
	}
	if (c.SrcDewhiten != "" || c.TrgDewhiten != "") && !c.Whiten {
		return ErrDewhitenWithoutWhiten
	}
	if _, err := parseDewhiten(c.SrcDewhiten); err != nil {
		return err
	}
	if _, err := parseDewhiten(c.TrgDewhiten); err != nil {
		return err
	}
	if _, err := c.TrainDirection(); err != nil {
		return err
	}
	if _, err := induce.ParseProportion(c.LapProportion); err != nil {
		return err
	}
	for _, tag := range c.Normalize {
		if _, err := embedding.ParseAction(tag); err != nil {
			return err
		}
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: threshold %v", ErrBadValue, c.Threshold)
	}
	if c.NumWords < 0 || c.MaxIterations < 0 || c.LapRank < 0 || c.DimReduction < 0 {
		return fmt.Errorf("%w: negative size setting", ErrBadValue)
	}
	if c.Lapmod && (c.LapChunkSize <= 0 || c.LapRepeats <= 0 || c.LapCandidates <= 0) {
		return fmt.Errorf("%w: assignment sizes must be positive", ErrBadValue)
	}

	return nil
}

// Device returns the configured backend device.
func (c Config) Device() backend.Device {
	if c.Accel {
		return backend.DeviceAccel
	}

	return backend.DeviceCPU
}

// StoragePrecision returns the parsed precision.
func (c Config) StoragePrecision() (backend.Precision, error) {
	return backend.ParsePrecision(c.Precision)
}

// Actions returns the parsed normalization sequence, order preserved.
func (c Config) Actions() ([]embedding.Action, error) {
	out := make([]embedding.Action, 0, len(c.Normalize))
	for _, tag := range c.Normalize {
		a, err := embedding.ParseAction(tag)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, nil
}

// MappingOptions converts the mapping fields into solver options.
func (c Config) MappingOptions() (mapping.Options, error) {
	opts := mapping.Options{
		Policy:       mapping.Advanced,
		Whiten:       c.Whiten,
		SrcReweight:  c.SrcReweight,
		TrgReweight:  c.TrgReweight,
		DimReduction: c.DimReduction,
	}
	switch {
	case c.Orthogonal:
		opts.Policy = mapping.Orthogonal
	case c.Unconstrained:
		opts.Policy = mapping.Unconstrained
	}

	var err error
	if opts.SrcDewhiten, err = parseDewhiten(c.SrcDewhiten); err != nil {
		return mapping.Options{}, err
	}
	if opts.TrgDewhiten, err = parseDewhiten(c.TrgDewhiten); err != nil {
		return mapping.Options{}, err
	}

	return opts, nil
}

// TrainDirection returns the parsed induction direction.
func (c Config) TrainDirection() (induce.Direction, error) {
	switch c.Direction {
	case "", "forward":
		return induce.Forward, nil
	case "backward":
		return induce.Backward, nil
	case "union":
		return induce.Union, nil
	default:
		return induce.Forward, fmt.Errorf("%w: %q", ErrUnknownDirection, c.Direction)
	}
}

// AssignmentOptions converts the assignment fields into inducer options.
func (c Config) AssignmentOptions() (induce.AssignmentOptions, error) {
	prop, err := induce.ParseProportion(c.LapProportion)
	if err != nil {
		return induce.AssignmentOptions{}, err
	}

	return induce.AssignmentOptions{
		ChunkSize:  c.LapChunkSize,
		Candidates: c.LapCandidates,
		Repeats:    c.LapRepeats,
		Proportion: prop,
		Rank:       c.LapRank,
	}, nil
}

// parseDewhiten maps {"", "src", "trg"} onto a DewhitenSide.
func parseDewhiten(tag string) (mapping.DewhitenSide, error) {
	switch tag {
	case "":
		return mapping.DewhitenNone, nil
	case "src":
		return mapping.DewhitenSrc, nil
	case "trg":
		return mapping.DewhitenTrg, nil
	default:
		return mapping.DewhitenNone, fmt.Errorf("%w: %q", ErrUnknownDewhitenSide, tag)
	}
}
