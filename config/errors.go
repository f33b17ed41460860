// Package config: sentinel error set for fatal configuration rejection.
package config

import "errors"

var (
	// ErrDewhitenWithoutWhiten rejects de-whitening without whitening.
	ErrDewhitenWithoutWhiten = errors.New("config: de-whitening requires whitening first")

	// ErrPolicyConflict rejects selecting both orthogonal and unconstrained.
	ErrPolicyConflict = errors.New("config: orthogonal and unconstrained are mutually exclusive")

	// ErrUnsupportedEncoding rejects any input encoding other than UTF-8.
	ErrUnsupportedEncoding = errors.New("config: only utf-8 input is supported")

	// ErrUnknownDewhitenSide rejects a de-whitening tag outside {src, trg}.
	ErrUnknownDewhitenSide = errors.New("config: unknown de-whitening side")

	// ErrUnknownDirection rejects a direction tag outside
	// {forward, backward, union}.
	ErrUnknownDirection = errors.New("config: unknown induction direction")

	// ErrBadValue rejects out-of-range numeric settings.
	ErrBadValue = errors.New("config: value out of range")
)
