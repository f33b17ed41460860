// Package dictionary: sentinel error set, matched via errors.Is.
package dictionary

import "errors"

// ErrBadEntry signals a dictionary line that is not exactly two
// whitespace-separated words. Out-of-vocabulary entries are NOT errors;
// they are dropped (training) or counted (validation/test).
var ErrBadEntry = errors.New("dictionary: malformed entry line")
