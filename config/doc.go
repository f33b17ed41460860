// Package config holds the run configuration: one immutable value built
// from flags and/or a YAML file, validated once before any computation,
// then passed by value into each component. No component mutates it.
//
// 🧾 Validation is fatal and happens up front:
//
//	• de-whitening without whitening is rejected
//	• requesting the accelerated backend on an unsupported host is rejected
//	• enum tags (precision, policy, direction, proportion, normalization)
//	  must parse
//	• only UTF-8 input is supported; any other encoding tag is rejected
//
// The Config fields mirror the historical command-line surface; typed
// accessors (MappingOptions, TrainDirection, ...) convert the plain tags
// into the enums each package consumes.
package config
