// Package dictionary holds the three dictionary shapes the mapping engine
// works with and the ways of building them.
//
// 📚 The shapes:
//
//	Dictionary — parallel (source-index, target-index) lists. This is the
//	training dictionary: seeded once, then replaced wholesale every
//	iteration when self-learning is on. Duplicate pairs are allowed.
//
//	Grouped — a one-to-many map from a source index to its set of
//	acceptable target indices, plus out-of-vocabulary accounting. This is
//	the validation/test shape; it is static once loaded.
//
// 🌱 Seeds:
//
//	Load       — parse "<src_word> <trg_word>" lines; entries with a word
//	             missing from either vocabulary are dropped with a warning,
//	             never fatally.
//	Numerals   — words matching ^[0-9]+$ shared by both vocabularies.
//	Identical  — words spelled identically in both vocabularies.
//
// A source word of a Grouped dictionary counts as out-of-vocabulary only
// if none of its gold translations can be resolved; one resolvable
// translation removes it from the OOV set. Coverage is
// |known| / (|known| + |OOV|).
package dictionary
