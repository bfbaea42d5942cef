// Package fuzzy implements approximate string matching for symptom and
// red-flag detection.
//
// PartialRatio scores how well the shorter of two strings fits somewhere
// inside the longer one on a 0-100 scale, so "mal de dos" and "dos" match
// even though a whole-string edit distance would keep them apart. Matches
// applies the fixed acceptance threshold used throughout praxis.
//
// Inputs are compared as given. Callers lowercase (or otherwise normalize)
// both sides before matching.
package fuzzy
