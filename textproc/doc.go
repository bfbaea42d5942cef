// Package textproc tokenizes French and English text for lexical matching.
//
// Text is NFKC-normalized, case-folded and stripped of diacritics before
// being split on anything that is not a letter or a digit, so "Anxiété",
// "anxiete" and "ANXIÉTÉ" all produce the token "anxiete". Stop words are
// removed by Terms and Keywords but kept by Tokenize.
package textproc
