package internal

import (
	"iter"
	"strings"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// Lines yields each line of text with its 1-based line number.
// A trailing carriage return is dropped from every line.
func Lines(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		lineno := 0
		for line := range strings.Lines(text) {
			lineno++
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if !yield(lineno, line) {
				return
			}
		}
	}
}
