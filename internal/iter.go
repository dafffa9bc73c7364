package internal

import (
	"iter"
)

// IterRows splits a slice into rows of at most size elements, yielding
// each row with its row index. The final row may be short. Rows share
// storage with data.
func IterRows[T any](data []T, size int) iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		if size <= 0 {
			return
		}
		for row := 0; row*size < len(data); row++ {
			end := min((row+1)*size, len(data))
			if !yield(row, data[row*size:end]) {
				return // Stop if the consumer stops
			}
		}
	}
}
