package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	assert := assert.New(t)

	var got []string
	var nums []int
	for n, line := range Lines("A\r\nB\n\nC") {
		nums = append(nums, n)
		got = append(got, line)
	}

	assert.Equal([]int{1, 2, 3, 4}, nums)
	assert.Equal([]string{"A", "B", "", "C"}, got)
}

func TestLines_Stop(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for range Lines("A\nB\nC\n") {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[int]string{1: "a"}
	b := map[int]string{2: "b"}

	seq := IterSeq2Concat(maps.All(a), maps.All(b))
	got := maps.Collect(seq)
	assert.Equal(map[int]string{1: "a", 2: "b"}, got)

	keys := slices.Sorted(maps.Keys(got))
	assert.Equal([]int{1, 2}, keys)
}
