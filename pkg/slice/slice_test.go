// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/librarium/pkg/slice"
)

func TestMapFilterReduce(t *testing.T) {
	input := []int{1, 2, 3, 4}

	assert.Equal(t, []int{2, 4, 6, 8}, slice.Map(input, func(v int) int { return v * 2 }))
	assert.Equal(t, []int{2, 4}, slice.Filter(input, func(v int) bool { return v%2 == 0 }))
	assert.Equal(t, 10, slice.Reduce(input, 0, func(acc, v int) int { return acc + v }))

	assert.Nil(t, slice.Map[int, int](nil, func(v int) int { return v }))
	assert.Nil(t, slice.Filter[int](nil, func(int) bool { return true }))
}

func TestDistinct_KeepsFirstAppearance(t *testing.T) {
	got := slice.Distinct([]string{"Drama", "Poetry", "Drama", "Essay", "Poetry"})
	assert.Equal(t, []string{"Drama", "Poetry", "Essay"}, got)

	assert.Equal(t, []string{}, slice.Distinct[string](nil))
}
