package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plasmakit/picmesh/grid"
)

func TestForCoversEveryIndexOnce(t *testing.T) {
	const n = 1000
	hits := make([]int32, n)
	For(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestForEmpty(t *testing.T) {
	called := false
	For(0, func(lo, hi int) { called = true })
	assert.False(t, called)
}

func TestForSingleLane(t *testing.T) {
	old := Degree
	Degree = 1
	defer func() { Degree = old }()

	var spans [][2]int
	For(10, func(lo, hi int) { spans = append(spans, [2]int{lo, hi}) })
	assert.Equal(t, [][2]int{{0, 10}}, spans)
}

func TestForBoxVisitsEveryCell(t *testing.T) {
	b := grid.NewBox(grid.IntVect{-1, 0, 2}, grid.IntVect{3, 2, 6})
	var count int64
	ForBox(b, func(i, j, k int) {
		if !b.Contains(i, j, k) {
			t.Errorf("cell (%d,%d,%d) outside box", i, j, k)
		}
		atomic.AddInt64(&count, 1)
	})
	assert.Equal(t, int64(b.NumPts()), count)
}
