package workerpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_PreservesIndexOrder(t *testing.T) {
	items := []int{5, 4, 3, 2, 1, 0}
	results := Run(3, items, func(n int) int { return n * 10 })

	assert.Equal(t, []int{50, 40, 30, 20, 10, 0}, results)
}

func TestRun_RespectsWorkerCap(t *testing.T) {
	var active, maxActive int32
	items := make([]int, 20)

	Run(4, items, func(int) int {
		cur := atomic.AddInt32(&active, 1)
		for {
			old := atomic.LoadInt32(&maxActive)
			if cur <= old || atomic.CompareAndSwapInt32(&maxActive, old, cur) {
				break
			}
		}
		atomic.AddInt32(&active, -1)
		return 0
	})

	assert.LessOrEqual(t, int(maxActive), 4)
}

func TestRun_EmptyInput(t *testing.T) {
	results := Run[int, int](4, nil, func(n int) int { return n })
	assert.Empty(t, results)
}
