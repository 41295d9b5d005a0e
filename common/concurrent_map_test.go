package common

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentMap(t *testing.T) {
	m := NewConcurrentMap[int64]()
	wg := sync.WaitGroup{}
	count := 100
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Update("a", func(old int64, exist bool) (int64, bool) {
					return old + 1, true
				})
				val, ok := m.Get("a")
				assert.True(t, ok)
				assert.True(t, val > 0)
			}
		}()
	}
	wg.Wait()

	val, ok := m.Get("a")
	assert.True(t, ok)
	assert.EqualValues(t, count*1000, val)
	assert.Equal(t, 1, m.Count())
}

func TestConcurrentMapUpdateNoStore(t *testing.T) {
	m := NewConcurrentMap[int]()
	for i := 0; i < 10; i++ {
		m.Update(strconv.Itoa(i), func(int, bool) (int, bool) { return i, true })
	}
	assert.Equal(t, 10, m.Count())

	_, stored := m.Update("missing", func(old int, exist bool) (int, bool) {
		assert.False(t, exist)
		return 0, false
	})
	assert.False(t, stored)
	_, ok := m.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 10, m.Count())

	val, stored := m.Update("3", func(old int, exist bool) (int, bool) {
		assert.True(t, exist)
		return old * 10, true
	})
	assert.True(t, stored)
	assert.Equal(t, 30, val)
	val, _ = m.Get("3")
	assert.Equal(t, 30, val)
}
