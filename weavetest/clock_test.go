package weavetest

import (
	"testing"
	"time"

	"github.com/iov-one/paychan/weavetest/assert"
)

func TestClock(t *testing.T) {
	var c Clock
	assert.Equal(t, int64(0), c.Now().Unix())

	start := time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC)
	c.Set(start)
	c.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), c.Now())
}

type counterState struct {
	value     int
	snapshots []int
}

func (s *counterState) Snapshot() int {
	s.snapshots = append(s.snapshots, s.value)
	return len(s.snapshots) - 1
}

func (s *counterState) RevertTo(id int) error {
	s.value = s.snapshots[id]
	s.snapshots = s.snapshots[:id]
	return nil
}

func TestReverter(t *testing.T) {
	s := &counterState{value: 1}
	r := NewReverter(s)

	r.Run(t, "change is reverted", func(t *testing.T) {
		s.value = 5
	})
	assert.Equal(t, 1, s.value)

	s.value = 7
	r.Revert(t)
	assert.Equal(t, 1, s.value)
}

func TestReverterReuse(t *testing.T) {
	s := &counterState{value: 3}
	r := NewReverter(s)
	for i := 0; i < 3; i++ {
		s.value = 10 + i
		r.Revert(t)
		assert.Equal(t, 3, s.value)
	}
}
