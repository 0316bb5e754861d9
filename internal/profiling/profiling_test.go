package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTopNOrdersByDuration(t *testing.T) {
	ResetFrame()
	record("world.render", 4200*time.Microsecond)
	record("world.drain", 100*time.Microsecond)
	record("window.update", 1500*time.Microsecond)

	assert.Equal(t, "world.render:4.2ms, window.update:1.5ms", TopN(2))
	assert.Equal(t, "", TopN(-1))
	assert.Equal(t, 4300*time.Microsecond, SumWithPrefix("world."))

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Equal(t, "", TopN(3))
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	Track("x")()
	Track("x")()
	assert.Contains(t, Snapshot(), "x")
}
