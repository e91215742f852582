package extract

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf)

	fn := tracker.Func()
	fn(0, 4)
	fn(1, 4)
	fn(4, 4)

	elapsed := tracker.Elapsed()
	assert.Greater(t, elapsed, time.Duration(0), "elapsed time should be positive")

	output := buf.String()
	assert.Contains(t, output, "0/4", "should show initial progress")
	assert.Contains(t, output, "4/4", "should show completion")
	assert.Contains(t, output, "100.0%", "should show 100%")
	assert.True(t, strings.HasSuffix(output, "\n"), "completion should print newline")
}

func TestProgressTracker_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf)

	tracker.Func()(0, 0)

	output := buf.String()
	assert.Contains(t, output, "0/0")
	assert.Contains(t, output, "100.0%")
}

func TestProgressTracker_SuppressesDuplicateUpdates(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf)

	fn := tracker.Func()
	fn(1, 3)
	before := buf.Len()
	fn(1, 3)
	assert.Equal(t, before, buf.Len(), "repeated value should not rewrite")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	tracker := NewProgressTracker(&bytes.Buffer{})
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}
