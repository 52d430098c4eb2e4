package checkout

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleFires(t *testing.T) {
	var s advanceScheduler
	done := make(chan struct{})
	s.Schedule(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled advance never fired")
	}
}

func TestCancelPreventsFire(t *testing.T) {
	var s advanceScheduler
	var fired atomic.Int32
	s.Schedule(10*time.Millisecond, func() { fired.Add(1) })
	s.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, fired.Load(), "cancelled advance must not fire")
}

func TestRescheduleInvalidatesPrevious(t *testing.T) {
	var s advanceScheduler
	var first, second atomic.Int32
	s.Schedule(10*time.Millisecond, func() { first.Add(1) })
	s.Schedule(20*time.Millisecond, func() { second.Add(1) })

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, first.Load(), "replaced advance must not fire")
	assert.Equal(t, int32(1), second.Load())
}

func TestStaleGenerationNeverActs(t *testing.T) {
	var s advanceScheduler
	var fired atomic.Int32
	g := s.Schedule(10*time.Millisecond, func() { fired.Add(1) })
	s.Cancel()

	assert.Less(t, g, s.Generation(), "cancel bumps past the armed generation")
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, fired.Load())
}

func TestBuilderStepChangeCancelsPendingAdvance(t *testing.T) {
	b := NewBuilder()
	b.Open()
	require.True(t, b.SetWeight(500))

	// A pick schedules the advance, then the user moves on manually before
	// the timer fires; the stale timer must not advance a second time.
	b.ScheduleAdvance(false)
	require.True(t, b.Next())
	step := b.Step()

	time.Sleep(AdvanceDelayPointer + 100*time.Millisecond)
	assert.Equal(t, step, b.Step(), "stale auto-advance fired after manual next")
}

func TestInterruptCancelsExactlyOnce(t *testing.T) {
	b := NewBuilder()
	b.Open()
	require.True(t, b.SetWeight(500))

	b.ScheduleAdvance(true)
	b.Interrupt()
	b.Interrupt() // second interrupt is a harmless no-op

	time.Sleep(AdvanceDelayTouch + 100*time.Millisecond)
	assert.Equal(t, 1, b.Step(), "interrupted advance must not fire")

	// Manual next still works after an interrupt.
	require.True(t, b.Next())
	assert.Equal(t, 2, b.Step())
}
