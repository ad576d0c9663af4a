package session

import "time"

// Scheduler runs fn after delay. The returned cancel function stops a
// pending run and reports whether it did so.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func() bool)
}

// TimerScheduler runs work on a time.AfterFunc goroutine.
type TimerScheduler struct{}

// Schedule implements Scheduler.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() bool {
	t := time.AfterFunc(delay, fn)
	return t.Stop
}

// ImmediateScheduler runs work synchronously, ignoring the delay.
type ImmediateScheduler struct{}

// Schedule implements Scheduler. The returned cancel always reports false
// because fn has already run.
func (ImmediateScheduler) Schedule(_ time.Duration, fn func()) func() bool {
	fn()
	return func() bool { return false }
}
