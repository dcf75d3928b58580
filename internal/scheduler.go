package internal

import "errors"

// Job is a schedulable unit of work produced by a watcher's effect when one
// of its flush lanes (pre/post) fires (§6, §4.7).
type Job struct {
	Pre          bool
	InstanceID   int
	AllowRecurse bool
	Run          func()
}

// QueueJob and QueuePost are the opaque external collaborators from §6: the
// host owns the actual pre/post flush point. The zero value runs the job
// immediately, which is the correct standalone-library default when no host
// render loop is present; a host swaps these to integrate with its own
// scheduler.
var QueueJob func(job Job) = func(job Job) { job.Run() }
var QueuePost func(job Job, suspense any) = func(job Job, suspense any) { job.Run() }

// clockScheduler drains the height-ordered effect heap for one goroutine's
// Runtime, re-entrant-safe and with an infinite-loop guard. Single-threaded
// by construction (one per goroutine), so plain bools suffice where the
// teacher used atomics for a shared runtime.
type clockScheduler struct {
	clock     int
	scheduled bool
	running   bool
}

func newClockScheduler() *clockScheduler {
	return &clockScheduler{}
}

func (s *clockScheduler) Schedule() { s.scheduled = true }

func (s *clockScheduler) Time() int { return s.clock }

var errInfiniteUpdateLoop = errors.New("reactive: possible infinite update loop detected")

// Run drives fn repeatedly while work remains scheduled, guarding against
// runaway recursive updates. A no-op re-entrant call (Run called from
// inside fn) returns nil immediately.
func (s *clockScheduler) Run(fn func()) error {
	if s.running {
		return nil
	}
	s.running = true
	defer func() { s.running = false }()

	count := 0
	for s.scheduled {
		s.scheduled = false

		count++
		if count > 100000 {
			return errInfiniteUpdateLoop
		}

		s.clock++
		fn()
	}

	return nil
}
