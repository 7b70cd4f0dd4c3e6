// Package reminder fires a due notification for each task at its due time.
package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"taskbot/internal/domain"
	"taskbot/internal/message"
)

// MaxTimerDelay is the longest span a single timer is allowed to cover,
// just under the 32-bit millisecond ceiling. Delays beyond it are chunked:
// the timer is armed for exactly MaxTimerDelay and the remaining delay is
// re-evaluated when it fires, so a task due arbitrarily far in the future
// still triggers at the correct wall-clock time.
const MaxTimerDelay = 2147483000 * time.Millisecond

type TaskReader interface {
	Get(ctx context.Context, id string) (domain.Task, error)
}

type Enqueuer interface {
	Enqueue(e domain.Envelope)
}

// Scheduler arms one deferred trigger per created task. Deleting a task
// does not retract its trigger; the reminder fires regardless and falls
// back to the task data captured when it was armed.
type Scheduler struct {
	tasks    TaskReader
	queue    Enqueuer
	maxDelay time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
}

func New(tasks TaskReader, queue Enqueuer) *Scheduler {
	return &Scheduler{
		tasks:    tasks,
		queue:    queue,
		maxDelay: MaxTimerDelay,
		stop:     make(chan struct{}),
	}
}

// Arm schedules the task's due notification. Non-blocking.
func (s *Scheduler) Arm(t domain.Task) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.wait(t)
	}()
}

// Stop cancels all pending triggers and waits for them to wind down.
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Scheduler) wait(t domain.Task) {
	for {
		remaining := time.Until(t.DueAt)
		if remaining > s.maxDelay {
			log.Info().
				Str("task_id", t.ID).
				Dur("remaining", remaining).
				Msg("due time beyond max timer delay, arming max and re-evaluating")
			if !s.sleep(s.maxDelay) {
				return
			}
			continue
		}
		if remaining > 0 && !s.sleep(remaining) {
			return
		}
		s.fire(t)
		return
	}
}

func (s *Scheduler) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-s.stop:
		return false
	}
}

func (s *Scheduler) fire(t domain.Task) {
	// Re-read for current state; the task may have been completed or
	// deleted since arming. A missing task still gets its reminder from
	// the armed copy.
	if cur, err := s.tasks.Get(context.Background(), t.ID); err == nil {
		t = cur
	}

	log.Info().Str("task_id", t.ID).Str("channel_id", t.ChannelID).Msg("task due, enqueueing reminder")
	// "error" status is a visual urgency marker on the platform side,
	// not a failure signal.
	s.queue.Enqueue(domain.Envelope{
		ChannelID: t.ChannelID,
		Title:     message.TitleTaskDue,
		Message:   message.ComposeTaskDue(t),
		Status:    domain.StatusError,
	})
}
