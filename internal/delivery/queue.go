// Package delivery buffers outbound messages and posts them to the
// channel's return webhook in the background, so request handling and
// reminder triggers never wait on network I/O.
package delivery

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"taskbot/internal/domain"
)

// Transport performs one delivery attempt to the external channel.
type Transport interface {
	Send(ctx context.Context, channelID string, r domain.Reply) error
}

// Queue is a FIFO of envelopes drained on a fixed tick. Enqueue never
// blocks and never fails; a failed delivery is logged and dropped, with no
// retry and no dead-letter store.
type Queue struct {
	transport Transport
	interval  time.Duration
	cron      *cron.Cron
	draining  atomic.Bool

	mu    sync.Mutex
	items []domain.Envelope
}

func NewQueue(transport Transport, interval time.Duration) *Queue {
	if interval < time.Second {
		// cron's @every rounds sub-second delays up to a second anyway.
		interval = time.Second
	}
	return &Queue{
		transport: transport,
		interval:  interval,
		cron:      cron.New(),
	}
}

// Start begins the periodic drain.
func (q *Queue) Start() error {
	if _, err := q.cron.AddFunc(fmt.Sprintf("@every %s", q.interval), q.Drain); err != nil {
		return err
	}
	q.cron.Start()
	log.Info().Dur("interval", q.interval).Msg("delivery queue started")
	return nil
}

// Stop halts the drain tick and waits for an in-flight drain to finish.
// Anything still queued is discarded with the process.
func (q *Queue) Stop() {
	ctx := q.cron.Stop()
	<-ctx.Done()
}

// Enqueue appends an envelope for delivery on a later tick. Safe to call
// from any goroutine.
func (q *Queue) Enqueue(e domain.Envelope) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Sender == "" {
		e.Sender = domain.SenderBot
	}
	e.EnqueuedAt = time.Now()

	q.mu.Lock()
	q.items = append(q.items, e)
	n := len(q.items)
	q.mu.Unlock()

	log.Debug().Str("delivery_id", e.ID).Str("channel_id", e.ChannelID).Int("queued", n).Msg("envelope enqueued")
}

// Drain delivers every currently queued envelope, oldest first. One
// attempt per envelope; failures are logged and the envelope is dropped.
// At most one drain runs at a time: a tick that fires while a slow
// delivery is still in flight returns immediately instead of starting a
// second drainer, so a hanging endpoint stalls only this loop while the
// queue keeps buffering.
func (q *Queue) Drain() {
	if !q.draining.CompareAndSwap(false, true) {
		return
	}
	defer q.draining.Store(false)

	for {
		e, ok := q.pop()
		if !ok {
			return
		}
		q.deliver(e)
	}
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) pop() (domain.Envelope, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return domain.Envelope{}, false
	}
	e := q.items[0]
	q.items = q.items[1:]
	return e, true
}

func (q *Queue) deliver(e domain.Envelope) {
	reply := domain.Reply{
		Title:   e.Title,
		Message: e.Message,
		Status:  e.Status,
		Sender:  e.Sender,
	}
	if err := q.transport.Send(context.Background(), e.ChannelID, reply); err != nil {
		log.Error().
			Err(err).
			Str("delivery_id", e.ID).
			Str("channel_id", e.ChannelID).
			Msg("outbound delivery failed, dropping envelope")
	}
}
