package audit

import (
	"sync"

	"github.com/BruksfildServices01/certhub/internal/logging"
)

// Actions recorded for the pending-action workflow.
const (
	ActionSubmitted = "pending_action_submitted"
	ActionApproved  = "pending_action_approved"
	ActionRejected  = "pending_action_rejected"
	ActionFailed    = "pending_action_failed"
	ActionCancelled = "pending_action_cancelled"

	ActionUserAdded   = "user_created"
	ActionUserUpdated = "user_updated"

	EntityPendingAction = "pending_action"
	EntityUser          = "user"
)

type Event struct {
	ActorID  *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes events on a background worker so request paths never
// wait on the audit table. A nil Dispatcher drops events.
type Dispatcher struct {
	sink  Sink
	queue chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			logging.Log.WithError(err).
				WithField("action", ev.Action).
				Error("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		// queue full: drop rather than block the request
		logging.Log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close drains queued events and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}
