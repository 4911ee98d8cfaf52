package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const sendTimeout = 30 * time.Second

// Dispatcher delivers mails in the background. Delivery errors are logged and
// never reach the request that produced the mail.
type Dispatcher struct {
	mailer Mailer
	queue  chan Message
	done   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Message, 100),
	}

	d.done.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.done.Done()
	for m := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.mailer.Send(ctx, m); err != nil {
			slog.Error("mail delivery failed", "to", m.To, "subject", m.Subject, "error", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(m Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		slog.Warn("mail dispatcher closed, dropping message", "to", m.To, "subject", m.Subject)
		return
	}

	select {
	case d.queue <- m:
	default:
		slog.Warn("mail queue full, dropping message", "to", m.To, "subject", m.Subject)
	}
}

// Close drains the queue. Messages dispatched afterwards are dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.done.Wait()
}
