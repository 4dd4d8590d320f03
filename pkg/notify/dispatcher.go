// Package notify records per-user notifications as a side effect of
// successful mutations and optionally fans them out to subscribers.
package notify

import (
	"context"
	"time"

	"islandloaf/internal/util"
	"islandloaf/pkg/domain"
	"islandloaf/pkg/store"
)

// Publisher fans a stored notification out to an external channel.
type Publisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// Dispatcher writes notifications through the store. A failed write is
// logged and dropped: the mutation that triggered it already succeeded and
// is never rolled back.
type Dispatcher struct {
	store      store.Store
	publishers []Publisher
	timeout    time.Duration
}

// NewDispatcher builds a dispatcher; nil publishers are skipped.
func NewDispatcher(s store.Store, publishers ...Publisher) *Dispatcher {
	d := &Dispatcher{store: s, timeout: 5 * time.Second}
	for _, p := range publishers {
		if p != nil {
			d.publishers = append(d.publishers, p)
		}
	}
	return d
}

// Notify stores an unread notification for userID. It reports whether the
// notification was stored; callers never need to act on the result.
func (d *Dispatcher) Notify(ctx context.Context, userID int64, title, message string, kind domain.NotificationType) (domain.Notification, bool) {
	logger := util.LoggerFromContext(ctx)
	n, err := d.store.CreateNotification(ctx, domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
		Read:    false,
	})
	if err != nil {
		logger.Warn("notification write failed", "user_id", userID, "type", string(kind), "err", err)
		return domain.Notification{}, false
	}
	d.fanOut(ctx, n)
	return n, true
}

// NotifyAll sends the same notification to every user in userIDs.
func (d *Dispatcher) NotifyAll(ctx context.Context, userIDs []int64, title, message string, kind domain.NotificationType) int {
	sent := 0
	for _, id := range userIDs {
		if _, ok := d.Notify(ctx, id, title, message, kind); ok {
			sent++
		}
	}
	return sent
}

func (d *Dispatcher) fanOut(ctx context.Context, n domain.Notification) {
	if len(d.publishers) == 0 {
		return
	}
	// Fan-out outlives request cancellation.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()
	logger := util.LoggerFromContext(ctx)
	for _, p := range d.publishers {
		if err := p.Publish(ctx, n); err != nil {
			logger.Warn("notification publish failed", "notification_id", n.ID, "err", err)
		}
	}
}
