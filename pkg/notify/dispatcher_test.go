package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"islandloaf/internal/util"
	"islandloaf/pkg/domain"
	"islandloaf/pkg/store"
)

type failingStore struct {
	store.Store
}

func (failingStore) CreateNotification(context.Context, domain.Notification) (domain.Notification, error) {
	return domain.Notification{}, domain.Internal("create notification", errors.New("disk full"))
}

type recordingPublisher struct {
	got []domain.Notification
	err error
}

func (p *recordingPublisher) Publish(_ context.Context, n domain.Notification) error {
	p.got = append(p.got, n)
	return p.err
}

func TestDispatcherStoresUnreadNotification(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	pub := &recordingPublisher{}
	d := NewDispatcher(s, pub)

	n, ok := d.Notify(ctx, 7, "New booking", "Ann booked Spa day", domain.NotifyBookingCreated)
	if !ok {
		t.Fatalf("expected notification to be stored")
	}
	if n.Read || n.ID == 0 || n.CreatedAt.IsZero() {
		t.Fatalf("unexpected notification: %+v", n)
	}
	list, err := s.ListNotifications(ctx, 7, store.NotificationFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Type != domain.NotifyBookingCreated {
		t.Fatalf("unexpected stored notifications: %+v", list)
	}
	if len(pub.got) != 1 || pub.got[0].ID != n.ID {
		t.Fatalf("expected fan-out of stored notification, got %+v", pub.got)
	}
}

func TestDispatcherSwallowsStoreFailure(t *testing.T) {
	var buf bytes.Buffer
	ctx := util.ContextWithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	pub := &recordingPublisher{}
	d := NewDispatcher(failingStore{Store: store.NewMemoryStore()}, pub)

	if _, ok := d.Notify(ctx, 1, "t", "m", domain.NotifyBookingStatus); ok {
		t.Fatalf("expected failed write to report false")
	}
	if !strings.Contains(buf.String(), "notification write failed") {
		t.Fatalf("expected failure to be logged, got %q", buf.String())
	}
	if len(pub.got) != 0 {
		t.Fatalf("nothing should be published when the write fails")
	}
}

func TestDispatcherIgnoresPublisherFailure(t *testing.T) {
	s := store.NewMemoryStore()
	d := NewDispatcher(s, &recordingPublisher{err: errors.New("broker down")})
	if _, ok := d.Notify(context.Background(), 2, "t", "m", domain.NotifyMarketingReady); !ok {
		t.Fatalf("publisher failure must not affect the stored notification")
	}
}

func TestDispatcherNotifyAll(t *testing.T) {
	s := store.NewMemoryStore()
	d := NewDispatcher(s)
	if sent := d.NotifyAll(context.Background(), []int64{1, 2, 3}, "Application", "new vendor", domain.NotifyVendorApplication); sent != 3 {
		t.Fatalf("expected 3 notifications, got %d", sent)
	}
}

func TestRedisPublisherPublishesToUserChannel(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	pub := NewRedisPublisher(client, "test:notifications")

	sub := client.Subscribe(ctx, pub.Channel(5))
	t.Cleanup(func() { _ = sub.Close() })
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	want := domain.Notification{ID: 9, UserID: 5, Title: "Status", Type: domain.NotifyBookingStatus}
	if err := pub.Publish(ctx, want); err != nil {
		t.Fatalf("publish: %v", err)
	}
	select {
	case msg := <-sub.Channel():
		var got domain.Notification
		if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if got.ID != 9 || got.Title != "Status" {
			t.Fatalf("unexpected payload: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for published notification")
	}
}

func TestRoutingKey(t *testing.T) {
	if got := RoutingKey(domain.NotifyBookingCreated); got != "notification.booking_created" {
		t.Fatalf("unexpected routing key %q", got)
	}
}
