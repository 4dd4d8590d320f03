package store

import (
	"context"
	"sync/atomic"

	"islandloaf/pkg/domain"
)

// SwitchableStore delegates to a backend that can be replaced at runtime.
// Calls already in flight finish on the backend they started with.
type SwitchableStore struct {
	current atomic.Pointer[storeHolder]
}

type storeHolder struct {
	s Store
}

// NewSwitchableStore wraps initial.
func NewSwitchableStore(initial Store) *SwitchableStore {
	sw := &SwitchableStore{}
	sw.current.Store(&storeHolder{s: initial})
	return sw
}

// Current returns the active backend.
func (sw *SwitchableStore) Current() Store {
	return sw.current.Load().s
}

// Swap installs next and returns the previous backend. The caller owns
// closing it.
func (sw *SwitchableStore) Swap(next Store) Store {
	return sw.current.Swap(&storeHolder{s: next}).s
}

// Close closes the active backend.
func (sw *SwitchableStore) Close() error {
	return sw.Current().Close()
}

func (sw *SwitchableStore) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	return sw.Current().CreateUser(ctx, u)
}

func (sw *SwitchableStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return sw.Current().GetUser(ctx, id)
}

func (sw *SwitchableStore) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return sw.Current().GetUserByUsername(ctx, username)
}

func (sw *SwitchableStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return sw.Current().GetUserByEmail(ctx, email)
}

func (sw *SwitchableStore) ListUsers(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	return sw.Current().ListUsers(ctx, role)
}

func (sw *SwitchableStore) UpdateUser(ctx context.Context, id int64, patch UserPatch) (domain.User, error) {
	return sw.Current().UpdateUser(ctx, id, patch)
}

func (sw *SwitchableStore) CreateService(ctx context.Context, s domain.Service) (domain.Service, error) {
	return sw.Current().CreateService(ctx, s)
}

func (sw *SwitchableStore) GetService(ctx context.Context, id int64) (domain.Service, error) {
	return sw.Current().GetService(ctx, id)
}

func (sw *SwitchableStore) ListServices(ctx context.Context, ownerID int64) ([]domain.Service, error) {
	return sw.Current().ListServices(ctx, ownerID)
}

func (sw *SwitchableStore) UpdateService(ctx context.Context, id int64, patch ServicePatch) (domain.Service, error) {
	return sw.Current().UpdateService(ctx, id, patch)
}

func (sw *SwitchableStore) DeleteService(ctx context.Context, id int64) error {
	return sw.Current().DeleteService(ctx, id)
}

func (sw *SwitchableStore) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return sw.Current().CreateBooking(ctx, b)
}

func (sw *SwitchableStore) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	return sw.Current().GetBooking(ctx, id)
}

func (sw *SwitchableStore) ListBookings(ctx context.Context, ownerID int64, filter BookingFilter) ([]domain.Booking, error) {
	return sw.Current().ListBookings(ctx, ownerID, filter)
}

func (sw *SwitchableStore) ListAllBookings(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	return sw.Current().ListAllBookings(ctx, filter)
}

func (sw *SwitchableStore) UpdateBooking(ctx context.Context, id int64, patch BookingPatch) (domain.Booking, error) {
	return sw.Current().UpdateBooking(ctx, id, patch)
}

func (sw *SwitchableStore) DeleteBooking(ctx context.Context, id int64) error {
	return sw.Current().DeleteBooking(ctx, id)
}

func (sw *SwitchableStore) CreateCalendarSource(ctx context.Context, src domain.CalendarSource) (domain.CalendarSource, error) {
	return sw.Current().CreateCalendarSource(ctx, src)
}

func (sw *SwitchableStore) GetCalendarSource(ctx context.Context, id int64) (domain.CalendarSource, error) {
	return sw.Current().GetCalendarSource(ctx, id)
}

func (sw *SwitchableStore) ListCalendarSources(ctx context.Context, ownerID int64) ([]domain.CalendarSource, error) {
	return sw.Current().ListCalendarSources(ctx, ownerID)
}

func (sw *SwitchableStore) UpdateCalendarSource(ctx context.Context, id int64, patch CalendarSourcePatch) (domain.CalendarSource, error) {
	return sw.Current().UpdateCalendarSource(ctx, id, patch)
}

func (sw *SwitchableStore) DeleteCalendarSource(ctx context.Context, id int64) error {
	return sw.Current().DeleteCalendarSource(ctx, id)
}

func (sw *SwitchableStore) CreateCalendarEvent(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	return sw.Current().CreateCalendarEvent(ctx, ev)
}

func (sw *SwitchableStore) GetCalendarEvent(ctx context.Context, id int64) (domain.CalendarEvent, error) {
	return sw.Current().GetCalendarEvent(ctx, id)
}

func (sw *SwitchableStore) ListCalendarEvents(ctx context.Context, ownerID int64, filter CalendarEventFilter) ([]domain.CalendarEvent, error) {
	return sw.Current().ListCalendarEvents(ctx, ownerID, filter)
}

func (sw *SwitchableStore) DeleteCalendarEvent(ctx context.Context, id int64) error {
	return sw.Current().DeleteCalendarEvent(ctx, id)
}

func (sw *SwitchableStore) DeleteCalendarEventsBySource(ctx context.Context, sourceID int64) (int, error) {
	return sw.Current().DeleteCalendarEventsBySource(ctx, sourceID)
}

func (sw *SwitchableStore) CreateNotification(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	return sw.Current().CreateNotification(ctx, n)
}

func (sw *SwitchableStore) GetNotification(ctx context.Context, id int64) (domain.Notification, error) {
	return sw.Current().GetNotification(ctx, id)
}

func (sw *SwitchableStore) ListNotifications(ctx context.Context, ownerID int64, filter NotificationFilter) ([]domain.Notification, error) {
	return sw.Current().ListNotifications(ctx, ownerID, filter)
}

func (sw *SwitchableStore) MarkNotificationRead(ctx context.Context, id int64) (domain.Notification, error) {
	return sw.Current().MarkNotificationRead(ctx, id)
}

func (sw *SwitchableStore) DeleteNotification(ctx context.Context, id int64) error {
	return sw.Current().DeleteNotification(ctx, id)
}

func (sw *SwitchableStore) CreateMarketingContent(ctx context.Context, m domain.MarketingContent) (domain.MarketingContent, error) {
	return sw.Current().CreateMarketingContent(ctx, m)
}

func (sw *SwitchableStore) GetMarketingContent(ctx context.Context, id int64) (domain.MarketingContent, error) {
	return sw.Current().GetMarketingContent(ctx, id)
}

func (sw *SwitchableStore) ListMarketingContent(ctx context.Context, ownerID int64) ([]domain.MarketingContent, error) {
	return sw.Current().ListMarketingContent(ctx, ownerID)
}

func (sw *SwitchableStore) UpdateMarketingContent(ctx context.Context, id int64, patch MarketingPatch) (domain.MarketingContent, error) {
	return sw.Current().UpdateMarketingContent(ctx, id, patch)
}

func (sw *SwitchableStore) DeleteMarketingContent(ctx context.Context, id int64) error {
	return sw.Current().DeleteMarketingContent(ctx, id)
}
