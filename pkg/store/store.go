package store

import (
	"context"
	"time"

	"islandloaf/pkg/domain"
)

// Store defines persistence operations for every vendor-owned entity.
//
// Create methods ignore any ID or CreatedAt on the draft and assign them.
// Update methods merge a patch; patches never carry id or owner fields.
// Unknown ids yield an error matching domain.ErrNotFound, including on
// delete. No backend-specific error crosses this interface.
type Store interface {
	// users
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (domain.User, error)

	// services
	CreateService(ctx context.Context, s domain.Service) (domain.Service, error)
	GetService(ctx context.Context, id int64) (domain.Service, error)
	ListServices(ctx context.Context, ownerID int64) ([]domain.Service, error)
	UpdateService(ctx context.Context, id int64, patch ServicePatch) (domain.Service, error)
	DeleteService(ctx context.Context, id int64) error

	// bookings
	CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (domain.Booking, error)
	ListBookings(ctx context.Context, ownerID int64, filter BookingFilter) ([]domain.Booking, error)
	ListAllBookings(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, id int64, patch BookingPatch) (domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error

	// calendars
	CreateCalendarSource(ctx context.Context, src domain.CalendarSource) (domain.CalendarSource, error)
	GetCalendarSource(ctx context.Context, id int64) (domain.CalendarSource, error)
	ListCalendarSources(ctx context.Context, ownerID int64) ([]domain.CalendarSource, error)
	UpdateCalendarSource(ctx context.Context, id int64, patch CalendarSourcePatch) (domain.CalendarSource, error)
	DeleteCalendarSource(ctx context.Context, id int64) error
	CreateCalendarEvent(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error)
	GetCalendarEvent(ctx context.Context, id int64) (domain.CalendarEvent, error)
	ListCalendarEvents(ctx context.Context, ownerID int64, filter CalendarEventFilter) ([]domain.CalendarEvent, error)
	DeleteCalendarEvent(ctx context.Context, id int64) error
	DeleteCalendarEventsBySource(ctx context.Context, sourceID int64) (int, error)

	// notifications
	CreateNotification(ctx context.Context, n domain.Notification) (domain.Notification, error)
	GetNotification(ctx context.Context, id int64) (domain.Notification, error)
	ListNotifications(ctx context.Context, ownerID int64, filter NotificationFilter) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) (domain.Notification, error)
	DeleteNotification(ctx context.Context, id int64) error

	// marketing
	CreateMarketingContent(ctx context.Context, m domain.MarketingContent) (domain.MarketingContent, error)
	GetMarketingContent(ctx context.Context, id int64) (domain.MarketingContent, error)
	ListMarketingContent(ctx context.Context, ownerID int64) ([]domain.MarketingContent, error)
	UpdateMarketingContent(ctx context.Context, id int64, patch MarketingPatch) (domain.MarketingContent, error)
	DeleteMarketingContent(ctx context.Context, id int64) error

	Close() error
}

type UserPatch struct {
	FullName          *string
	BusinessName      *string
	BusinessType      *string
	PasswordHash      *string
	CategoriesAllowed *[]domain.Category
}

type ServicePatch struct {
	Type        *domain.Category
	Name        *string
	Description *string
	BasePrice   *float64
	Available   *bool
}

type BookingPatch struct {
	CustomerName  *string
	CustomerEmail *string
	StartDate     *time.Time
	EndDate       *time.Time
	TotalPrice    *float64
	Commission    *float64
	Status        *domain.BookingStatus
	Notes         *string
}

type CalendarSourcePatch struct {
	Name         *string
	URL          *string
	LastSyncedAt *time.Time
}

type MarketingPatch struct {
	Content  *string
	AssetKey *string
}

// BookingFilter narrows booking lists. Zero values mean "any".
type BookingFilter struct {
	Status      domain.BookingStatus
	ServiceID   int64
	NewestFirst bool
	Limit       int
}

type CalendarEventFilter struct {
	ServiceID int64
	SourceID  int64
}

// NotificationFilter narrows notification lists; results are newest first.
type NotificationFilter struct {
	UnreadOnly bool
	Limit      int
}

// storeTime truncates to the precision Postgres keeps so both backends
// hand back identical timestamps.
func storeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// nextUpdatedAt returns a timestamp strictly after prev.
func nextUpdatedAt(prev time.Time) time.Time {
	now := storeTime(time.Now())
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func cloneCategories(in []domain.Category) []domain.Category {
	if in == nil {
		return []domain.Category{}
	}
	out := make([]domain.Category, len(in))
	copy(out, in)
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := storeTime(*t)
	return &v
}

func cloneIDPtr(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
