package domain

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleVendor UserRole = "vendor"
)

type Category string

const (
	CategoryStays     Category = "stays"
	CategoryTransport Category = "transport"
	CategoryTours     Category = "tours"
	CategoryWellness  Category = "wellness"
	CategoryTickets   Category = "tickets"
	CategoryProducts  Category = "products"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// BookingStatuses is the closed status vocabulary, in lifecycle order.
var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
	BookingCancelled,
	BookingCompleted,
}

// Valid reports whether s belongs to the closed status set.
func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type NotificationType string

const (
	NotifyBookingCreated    NotificationType = "booking_created"
	NotifyBookingStatus     NotificationType = "booking_status_changed"
	NotifyVendorApplication NotificationType = "vendor_application"
	NotifyCategoriesChanged NotificationType = "categories_changed"
	NotifyCalendarSynced    NotificationType = "calendar_synced"
	NotifyMarketingReady    NotificationType = "marketing_ready"
)

type CalendarEventStatus string

const (
	EventBooked  CalendarEventStatus = "booked"
	EventBlocked CalendarEventStatus = "blocked"
)

type User struct {
	ID                int64      `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	FullName          string     `json:"fullName"`
	BusinessName      string     `json:"businessName"`
	BusinessType      string     `json:"businessType"`
	Role              UserRole   `json:"role"`
	CategoriesAllowed []Category `json:"categoriesAllowed"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// CanOperateIn reports whether the user may operate bookings in c.
func (u User) CanOperateIn(c Category) bool {
	for _, allowed := range u.CategoriesAllowed {
		if allowed == c {
			return true
		}
	}
	return false
}

type Service struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Type        Category  `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BasePrice   float64   `json:"basePrice"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"userId"`
	ServiceID     int64         `json:"serviceId"`
	Category      Category      `json:"category"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       time.Time     `json:"endDate"`
	TotalPrice    float64       `json:"totalPrice"`
	Commission    float64       `json:"commission"`
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type CalendarSource struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	ServiceID    *int64     `json:"serviceId,omitempty"`
	Name         string     `json:"name"`
	URL          string     `json:"url"`
	Type         string     `json:"type"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type CalendarEvent struct {
	ID         int64               `json:"id"`
	UserID     int64               `json:"userId"`
	ServiceID  *int64              `json:"serviceId,omitempty"`
	SourceID   *int64              `json:"sourceId,omitempty"`
	ExternalID string              `json:"externalId,omitempty"`
	Title      string              `json:"title"`
	StartDate  time.Time           `json:"startDate"`
	EndDate    time.Time           `json:"endDate"`
	Status     CalendarEventStatus `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
}

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

type MarketingContent struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"userId"`
	ContentType string            `json:"contentType"`
	Content     string            `json:"content"`
	Prompt      map[string]string `json:"prompt,omitempty"`
	AssetKey    string            `json:"-"`
	CreatedAt   time.Time         `json:"createdAt"`
}
