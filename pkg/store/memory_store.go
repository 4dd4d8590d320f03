package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"islandloaf/pkg/domain"
)

// MemoryStore keeps every entity in id-keyed maps with one monotonic
// counter per entity type. Counters never go backwards, so ids are not
// reused after a delete.
type MemoryStore struct {
	mu sync.Mutex

	users         map[int64]domain.User
	usernames     map[string]int64
	emails        map[string]int64
	services      map[int64]domain.Service
	bookings      map[int64]domain.Booking
	sources       map[int64]domain.CalendarSource
	events        map[int64]domain.CalendarEvent
	notifications map[int64]domain.Notification
	marketing     map[int64]domain.MarketingContent

	nextUser, nextService, nextBooking, nextSource, nextEvent, nextNotification, nextMarketing int64
}

// NewMemoryStore initializes an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[int64]domain.User),
		usernames:     make(map[string]int64),
		emails:        make(map[string]int64),
		services:      make(map[int64]domain.Service),
		bookings:      make(map[int64]domain.Booking),
		sources:       make(map[int64]domain.CalendarSource),
		events:        make(map[int64]domain.CalendarEvent),
		notifications: make(map[int64]domain.Notification),
		marketing:     make(map[int64]domain.MarketingContent),
	}
}

// Close is a no-op; provided for interface parity.
func (m *MemoryStore) Close() error { return nil }

// CreateUser registers a user. Username and email stay unique.
func (m *MemoryStore) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.usernames[u.Username]; taken {
		return domain.User{}, domain.Conflict("username", "username already exists")
	}
	if _, taken := m.emails[u.Email]; taken {
		return domain.User{}, domain.Conflict("email", "email already exists")
	}
	m.nextUser++
	u.ID = m.nextUser
	u.CreatedAt = storeTime(time.Now())
	u.CategoriesAllowed = cloneCategories(u.CategoriesAllowed)
	m.users[u.ID] = u
	m.usernames[u.Username] = u.ID
	m.emails[u.Email] = u.ID
	return copyUser(u), nil
}

// GetUser returns a user by id.
func (m *MemoryStore) GetUser(_ context.Context, id int64) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFound("user", id)
	}
	return copyUser(u), nil
}

// GetUserByUsername looks up a user by username.
func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.usernames[username]
	if !ok {
		return domain.User{}, &domain.Error{Kind: domain.KindNotFound, Message: "user not found", Field: "username"}
	}
	return copyUser(m.users[id]), nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.emails[email]
	if !ok {
		return domain.User{}, &domain.Error{Kind: domain.KindNotFound, Message: "user not found", Field: "email"}
	}
	return copyUser(m.users[id]), nil
}

// ListUsers returns users in creation order, optionally filtered by role.
func (m *MemoryStore) ListUsers(_ context.Context, role domain.UserRole) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		res = append(res, copyUser(u))
	}
	slices.SortFunc(res, func(a, b domain.User) int { return cmp.Compare(a.ID, b.ID) })
	return res, nil
}

// UpdateUser merges profile changes into a user.
func (m *MemoryStore) UpdateUser(_ context.Context, id int64, patch UserPatch) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFound("user", id)
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.BusinessName != nil {
		u.BusinessName = *patch.BusinessName
	}
	if patch.BusinessType != nil {
		u.BusinessType = *patch.BusinessType
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.CategoriesAllowed != nil {
		u.CategoriesAllowed = cloneCategories(*patch.CategoriesAllowed)
	}
	m.users[id] = u
	return copyUser(u), nil
}

// CreateService stores a new service.
func (m *MemoryStore) CreateService(_ context.Context, s domain.Service) (domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextService++
	s.ID = m.nextService
	s.CreatedAt = storeTime(time.Now())
	m.services[s.ID] = s
	return s, nil
}

// GetService returns a service by id.
func (m *MemoryStore) GetService(_ context.Context, id int64) (domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return domain.Service{}, domain.NotFound("service", id)
	}
	return s, nil
}

// ListServices returns the owner's services in creation order.
func (m *MemoryStore) ListServices(_ context.Context, ownerID int64) ([]domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]domain.Service, 0)
	for _, s := range m.services {
		if s.UserID == ownerID {
			res = append(res, s)
		}
	}
	slices.SortFunc(res, func(a, b domain.Service) int { return cmp.Compare(a.ID, b.ID) })
	return res, nil
}

// UpdateService merges changes into a service.
func (m *MemoryStore) UpdateService(_ context.Context, id int64, patch ServicePatch) (domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return domain.Service{}, domain.NotFound("service", id)
	}
	if patch.Type != nil {
		s.Type = *patch.Type
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.BasePrice != nil {
		s.BasePrice = *patch.BasePrice
	}
	if patch.Available != nil {
		s.Available = *patch.Available
	}
	m.services[id] = s
	return s, nil
}

// DeleteService removes a service.
func (m *MemoryStore) DeleteService(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[id]; !ok {
		return domain.NotFound("service", id)
	}
	delete(m.services, id)
	return nil
}

// CreateBooking stores a new booking; CreatedAt and UpdatedAt start equal.
func (m *MemoryStore) CreateBooking(_ context.Context, b domain.Booking) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextBooking++
	now := storeTime(time.Now())
	b.ID = m.nextBooking
	b.StartDate = storeTime(b.StartDate)
	b.EndDate = storeTime(b.EndDate)
	b.CreatedAt = now
	b.UpdatedAt = now
	m.bookings[b.ID] = b
	return b, nil
}

// GetBooking returns a booking by id.
func (m *MemoryStore) GetBooking(_ context.Context, id int64) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, domain.NotFound("booking", id)
	}
	return b, nil
}

// ListBookings returns the owner's bookings.
func (m *MemoryStore) ListBookings(_ context.Context, ownerID int64, filter BookingFilter) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filterBookings(func(b domain.Booking) bool { return b.UserID == ownerID }, filter), nil
}

// ListAllBookings returns bookings across all owners (admin use only).
func (m *MemoryStore) ListAllBookings(_ context.Context, filter BookingFilter) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filterBookings(func(domain.Booking) bool { return true }, filter), nil
}

func (m *MemoryStore) filterBookings(keep func(domain.Booking) bool, filter BookingFilter) []domain.Booking {
	res := make([]domain.Booking, 0)
	for _, b := range m.bookings {
		if !keep(b) {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.ServiceID != 0 && b.ServiceID != filter.ServiceID {
			continue
		}
		res = append(res, b)
	}
	slices.SortFunc(res, func(a, b domain.Booking) int {
		if filter.NewestFirst {
			return cmp.Compare(b.ID, a.ID)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if filter.Limit > 0 && len(res) > filter.Limit {
		res = res[:filter.Limit]
	}
	return res
}

// UpdateBooking merges changes into a booking and advances UpdatedAt.
func (m *MemoryStore) UpdateBooking(_ context.Context, id int64, patch BookingPatch) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, domain.NotFound("booking", id)
	}
	if patch.CustomerName != nil {
		b.CustomerName = *patch.CustomerName
	}
	if patch.CustomerEmail != nil {
		b.CustomerEmail = *patch.CustomerEmail
	}
	if patch.StartDate != nil {
		b.StartDate = storeTime(*patch.StartDate)
	}
	if patch.EndDate != nil {
		b.EndDate = storeTime(*patch.EndDate)
	}
	if patch.TotalPrice != nil {
		b.TotalPrice = *patch.TotalPrice
	}
	if patch.Commission != nil {
		b.Commission = *patch.Commission
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
	}
	b.UpdatedAt = nextUpdatedAt(b.UpdatedAt)
	m.bookings[id] = b
	return b, nil
}

// DeleteBooking removes a booking.
func (m *MemoryStore) DeleteBooking(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return domain.NotFound("booking", id)
	}
	delete(m.bookings, id)
	return nil
}

// CreateCalendarSource registers an external calendar.
func (m *MemoryStore) CreateCalendarSource(_ context.Context, src domain.CalendarSource) (domain.CalendarSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSource++
	src.ID = m.nextSource
	src.CreatedAt = storeTime(time.Now())
	src.ServiceID = cloneIDPtr(src.ServiceID)
	src.LastSyncedAt = cloneTimePtr(src.LastSyncedAt)
	m.sources[src.ID] = src
	return copySource(src), nil
}

// GetCalendarSource returns a calendar source by id.
func (m *MemoryStore) GetCalendarSource(_ context.Context, id int64) (domain.CalendarSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.sources[id]
	if !ok {
		return domain.CalendarSource{}, domain.NotFound("calendar source", id)
	}
	return copySource(src), nil
}

// ListCalendarSources returns the owner's calendar sources.
func (m *MemoryStore) ListCalendarSources(_ context.Context, ownerID int64) ([]domain.CalendarSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]domain.CalendarSource, 0)
	for _, src := range m.sources {
		if src.UserID == ownerID {
			res = append(res, copySource(src))
		}
	}
	slices.SortFunc(res, func(a, b domain.CalendarSource) int { return cmp.Compare(a.ID, b.ID) })
	return res, nil
}

// UpdateCalendarSource merges changes into a calendar source.
func (m *MemoryStore) UpdateCalendarSource(_ context.Context, id int64, patch CalendarSourcePatch) (domain.CalendarSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.sources[id]
	if !ok {
		return domain.CalendarSource{}, domain.NotFound("calendar source", id)
	}
	if patch.Name != nil {
		src.Name = *patch.Name
	}
	if patch.URL != nil {
		src.URL = *patch.URL
	}
	if patch.LastSyncedAt != nil {
		src.LastSyncedAt = cloneTimePtr(patch.LastSyncedAt)
	}
	m.sources[id] = src
	return copySource(src), nil
}

// DeleteCalendarSource removes a calendar source and the events pulled from it.
func (m *MemoryStore) DeleteCalendarSource(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sources[id]; !ok {
		return domain.NotFound("calendar source", id)
	}
	delete(m.sources, id)
	m.deleteEventsBySource(id)
	return nil
}

// CreateCalendarEvent stores a calendar event.
func (m *MemoryStore) CreateCalendarEvent(_ context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextEvent++
	ev.ID = m.nextEvent
	ev.CreatedAt = storeTime(time.Now())
	ev.StartDate = storeTime(ev.StartDate)
	ev.EndDate = storeTime(ev.EndDate)
	ev.ServiceID = cloneIDPtr(ev.ServiceID)
	ev.SourceID = cloneIDPtr(ev.SourceID)
	m.events[ev.ID] = ev
	return copyEvent(ev), nil
}

// GetCalendarEvent returns one event by id.
func (m *MemoryStore) GetCalendarEvent(_ context.Context, id int64) (domain.CalendarEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.events[id]
	if !ok {
		return domain.CalendarEvent{}, domain.NotFound("calendar event", id)
	}
	return copyEvent(ev), nil
}

// ListCalendarEvents returns the owner's events ordered by start date.
func (m *MemoryStore) ListCalendarEvents(_ context.Context, ownerID int64, filter CalendarEventFilter) ([]domain.CalendarEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]domain.CalendarEvent, 0)
	for _, ev := range m.events {
		if ev.UserID != ownerID {
			continue
		}
		if filter.ServiceID != 0 && (ev.ServiceID == nil || *ev.ServiceID != filter.ServiceID) {
			continue
		}
		if filter.SourceID != 0 && (ev.SourceID == nil || *ev.SourceID != filter.SourceID) {
			continue
		}
		res = append(res, copyEvent(ev))
	}
	slices.SortFunc(res, func(a, b domain.CalendarEvent) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return res, nil
}

// DeleteCalendarEvent removes one event.
func (m *MemoryStore) DeleteCalendarEvent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return domain.NotFound("calendar event", id)
	}
	delete(m.events, id)
	return nil
}

// DeleteCalendarEventsBySource removes every event pulled from sourceID.
func (m *MemoryStore) DeleteCalendarEventsBySource(_ context.Context, sourceID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteEventsBySource(sourceID), nil
}

func (m *MemoryStore) deleteEventsBySource(sourceID int64) int {
	removed := 0
	for id, ev := range m.events {
		if ev.SourceID != nil && *ev.SourceID == sourceID {
			delete(m.events, id)
			removed++
		}
	}
	return removed
}

// CreateNotification stores a notification.
func (m *MemoryStore) CreateNotification(_ context.Context, n domain.Notification) (domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextNotification++
	n.ID = m.nextNotification
	n.CreatedAt = storeTime(time.Now())
	m.notifications[n.ID] = n
	return n, nil
}

// GetNotification returns a notification by id.
func (m *MemoryStore) GetNotification(_ context.Context, id int64) (domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return domain.Notification{}, domain.NotFound("notification", id)
	}
	return n, nil
}

// ListNotifications returns the owner's notifications, newest first.
func (m *MemoryStore) ListNotifications(_ context.Context, ownerID int64, filter NotificationFilter) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]domain.Notification, 0)
	for _, n := range m.notifications {
		if n.UserID != ownerID {
			continue
		}
		if filter.UnreadOnly && n.Read {
			continue
		}
		res = append(res, n)
	}
	slices.SortFunc(res, func(a, b domain.Notification) int { return cmp.Compare(b.ID, a.ID) })
	if filter.Limit > 0 && len(res) > filter.Limit {
		res = res[:filter.Limit]
	}
	return res, nil
}

// MarkNotificationRead flips the read flag.
func (m *MemoryStore) MarkNotificationRead(_ context.Context, id int64) (domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return domain.Notification{}, domain.NotFound("notification", id)
	}
	n.Read = true
	m.notifications[id] = n
	return n, nil
}

// DeleteNotification removes a notification.
func (m *MemoryStore) DeleteNotification(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notifications[id]; !ok {
		return domain.NotFound("notification", id)
	}
	delete(m.notifications, id)
	return nil
}

// CreateMarketingContent stores generated marketing content.
func (m *MemoryStore) CreateMarketingContent(_ context.Context, mc domain.MarketingContent) (domain.MarketingContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextMarketing++
	mc.ID = m.nextMarketing
	mc.CreatedAt = storeTime(time.Now())
	mc.Prompt = cloneStringMap(mc.Prompt)
	m.marketing[mc.ID] = mc
	return copyMarketing(mc), nil
}

// GetMarketingContent returns marketing content by id.
func (m *MemoryStore) GetMarketingContent(_ context.Context, id int64) (domain.MarketingContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc, ok := m.marketing[id]
	if !ok {
		return domain.MarketingContent{}, domain.NotFound("marketing content", id)
	}
	return copyMarketing(mc), nil
}

// ListMarketingContent returns the owner's marketing content, newest first.
func (m *MemoryStore) ListMarketingContent(_ context.Context, ownerID int64) ([]domain.MarketingContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]domain.MarketingContent, 0)
	for _, mc := range m.marketing {
		if mc.UserID == ownerID {
			res = append(res, copyMarketing(mc))
		}
	}
	slices.SortFunc(res, func(a, b domain.MarketingContent) int { return cmp.Compare(b.ID, a.ID) })
	return res, nil
}

// UpdateMarketingContent merges changes into marketing content.
func (m *MemoryStore) UpdateMarketingContent(_ context.Context, id int64, patch MarketingPatch) (domain.MarketingContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc, ok := m.marketing[id]
	if !ok {
		return domain.MarketingContent{}, domain.NotFound("marketing content", id)
	}
	if patch.Content != nil {
		mc.Content = *patch.Content
	}
	if patch.AssetKey != nil {
		mc.AssetKey = *patch.AssetKey
	}
	m.marketing[id] = mc
	return copyMarketing(mc), nil
}

// DeleteMarketingContent removes marketing content.
func (m *MemoryStore) DeleteMarketingContent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.marketing[id]; !ok {
		return domain.NotFound("marketing content", id)
	}
	delete(m.marketing, id)
	return nil
}

func copyUser(u domain.User) domain.User {
	u.CategoriesAllowed = cloneCategories(u.CategoriesAllowed)
	return u
}

func copySource(src domain.CalendarSource) domain.CalendarSource {
	src.ServiceID = cloneIDPtr(src.ServiceID)
	src.LastSyncedAt = cloneTimePtr(src.LastSyncedAt)
	return src
}

func copyEvent(ev domain.CalendarEvent) domain.CalendarEvent {
	ev.ServiceID = cloneIDPtr(ev.ServiceID)
	ev.SourceID = cloneIDPtr(ev.SourceID)
	return ev
}

func copyMarketing(mc domain.MarketingContent) domain.MarketingContent {
	mc.Prompt = cloneStringMap(mc.Prompt)
	return mc
}
