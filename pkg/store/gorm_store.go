package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"islandloaf/pkg/domain"
)

const migrateLockID int64 = 41714171

const uniqueViolation = "23505"

type GormStoreOptions struct {
	MaxOpenConns int
	LogLevel     gormlogger.LogLevel
}

type GormStoreOption func(*GormStoreOptions)

// WithMaxOpenConns caps the connection pool size.
func WithMaxOpenConns(n int) GormStoreOption {
	return func(opts *GormStoreOptions) {
		opts.MaxOpenConns = n
	}
}

// WithLogLevel overrides the GORM logger level (default Warn).
func WithLogLevel(level gormlogger.LogLevel) GormStoreOption {
	return func(opts *GormStoreOptions) {
		opts.LogLevel = level
	}
}

// GormStore implements Store using GORM + Postgres. Every operation is a
// single statement; driver errors are translated into domain errors.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string, options ...GormStoreOption) (*GormStore, error) {
	opts := GormStoreOptions{LogLevel: gormlogger.Warn}
	for _, option := range options {
		if option != nil {
			option(&opts)
		}
	}
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormLog,
		NowFunc: func() time.Time { return storeTime(time.Now()) },
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&UserModel{},
			&ServiceModel{},
			&BookingModel{},
			&CalendarSourceModel{},
			&CalendarEventModel{},
			&NotificationModel{},
			&MarketingContentModel{},
		); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}

// Close releases the connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps driver failures onto the domain taxonomy.
func translate(op, entity string, id int64, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(entity, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return domain.Conflict("username", "username already exists")
		case strings.Contains(pgErr.ConstraintName, "email"):
			return domain.Conflict("email", "email already exists")
		default:
			return domain.Conflict("", entity+" already exists")
		}
	}
	return domain.Internal(op, err)
}

// first loads one row by id into dest.
func (s *GormStore) first(ctx context.Context, dest any, entity string, id int64) error {
	return translate("get "+entity, entity, id, s.db.WithContext(ctx).First(dest, "id = ?", id).Error)
}

// updateReturning applies updates to one row and scans the result back
// into dest in a single UPDATE ... RETURNING round trip.
func (s *GormStore) updateReturning(ctx context.Context, dest any, entity string, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return s.first(ctx, dest, entity, id)
	}
	res := s.db.WithContext(ctx).Model(dest).Clauses(clause.Returning{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate("update "+entity, entity, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(entity, id)
	}
	return nil
}

// deleteByID removes one row; zero affected rows is reported as not found.
func (s *GormStore) deleteByID(ctx context.Context, model any, entity string, id int64) error {
	res := s.db.WithContext(ctx).Delete(model, "id = ?", id)
	if res.Error != nil {
		return translate("delete "+entity, entity, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(entity, id)
	}
	return nil
}

// CreateUser inserts a user; unique violations become conflicts.
func (s *GormStore) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	model := userToModel(u)
	model.ID = 0
	model.CreatedAt = storeTime(time.Now())
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.User{}, translate("create user", "user", 0, err)
	}
	return userFromModel(model)
}

// GetUser returns a user by id.
func (s *GormStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var model UserModel
	if err := s.first(ctx, &model, "user", id); err != nil {
		return domain.User{}, err
	}
	return userFromModel(model)
}

// GetUserByUsername looks up a user by username.
func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.userWhere(ctx, "username", username)
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.userWhere(ctx, "email", email)
}

func (s *GormStore) userWhere(ctx context.Context, column, value string) (domain.User, error) {
	var model UserModel
	if err := s.db.WithContext(ctx).Where(column+" = ?", value).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, &domain.Error{Kind: domain.KindNotFound, Message: "user not found", Field: column}
		}
		return domain.User{}, domain.Internal("get user by "+column, err)
	}
	return userFromModel(model)
}

// ListUsers returns users ordered by id, optionally filtered by role.
func (s *GormStore) ListUsers(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	var models []UserModel
	tx := s.db.WithContext(ctx).Order("id ASC")
	if role != "" {
		tx = tx.Where("role = ?", string(role))
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, domain.Internal("list users", err)
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		u, err := userFromModel(m)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, nil
}

// UpdateUser merges profile changes into a user.
func (s *GormStore) UpdateUser(ctx context.Context, id int64, patch UserPatch) (domain.User, error) {
	updates := map[string]any{}
	if patch.FullName != nil {
		updates["full_name"] = *patch.FullName
	}
	if patch.BusinessName != nil {
		updates["business_name"] = *patch.BusinessName
	}
	if patch.BusinessType != nil {
		updates["business_type"] = *patch.BusinessType
	}
	if patch.PasswordHash != nil {
		updates["password_hash"] = *patch.PasswordHash
	}
	if patch.CategoriesAllowed != nil {
		updates["categories_allowed"] = categoriesToJSON(*patch.CategoriesAllowed)
	}
	var model UserModel
	if err := s.updateReturning(ctx, &model, "user", id, updates); err != nil {
		return domain.User{}, err
	}
	return userFromModel(model)
}

// CreateService inserts a service.
func (s *GormStore) CreateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	model := serviceToModel(svc)
	model.ID = 0
	model.CreatedAt = storeTime(time.Now())
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Service{}, translate("create service", "service", 0, err)
	}
	return serviceFromModel(model), nil
}

// GetService returns a service by id.
func (s *GormStore) GetService(ctx context.Context, id int64) (domain.Service, error) {
	var model ServiceModel
	if err := s.first(ctx, &model, "service", id); err != nil {
		return domain.Service{}, err
	}
	return serviceFromModel(model), nil
}

// ListServices returns the owner's services ordered by id.
func (s *GormStore) ListServices(ctx context.Context, ownerID int64) ([]domain.Service, error) {
	var models []ServiceModel
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, domain.Internal("list services", err)
	}
	res := make([]domain.Service, 0, len(models))
	for _, m := range models {
		res = append(res, serviceFromModel(m))
	}
	return res, nil
}

// UpdateService merges changes into a service.
func (s *GormStore) UpdateService(ctx context.Context, id int64, patch ServicePatch) (domain.Service, error) {
	updates := map[string]any{}
	if patch.Type != nil {
		updates["type"] = string(*patch.Type)
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.BasePrice != nil {
		updates["base_price"] = *patch.BasePrice
	}
	if patch.Available != nil {
		updates["available"] = *patch.Available
	}
	var model ServiceModel
	if err := s.updateReturning(ctx, &model, "service", id, updates); err != nil {
		return domain.Service{}, err
	}
	return serviceFromModel(model), nil
}

// DeleteService removes a service.
func (s *GormStore) DeleteService(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, &ServiceModel{}, "service", id)
}

// CreateBooking inserts a booking; CreatedAt and UpdatedAt start equal.
func (s *GormStore) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	model := bookingToModel(b)
	now := storeTime(time.Now())
	model.ID = 0
	model.CreatedAt = now
	model.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Booking{}, translate("create booking", "booking", 0, err)
	}
	return bookingFromModel(model), nil
}

// GetBooking returns a booking by id.
func (s *GormStore) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	var model BookingModel
	if err := s.first(ctx, &model, "booking", id); err != nil {
		return domain.Booking{}, err
	}
	return bookingFromModel(model), nil
}

// ListBookings returns the owner's bookings.
func (s *GormStore) ListBookings(ctx context.Context, ownerID int64, filter BookingFilter) ([]domain.Booking, error) {
	return s.listBookings(ctx, s.db.WithContext(ctx).Where("user_id = ?", ownerID), filter)
}

// ListAllBookings returns bookings across all owners (admin use only).
func (s *GormStore) ListAllBookings(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	return s.listBookings(ctx, s.db.WithContext(ctx), filter)
}

func (s *GormStore) listBookings(_ context.Context, tx *gorm.DB, filter BookingFilter) ([]domain.Booking, error) {
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.ServiceID != 0 {
		tx = tx.Where("service_id = ?", filter.ServiceID)
	}
	if filter.NewestFirst {
		tx = tx.Order("id DESC")
	} else {
		tx = tx.Order("id ASC")
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	var models []BookingModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, domain.Internal("list bookings", err)
	}
	res := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		res = append(res, bookingFromModel(m))
	}
	return res, nil
}

// UpdateBooking merges changes into a booking. updated_at always moves
// forward by at least one microsecond, even under clock skew.
func (s *GormStore) UpdateBooking(ctx context.Context, id int64, patch BookingPatch) (domain.Booking, error) {
	updates := map[string]any{
		"updated_at": gorm.Expr("GREATEST(?::timestamptz, updated_at + interval '1 microsecond')", storeTime(time.Now())),
	}
	if patch.CustomerName != nil {
		updates["customer_name"] = *patch.CustomerName
	}
	if patch.CustomerEmail != nil {
		updates["customer_email"] = *patch.CustomerEmail
	}
	if patch.StartDate != nil {
		updates["start_date"] = storeTime(*patch.StartDate)
	}
	if patch.EndDate != nil {
		updates["end_date"] = storeTime(*patch.EndDate)
	}
	if patch.TotalPrice != nil {
		updates["total_price"] = *patch.TotalPrice
	}
	if patch.Commission != nil {
		updates["commission"] = *patch.Commission
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	var model BookingModel
	if err := s.updateReturning(ctx, &model, "booking", id, updates); err != nil {
		return domain.Booking{}, err
	}
	return bookingFromModel(model), nil
}

// DeleteBooking removes a booking.
func (s *GormStore) DeleteBooking(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, &BookingModel{}, "booking", id)
}

// CreateCalendarSource inserts a calendar source.
func (s *GormStore) CreateCalendarSource(ctx context.Context, src domain.CalendarSource) (domain.CalendarSource, error) {
	model := sourceToModel(src)
	model.ID = 0
	model.CreatedAt = storeTime(time.Now())
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.CalendarSource{}, translate("create calendar source", "calendar source", 0, err)
	}
	return sourceFromModel(model), nil
}

// GetCalendarSource returns a calendar source by id.
func (s *GormStore) GetCalendarSource(ctx context.Context, id int64) (domain.CalendarSource, error) {
	var model CalendarSourceModel
	if err := s.first(ctx, &model, "calendar source", id); err != nil {
		return domain.CalendarSource{}, err
	}
	return sourceFromModel(model), nil
}

// ListCalendarSources returns the owner's calendar sources.
func (s *GormStore) ListCalendarSources(ctx context.Context, ownerID int64) ([]domain.CalendarSource, error) {
	var models []CalendarSourceModel
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, domain.Internal("list calendar sources", err)
	}
	res := make([]domain.CalendarSource, 0, len(models))
	for _, m := range models {
		res = append(res, sourceFromModel(m))
	}
	return res, nil
}

// UpdateCalendarSource merges changes into a calendar source.
func (s *GormStore) UpdateCalendarSource(ctx context.Context, id int64, patch CalendarSourcePatch) (domain.CalendarSource, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.URL != nil {
		updates["url"] = *patch.URL
	}
	if patch.LastSyncedAt != nil {
		updates["last_synced_at"] = storeTime(*patch.LastSyncedAt)
	}
	var model CalendarSourceModel
	if err := s.updateReturning(ctx, &model, "calendar source", id, updates); err != nil {
		return domain.CalendarSource{}, err
	}
	return sourceFromModel(model), nil
}

// DeleteCalendarSource removes a calendar source and its pulled events.
func (s *GormStore) DeleteCalendarSource(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&CalendarSourceModel{}, "id = ?", id)
		if res.Error != nil {
			return translate("delete calendar source", "calendar source", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.NotFound("calendar source", id)
		}
		if err := tx.Delete(&CalendarEventModel{}, "source_id = ?", id).Error; err != nil {
			return domain.Internal("delete calendar events", err)
		}
		return nil
	})
}

// CreateCalendarEvent inserts a calendar event.
func (s *GormStore) CreateCalendarEvent(ctx context.Context, ev domain.CalendarEvent) (domain.CalendarEvent, error) {
	model := eventToModel(ev)
	model.ID = 0
	model.CreatedAt = storeTime(time.Now())
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.CalendarEvent{}, translate("create calendar event", "calendar event", 0, err)
	}
	return eventFromModel(model), nil
}

// GetCalendarEvent returns one event by id.
func (s *GormStore) GetCalendarEvent(ctx context.Context, id int64) (domain.CalendarEvent, error) {
	var model CalendarEventModel
	if err := s.first(ctx, &model, "calendar event", id); err != nil {
		return domain.CalendarEvent{}, err
	}
	return eventFromModel(model), nil
}

// ListCalendarEvents returns the owner's events ordered by start date.
func (s *GormStore) ListCalendarEvents(ctx context.Context, ownerID int64, filter CalendarEventFilter) ([]domain.CalendarEvent, error) {
	tx := s.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filter.ServiceID != 0 {
		tx = tx.Where("service_id = ?", filter.ServiceID)
	}
	if filter.SourceID != 0 {
		tx = tx.Where("source_id = ?", filter.SourceID)
	}
	var models []CalendarEventModel
	if err := tx.Order("start_date ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, domain.Internal("list calendar events", err)
	}
	res := make([]domain.CalendarEvent, 0, len(models))
	for _, m := range models {
		res = append(res, eventFromModel(m))
	}
	return res, nil
}

// DeleteCalendarEvent removes one event.
func (s *GormStore) DeleteCalendarEvent(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, &CalendarEventModel{}, "calendar event", id)
}

// DeleteCalendarEventsBySource removes every event pulled from sourceID.
func (s *GormStore) DeleteCalendarEventsBySource(ctx context.Context, sourceID int64) (int, error) {
	res := s.db.WithContext(ctx).Delete(&CalendarEventModel{}, "source_id = ?", sourceID)
	if res.Error != nil {
		return 0, domain.Internal("delete calendar events", res.Error)
	}
	return int(res.RowsAffected), nil
}

// CreateNotification inserts a notification.
func (s *GormStore) CreateNotification(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	model := notificationToModel(n)
	model.ID = 0
	model.CreatedAt = storeTime(time.Now())
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Notification{}, translate("create notification", "notification", 0, err)
	}
	return notificationFromModel(model), nil
}

// GetNotification returns a notification by id.
func (s *GormStore) GetNotification(ctx context.Context, id int64) (domain.Notification, error) {
	var model NotificationModel
	if err := s.first(ctx, &model, "notification", id); err != nil {
		return domain.Notification{}, err
	}
	return notificationFromModel(model), nil
}

// ListNotifications returns the owner's notifications, newest first.
func (s *GormStore) ListNotifications(ctx context.Context, ownerID int64, filter NotificationFilter) ([]domain.Notification, error) {
	tx := s.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filter.UnreadOnly {
		tx = tx.Where("read = ?", false)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	var models []NotificationModel
	if err := tx.Order("id DESC").Find(&models).Error; err != nil {
		return nil, domain.Internal("list notifications", err)
	}
	res := make([]domain.Notification, 0, len(models))
	for _, m := range models {
		res = append(res, notificationFromModel(m))
	}
	return res, nil
}

// MarkNotificationRead flips the read flag.
func (s *GormStore) MarkNotificationRead(ctx context.Context, id int64) (domain.Notification, error) {
	var model NotificationModel
	if err := s.updateReturning(ctx, &model, "notification", id, map[string]any{"read": true}); err != nil {
		return domain.Notification{}, err
	}
	return notificationFromModel(model), nil
}

// DeleteNotification removes a notification.
func (s *GormStore) DeleteNotification(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, &NotificationModel{}, "notification", id)
}

// CreateMarketingContent inserts marketing content.
func (s *GormStore) CreateMarketingContent(ctx context.Context, mc domain.MarketingContent) (domain.MarketingContent, error) {
	model := marketingToModel(mc)
	model.ID = 0
	model.CreatedAt = storeTime(time.Now())
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.MarketingContent{}, translate("create marketing content", "marketing content", 0, err)
	}
	return marketingFromModel(model)
}

// GetMarketingContent returns marketing content by id.
func (s *GormStore) GetMarketingContent(ctx context.Context, id int64) (domain.MarketingContent, error) {
	var model MarketingContentModel
	if err := s.first(ctx, &model, "marketing content", id); err != nil {
		return domain.MarketingContent{}, err
	}
	return marketingFromModel(model)
}

// ListMarketingContent returns the owner's marketing content, newest first.
func (s *GormStore) ListMarketingContent(ctx context.Context, ownerID int64) ([]domain.MarketingContent, error) {
	var models []MarketingContentModel
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id DESC").Find(&models).Error; err != nil {
		return nil, domain.Internal("list marketing content", err)
	}
	res := make([]domain.MarketingContent, 0, len(models))
	for _, m := range models {
		mc, err := marketingFromModel(m)
		if err != nil {
			return nil, err
		}
		res = append(res, mc)
	}
	return res, nil
}

// UpdateMarketingContent merges changes into marketing content.
func (s *GormStore) UpdateMarketingContent(ctx context.Context, id int64, patch MarketingPatch) (domain.MarketingContent, error) {
	updates := map[string]any{}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.AssetKey != nil {
		updates["asset_key"] = *patch.AssetKey
	}
	var model MarketingContentModel
	if err := s.updateReturning(ctx, &model, "marketing content", id, updates); err != nil {
		return domain.MarketingContent{}, err
	}
	return marketingFromModel(model)
}

// DeleteMarketingContent removes marketing content.
func (s *GormStore) DeleteMarketingContent(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, &MarketingContentModel{}, "marketing content", id)
}

func categoriesToJSON(cats []domain.Category) datatypes.JSON {
	raw, _ := json.Marshal(cloneCategories(cats))
	return raw
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		FullName:          u.FullName,
		BusinessName:      u.BusinessName,
		BusinessType:      u.BusinessType,
		Role:              string(u.Role),
		CategoriesAllowed: categoriesToJSON(u.CategoriesAllowed),
		CreatedAt:         u.CreatedAt,
	}
}

func userFromModel(m UserModel) (domain.User, error) {
	cats := []domain.Category{}
	if len(m.CategoriesAllowed) > 0 {
		if err := json.Unmarshal(m.CategoriesAllowed, &cats); err != nil {
			return domain.User{}, domain.Internal(fmt.Sprintf("decode categories of user %d", m.ID), err)
		}
	}
	return domain.User{
		ID:                m.ID,
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		FullName:          m.FullName,
		BusinessName:      m.BusinessName,
		BusinessType:      m.BusinessType,
		Role:              domain.UserRole(m.Role),
		CategoriesAllowed: cats,
		CreatedAt:         m.CreatedAt.UTC(),
	}, nil
}

func serviceToModel(s domain.Service) ServiceModel {
	return ServiceModel{
		ID:          s.ID,
		UserID:      s.UserID,
		Type:        string(s.Type),
		Name:        s.Name,
		Description: s.Description,
		BasePrice:   s.BasePrice,
		Available:   s.Available,
		CreatedAt:   s.CreatedAt,
	}
}

func serviceFromModel(m ServiceModel) domain.Service {
	return domain.Service{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        domain.Category(m.Type),
		Name:        m.Name,
		Description: m.Description,
		BasePrice:   m.BasePrice,
		Available:   m.Available,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func bookingToModel(b domain.Booking) BookingModel {
	return BookingModel{
		ID:            b.ID,
		UserID:        b.UserID,
		ServiceID:     b.ServiceID,
		Category:      string(b.Category),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		StartDate:     storeTime(b.StartDate),
		EndDate:       storeTime(b.EndDate),
		TotalPrice:    b.TotalPrice,
		Commission:    b.Commission,
		Status:        string(b.Status),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func bookingFromModel(m BookingModel) domain.Booking {
	return domain.Booking{
		ID:            m.ID,
		UserID:        m.UserID,
		ServiceID:     m.ServiceID,
		Category:      domain.Category(m.Category),
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		StartDate:     m.StartDate.UTC(),
		EndDate:       m.EndDate.UTC(),
		TotalPrice:    m.TotalPrice,
		Commission:    m.Commission,
		Status:        domain.BookingStatus(m.Status),
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

func sourceToModel(src domain.CalendarSource) CalendarSourceModel {
	return CalendarSourceModel{
		ID:           src.ID,
		UserID:       src.UserID,
		ServiceID:    cloneIDPtr(src.ServiceID),
		Name:         src.Name,
		URL:          src.URL,
		Type:         src.Type,
		LastSyncedAt: cloneTimePtr(src.LastSyncedAt),
		CreatedAt:    src.CreatedAt,
	}
}

func sourceFromModel(m CalendarSourceModel) domain.CalendarSource {
	return domain.CalendarSource{
		ID:           m.ID,
		UserID:       m.UserID,
		ServiceID:    cloneIDPtr(m.ServiceID),
		Name:         m.Name,
		URL:          m.URL,
		Type:         m.Type,
		LastSyncedAt: cloneTimePtr(m.LastSyncedAt),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func eventToModel(ev domain.CalendarEvent) CalendarEventModel {
	return CalendarEventModel{
		ID:         ev.ID,
		UserID:     ev.UserID,
		ServiceID:  cloneIDPtr(ev.ServiceID),
		SourceID:   cloneIDPtr(ev.SourceID),
		ExternalID: ev.ExternalID,
		Title:      ev.Title,
		StartDate:  storeTime(ev.StartDate),
		EndDate:    storeTime(ev.EndDate),
		Status:     string(ev.Status),
		CreatedAt:  ev.CreatedAt,
	}
}

func eventFromModel(m CalendarEventModel) domain.CalendarEvent {
	return domain.CalendarEvent{
		ID:         m.ID,
		UserID:     m.UserID,
		ServiceID:  cloneIDPtr(m.ServiceID),
		SourceID:   cloneIDPtr(m.SourceID),
		ExternalID: m.ExternalID,
		Title:      m.Title,
		StartDate:  m.StartDate.UTC(),
		EndDate:    m.EndDate.UTC(),
		Status:     domain.CalendarEventStatus(m.Status),
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func notificationToModel(n domain.Notification) NotificationModel {
	return NotificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func notificationFromModel(m NotificationModel) domain.Notification {
	return domain.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Message:   m.Message,
		Type:      domain.NotificationType(m.Type),
		Read:      m.Read,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func marketingToModel(mc domain.MarketingContent) MarketingContentModel {
	prompt, _ := json.Marshal(cloneStringMap(mc.Prompt))
	return MarketingContentModel{
		ID:          mc.ID,
		UserID:      mc.UserID,
		ContentType: mc.ContentType,
		Content:     mc.Content,
		Prompt:      prompt,
		AssetKey:    mc.AssetKey,
		CreatedAt:   mc.CreatedAt,
	}
}

func marketingFromModel(m MarketingContentModel) (domain.MarketingContent, error) {
	prompt := map[string]string{}
	if len(m.Prompt) > 0 {
		if err := json.Unmarshal(m.Prompt, &prompt); err != nil {
			return domain.MarketingContent{}, domain.Internal(fmt.Sprintf("decode prompt of marketing content %d", m.ID), err)
		}
	}
	return domain.MarketingContent{
		ID:          m.ID,
		UserID:      m.UserID,
		ContentType: m.ContentType,
		Content:     m.Content,
		Prompt:      prompt,
		AssetKey:    m.AssetKey,
		CreatedAt:   m.CreatedAt.UTC(),
	}, nil
}
