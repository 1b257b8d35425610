package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/internal/legacy"
	"fleet-dispatch/internal/pricing"
	"fleet-dispatch/pkg/mailer"
	"fleet-dispatch/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// mocks keeps typed handles on the map-backed repositories behind a
// repository.Repository.
type mocks struct {
	users        *mockUserRepo
	sessions     *mockSessionRepo
	bookings     *mockBookingRepo
	customers    *mockCustomerRepo
	vehicles     *mockVehicleRepo
	drivers      *mockDriverRepo
	serviceTypes *mockServiceTypeRepo
	pricing      *mockPricingRepo
	quotations   *mockQuotationRepo
	maintenance  *mockMaintenanceRepo
	inspections  *mockInspectionRepo
}

func newMocks() (*repository.Repository, *mocks) {
	m := &mocks{
		users:        &mockUserRepo{users: map[uuid.UUID]*entity.User{}},
		sessions:     &mockSessionRepo{sessions: map[uuid.UUID]*entity.Session{}},
		bookings:     &mockBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}},
		customers:    &mockCustomerRepo{customers: map[string]*entity.Customer{}},
		vehicles:     &mockVehicleRepo{vehicles: map[uuid.UUID]*entity.Vehicle{}, categories: map[uuid.UUID]*entity.VehicleCategory{}},
		drivers:      &mockDriverRepo{drivers: map[uuid.UUID]*entity.Driver{}},
		serviceTypes: &mockServiceTypeRepo{types: map[uuid.UUID]*entity.ServiceType{}},
		pricing:      &mockPricingRepo{packages: map[uuid.UUID]*entity.PricingPackage{}, usage: map[uuid.UUID]int{}},
		quotations:   &mockQuotationRepo{quotations: map[uuid.UUID]*entity.Quotation{}},
		maintenance:  &mockMaintenanceRepo{tasks: map[uuid.UUID]*entity.MaintenanceTask{}},
		inspections:  &mockInspectionRepo{inspections: map[uuid.UUID]*entity.Inspection{}},
	}
	return &repository.Repository{
		User:        m.users,
		Session:     m.sessions,
		Booking:     m.bookings,
		Customer:    m.customers,
		Vehicle:     m.vehicles,
		Driver:      m.drivers,
		ServiceType: m.serviceTypes,
		Pricing:     m.pricing,
		Quotation:   m.quotations,
		Maintenance: m.maintenance,
		Inspection:  m.inspections,
	}, m
}

func testConfig() *utils.Config {
	return &utils.Config{
		App:     utils.AppConfig{Name: "fleet-dispatch"},
		Email:   utils.EmailConfig{FromName: "Fleet Dispatch", BCC: "ops@example.com"},
		Session: utils.SessionConfig{ExpiryHours: 24},
		Pricing: utils.PricingConfig{TaxJapan: 10, TaxThailand: 7, FallbackBasePrice: pricing.FallbackBasePrice},
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
}

var nopLog = zap.NewNop()

// ==================== USERS / SESSIONS ====================

type mockUserRepo struct {
	users map[uuid.UUID]*entity.User
	err   error
}

func (r *mockUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		// mirrors the case-insensitive unique indexes on users
		if strings.EqualFold(u.Email, user.Email) || strings.EqualFold(u.Username, user.Username) {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users[id], nil
}

func (r *mockUserRepo) FindByLogin(_ context.Context, login string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, login) || u.Username == login {
			return u, nil
		}
	}
	return nil, nil
}

type mockSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
	err      error
}

func (r *mockSessionRepo) Create(_ context.Context, session *entity.Session) error {
	if r.err != nil {
		return r.err
	}
	r.sessions[session.Token] = session
	return nil
}

func (r *mockSessionRepo) FindByToken(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.sessions[token], nil
}

func (r *mockSessionRepo) Revoke(_ context.Context, token uuid.UUID, at time.Time) (uuid.UUID, error) {
	s := r.sessions[token]
	if s == nil || s.RevokedAt != nil {
		return uuid.Nil, fmt.Errorf("session: %w", repository.ErrNotFound)
	}
	s.RevokedAt = &at
	return s.UserID, nil
}

// ==================== BOOKINGS / CUSTOMERS ====================

type mockBookingRepo struct {
	mu        sync.Mutex
	bookings  map[uuid.UUID]*entity.Booking
	seq       int64
	err       error
	upsertErr map[string]error
}

func (r *mockBookingRepo) add(b *entity.Booking) *entity.Booking {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.bookings[b.ID] = b
	return b
}

func (r *mockBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.bookings[b.ID] = b
	return nil
}

func (r *mockBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.bookings[id], nil
}

func (r *mockBookingRepo) findBy(match func(*entity.Booking) bool) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, b := range r.bookings {
		if match(b) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *mockBookingRepo) FindByWPID(_ context.Context, wpID string) (*entity.Booking, error) {
	return r.findBy(func(b *entity.Booking) bool { return b.WPID != nil && *b.WPID == wpID })
}

func (r *mockBookingRepo) FindByBookingNumber(_ context.Context, number string) (*entity.Booking, error) {
	return r.findBy(func(b *entity.Booking) bool { return b.BookingNumber != nil && *b.BookingNumber == number })
}

func (r *mockBookingRepo) filtered(filter entity.BookingFilter) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if filter.Status != "" && filter.Status != "all" && string(b.Status) != filter.Status {
			continue
		}
		if filter.DriverID != nil && (b.DriverID == nil || *b.DriverID != *filter.DriverID) {
			continue
		}
		if filter.FromDate != nil && b.Date.Before(*filter.FromDate) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *mockBookingRepo) FindAll(_ context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := r.filtered(filter)
	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *mockBookingRepo) CountAll(_ context.Context, filter entity.BookingFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(filter))), r.err
}

func (r *mockBookingRepo) mutate(id uuid.UUID, fn func(*entity.Booking)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	fn(b)
	return nil
}

func (r *mockBookingRepo) Update(_ context.Context, booking *entity.Booking) error {
	return r.mutate(booking.ID, func(b *entity.Booking) { *b = *booking })
}

func (r *mockBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.mutate(id, func(*entity.Booking) {}); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.bookings, id)
	r.mu.Unlock()
	return nil
}

func (r *mockBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	return r.mutate(id, func(b *entity.Booking) { b.Status = status })
}

func (r *mockBookingRepo) Reschedule(_ context.Context, id uuid.UUID, date time.Time, clock string) error {
	return r.mutate(id, func(b *entity.Booking) { b.Date, b.Time = date, clock })
}

func (r *mockBookingRepo) Assign(_ context.Context, id uuid.UUID, driverID, vehicleID *uuid.UUID) error {
	return r.mutate(id, func(b *entity.Booking) {
		b.DriverID = driverID
		if vehicleID != nil {
			b.VehicleID = vehicleID
		}
		b.Status = entity.BookingStatusAssigned
	})
}

func (r *mockBookingRepo) Unassign(_ context.Context, id, driverID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	b, ok := r.bookings[id]
	if !ok || b.DriverID == nil || *b.DriverID != driverID {
		return false, nil
	}
	b.DriverID = nil
	b.Status = entity.BookingStatusConfirmed
	return true, nil
}

func (r *mockBookingRepo) NextBookingNumber(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, r.err
}

func (r *mockBookingRepo) UpsertByWPID(_ context.Context, booking *entity.Booking) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.upsertErr[*booking.WPID]; err != nil {
		return false, err
	}
	for id, b := range r.bookings {
		if b.WPID != nil && *b.WPID == *booking.WPID {
			booking.ID = id
			booking.CreatedAt = b.CreatedAt
			r.bookings[id] = booking
			return false, nil
		}
	}
	r.bookings[booking.ID] = booking
	return true, nil
}

type mockCustomerRepo struct {
	customers map[string]*entity.Customer
	err       error
}

func (r *mockCustomerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	return r.customers[email], r.err
}

func (r *mockCustomerRepo) Upsert(_ context.Context, c *entity.Customer) error {
	if r.err != nil {
		return r.err
	}
	if existing, ok := r.customers[c.Email]; ok {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
	} else if c.ID == uuid.Nil {
		c.ID = uuid.New()
		c.CreatedAt = time.Now()
	}
	c.UpdatedAt = time.Now()
	r.customers[c.Email] = c
	return nil
}

// ==================== CATALOG ====================

type mockVehicleRepo struct {
	vehicles   map[uuid.UUID]*entity.Vehicle
	categories map[uuid.UUID]*entity.VehicleCategory
	statusErr  error
}

func (r *mockVehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	return r.vehicles[id], nil
}

func (r *mockVehicleRepo) matching(filter entity.VehicleFilter) []*entity.Vehicle {
	var out []*entity.Vehicle
	for _, v := range r.vehicles {
		if filter.Status != "" && filter.Status != "all" && string(v.Status) != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(v.Brand+" "+v.Model+" "+derefString(v.PlateNumber)), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName() < out[j].DisplayName() })
	return out
}

func (r *mockVehicleRepo) FindAll(_ context.Context, filter entity.VehicleFilter) ([]*entity.Vehicle, error) {
	return paginate(r.matching(filter), filter.Limit, filter.Offset), nil
}

func (r *mockVehicleRepo) CountAll(_ context.Context, filter entity.VehicleFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *mockVehicleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.VehicleStatus) error {
	if r.statusErr != nil {
		return r.statusErr
	}
	v, ok := r.vehicles[id]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", id, repository.ErrNotFound)
	}
	v.Status = status
	return nil
}

func (r *mockVehicleRepo) FindCategoryByID(_ context.Context, id uuid.UUID) (*entity.VehicleCategory, error) {
	return r.categories[id], nil
}

type mockDriverRepo struct {
	drivers map[uuid.UUID]*entity.Driver
}

func (r *mockDriverRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Driver, error) {
	return r.drivers[id], nil
}

func (r *mockDriverRepo) matching(filter entity.DriverFilter) []*entity.Driver {
	var out []*entity.Driver
	for _, d := range r.drivers {
		if filter.Search != "" && !strings.Contains(strings.ToLower(d.FullName()+" "+d.Email), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out
}

func (r *mockDriverRepo) FindAll(_ context.Context, filter entity.DriverFilter) ([]*entity.Driver, error) {
	return paginate(r.matching(filter), filter.Limit, filter.Offset), nil
}

func (r *mockDriverRepo) CountAll(_ context.Context, filter entity.DriverFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

type mockServiceTypeRepo struct {
	types map[uuid.UUID]*entity.ServiceType
}

func (r *mockServiceTypeRepo) add(name, category string) *entity.ServiceType {
	st := &entity.ServiceType{ID: uuid.New(), Name: name, Category: category, IsActive: true}
	r.types[st.ID] = st
	return st
}

func (r *mockServiceTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ServiceType, error) {
	return r.types[id], nil
}

func (r *mockServiceTypeRepo) FindByName(_ context.Context, name string) (*entity.ServiceType, error) {
	for _, st := range r.types {
		if strings.EqualFold(st.Name, name) {
			return st, nil
		}
	}
	return nil, nil
}

type mockPricingRepo struct {
	mu         sync.Mutex
	items      []entity.PricingItem
	packages   map[uuid.UUID]*entity.PricingPackage
	promotions []entity.PricingPromotion
	rules      []entity.TimeBasedRule
	usage      map[uuid.UUID]int
	err        error
}

func (r *mockPricingRepo) FindItems(_ context.Context, serviceTypeID uuid.UUID) ([]entity.PricingItem, error) {
	var out []entity.PricingItem
	for _, it := range r.items {
		if it.ServiceTypeID == serviceTypeID {
			out = append(out, it)
		}
	}
	return out, r.err
}

func (r *mockPricingRepo) FindPackages(context.Context) ([]entity.PricingPackage, error) {
	out := make([]entity.PricingPackage, 0, len(r.packages))
	for _, p := range r.packages {
		out = append(out, *p)
	}
	return out, r.err
}

func (r *mockPricingRepo) FindPackageByID(_ context.Context, id uuid.UUID) (*entity.PricingPackage, error) {
	return r.packages[id], r.err
}

func (r *mockPricingRepo) FindPromotions(context.Context) ([]entity.PricingPromotion, error) {
	return r.promotions, r.err
}

func (r *mockPricingRepo) FindPromotionsByCode(_ context.Context, code string) ([]entity.PricingPromotion, error) {
	var out []entity.PricingPromotion
	for _, p := range r.promotions {
		if strings.EqualFold(p.Code, strings.TrimSpace(code)) {
			out = append(out, p)
		}
	}
	return out, r.err
}

func (r *mockPricingRepo) IncrementPromotionUsage(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usage[id]++
	return nil
}

func (r *mockPricingRepo) FindTimeRules(context.Context) ([]entity.TimeBasedRule, error) {
	return r.rules, r.err
}

// ==================== QUOTATIONS ====================

type mockQuotationRepo struct {
	mu         sync.Mutex
	quotations map[uuid.UUID]*entity.Quotation
	seq        int64
	statusErr  error
	replaced   int
}

func (r *mockQuotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	q.QuoteNumber = r.seq
	r.quotations[q.ID] = q
	return nil
}

func (r *mockQuotationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotations[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	cp.Items = append([]entity.QuotationItem(nil), q.Items...)
	return &cp, nil
}

func (r *mockQuotationRepo) matching(filter entity.QuotationFilter) []*entity.Quotation {
	var out []*entity.Quotation
	for _, q := range r.quotations {
		if filter.Status != "" && filter.Status != "all" && string(q.Status) != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(q.CustomerEmail+" "+q.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuoteNumber > out[j].QuoteNumber })
	return out
}

func (r *mockQuotationRepo) FindAll(_ context.Context, filter entity.QuotationFilter) ([]*entity.Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.matching(filter)
	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *mockQuotationRepo) CountAll(_ context.Context, filter entity.QuotationFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *mockQuotationRepo) Update(_ context.Context, q *entity.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quotations[q.ID]; !ok {
		return fmt.Errorf("quotation %s: %w", q.ID, repository.ErrNotFound)
	}
	r.quotations[q.ID] = q
	return nil
}

func (r *mockQuotationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.QuotationStatus, sentAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.statusErr != nil {
		return r.statusErr
	}
	q, ok := r.quotations[id]
	if !ok {
		return fmt.Errorf("quotation %s: %w", id, repository.ErrNotFound)
	}
	q.Status = status
	if sentAt != nil {
		q.SentAt = sentAt
	}
	return nil
}

func (r *mockQuotationRepo) ReplaceItems(_ context.Context, quotationID uuid.UUID, items []entity.QuotationItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotations[quotationID]
	if !ok {
		return fmt.Errorf("quotation %s: %w", quotationID, repository.ErrNotFound)
	}
	stored := make([]entity.QuotationItem, len(items))
	for i, it := range items {
		it.ID = uuid.New()
		it.QuotationID = quotationID
		stored[i] = it
	}
	q.Items = stored
	r.replaced++
	return nil
}

func (r *mockQuotationRepo) FindItems(_ context.Context, quotationID uuid.UUID) ([]entity.QuotationItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.quotations[quotationID]; ok {
		return q.Items, nil
	}
	return nil, nil
}

// ==================== MAINTENANCE ====================

type mockMaintenanceRepo struct {
	mu        sync.Mutex
	tasks     map[uuid.UUID]*entity.MaintenanceTask
	createErr error
}

func (r *mockMaintenanceRepo) Create(_ context.Context, t *entity.MaintenanceTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.tasks[t.ID] = t
	return nil
}

func (r *mockMaintenanceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MaintenanceTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *mockMaintenanceRepo) matching(filter entity.MaintenanceFilter) []*entity.MaintenanceTask {
	var out []*entity.MaintenanceTask
	for _, t := range r.tasks {
		if filter.Status != "" && filter.Status != "all" && string(t.Status) != filter.Status {
			continue
		}
		if filter.VehicleID != nil && t.VehicleID != *filter.VehicleID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(t.Title+" "+derefString(t.Description)), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *mockMaintenanceRepo) FindAll(_ context.Context, filter entity.MaintenanceFilter) ([]*entity.MaintenanceTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return paginate(r.matching(filter), filter.Limit, filter.Offset), nil
}

func (r *mockMaintenanceRepo) CountAll(_ context.Context, filter entity.MaintenanceFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *mockMaintenanceRepo) Update(_ context.Context, t *entity.MaintenanceTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return fmt.Errorf("maintenance task %s: %w", t.ID, repository.ErrNotFound)
	}
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *mockMaintenanceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return fmt.Errorf("maintenance task %s: %w", id, repository.ErrNotFound)
	}
	delete(r.tasks, id)
	return nil
}

func (r *mockMaintenanceRepo) CountInProgress(_ context.Context, vehicleID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.tasks {
		if t.VehicleID == vehicleID && t.Status == entity.MaintenanceInProgress {
			n++
		}
	}
	return n, nil
}

type mockInspectionRepo struct {
	mu          sync.Mutex
	inspections map[uuid.UUID]*entity.Inspection
}

func (r *mockInspectionRepo) Create(_ context.Context, i *entity.Inspection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inspections[i.ID] = i
	return nil
}

func (r *mockInspectionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.inspections[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	cp.Items = append([]entity.InspectionItem(nil), i.Items...)
	return &cp, nil
}

func (r *mockInspectionRepo) matching(filter entity.InspectionFilter) []*entity.Inspection {
	var out []*entity.Inspection
	for _, i := range r.inspections {
		if filter.Status != "" && filter.Status != "all" && string(i.Status) != filter.Status {
			continue
		}
		if filter.VehicleID != nil && i.VehicleID != *filter.VehicleID {
			continue
		}
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date.After(out[b].Date) })
	return out
}

func (r *mockInspectionRepo) FindAll(_ context.Context, filter entity.InspectionFilter) ([]*entity.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return paginate(r.matching(filter), filter.Limit, filter.Offset), nil
}

func (r *mockInspectionRepo) CountAll(_ context.Context, filter entity.InspectionFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *mockInspectionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.InspectionStatus, completedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.inspections[id]
	if !ok {
		return fmt.Errorf("inspection %s: %w", id, repository.ErrNotFound)
	}
	i.Status = status
	i.CompletedAt = completedAt
	return nil
}

func (r *mockInspectionRepo) SaveResults(_ context.Context, id uuid.UUID, items []entity.InspectionItem, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.inspections[id]
	if !ok {
		return fmt.Errorf("inspection %s: %w", id, repository.ErrNotFound)
	}
	for n := range items {
		items[n].ID = uuid.New()
		items[n].InspectionID = id
	}
	i.Items = append([]entity.InspectionItem(nil), items...)
	i.Status = entity.InspectionCompleted
	i.CompletedAt = &completedAt
	return nil
}

// paginate applies limit and offset the way the SQL repositories do.
func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ==================== COLLABORATORS ====================

type fakeLegacy struct {
	configured bool
	result     *legacy.Result
	err        error
	single     *legacy.SingleResult
	singleErr  error
	fetches    int
	lastFilter legacy.Filter
}

func (f *fakeLegacy) Configured() bool { return f.configured }

func (f *fakeLegacy) FetchBookings(_ context.Context, filter legacy.Filter) (*legacy.Result, error) {
	f.fetches++
	f.lastFilter = filter
	return f.result, f.err
}

func (f *fakeLegacy) FetchBooking(context.Context, string) (*legacy.SingleResult, error) {
	return f.single, f.singleErr
}

type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type staticRates pricing.Rates

func (r staticRates) Rates(context.Context) pricing.Rates { return pricing.Rates(r) }
