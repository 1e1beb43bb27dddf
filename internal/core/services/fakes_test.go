package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"eksporyuk-api/internal/adapters/persistence/models"
	"eksporyuk-api/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// In-memory repository fakes shared across the service tests.

type fakeGrantRepo struct {
	grants map[uint]*models.MembershipGrant
	nextID uint
	// failStatusIDs makes SetStatus error for specific grants
	failStatusIDs map[uint]bool
}

func newFakeGrantRepo() *fakeGrantRepo {
	return &fakeGrantRepo{
		grants:        make(map[uint]*models.MembershipGrant),
		nextID:        1,
		failStatusIDs: make(map[uint]bool),
	}
}

func (r *fakeGrantRepo) Create(_ context.Context, grant *models.MembershipGrant) error {
	grant.ID = r.nextID
	r.nextID++
	r.grants[grant.ID] = grant
	return nil
}

func (r *fakeGrantRepo) GetByID(_ context.Context, id uint) (*models.MembershipGrant, error) {
	grant, ok := r.grants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return grant, nil
}

func (r *fakeGrantRepo) List(_ context.Context, offset, limit int) ([]*models.MembershipGrant, int64, error) {
	all := r.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeGrantRepo) ListByUser(_ context.Context, userID uint) ([]*models.MembershipGrant, error) {
	var out []*models.MembershipGrant
	for _, grant := range r.sorted() {
		if grant.UserID == userID {
			out = append(out, grant)
		}
	}
	return out, nil
}

func (r *fakeGrantRepo) FindActiveExpired(_ context.Context, now time.Time) ([]*models.MembershipGrant, error) {
	var out []*models.MembershipGrant
	for _, grant := range r.sorted() {
		if grant.Status == models.GrantStatusActive && grant.ExpiresAt != nil && !grant.ExpiresAt.After(now) {
			out = append(out, grant)
		}
	}
	return out, nil
}

func (r *fakeGrantRepo) SetStatus(_ context.Context, id uint, from, to string) (bool, error) {
	if r.failStatusIDs[id] {
		return false, errors.New("store failure")
	}
	grant, ok := r.grants[id]
	if !ok || grant.Status != from {
		return false, nil
	}
	grant.Status = to
	return true, nil
}

func (r *fakeGrantRepo) sorted() []*models.MembershipGrant {
	out := make([]*models.MembershipGrant, 0, len(r.grants))
	for _, grant := range r.grants {
		out = append(out, grant)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeEnrollmentRepo struct {
	enrollments   map[uint]*models.CourseEnrollment
	nextID        uint
	failStatusIDs map[uint]bool
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		enrollments:   make(map[uint]*models.CourseEnrollment),
		nextID:        1,
		failStatusIDs: make(map[uint]bool),
	}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.CourseEnrollment) error {
	enrollment.ID = r.nextID
	r.nextID++
	r.enrollments[enrollment.ID] = enrollment
	return nil
}

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, id uint) (*models.CourseEnrollment, error) {
	enrollment, ok := r.enrollments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return enrollment, nil
}

func (r *fakeEnrollmentRepo) List(_ context.Context, offset, limit int) ([]*models.CourseEnrollment, int64, error) {
	all := r.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeEnrollmentRepo) ListByUser(_ context.Context, userID uint) ([]*models.CourseEnrollment, error) {
	var out []*models.CourseEnrollment
	for _, enrollment := range r.sorted() {
		if enrollment.UserID == userID {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) FindActiveExpired(_ context.Context, now time.Time) ([]*models.CourseEnrollment, error) {
	var out []*models.CourseEnrollment
	for _, enrollment := range r.sorted() {
		if enrollment.Status == models.GrantStatusActive && enrollment.ExpiresAt != nil && !enrollment.ExpiresAt.After(now) {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) SetStatus(_ context.Context, id uint, from, to string) (bool, error) {
	if r.failStatusIDs[id] {
		return false, errors.New("store failure")
	}
	enrollment, ok := r.enrollments[id]
	if !ok || enrollment.Status != from {
		return false, nil
	}
	enrollment.Status = to
	return true, nil
}

func (r *fakeEnrollmentRepo) sorted() []*models.CourseEnrollment {
	out := make([]*models.CourseEnrollment, 0, len(r.enrollments))
	for _, enrollment := range r.enrollments {
		out = append(out, enrollment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeMembershipGetter struct {
	memberships map[uint]*models.Membership
}

func (g *fakeMembershipGetter) GetByID(_ context.Context, id uint) (*models.Membership, error) {
	membership, ok := g.memberships[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return membership, nil
}

type fakeCourseGetter struct {
	courses map[uint]*models.Course
}

func (g *fakeCourseGetter) GetByID(_ context.Context, id uint) (*models.Course, error) {
	course, ok := g.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

type fakeRateRepo struct {
	rates  map[uint]*models.CommissionRate
	nextID uint
	// findErr forces FindByScope to fail, simulating a store outage
	findErr error
}

func newFakeRateRepo() *fakeRateRepo {
	return &fakeRateRepo{
		rates:  make(map[uint]*models.CommissionRate),
		nextID: 1,
	}
}

func (r *fakeRateRepo) Create(_ context.Context, rate *models.CommissionRate) error {
	rate.ID = r.nextID
	r.nextID++
	r.rates[rate.ID] = rate
	return nil
}

func (r *fakeRateRepo) GetByID(_ context.Context, id uint) (*models.CommissionRate, error) {
	rate, ok := r.rates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rate, nil
}

func (r *fakeRateRepo) FindByScope(_ context.Context, scopeType string, scopeID *uint) (*models.CommissionRate, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, rate := range r.rates {
		if rate.ScopeType != scopeType {
			continue
		}
		if scopeID == nil && rate.ScopeID == nil {
			return rate, nil
		}
		if scopeID != nil && rate.ScopeID != nil && *scopeID == *rate.ScopeID {
			return rate, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRateRepo) List(_ context.Context) ([]*models.CommissionRate, error) {
	out := make([]*models.CommissionRate, 0, len(r.rates))
	for _, rate := range r.rates {
		out = append(out, rate)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRateRepo) Update(_ context.Context, rate *models.CommissionRate) error {
	if _, ok := r.rates[rate.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.rates[rate.ID] = rate
	return nil
}

func (r *fakeRateRepo) Delete(_ context.Context, id uint) error {
	delete(r.rates, id)
	return nil
}

type fakeEventRepo struct {
	events map[uint]*models.CommissionEvent
	nextID uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[uint]*models.CommissionEvent),
		nextID: 1,
	}
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.CommissionEvent) error {
	event.ID = r.nextID
	r.nextID++
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id uint) (*models.CommissionEvent, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) List(_ context.Context, filter repositories.CommissionEventFilter, offset, limit int) ([]*models.CommissionEvent, int64, error) {
	var matched []*models.CommissionEvent
	for _, event := range r.sorted() {
		if filter.AffiliateUserID != nil && event.AffiliateUserID != *filter.AffiliateUserID {
			continue
		}
		if filter.PayoutStatus != "" && event.PayoutStatus != filter.PayoutStatus {
			continue
		}
		if filter.Since != nil && event.CreatedAt.Before(*filter.Since) {
			continue
		}
		matched = append(matched, event)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeEventRepo) SumByStatus(_ context.Context, affiliateUserID uint) (map[string]float64, error) {
	sums := make(map[string]float64)
	for _, event := range r.events {
		if event.AffiliateUserID == affiliateUserID {
			sums[event.PayoutStatus] += event.Amount
		}
	}
	return sums, nil
}

func (r *fakeEventRepo) Buckets(_ context.Context, since *time.Time) (map[string]repositories.PayoutBucket, error) {
	buckets := make(map[string]repositories.PayoutBucket)
	for _, event := range r.events {
		if since != nil && event.CreatedAt.Before(*since) {
			continue
		}
		bucket := buckets[event.PayoutStatus]
		bucket.Count++
		bucket.Amount += event.Amount
		buckets[event.PayoutStatus] = bucket
	}
	return buckets, nil
}

func (r *fakeEventRepo) GetByIDsAndStatus(_ context.Context, ids []uint, status string) ([]*models.CommissionEvent, error) {
	var out []*models.CommissionEvent
	for _, id := range ids {
		if event, ok := r.events[id]; ok && event.PayoutStatus == status {
			out = append(out, event)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) AdvanceStatus(_ context.Context, ids []uint, from, to string, paidAt *time.Time) (int64, error) {
	var affected int64
	for _, id := range ids {
		event, ok := r.events[id]
		if !ok || event.PayoutStatus != from {
			continue
		}
		event.PayoutStatus = to
		if paidAt != nil {
			event.PaidAt = paidAt
		}
		affected++
	}
	return affected, nil
}

func (r *fakeEventRepo) sorted() []*models.CommissionEvent {
	out := make([]*models.CommissionEvent, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeWalletTxRepo struct {
	transactions []*models.WalletTransaction
	nextID       uint
}

func newFakeWalletTxRepo() *fakeWalletTxRepo {
	return &fakeWalletTxRepo{nextID: 1}
}

func (r *fakeWalletTxRepo) Create(_ context.Context, tx *models.WalletTransaction) error {
	tx.ID = r.nextID
	r.nextID++
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *fakeWalletTxRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.WalletTransaction, int64, error) {
	var matched []*models.WalletTransaction
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			matched = append(matched, tx)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}
