package services

import (
	"context"
	"testing"
	"time"

	"eksporyuk-api/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccessFixture() (*AccessLockService, *fakeGrantRepo, *fakeEnrollmentRepo, *fakeMembershipGetter, *fakeCourseGetter) {
	grantRepo := newFakeGrantRepo()
	enrollmentRepo := newFakeEnrollmentRepo()
	memberships := &fakeMembershipGetter{memberships: map[uint]*models.Membership{
		1: {ID: 1, Name: "Pro Tahunan", DurationDays: 365},
		2: {ID: 2, Name: "Lifetime", DurationDays: 0},
	}}
	courses := &fakeCourseGetter{courses: map[uint]*models.Course{
		1: {ID: 1, Title: "Kelas Ekspor Dasar"},
	}}
	service := NewAccessLockService(grantRepo, enrollmentRepo, memberships, courses)
	return service, grantRepo, enrollmentRepo, memberships, courses
}

func seedGrant(repo *fakeGrantRepo, userID uint, status string, expiresAt *time.Time) *models.MembershipGrant {
	grant := &models.MembershipGrant{
		UserID:       userID,
		MembershipID: 1,
		StartedAt:    time.Now().AddDate(0, 0, -30),
		ExpiresAt:    expiresAt,
		Status:       status,
	}
	_ = repo.Create(context.Background(), grant)
	return grant
}

func seedEnrollment(repo *fakeEnrollmentRepo, userID uint, status string, expiresAt *time.Time) *models.CourseEnrollment {
	enrollment := &models.CourseEnrollment{
		UserID:    userID,
		CourseID:  1,
		StartedAt: time.Now().AddDate(0, 0, -30),
		ExpiresAt: expiresAt,
		Status:    status,
	}
	_ = repo.Create(context.Background(), enrollment)
	return enrollment
}

func TestLockExpired(t *testing.T) {
	service, grantRepo, enrollmentRepo, _, _ := newAccessFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	expired := seedGrant(grantRepo, 1, models.GrantStatusActive, &past)
	active := seedGrant(grantRepo, 2, models.GrantStatusActive, &future)
	lifetime := seedGrant(grantRepo, 3, models.GrantStatusActive, nil)
	cancelled := seedGrant(grantRepo, 4, models.GrantStatusCancelled, &past)

	expiredEnrollment := seedEnrollment(enrollmentRepo, 1, models.GrantStatusActive, &past)
	activeEnrollment := seedEnrollment(enrollmentRepo, 2, models.GrantStatusActive, &future)

	result, err := service.LockExpired(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.LockedMembershipCount)
	assert.Equal(t, 1, result.LockedCourseCount)
	assert.Equal(t, 0, result.FailedCount)

	assert.Equal(t, models.GrantStatusLocked, expired.Status)
	assert.Equal(t, models.GrantStatusActive, active.Status)
	assert.Equal(t, models.GrantStatusActive, lifetime.Status)
	assert.Equal(t, models.GrantStatusCancelled, cancelled.Status)
	assert.Equal(t, models.GrantStatusLocked, expiredEnrollment.Status)
	assert.Equal(t, models.GrantStatusActive, activeEnrollment.Status)
}

func TestLockExpiredRerunIsNoOp(t *testing.T) {
	service, grantRepo, _, _, _ := newAccessFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	seedGrant(grantRepo, 1, models.GrantStatusActive, &past)

	first, err := service.LockExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.LockedMembershipCount)

	second, err := service.LockExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.LockedMembershipCount)
	assert.Equal(t, 0, second.LockedCourseCount)
	assert.Equal(t, 0, second.FailedCount)
}

func TestLockExpiredContinuesAfterFailure(t *testing.T) {
	service, grantRepo, _, _, _ := newAccessFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	broken := seedGrant(grantRepo, 1, models.GrantStatusActive, &past)
	healthy := seedGrant(grantRepo, 2, models.GrantStatusActive, &past)
	grantRepo.failStatusIDs[broken.ID] = true

	result, err := service.LockExpired(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.LockedMembershipCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, models.GrantStatusActive, broken.Status)
	assert.Equal(t, models.GrantStatusLocked, healthy.Status)
}

func TestRestoreGrant(t *testing.T) {
	service, grantRepo, _, _, _ := newAccessFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	locked := seedGrant(grantRepo, 1, models.GrantStatusLocked, &past)

	grant, err := service.RestoreGrant(ctx, locked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GrantStatusActive, grant.Status)
}

func TestRestoreGrantNotLocked(t *testing.T) {
	service, grantRepo, _, _, _ := newAccessFixture()
	ctx := context.Background()

	future := time.Now().Add(24 * time.Hour)
	active := seedGrant(grantRepo, 1, models.GrantStatusActive, &future)

	_, err := service.RestoreGrant(ctx, active.ID)
	assert.ErrorIs(t, err, ErrNotLocked)
}

func TestRestoreGrantNotFound(t *testing.T) {
	service, _, _, _, _ := newAccessFixture()

	_, err := service.RestoreGrant(context.Background(), 999)
	assert.ErrorIs(t, err, ErrGrantNotFound)
}

func TestRestoreEnrollment(t *testing.T) {
	service, _, enrollmentRepo, _, _ := newAccessFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	locked := seedEnrollment(enrollmentRepo, 1, models.GrantStatusLocked, &past)

	enrollment, err := service.RestoreEnrollment(ctx, locked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GrantStatusActive, enrollment.Status)

	_, err = service.RestoreEnrollment(ctx, 999)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestCreateGrant(t *testing.T) {
	service, _, _, _, _ := newAccessFixture()
	ctx := context.Background()

	grant, err := service.CreateGrant(ctx, &CreateGrantInput{UserID: 7, MembershipID: 1})
	require.NoError(t, err)

	assert.Equal(t, uint(7), grant.UserID)
	assert.Equal(t, models.GrantStatusActive, grant.Status)
	require.NotNil(t, grant.ExpiresAt)
	expected := time.Now().AddDate(0, 0, 365)
	assert.WithinDuration(t, expected, *grant.ExpiresAt, time.Minute)
}

func TestCreateGrantLifetime(t *testing.T) {
	service, _, _, _, _ := newAccessFixture()

	grant, err := service.CreateGrant(context.Background(), &CreateGrantInput{UserID: 7, MembershipID: 2})
	require.NoError(t, err)
	assert.Nil(t, grant.ExpiresAt)
}

func TestCreateGrantMembershipNotFound(t *testing.T) {
	service, _, _, _, _ := newAccessFixture()

	_, err := service.CreateGrant(context.Background(), &CreateGrantInput{UserID: 7, MembershipID: 999})
	assert.ErrorIs(t, err, ErrMembershipNotFound)
}

func TestCreateEnrollment(t *testing.T) {
	service, _, _, _, _ := newAccessFixture()
	ctx := context.Background()

	enrollment, err := service.CreateEnrollment(ctx, &CreateEnrollmentInput{UserID: 7, CourseID: 1, DurationDays: 30})
	require.NoError(t, err)
	assert.Equal(t, models.GrantStatusActive, enrollment.Status)
	require.NotNil(t, enrollment.ExpiresAt)

	lifetime, err := service.CreateEnrollment(ctx, &CreateEnrollmentInput{UserID: 7, CourseID: 1})
	require.NoError(t, err)
	assert.Nil(t, lifetime.ExpiresAt)

	_, err = service.CreateEnrollment(ctx, &CreateEnrollmentInput{UserID: 7, CourseID: 999})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestGetMyAccess(t *testing.T) {
	service, grantRepo, enrollmentRepo, _, _ := newAccessFixture()
	ctx := context.Background()

	future := time.Now().Add(24 * time.Hour)
	seedGrant(grantRepo, 1, models.GrantStatusActive, &future)
	seedGrant(grantRepo, 2, models.GrantStatusActive, &future)
	seedEnrollment(enrollmentRepo, 1, models.GrantStatusActive, nil)

	access, err := service.GetMyAccess(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, access.Grants, 1)
	assert.Len(t, access.Enrollments, 1)
}

func TestListGrantsPagination(t *testing.T) {
	service, grantRepo, _, _, _ := newAccessFixture()
	ctx := context.Background()

	future := time.Now().Add(24 * time.Hour)
	for i := 0; i < 25; i++ {
		seedGrant(grantRepo, uint(i+1), models.GrantStatusActive, &future)
	}

	out, err := service.ListGrants(ctx, &ListGrantsInput{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, out.Grants, 10)
	assert.Equal(t, int64(25), out.Total)
	assert.Equal(t, 3, out.TotalPages)

	// out of range values fall back to defaults
	out, err = service.ListGrants(ctx, &ListGrantsInput{Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 100, out.Limit)
}
