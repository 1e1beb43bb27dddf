package services

import (
	"context"
	"errors"
	"log"
	"time"

	"eksporyuk-api/internal/adapters/persistence/models"
	"eksporyuk-api/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Access lock errors
var (
	ErrGrantNotFound      = errors.New("membership grant not found")
	ErrEnrollmentNotFound = errors.New("course enrollment not found")
	ErrNotLocked          = errors.New("record is not locked")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrCourseNotFound     = errors.New("course not found")
)

// LockResult reports one lock-expired pass
type LockResult struct {
	LockedMembershipCount int       `json:"locked_membership_count"`
	LockedCourseCount     int       `json:"locked_course_count"`
	FailedCount           int       `json:"failed_count"`
	Timestamp             time.Time `json:"timestamp"`
}

// membershipGetter is the slice of the catalog needed to mint grants
type membershipGetter interface {
	GetByID(ctx context.Context, id uint) (*models.Membership, error)
}

// courseGetter is the slice of the catalog needed to mint enrollments
type courseGetter interface {
	GetByID(ctx context.Context, id uint) (*models.Course, error)
}

// AccessLockService evaluates membership grants and course enrollments
// and locks the ones whose validity window has elapsed. It is stateless
// between invocations: every pass re-reads the candidate set from the
// store, so overlapping runs only produce redundant no-op writes.
type AccessLockService struct {
	grantRepo      repositories.MembershipGrantRepository
	enrollmentRepo repositories.CourseEnrollmentRepository
	membershipRepo membershipGetter
	courseRepo     courseGetter
}

// NewAccessLockService creates a new access lock service
func NewAccessLockService(
	grantRepo repositories.MembershipGrantRepository,
	enrollmentRepo repositories.CourseEnrollmentRepository,
	membershipRepo membershipGetter,
	courseRepo courseGetter,
) *AccessLockService {
	return &AccessLockService{
		grantRepo:      grantRepo,
		enrollmentRepo: enrollmentRepo,
		membershipRepo: membershipRepo,
		courseRepo:     courseRepo,
	}
}

// LockExpired transitions every expired ACTIVE grant and enrollment to
// LOCKED. Each record's update is independent: a failure is logged and
// counted, and the pass continues. The conditional status update makes
// re-runs no-ops for rows already transitioned.
func (s *AccessLockService) LockExpired(ctx context.Context) (*LockResult, error) {
	now := time.Now()
	result := &LockResult{Timestamp: now}

	grants, err := s.grantRepo.FindActiveExpired(ctx, now)
	if err != nil {
		return nil, err
	}

	for _, grant := range grants {
		locked, err := s.grantRepo.SetStatus(ctx, grant.ID, models.GrantStatusActive, models.GrantStatusLocked)
		if err != nil {
			log.Printf("❌ Lock membership grant %d error: %v", grant.ID, err)
			result.FailedCount++
			continue
		}
		if locked {
			result.LockedMembershipCount++
		}
	}

	enrollments, err := s.enrollmentRepo.FindActiveExpired(ctx, now)
	if err != nil {
		return nil, err
	}

	for _, enrollment := range enrollments {
		locked, err := s.enrollmentRepo.SetStatus(ctx, enrollment.ID, models.GrantStatusActive, models.GrantStatusLocked)
		if err != nil {
			log.Printf("❌ Lock course enrollment %d error: %v", enrollment.ID, err)
			result.FailedCount++
			continue
		}
		if locked {
			result.LockedCourseCount++
		}
	}

	if result.LockedMembershipCount > 0 || result.LockedCourseCount > 0 {
		log.Printf("🔒 Locked %d membership grants, %d course enrollments (%d failed)",
			result.LockedMembershipCount, result.LockedCourseCount, result.FailedCount)
	}

	return result, nil
}

// RestoreGrant flips a LOCKED membership grant back to ACTIVE (admin restore)
func (s *AccessLockService) RestoreGrant(ctx context.Context, grantID uint) (*models.MembershipGrant, error) {
	grant, err := s.grantRepo.GetByID(ctx, grantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, err
	}

	restored, err := s.grantRepo.SetStatus(ctx, grantID, models.GrantStatusLocked, models.GrantStatusActive)
	if err != nil {
		return nil, err
	}
	if !restored {
		return nil, ErrNotLocked
	}

	grant.Status = models.GrantStatusActive
	return grant, nil
}

// RestoreEnrollment flips a LOCKED course enrollment back to ACTIVE
func (s *AccessLockService) RestoreEnrollment(ctx context.Context, enrollmentID uint) (*models.CourseEnrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	restored, err := s.enrollmentRepo.SetStatus(ctx, enrollmentID, models.GrantStatusLocked, models.GrantStatusActive)
	if err != nil {
		return nil, err
	}
	if !restored {
		return nil, ErrNotLocked
	}

	enrollment.Status = models.GrantStatusActive
	return enrollment, nil
}

// CreateGrantInput represents create grant input
type CreateGrantInput struct {
	UserID       uint `json:"user_id" validate:"required"`
	MembershipID uint `json:"membership_id" validate:"required"`
}

// CreateGrant mints an ACTIVE grant for a user. Expiry is computed from
// the membership plan's duration; zero duration means lifetime access.
func (s *AccessLockService) CreateGrant(ctx context.Context, input *CreateGrantInput) (*models.MembershipGrant, error) {
	membership, err := s.membershipRepo.GetByID(ctx, input.MembershipID)
	if err != nil {
		return nil, ErrMembershipNotFound
	}

	now := time.Now()
	grant := &models.MembershipGrant{
		UserID:       input.UserID,
		MembershipID: membership.ID,
		StartedAt:    now,
		Status:       models.GrantStatusActive,
	}
	if membership.DurationDays > 0 {
		expiresAt := now.AddDate(0, 0, membership.DurationDays)
		grant.ExpiresAt = &expiresAt
	}

	if err := s.grantRepo.Create(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// CreateEnrollmentInput represents create enrollment input
type CreateEnrollmentInput struct {
	UserID   uint `json:"user_id" validate:"required"`
	CourseID uint `json:"course_id" validate:"required"`
	// DurationDays limits access; 0 = lifetime
	DurationDays int `json:"duration_days"`
}

// CreateEnrollment mints an ACTIVE course enrollment for a user
func (s *AccessLockService) CreateEnrollment(ctx context.Context, input *CreateEnrollmentInput) (*models.CourseEnrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, input.CourseID)
	if err != nil {
		return nil, ErrCourseNotFound
	}

	now := time.Now()
	enrollment := &models.CourseEnrollment{
		UserID:    input.UserID,
		CourseID:  course.ID,
		StartedAt: now,
		Status:    models.GrantStatusActive,
	}
	if input.DurationDays > 0 {
		expiresAt := now.AddDate(0, 0, input.DurationDays)
		enrollment.ExpiresAt = &expiresAt
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListGrantsInput represents list input
type ListGrantsInput struct {
	Page  int
	Limit int
}

// ListGrantsOutput represents list output
type ListGrantsOutput struct {
	Grants     []*models.MembershipGrant `json:"grants"`
	Total      int64                     `json:"total"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
}

// ListGrants lists membership grants
func (s *AccessLockService) ListGrants(ctx context.Context, input *ListGrantsInput) (*ListGrantsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit
	grants, total, err := s.grantRepo.List(ctx, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListGrantsOutput{
		Grants:     grants,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// ListEnrollmentsOutput represents enrollment list output
type ListEnrollmentsOutput struct {
	Enrollments []*models.CourseEnrollment `json:"enrollments"`
	Total       int64                      `json:"total"`
	Page        int                        `json:"page"`
	Limit       int                        `json:"limit"`
	TotalPages  int                        `json:"total_pages"`
}

// ListEnrollments lists course enrollments
func (s *AccessLockService) ListEnrollments(ctx context.Context, input *ListGrantsInput) (*ListEnrollmentsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit
	enrollments, total, err := s.enrollmentRepo.List(ctx, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListEnrollmentsOutput{
		Enrollments: enrollments,
		Total:       total,
		Page:        input.Page,
		Limit:       input.Limit,
		TotalPages:  totalPages,
	}, nil
}

// MyAccessOutput bundles a user's own grants and enrollments
type MyAccessOutput struct {
	Grants      []*models.MembershipGrant  `json:"grants"`
	Enrollments []*models.CourseEnrollment `json:"enrollments"`
}

// GetMyAccess returns a user's own grants and enrollments
func (s *AccessLockService) GetMyAccess(ctx context.Context, userID uint) (*MyAccessOutput, error) {
	grants, err := s.grantRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &MyAccessOutput{Grants: grants, Enrollments: enrollments}, nil
}
