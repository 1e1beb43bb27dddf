package repositories

import (
	"context"
	"time"

	"eksporyuk-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Membership Grants
// ============================================================

// membershipGrantRepository implements MembershipGrantRepository interface
type membershipGrantRepository struct {
	db *gorm.DB
}

// NewMembershipGrantRepository creates a new membership grant repository
func NewMembershipGrantRepository(db *gorm.DB) MembershipGrantRepository {
	return &membershipGrantRepository{db: db}
}

// Create creates a new membership grant
func (r *membershipGrantRepository) Create(ctx context.Context, grant *models.MembershipGrant) error {
	return r.db.WithContext(ctx).Create(grant).Error
}

// GetByID gets a grant by ID with its membership preloaded
func (r *membershipGrantRepository) GetByID(ctx context.Context, id uint) (*models.MembershipGrant, error) {
	var grant models.MembershipGrant
	err := r.db.WithContext(ctx).
		Preload("Membership").
		Where("id = ?", id).
		First(&grant).Error
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// List lists grants with pagination
func (r *membershipGrantRepository) List(ctx context.Context, offset, limit int) ([]*models.MembershipGrant, int64, error) {
	var grants []*models.MembershipGrant
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.MembershipGrant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Membership").
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&grants).Error
	if err != nil {
		return nil, 0, err
	}

	return grants, total, nil
}

// ListByUser lists all grants of one user
func (r *membershipGrantRepository) ListByUser(ctx context.Context, userID uint) ([]*models.MembershipGrant, error) {
	var grants []*models.MembershipGrant
	err := r.db.WithContext(ctx).
		Preload("Membership").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&grants).Error
	return grants, err
}

// FindActiveExpired returns ACTIVE grants whose expiry has elapsed
func (r *membershipGrantRepository) FindActiveExpired(ctx context.Context, now time.Time) ([]*models.MembershipGrant, error) {
	var grants []*models.MembershipGrant
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", models.GrantStatusActive, now).
		Find(&grants).Error
	return grants, err
}

// SetStatus transitions a grant conditionally on its current status
func (r *membershipGrantRepository) SetStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.MembershipGrant{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ============================================================
// Course Enrollments
// ============================================================

// courseEnrollmentRepository implements CourseEnrollmentRepository interface
type courseEnrollmentRepository struct {
	db *gorm.DB
}

// NewCourseEnrollmentRepository creates a new course enrollment repository
func NewCourseEnrollmentRepository(db *gorm.DB) CourseEnrollmentRepository {
	return &courseEnrollmentRepository{db: db}
}

// Create creates a new course enrollment
func (r *courseEnrollmentRepository) Create(ctx context.Context, enrollment *models.CourseEnrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

// GetByID gets an enrollment by ID with its course preloaded
func (r *courseEnrollmentRepository) GetByID(ctx context.Context, id uint) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("id = ?", id).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// List lists enrollments with pagination
func (r *courseEnrollmentRepository) List(ctx context.Context, offset, limit int) ([]*models.CourseEnrollment, int64, error) {
	var enrollments []*models.CourseEnrollment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.CourseEnrollment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&enrollments).Error
	if err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

// ListByUser lists all enrollments of one user
func (r *courseEnrollmentRepository) ListByUser(ctx context.Context, userID uint) ([]*models.CourseEnrollment, error) {
	var enrollments []*models.CourseEnrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&enrollments).Error
	return enrollments, err
}

// FindActiveExpired returns ACTIVE enrollments whose expiry has elapsed
func (r *courseEnrollmentRepository) FindActiveExpired(ctx context.Context, now time.Time) ([]*models.CourseEnrollment, error) {
	var enrollments []*models.CourseEnrollment
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", models.GrantStatusActive, now).
		Find(&enrollments).Error
	return enrollments, err
}

// SetStatus transitions an enrollment conditionally on its current status
func (r *courseEnrollmentRepository) SetStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.CourseEnrollment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
