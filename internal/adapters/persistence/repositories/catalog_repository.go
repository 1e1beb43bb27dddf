package repositories

import (
	"context"

	"eksporyuk-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MembershipRepository handles membership plan data access
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create creates a new membership plan
func (r *MembershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// GetByID gets a membership plan by ID
func (r *MembershipRepository) GetByID(ctx context.Context, id uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).First(&membership, id).Error
	return &membership, err
}

// GetBySlug gets a membership plan by slug
func (r *MembershipRepository) GetBySlug(ctx context.Context, slug string) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&membership).Error
	return &membership, err
}

// List lists all active membership plans
func (r *MembershipRepository) List(ctx context.Context) ([]*models.Membership, error) {
	var memberships []*models.Membership
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&memberships).Error
	return memberships, err
}

// ListAll lists all membership plans including inactive
func (r *MembershipRepository) ListAll(ctx context.Context) ([]*models.Membership, error) {
	var memberships []*models.Membership
	err := r.db.WithContext(ctx).Find(&memberships).Error
	return memberships, err
}

// Update updates a membership plan
func (r *MembershipRepository) Update(ctx context.Context, membership *models.Membership) error {
	return r.db.WithContext(ctx).Save(membership).Error
}

// Delete soft deletes a membership plan
func (r *MembershipRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Membership{}, id).Error
}

// ProductRepository handles product data access
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID gets a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	return &product, err
}

// List lists all active products
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&products).Error
	return products, err
}

// ListAll lists all products including inactive
func (r *ProductRepository) ListAll(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).Find(&products).Error
	return products, err
}

// Update updates a product
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete soft deletes a product
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

// CourseRepository handles course data access
type CourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// GetByID gets a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).First(&course, id).Error
	return &course, err
}

// List lists all active courses
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&courses).Error
	return courses, err
}

// ListAll lists all courses including inactive
func (r *CourseRepository) ListAll(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.WithContext(ctx).Find(&courses).Error
	return courses, err
}

// Update updates a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete soft deletes a course
func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Course{}, id).Error
}
