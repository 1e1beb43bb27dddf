package handlers

import (
	"strconv"

	"eksporyuk-api/internal/adapters/persistence/models"
	"eksporyuk-api/internal/adapters/persistence/repositories"
	"eksporyuk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles catalog endpoints
type CatalogHandler struct {
	membershipRepo *repositories.MembershipRepository
	productRepo    *repositories.ProductRepository
	courseRepo     *repositories.CourseRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	membershipRepo *repositories.MembershipRepository,
	productRepo *repositories.ProductRepository,
	courseRepo *repositories.CourseRepository,
) *CatalogHandler {
	return &CatalogHandler{
		membershipRepo: membershipRepo,
		productRepo:    productRepo,
		courseRepo:     courseRepo,
	}
}

// ============================================================
// Memberships
// ============================================================

// ListMemberships lists membership plans
// @Summary List memberships
// @Description Get all active membership plans
// @Tags Catalog
// @Accept json
// @Produce json
// @Param all query bool false "Include inactive (Admin)"
// @Success 200 {object} response.Response
// @Router /catalog/memberships [get]
func (h *CatalogHandler) ListMemberships(c *fiber.Ctx) error {
	includeInactive := c.Query("all") == "true"

	var memberships []*models.Membership
	var err error

	if includeInactive {
		memberships, err = h.membershipRepo.ListAll(c.Context())
	} else {
		memberships, err = h.membershipRepo.List(c.Context())
	}

	if err != nil {
		return response.InternalServerError(c, "Failed to list memberships")
	}

	return response.Success(c, "Memberships retrieved successfully", fiber.Map{
		"memberships": memberships,
	})
}

// GetMembership gets a membership plan by ID
// @Summary Get membership
// @Description Get a membership plan by ID
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Membership ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalog/memberships/{id} [get]
func (h *CatalogHandler) GetMembership(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	membership, err := h.membershipRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Membership not found")
	}

	return response.Success(c, "Membership retrieved successfully", fiber.Map{
		"membership": membership,
	})
}

// MembershipRequest represents membership create/update body
type MembershipRequest struct {
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	IsActive     *bool   `json:"is_active"`
}

// CreateMembership creates a membership plan (Admin only)
// @Summary Create membership
// @Description Create a membership plan (Admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MembershipRequest true "Membership data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/catalog/memberships [post]
func (h *CatalogHandler) CreateMembership(c *fiber.Ctx) error {
	var req MembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Slug == "" || req.Name == "" {
		return response.BadRequest(c, "Slug and name are required")
	}
	if req.DurationDays < 0 {
		return response.BadRequest(c, "Duration days cannot be negative")
	}

	membership := &models.Membership{
		Slug:         req.Slug,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		IsActive:     true,
	}
	if req.IsActive != nil {
		membership.IsActive = *req.IsActive
	}

	if err := h.membershipRepo.Create(c.Context(), membership); err != nil {
		return response.InternalServerError(c, "Failed to create membership")
	}

	return response.Created(c, "Membership created successfully", fiber.Map{
		"membership": membership,
	})
}

// UpdateMembership updates a membership plan (Admin only)
// @Summary Update membership
// @Description Update a membership plan (Admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Membership ID"
// @Param body body MembershipRequest true "Membership data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/catalog/memberships/{id} [put]
func (h *CatalogHandler) UpdateMembership(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	membership, err := h.membershipRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Membership not found")
	}

	var req MembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name != "" {
		membership.Name = req.Name
	}
	if req.Description != "" {
		membership.Description = req.Description
	}
	if req.Price > 0 {
		membership.Price = req.Price
	}
	if req.DurationDays >= 0 {
		membership.DurationDays = req.DurationDays
	}
	if req.IsActive != nil {
		membership.IsActive = *req.IsActive
	}

	if err := h.membershipRepo.Update(c.Context(), membership); err != nil {
		return response.InternalServerError(c, "Failed to update membership")
	}

	return response.Success(c, "Membership updated successfully", fiber.Map{
		"membership": membership,
	})
}

// DeleteMembership deletes a membership plan (Admin only)
// @Summary Delete membership
// @Description Delete a membership plan (Admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Membership ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/catalog/memberships/{id} [delete]
func (h *CatalogHandler) DeleteMembership(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if _, err := h.membershipRepo.GetByID(c.Context(), uint(id)); err != nil {
		return response.NotFound(c, "Membership not found")
	}

	if err := h.membershipRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete membership")
	}

	return response.Success(c, "Membership deleted successfully", nil)
}

// ============================================================
// Products
// ============================================================

// ListProducts lists products
// @Summary List products
// @Description Get all active products
// @Tags Catalog
// @Accept json
// @Produce json
// @Param all query bool false "Include inactive (Admin)"
// @Success 200 {object} response.Response
// @Router /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	includeInactive := c.Query("all") == "true"

	var products []*models.Product
	var err error

	if includeInactive {
		products, err = h.productRepo.ListAll(c.Context())
	} else {
		products, err = h.productRepo.List(c.Context())
	}

	if err != nil {
		return response.InternalServerError(c, "Failed to list products")
	}

	return response.Success(c, "Products retrieved successfully", fiber.Map{
		"products": products,
	})
}

// GetProduct gets a product by ID
// @Summary Get product
// @Description Get a product by ID
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	product, err := h.productRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Product not found")
	}

	return response.Success(c, "Product retrieved successfully", fiber.Map{
		"product": product,
	})
}

// ProductRequest represents product create/update body
type ProductRequest struct {
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsActive    *bool   `json:"is_active"`
}

// CreateProduct creates a product (Admin only)
// @Summary Create product
// @Description Create a product (Admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ProductRequest true "Product data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/catalog/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Slug == "" || req.Name == "" {
		return response.BadRequest(c, "Slug and name are required")
	}

	product := &models.Product{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.productRepo.Create(c.Context(), product); err != nil {
		return response.InternalServerError(c, "Failed to create product")
	}

	return response.Created(c, "Product created successfully", fiber.Map{
		"product": product,
	})
}

// UpdateProduct updates a product (Admin only)
// @Summary Update product
// @Description Update a product (Admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param body body ProductRequest true "Product data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/catalog/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	product, err := h.productRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Product not found")
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.productRepo.Update(c.Context(), product); err != nil {
		return response.InternalServerError(c, "Failed to update product")
	}

	return response.Success(c, "Product updated successfully", fiber.Map{
		"product": product,
	})
}

// DeleteProduct deletes a product (Admin only)
// @Summary Delete product
// @Description Delete a product (Admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/catalog/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if _, err := h.productRepo.GetByID(c.Context(), uint(id)); err != nil {
		return response.NotFound(c, "Product not found")
	}

	if err := h.productRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete product")
	}

	return response.Success(c, "Product deleted successfully", nil)
}

// ============================================================
// Courses
// ============================================================

// ListCourses lists courses
// @Summary List courses
// @Description Get all active courses
// @Tags Catalog
// @Accept json
// @Produce json
// @Param all query bool false "Include inactive (Admin)"
// @Success 200 {object} response.Response
// @Router /catalog/courses [get]
func (h *CatalogHandler) ListCourses(c *fiber.Ctx) error {
	includeInactive := c.Query("all") == "true"

	var courses []*models.Course
	var err error

	if includeInactive {
		courses, err = h.courseRepo.ListAll(c.Context())
	} else {
		courses, err = h.courseRepo.List(c.Context())
	}

	if err != nil {
		return response.InternalServerError(c, "Failed to list courses")
	}

	return response.Success(c, "Courses retrieved successfully", fiber.Map{
		"courses": courses,
	})
}

// GetCourse gets a course by ID
// @Summary Get course
// @Description Get a course by ID
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalog/courses/{id} [get]
func (h *CatalogHandler) GetCourse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	course, err := h.courseRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Course not found")
	}

	return response.Success(c, "Course retrieved successfully", fiber.Map{
		"course": course,
	})
}

// CourseRequest represents course create/update body
type CourseRequest struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// CreateCourse creates a course (Admin only)
// @Summary Create course
// @Description Create a course (Admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CourseRequest true "Course data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/catalog/courses [post]
func (h *CatalogHandler) CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Slug == "" || req.Title == "" {
		return response.BadRequest(c, "Slug and title are required")
	}

	course := &models.Course{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := h.courseRepo.Create(c.Context(), course); err != nil {
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, "Course created successfully", fiber.Map{
		"course": course,
	})
}

// UpdateCourse updates a course (Admin only)
// @Summary Update course
// @Description Update a course (Admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body CourseRequest true "Course data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/catalog/courses/{id} [put]
func (h *CatalogHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	course, err := h.courseRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Course not found")
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := h.courseRepo.Update(c.Context(), course); err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}

	return response.Success(c, "Course updated successfully", fiber.Map{
		"course": course,
	})
}

// DeleteCourse deletes a course (Admin only)
// @Summary Delete course
// @Description Delete a course (Admin only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/catalog/courses/{id} [delete]
func (h *CatalogHandler) DeleteCourse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if _, err := h.courseRepo.GetByID(c.Context(), uint(id)); err != nil {
		return response.NotFound(c, "Course not found")
	}

	if err := h.courseRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.Success(c, "Course deleted successfully", nil)
}
