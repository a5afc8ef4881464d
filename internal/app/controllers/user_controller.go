package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/models/dto"
	"github.com/edupoint/sis-backend/internal/app/services"
	"github.com/edupoint/sis-backend/internal/middleware"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/export"
	"github.com/edupoint/sis-backend/internal/pkg/helpers"
)

// UserController handles account provisioning and profile operations
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// CreateStudent handles admin provisioning of a student account
// @Summary Create a student account
// @Description Creates a student user with its profile row
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email or registration number already used"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/students [post]
func (c *UserController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	input := services.NewUserInput{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		DepartmentID: req.DepartmentID,
	}

	var dob *time.Time
	if req.DateOfBirth != nil {
		parsed, err := parseDateField(*req.DateOfBirth, "dateOfBirth")
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		dob = &parsed
	}

	student, err := c.userService.CreateStudent(ctx, input, req.RegistrationNo, dob, req.EmergencyContact)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromStudent(student)))
}

// CreateLecturer handles admin provisioning of a lecturer account
// @Summary Create a lecturer account
// @Description Creates a lecturer user with its profile row
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLecturerRequest true "Lecturer information"
// @Success 201 {object} dto.APIResponse{data=dto.LecturerResponse} "Lecturer created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/lecturers [post]
func (c *UserController) CreateLecturer(ctx *gin.Context) {
	var req dto.CreateLecturerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	lecturer, err := c.userService.CreateLecturer(ctx, services.NewUserInput{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromLecturer(lecturer)))
}

// ListUsers handles listing users by role
// @Summary List users by role
// @Description Returns a page of users holding the given role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string true "Role" Enums(STUDENT, LECTURER, ADMIN)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	role := models.RoleType(ctx.Query("role"))
	switch role {
	case models.RoleStudent, models.RoleLecturer, models.RoleAdmin:
	default:
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("role must be STUDENT, LECTURER or ADMIN"))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := c.userService.ListUsersByRole(ctx, role, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.UserListResponse{
		Users:          make([]dto.UserResponse, 0, len(users)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}
	for _, user := range users {
		response.Users = append(response.Users, dto.FromUser(user))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetProfile handles reading the caller's profile
// @Summary Get my profile
// @Description Returns the calling user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, _, ok := requireCaller(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetUserByID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromUser(user)))
}

// UpdateProfile handles updating the caller's profile
// @Summary Update my profile
// @Description Updates the calling user's mutable profile fields
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, _, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	user, err := c.userService.GetUserByID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber
	user.Address = req.Address
	if err := c.userService.UpdateProfile(ctx, user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromUser(user)))
}

// DeactivateUser handles soft-deleting an account
// @Summary Deactivate a user
// @Description Soft-deletes an account and revokes its refresh tokens; rows are never hard-deleted
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "User deactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *UserController) DeactivateUser(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.userService.DeactivateUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "User deactivated"}))
}

// GetStudent handles retrieving one student profile
// @Summary Get a student
// @Description Returns one student profile with its account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *UserController) GetStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.userService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromStudent(student)))
}

// ExportLecturerDirectory handles downloading the lecturer directory
// @Summary Export the lecturer directory
// @Description Streams the lecturer directory as CSV with department and taught courses
// @Tags users
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "Lecturer directory"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/lecturers/export [get]
func (c *UserController) ExportLecturerDirectory(ctx *gin.Context) {
	table, err := c.userService.LecturerDirectoryTable(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="lecturers.csv"`)
	ctx.Header("Content-Type", "text/csv")
	if err := export.WriteCSV(ctx.Writer, table); err != nil {
		middleware.HandleAPIError(ctx, err)
	}
}
