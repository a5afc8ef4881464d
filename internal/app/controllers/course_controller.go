package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/models/dto"
	"github.com/edupoint/sis-backend/internal/app/services"
	"github.com/edupoint/sis-backend/internal/middleware"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a course within a department
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	course := &models.Course{
		Name:         req.Name,
		Code:         req.Code,
		Classroom:    req.Classroom,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
	}
	if err := c.courseService.CreateCourse(ctx, course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromCourse(course)))
}

// GetCourses handles listing courses
// @Summary List courses
// @Description Returns courses, optionally filtered by department
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param departmentId query int false "Department ID filter"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	var departmentID int64
	if raw := ctx.Query("departmentId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err == nil && parsed > 0 {
			departmentID = parsed
		}
	}

	courses, err := c.courseService.GetAllCourses(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.CourseListResponse{Courses: make([]dto.CourseResponse, 0, len(courses))}
	for _, course := range courses {
		response.Courses = append(response.Courses, dto.FromCourse(course))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetCourse handles retrieving one course with its lecturers
// @Summary Get a course
// @Description Returns one course with its department and lecturers
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourse(course)))
}

// UpdateCourse handles course updates
// @Summary Update a course
// @Description Updates a course's attributes
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	course := &models.Course{
		ID:           id,
		Name:         req.Name,
		Code:         req.Code,
		Classroom:    req.Classroom,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
	}
	if err := c.courseService.UpdateCourse(ctx, course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourse(course)))
}

// DeleteCourse handles course deletion
// @Summary Delete a course
// @Description Deletes a course; its enrollments and their attendance cascade
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Course deleted"}))
}

// AssignLecturer handles adding a lecturer to a course
// @Summary Assign a lecturer to a course
// @Description Adds a lecturer to the course's teaching staff; idempotent
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.AssignLecturerRequest true "Lecturer to assign"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Lecturer assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course or lecturer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/lecturers [post]
func (c *CourseController) AssignLecturer(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.AssignLecturerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	if err := c.courseService.AssignLecturer(ctx, id, req.LecturerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Lecturer assigned"}))
}

// RemoveLecturer handles removing a lecturer from a course
// @Summary Remove a lecturer from a course
// @Description Removes a lecturer from the course's teaching staff
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param lecturerId path int true "Lecturer ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Lecturer removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course or assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/lecturers/{lecturerId} [delete]
func (c *CourseController) RemoveLecturer(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	lecturerID, err := parseIDParam(ctx, "lecturerId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.courseService.RemoveLecturer(ctx, id, lecturerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Lecturer removed"}))
}

// GetMyCourses handles listing the courses the calling lecturer teaches
// @Summary List my courses
// @Description Returns the courses taught by the calling lecturer
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lecturer/courses [get]
func (c *CourseController) GetMyCourses(ctx *gin.Context) {
	userID, _, ok := requireCaller(ctx)
	if !ok {
		return
	}

	courses, err := c.courseService.GetCoursesByLecturerUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.CourseListResponse{Courses: make([]dto.CourseResponse, 0, len(courses))}
	for _, course := range courses {
		response.Courses = append(response.Courses, dto.FromCourse(course))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
