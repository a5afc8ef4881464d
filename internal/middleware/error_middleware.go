package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/sis-backend/internal/app/models/dto"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Controllers call
// it instead of building error payloads themselves, so the mapping from
// sentinel errors to status codes lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	detail := errorDetailFor(err)

	// Surface the specific message and field when the service attached them.
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if customErr.Message != "" {
			detail.Message = customErr.Message
		}
		if customErr.Field != "" {
			detail = detail.WithField(customErr.Field)
		}
		if customErr.Details != nil {
			detail = detail.WithDetails(customErr.Details)
		}
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrDepartmentNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrLecturerNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrGradeNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrRegistrationNoAlreadyUsed),
		errors.Is(err, apperrors.ErrDepartmentAlreadyExists),
		errors.Is(err, apperrors.ErrCourseAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyEnrolled),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDepartmentHasRelations):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidAttendanceStatus),
		errors.Is(err, apperrors.ErrInvalidSession),
		errors.Is(err, apperrors.ErrInvalidReportPeriod),
		errors.Is(err, apperrors.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrAccountDisabled),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func errorDetailFor(err error) *dto.ErrorDetail {
	switch {
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists").WithField("email")
	case errors.Is(err, apperrors.ErrRegistrationNoAlreadyUsed):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Registration number already used").WithField("registrationNo")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Student is already enrolled in this course")
	case errors.Is(err, apperrors.ErrDepartmentAlreadyExists):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Department with this name already exists").WithField("name")
	case errors.Is(err, apperrors.ErrCourseAlreadyExists):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Course with this code already exists").WithField("code")
	case errors.Is(err, apperrors.ErrDepartmentHasRelations):
		return dto.NewErrorDetail(dto.ErrorCodeResourceInUse, "Department has associated data and cannot be deleted")
	case errors.Is(err, apperrors.ErrInvalidAttendanceStatus):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance status").WithField("status")
	case errors.Is(err, apperrors.ErrInvalidSession):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session").WithField("session")
	case errors.Is(err, apperrors.ErrInvalidReportPeriod):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid report period").WithField("period")
	case errors.Is(err, apperrors.ErrInvalidDate):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date").WithField("date")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenRevoked):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrDepartmentNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Department not found")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrLecturerNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Lecturer not found")
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Enrollment not found")
	case errors.Is(err, apperrors.ErrGradeNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Grade not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// BindingError converts a gin binding failure into the standard 400 payload.
func BindingError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
		WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
