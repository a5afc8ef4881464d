package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/sis-backend/internal/app/models/dto"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, &body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "not found", err: apperrors.ErrCourseNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "enrollment not found", err: apperrors.ErrEnrollmentNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "duplicate enrollment", err: apperrors.ErrAlreadyEnrolled, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "duplicate email", err: apperrors.ErrEmailAlreadyExists, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "invalid status", err: apperrors.ErrInvalidAttendanceStatus, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "invalid period", err: apperrors.ErrInvalidReportPeriod, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "bad credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidCredentials},
		{name: "revoked token", err: apperrors.ErrTokenRevoked, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidToken},
		{name: "unknown error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body.Error.Code)
			}
		})
	}
}

func TestHandleAPIErrorCustomMessageAndField(t *testing.T) {
	err := apperrors.NewValidationError("name cannot be empty").WithField("name")

	status, body := handleError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "name cannot be empty", body.Error.Message)
	assert.Equal(t, "name", body.Error.Field)
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	// Wrapping must not hide the sentinel from the status mapping.
	status, _ := handleError(t, errors.Join(errors.New("query failed"), apperrors.ErrStudentNotFound))
	assert.Equal(t, http.StatusNotFound, status)
}
