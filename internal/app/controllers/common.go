package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/middleware"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/helpers"
)

// parseIDParam reads a positive int64 path parameter.
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("invalid " + name + " parameter")
	}
	return id, nil
}

// requireCaller extracts the authenticated identity set by JWTAuth and writes
// a 401 when it is missing.
func requireCaller(ctx *gin.Context) (int64, models.RoleType, bool) {
	userID, role, ok := middleware.CallerIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return 0, "", false
	}
	return userID, role, true
}

// parseDateField parses an ISO date from a request body field.
func parseDateField(value, field string) (time.Time, error) {
	date, err := helpers.ParseISODate(value)
	if err != nil {
		return time.Time{}, apperrors.NewCustomError(apperrors.ErrInvalidDate, "date must be in YYYY-MM-DD format").WithField(field)
	}
	return date, nil
}

// parseDateQuery parses an optional ISO date query parameter.
func parseDateQuery(ctx *gin.Context, name string) (*time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	date, err := helpers.ParseISODate(raw)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidDate, "date must be in YYYY-MM-DD format").WithField(name)
	}
	return &date, nil
}
