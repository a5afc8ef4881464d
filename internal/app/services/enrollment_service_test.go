package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
)

func TestEnrollGuard(t *testing.T) {
	tests := []struct {
		name      string
		lookupErr error
		wantErr   error
	}{
		{
			name:      "existing enrollment is a conflict",
			lookupErr: nil,
			wantErr:   apperrors.ErrAlreadyEnrolled,
		},
		{
			name:      "missing enrollment lets the enroll proceed",
			lookupErr: apperrors.ErrEnrollmentNotFound,
		},
		{
			name:      "wrapped not-found still proceeds",
			lookupErr: fmt.Errorf("lookup: %w", apperrors.ErrEnrollmentNotFound),
		},
		{
			name:      "other lookup failures pass through",
			lookupErr: errors.New("connection reset"),
			wantErr:   errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := enrollGuard(tt.lookupErr)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr.Error())
		})
	}
}
