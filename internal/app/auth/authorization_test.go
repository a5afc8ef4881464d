package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edupoint/sis-backend/internal/app/models"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name   string
		role   models.RoleType
		action Action
		want   bool
	}{
		{name: "admin manages users", role: models.RoleAdmin, action: ActionManageUsers, want: true},
		{name: "admin manages enrollments", role: models.RoleAdmin, action: ActionManageEnrollments, want: true},
		{name: "admin marks attendance", role: models.RoleAdmin, action: ActionMarkAttendance, want: true},
		{name: "admin does not send lecturer notifications", role: models.RoleAdmin, action: ActionSendNotifications, want: false},

		{name: "lecturer marks attendance", role: models.RoleLecturer, action: ActionMarkAttendance, want: true},
		{name: "lecturer exports reports", role: models.RoleLecturer, action: ActionExportReports, want: true},
		{name: "lecturer records grades", role: models.RoleLecturer, action: ActionRecordGrades, want: true},
		{name: "lecturer sends notifications", role: models.RoleLecturer, action: ActionSendNotifications, want: true},
		{name: "lecturer cannot manage users", role: models.RoleLecturer, action: ActionManageUsers, want: false},
		{name: "lecturer cannot manage enrollments", role: models.RoleLecturer, action: ActionManageEnrollments, want: false},

		{name: "student views own data", role: models.RoleStudent, action: ActionViewOwnData, want: true},
		{name: "student cannot mark attendance", role: models.RoleStudent, action: ActionMarkAttendance, want: false},
		{name: "student cannot view reports", role: models.RoleStudent, action: ActionViewReports, want: false},

		{name: "unknown role has no permissions", role: models.RoleType("GUEST"), action: ActionViewOwnData, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.action))
		})
	}
}
