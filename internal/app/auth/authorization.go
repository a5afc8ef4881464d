package auth

import (
	"github.com/edupoint/sis-backend/internal/app/models"
)

// Action names a capability a request wants to exercise. Controllers and
// services check actions through Can instead of comparing roles inline.
type Action string

const (
	ActionManageUsers       Action = "users:manage"
	ActionManageDepartments Action = "departments:manage"
	ActionManageCourses     Action = "courses:manage"
	ActionManageEnrollments Action = "enrollments:manage"
	ActionMarkAttendance    Action = "attendance:mark"
	ActionViewReports       Action = "reports:view"
	ActionExportReports     Action = "reports:export"
	ActionRecordGrades      Action = "grades:record"
	ActionManageRecords     Action = "records:manage"
	ActionSendNotifications Action = "notifications:send"
	ActionViewOwnData       Action = "self:view"
)

// permissions is the single role-to-action table. Ownership narrowing for
// lecturers and students (does this lecturer teach the course, does this
// student own the enrollment) happens in the services on top of this.
var permissions = map[models.RoleType]map[Action]bool{
	models.RoleAdmin: {
		ActionManageUsers:       true,
		ActionManageDepartments: true,
		ActionManageCourses:     true,
		ActionManageEnrollments: true,
		ActionMarkAttendance:    true,
		ActionViewReports:       true,
		ActionExportReports:     true,
		ActionRecordGrades:      true,
		ActionManageRecords:     true,
		ActionViewOwnData:       true,
	},
	models.RoleLecturer: {
		ActionMarkAttendance:    true,
		ActionViewReports:       true,
		ActionExportReports:     true,
		ActionRecordGrades:      true,
		ActionSendNotifications: true,
		ActionViewOwnData:       true,
	},
	models.RoleStudent: {
		ActionViewOwnData: true,
	},
}

// Can reports whether a role may perform an action.
func Can(role models.RoleType, action Action) bool {
	return permissions[role][action]
}
