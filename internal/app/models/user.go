package models

import (
	"strings"
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email        string     `json:"email" db:"email" example:"user@campus.edu"`               // User's email address (unique)
	Password     string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName    string     `json:"firstName" db:"first_name" example:"John"`                 // User's first name
	LastName     string     `json:"lastName" db:"last_name" example:"Doe"`                    // User's last name
	PhoneNumber  *string    `json:"phoneNumber,omitempty" db:"phone_number"`                  // Contact phone (nullable)
	Address      *string    `json:"address,omitempty" db:"address"`                           // Postal address (nullable)
	Role         RoleType   `json:"role" db:"role" example:"STUDENT"`                         // User's role (STUDENT, LECTURER or ADMIN)
	DepartmentID *int64     `json:"departmentId,omitempty" db:"department_id"`                // Owning department (nullable)
	IsStaff      bool       `json:"isStaff" db:"is_staff" example:"false"`                    // Whether the user has staff access
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`                   // Soft-delete flag; accounts are never hard-deleted
	DateJoined   time.Time  `json:"dateJoined" db:"date_joined" example:"2024-01-01T10:00:00Z"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`

	Department *Department `json:"department,omitempty"` // Relation, no db tag
}

// FullName returns "First Last" trimmed of surrounding space.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Student defines the student profile based on the 'students' table.
// It is owned one-to-one by a User with the STUDENT role.
type Student struct {
	ID               int64      `json:"id" db:"id"`
	UserID           int64      `json:"userId" db:"user_id"`
	RegistrationNo   string     `json:"registrationNo" db:"registration_no"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	EmergencyContact *string    `json:"emergencyContact,omitempty" db:"emergency_contact"`
	LatestActivity   *time.Time `json:"latestActivity,omitempty" db:"latest_activity"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}

// Lecturer defines the lecturer profile based on the 'lecturers' table.
// It is owned one-to-one by a User with the LECTURER role.
type Lecturer struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"userId" db:"user_id"`

	User    *User    `json:"user,omitempty"`    // Relation, no db tag
	Courses []Course `json:"courses,omitempty"` // Courses taught, populated when needed
}
