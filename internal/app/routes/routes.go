package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edupoint/sis-backend/internal/app/controllers"
	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	departmentController *controllers.DepartmentController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	attendanceController *controllers.AttendanceController,
	recordController *controllers.RecordController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/users/me", userController.GetProfile)
		authenticated.PUT("/users/me", userController.UpdateProfile)

		// Readable by every signed-in user
		authenticated.GET("/departments", departmentController.GetDepartments)
		authenticated.GET("/departments/:id", departmentController.GetDepartment)
		authenticated.GET("/courses", courseController.GetCourses)
		authenticated.GET("/courses/:id", courseController.GetCourse)

		// Enrollment-scoped reads; ownership is enforced inside the handlers
		authenticated.GET("/enrollments/:id/attendance", attendanceController.Detail)
		authenticated.GET("/enrollments/:id/attendance/percentage", attendanceController.Percentage)
		authenticated.GET("/enrollments/:id/grades", recordController.ListGrades)

		// --- Admin routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/admin/dashboard", dashboardController.AdminDashboard)

			admin.POST("/users/students", userController.CreateStudent)
			admin.POST("/users/lecturers", userController.CreateLecturer)
			admin.GET("/users", userController.ListUsers)
			admin.DELETE("/users/:id", userController.DeactivateUser)
			admin.GET("/users/lecturers/export", userController.ExportLecturerDirectory)

			admin.POST("/departments", departmentController.CreateDepartment)
			admin.PUT("/departments/:id", departmentController.UpdateDepartment)
			admin.DELETE("/departments/:id", departmentController.DeleteDepartment)

			admin.POST("/courses", courseController.CreateCourse)
			admin.PUT("/courses/:id", courseController.UpdateCourse)
			admin.DELETE("/courses/:id", courseController.DeleteCourse)
			admin.POST("/courses/:id/lecturers", courseController.AssignLecturer)
			admin.DELETE("/courses/:id/lecturers/:lecturerId", courseController.RemoveLecturer)

			admin.POST("/enrollments", enrollmentController.Enroll)
			admin.GET("/enrollments", enrollmentController.ListEnrollments)
			admin.GET("/enrollments/:id", enrollmentController.GetEnrollment)
			admin.DELETE("/enrollments/:id", enrollmentController.Unenroll)

			admin.GET("/students/:id", userController.GetStudent)
			admin.POST("/students/:id/achievements", recordController.AddAchievement)
			admin.GET("/students/:id/achievements", recordController.ListAchievements)
			admin.POST("/students/:id/disciplinary-actions", recordController.AddDisciplinaryAction)
			admin.GET("/students/:id/disciplinary-actions", recordController.ListDisciplinaryActions)
		}

		// --- Staff routes (lecturers and admins) ---
		staff := authenticated.Group("")
		staff.Use(authMiddleware.RoleRequired(models.RoleLecturer, models.RoleAdmin))
		{
			staff.POST("/attendance", attendanceController.Mark)
			staff.POST("/courses/:id/attendance/bulk", attendanceController.MarkBulk)
			staff.GET("/courses/:id/attendance/history", attendanceController.History)
			staff.GET("/courses/:id/attendance/export", attendanceController.Export)
			staff.POST("/enrollments/:id/grades", recordController.RecordGrade)
			staff.DELETE("/enrollments/:id/grades/:gradeId", recordController.DeleteGrade)
		}

		// --- Lecturer routes ---
		lecturer := authenticated.Group("/lecturer")
		lecturer.Use(authMiddleware.RoleRequired(models.RoleLecturer))
		{
			lecturer.GET("/dashboard", dashboardController.LecturerDashboard)
			lecturer.GET("/courses", courseController.GetMyCourses)
			lecturer.POST("/notifications", recordController.SendNotification)
			lecturer.GET("/notifications", recordController.ListNotifications)
			lecturer.POST("/notifications/read", recordController.MarkNotificationsRead)
		}

		// --- Student routes ---
		student := authenticated.Group("/student")
		student.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			student.GET("/dashboard", dashboardController.StudentDashboard)
			student.GET("/enrollments", enrollmentController.MyEnrollments)
		}
	}
}
