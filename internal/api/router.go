package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffroom/attendance-system/internal/api/handler"
	"github.com/staffroom/attendance-system/internal/api/middleware"
	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/service"
	mongodb "github.com/staffroom/attendance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/staffroom/attendance-system/internal/infrastructure/db/redis"
	"github.com/staffroom/attendance-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("attendance"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	employeeRepo := mongodb.NewEmployeeRepository(db)
	teamRepo := mongodb.NewTeamRepository(db)
	attendanceRepo := mongodb.NewAttendanceRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb)

	authService := service.NewAuthService(employeeRepo, limiter, cfg.JWTSecret, cfg.JWTTTL, log)
	employeeService := service.NewEmployeeService(employeeRepo, log)
	teamService := service.NewTeamService(teamRepo, employeeRepo, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo, teamRepo, teamService, log)

	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	teamHandler := handler.NewTeamHandler(teamService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)

	authenticate := middleware.Authenticate(authService)
	authenticateStaff := middleware.AuthenticateStaff(authService)

	// --- Root and probes ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome to the Employee Attendance System!")
	})
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Employee / auth routes ---
	employees := e.Group("/employees")
	employees.POST("/login", authHandler.Login)
	employees.POST("/create", authHandler.Signup, authenticateStaff)
	employees.GET("/me", authHandler.Me, authenticate)
	employees.POST("/updatepassword", authHandler.UpdatePassword, authenticate)
	employees.PATCH("/employees/:id", employeeHandler.Update, authenticate)
	// Authentication only; no role gate is enforced on deletion.
	employees.DELETE("/employees/:id", employeeHandler.Delete, authenticate)

	e.GET("/employees", employeeHandler.List, authenticate,
		middleware.RequireRole(domain.DesignationHR, domain.DesignationAdmin))

	// --- Attendance routes ---
	attendance := e.Group("/attendance", authenticate)
	attendance.POST("/attendance", attendanceHandler.Create, middleware.RequireStaff(),
		middleware.RequireRole(domain.DesignationHR, domain.DesignationManager))
	attendance.PATCH("/attendance", attendanceHandler.Update, middleware.RequireStaff(),
		middleware.RequireRole(domain.DesignationHR, domain.DesignationManager))
	attendance.GET("/attendance", attendanceHandler.Get, middleware.RequireStaff())
	attendance.GET("/employee-summary", attendanceHandler.EmployeeSummary, middleware.RequireStaff())
	attendance.GET("/team-summary/:id", attendanceHandler.TeamSummary, middleware.RequireStaff(),
		middleware.ForbidRole(domain.DesignationManager, domain.DesignationHR))
	attendance.GET("/me/:id", attendanceHandler.MyAttendance)
	attendance.GET("/all-attendance", attendanceHandler.AllSummary, middleware.RequireStaff(),
		middleware.RequireRole(domain.DesignationHR, domain.DesignationManager))
	attendance.POST("/attendancebyemail", attendanceHandler.CreateByEmail, middleware.RequireStaff())
	attendance.DELETE("/attendancebyemail", attendanceHandler.DeleteByEmail, middleware.RequireStaff())

	// --- Department / team routes ---
	department := e.Group("/department", authenticateStaff)
	department.POST("/create", teamHandler.Create)
	department.POST("/add-employee", teamHandler.AddEmployee)
	department.POST("/add-manager", teamHandler.AddManager)
	department.GET("/allteams", teamHandler.List,
		middleware.RequireRole(domain.DesignationHR, domain.DesignationAdmin))
	department.GET("/all-teams", teamHandler.ListPopulated,
		middleware.RequireRole(domain.DesignationHR, domain.DesignationAdmin))
	department.GET("/team-employees", teamHandler.Employees)
	department.GET("/team-manager", teamHandler.Manager)
	department.GET("/is-employee-in-team", teamHandler.IsEmployeeAssigned)
	department.DELETE("/delete-team", teamHandler.Delete)

	return e
}
