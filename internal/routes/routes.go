package routes

import (
	"time"

	"github.com/famtask/famtask-backend/internal/config"
	"github.com/famtask/famtask-backend/internal/handlers"
	"github.com/famtask/famtask-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Task         *handlers.TaskHandler
	Group        *handlers.GroupHandler
	Family       *handlers.FamilyHandler
	User         *handlers.UserHandler
	Setting      *handlers.SettingHandler
	Notification *handlers.NotificationHandler
	Achievement  *handlers.AchievementHandler
	Report       *handlers.ReportHandler
	Admin        *handlers.AdminHandler
	Health       *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/password-reset/request", h.Auth.RequestPasswordReset)
	auth.Post("/password-reset/confirm", h.Auth.ConfirmPasswordReset)

	// Everything below requires a valid JWT.
	protected := api.Group("", middleware.JWTProtected(cfg))

	tasks := protected.Group("/tasks")
	tasks.Get("/", h.Task.List)
	tasks.Post("/", h.Task.Create)
	tasks.Get("/:id", h.Task.Get)
	tasks.Put("/:id", h.Task.Update)
	tasks.Delete("/:id", h.Task.Delete)
	tasks.Post("/:id/restore", h.Task.Restore)
	tasks.Post("/:id/users/:user_id", h.Task.AssignToUser)
	tasks.Delete("/:id/users/:user_id", h.Task.UnassignFromUser)
	tasks.Post("/:id/groups", h.Task.AssignToGroups)
	tasks.Delete("/:id/groups/:group_id", h.Task.UnassignFromGroup)

	groups := protected.Group("/groups")
	groups.Get("/", h.Group.List)
	groups.Post("/", h.Group.Create)
	groups.Get("/:id", h.Group.Get)
	groups.Put("/:id", h.Group.Update)
	groups.Delete("/:id", h.Group.Delete)
	groups.Post("/:id/users", h.Group.AddUsers)
	groups.Delete("/:id/users/:user_id", h.Group.RemoveUser)

	families := protected.Group("/families")
	families.Get("/", h.Family.List)
	families.Post("/", h.Family.Create)
	families.Get("/:id", h.Family.Get)
	families.Delete("/:id", h.Family.Delete)

	users := protected.Group("/users")
	users.Get("/", h.User.List)
	users.Get("/me", h.User.Me)
	users.Get("/me/groups", h.Group.MyGroups)
	users.Get("/:id", h.User.Get)
	users.Put("/:id", h.User.Update)
	users.Delete("/:id", h.User.Delete)
	users.Put("/:id/status", h.User.UpdateStatus)

	protected.Get("/settings", h.Setting.Get)
	protected.Put("/settings", h.Setting.Update)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Post("/", h.Notification.Create)
	notifications.Put("/:id/read", h.Notification.MarkRead)
	notifications.Delete("/:id", h.Notification.Delete)

	protected.Get("/achievements", h.Achievement.List)
	protected.Get("/achievements/me", h.Achievement.Mine)
	protected.Get("/achievements/:id", h.Achievement.Get)

	reports := protected.Group("/reports")
	reports.Get("/tasks/summary", h.Report.TaskSummary)
	reports.Get("/users/:id/tasks", h.Report.TasksForUser)
	reports.Get("/users/:id/assigned", h.Report.TasksAssignedBy)
	reports.Get("/users/:id/group-tasks", h.Report.TasksForUserGroups)
	reports.Get("/groups/:id/tasks", h.Report.TasksForGroup)

	// Admin panel (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/users", h.Admin.ListUsers)
	admin.Get("/users/:id", h.Admin.GetUser)
	admin.Put("/users/:id/role", h.Admin.UpdateUserRole)
	admin.Get("/logs", h.Admin.Logs)
	admin.Post("/achievements", h.Achievement.Create)
	admin.Put("/achievements/:id", h.Achievement.Update)
	admin.Delete("/achievements/:id", h.Achievement.Delete)
}
