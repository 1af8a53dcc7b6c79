package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/palmhr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/palmhr/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	approvalHandler ApprovalHandler,
	payrollHandler PayrollHandler,
	advanceHandler AdvanceHandler,
	loanHandler SoftLoanHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", authHandler.CreateUser)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", employeeHandler.GetByID)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Register)
					r.Put("/{id}", employeeHandler.Update)
					r.Post("/{id}/transfer", employeeHandler.Transfer)
					r.Delete("/{id}", employeeHandler.Delete)
					r.Get("/{id}/identifier-history", employeeHandler.IdentifierHistory)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Post("/overtime-start", attendanceHandler.StartOvertime)
				r.Post("/overtime-end", attendanceHandler.EndOvertime)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/my-month", attendanceHandler.MyMonth)
				r.Post("/{id}/late-reason", attendanceHandler.SubmitLateReason)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/mark-absent", attendanceHandler.MarkAbsent)
				})

				// Supervisor only
				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOnly)
					r.Get("/employees/{id}/month", attendanceHandler.EmployeeMonth)
					r.Get("/employees/{id}/history", attendanceHandler.History)
				})
			})

			r.Route("/approvals", func(r chi.Router) {
				r.Use(middleware.SupervisorOnly)
				r.Post("/overtime/{id}/approve", approvalHandler.ApproveOvertime)
				r.Post("/overtime/{id}/reject", approvalHandler.RejectOvertime)
				r.Post("/late-reason/{id}/approve", approvalHandler.ApproveLateReason)
				r.Post("/late-reason/{id}/reject", approvalHandler.RejectLateReason)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/generate", payrollHandler.Generate)
				r.Get("/", payrollHandler.ListPeriod)
				r.Get("/{id}", payrollHandler.Get)
				r.Post("/{id}/mark-paid", payrollHandler.MarkPaid)
				r.Delete("/{id}", payrollHandler.Delete)

				r.Post("/allowances", payrollHandler.CreateAllowance)
				r.Post("/deductions", payrollHandler.CreateDeduction)
				r.Get("/employees/{id}/allowances", payrollHandler.ListAllowances)
				r.Get("/employees/{id}/deductions", payrollHandler.ListDeductions)
			})

			r.Route("/advances", func(r chi.Router) {
				r.Post("/", advanceHandler.Request)
				r.Get("/my", advanceHandler.ListMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/decide", advanceHandler.Decide)
					r.Get("/employees/{id}", advanceHandler.ListByEmployee)
				})
			})

			r.Route("/loans", func(r chi.Router) {
				r.Post("/", loanHandler.Request)
				r.Get("/my", loanHandler.ListMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/activate", loanHandler.Activate)
					r.Get("/employees/{id}", loanHandler.ListByEmployee)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/mark-read", notificationHandler.MarkAsRead)
			})
		})
	})
	return r
}
