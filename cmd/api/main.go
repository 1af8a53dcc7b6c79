package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/palmhr/attendance-backend-go/internal/config"
	appHTTP "github.com/palmhr/attendance-backend-go/internal/handler/http"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
	"github.com/palmhr/attendance-backend-go/internal/pkg/jwt"
	"github.com/palmhr/attendance-backend-go/internal/repository/postgresql"
	advanceService "github.com/palmhr/attendance-backend-go/internal/service/advance"
	approvalService "github.com/palmhr/attendance-backend-go/internal/service/approval"
	attendanceService "github.com/palmhr/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/palmhr/attendance-backend-go/internal/service/auth"
	employeeService "github.com/palmhr/attendance-backend-go/internal/service/employee"
	notificationService "github.com/palmhr/attendance-backend-go/internal/service/notification"
	payrollService "github.com/palmhr/attendance-backend-go/internal/service/payroll"
	softloanService "github.com/palmhr/attendance-backend-go/internal/service/softloan"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	idLogRepo := postgresql.NewEmployeeIDLogRepository(db)
	sequenceRepo := postgresql.NewSequenceRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	approvalLogRepo := postgresql.NewApprovalLogRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	allowanceRepo := postgresql.NewAllowanceRepository(db)
	deductionRepo := postgresql.NewDeductionRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	loanRepo := postgresql.NewSoftLoanRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	txManager := postgresql.NewTxManager(db)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	notifier := notificationService.NewNotificationService(notificationRepo, logger)

	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(
		txManager,
		employeeRepo,
		idLogRepo,
		sequenceRepo,
		payrollRepo,
		userRepo,
		employeeService.WageThresholds{
			MinMonthlyWage: cfg.Wage.MinMonthlyWage,
			MinHourlyWage:  cfg.Wage.MinHourlyWage,
		},
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		txManager,
		attendanceRepo,
		approvalLogRepo,
		employeeRepo,
		attendanceService.WorkdayStart{
			Hour:   cfg.Workday.StartHour,
			Minute: cfg.Workday.StartMinute,
		},
	)
	approvalSvc := approvalService.NewApprovalService(
		txManager,
		attendanceRepo,
		approvalLogRepo,
		userRepo,
		notifier,
	)
	payrollSvc := payrollService.NewPayrollService(
		txManager,
		payrollRepo,
		allowanceRepo,
		deductionRepo,
		attendanceRepo,
		employeeRepo,
		advanceRepo,
		loanRepo,
		userRepo,
		notifier,
	)
	advanceSvc := advanceService.NewAdvanceService(txManager, advanceRepo, userRepo, notifier)
	loanSvc := softloanService.NewSoftLoanService(txManager, loanRepo, userRepo, notifier)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	approvalHandler := appHTTP.NewApprovalHandler(approvalSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	advanceHandler := appHTTP.NewAdvanceHandler(advanceSvc)
	loanHandler := appHTTP.NewSoftLoanHandler(loanSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifier)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		approvalHandler,
		payrollHandler,
		advanceHandler,
		loanHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
