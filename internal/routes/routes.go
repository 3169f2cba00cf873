package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/backend/internal/audit"
	"github.com/agendafacil/backend/internal/auth"
	"github.com/agendafacil/backend/internal/catalog"
	"github.com/agendafacil/backend/internal/config"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/handlers"
	"github.com/agendafacil/backend/internal/httperr"
	infraRepo "github.com/agendafacil/backend/internal/infra/repository"
	"github.com/agendafacil/backend/internal/middleware"
	ucAccount "github.com/agendafacil/backend/internal/usecase/account"
	ucAppointment "github.com/agendafacil/backend/internal/usecase/appointment"
	ucAvailability "github.com/agendafacil/backend/internal/usecase/availability"
	ucBusiness "github.com/agendafacil/backend/internal/usecase/business"
	ucService "github.com/agendafacil/backend/internal/usecase/service"
)

// Deps are the singletons shared by every route.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  *slog.Logger
	Catalog catalog.Store
	Audit   *audit.Dispatcher
	Limiter middleware.Limiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	httperr.UseJSONFieldNames()

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	if d.Logger != nil {
		r.Use(middleware.AccessLog(d.Logger))
	}
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	publicHandler := handlers.NewPublicHandler(d.Catalog)

	// Routes added before the limiter keep the middleware chain they were
	// registered with, so health checks are never throttled.
	r.GET("/health/", publicHandler.Health)

	if d.Limiter != nil {
		logger := d.Logger
		if logger == nil {
			logger = slog.Default()
		}
		r.Use(middleware.RateLimit(d.Limiter, logger))
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewBookingGormRepository(d.DB)
	tokens := auth.NewTokens(d.Config.JWTSecret, d.Config.JWTTTL)
	auditLogger := audit.New(d.DB)
	dispatcher := d.Audit

	// ======================================================
	// USE CASES
	// ======================================================
	getBusinessUC := ucBusiness.NewGetBusiness(repo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		ucAccount.NewRegister(repo, tokens),
		ucAccount.NewLogin(repo, tokens),
	)
	meHandler := handlers.NewMeHandler(
		ucAccount.NewGetAccount(repo),
		ucAppointment.NewListMyAppointments(repo),
	)
	adminHandler := handlers.NewAdminHandler(
		ucAccount.NewChangeRole(repo),
		ucAccount.NewDeleteAccount(repo),
	)

	businessHandler := handlers.NewBusinessHandler(
		ucBusiness.NewCreateBusiness(repo, dispatcher),
		ucBusiness.NewListBusinesses(repo),
		getBusinessUC,
		ucBusiness.NewUpdateBusiness(repo, dispatcher),
		ucBusiness.NewDeleteBusiness(repo, dispatcher),
	)
	serviceHandler := handlers.NewServiceHandler(
		ucService.NewCreateService(repo, dispatcher),
		ucService.NewListServices(repo),
		ucService.NewUpdateService(repo, dispatcher),
		ucService.NewDeleteService(repo, dispatcher),
	)
	availabilityHandler := handlers.NewAvailabilityHandler(
		ucAvailability.NewCreateSlot(repo, dispatcher),
		ucAvailability.NewListSlots(repo),
		ucAvailability.NewUpdateSlot(repo, dispatcher),
		ucAvailability.NewDeleteSlot(repo, dispatcher),
	)
	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(repo, dispatcher),
		ucAppointment.NewGetAppointment(repo),
		ucAppointment.NewListAppointmentsByDate(repo),
		ucAppointment.NewUpdateAppointment(repo, dispatcher),
		ucAppointment.NewChangeStatus(repo, dispatcher),
		ucAppointment.NewAddService(repo, dispatcher),
		ucAppointment.NewRemoveService(repo, dispatcher),
		ucAppointment.NewDeleteAppointment(repo, dispatcher),
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger, getBusinessUC)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/services/", publicHandler.ListServices)
	r.POST("/services/", publicHandler.CreateService)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens, repo))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/appointments", meHandler.ListAppointments)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(domain.RoleAdmin))
			{
				admin.PATCH("/accounts/:id/role", adminHandler.ChangeRole)
				admin.DELETE("/accounts/:id", adminHandler.DeleteAccount)
			}

			// ------------------------------
			// BUSINESSES
			// ------------------------------
			secured.POST("/businesses",
				middleware.RequireRole(domain.RoleBusiness, domain.RoleAdmin),
				businessHandler.Create,
			)
			secured.GET("/businesses", businessHandler.List)
			secured.GET("/businesses/:id", businessHandler.Get)
			secured.PATCH("/businesses/:id", businessHandler.Update)
			secured.DELETE("/businesses/:id", businessHandler.Delete)

			secured.POST("/businesses/:id/services", serviceHandler.Create)
			secured.GET("/businesses/:id/services", serviceHandler.List)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.POST("/businesses/:id/availability", availabilityHandler.Create)
			secured.GET("/businesses/:id/availability", availabilityHandler.List)
			secured.PATCH("/availability/:id", availabilityHandler.Update)
			secured.DELETE("/availability/:id", availabilityHandler.Delete)

			secured.GET("/businesses/:id/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/businesses/:id/appointments", appointmentHandler.Create)
			secured.GET("/businesses/:id/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/status", appointmentHandler.ChangeStatus)
			secured.POST("/appointments/:id/services", appointmentHandler.AddService)
			secured.DELETE("/appointments/:id/services/:serviceId", appointmentHandler.RemoveService)
		}
	}
}
