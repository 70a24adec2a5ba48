package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/estilobarber/reservas-api/internal/audit"
	"github.com/estilobarber/reservas-api/internal/config"
	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/handlers"
	"github.com/estilobarber/reservas-api/internal/infra/cache"
	infraRepo "github.com/estilobarber/reservas-api/internal/infra/repository"
	"github.com/estilobarber/reservas-api/internal/infra/storage"
	"github.com/estilobarber/reservas-api/internal/middleware"
	"github.com/estilobarber/reservas-api/internal/timezone"
	ucReservation "github.com/estilobarber/reservas-api/internal/usecase/reservation"
	"github.com/estilobarber/reservas-api/internal/wizard"
)

type Deps struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Config      *config.Config
	Gateway     ucReservation.Gateway
	WizardStore *wizard.Store
	Log         zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA
	// ======================================================
	loc := timezone.Location(d.Config.Timezone)

	reservationRepo := infraRepo.NewReservationGormRepository(d.DB)
	catalogCache := cache.NewCatalog(d.Redis, d.Config.CatalogCacheTTL, d.Log)
	avatarStore := storage.NewAvatarStore(d.Config)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, d.Log)

	// ======================================================
	// USE CASES
	// ======================================================
	listBarbersUC := ucReservation.NewListAvailableBarbers(reservationRepo, catalogCache)
	availabilityUC := ucReservation.NewGetAvailability(reservationRepo)
	quoteUC := ucReservation.NewQuotePrice(reservationRepo)

	createUC := ucReservation.NewCreateReservation(
		reservationRepo,
		quoteUC,
		auditDispatcher,
		loc,
		d.Config.MinAdvanceMinutes,
	)

	payUC := ucReservation.NewProcessPayment(
		reservationRepo,
		d.Gateway,
		auditDispatcher,
		loc,
		d.Log,
	)

	cancelUC := ucReservation.NewCancelReservation(reservationRepo, auditDispatcher, loc)
	completeUC := ucReservation.NewCompleteReservation(reservationRepo, auditDispatcher, loc)
	listClientUC := ucReservation.NewListClientReservations(reservationRepo)
	agendaUC := ucReservation.NewListBarberAgenda(reservationRepo, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	meHandler := handlers.NewMeHandler(d.DB)
	catalogHandler := handlers.NewCatalogHandler(reservationRepo, catalogCache, listBarbersUC)
	barberHandler := handlers.NewBarberHandler(d.DB, avatarStore, catalogCache)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	wizardHandler := handlers.NewWizardHandler(
		d.WizardStore,
		reservationRepo,
		listBarbersUC,
		availabilityUC,
		quoteUC,
		createUC,
		payUC,
		d.Config,
		loc,
		d.Log,
	)

	reservationHandler := handlers.NewReservationHandler(
		listClientUC,
		agendaUC,
		cancelUC,
		completeUC,
		loc,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICO (catálogo)
		// ------------------------------
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/services/:id", catalogHandler.GetService)
		api.GET("/barbers", catalogHandler.ListBarbers)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVADO
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// ASISTENTE DE RESERVA
			// ------------------------------
			wiz := secured.Group("/reservations/wizard")
			{
				wiz.POST("", wizardHandler.Start)
				wiz.GET("/:id", wizardHandler.GetState)
				wiz.DELETE("/:id", wizardHandler.Cancel)

				wiz.POST("/:id/service", wizardHandler.SelectService)
				wiz.GET("/:id/barbers", wizardHandler.ListBarbers)
				wiz.POST("/:id/barber", wizardHandler.SelectBarber)
				wiz.GET("/:id/dates", wizardHandler.ListDates)
				wiz.GET("/:id/slots", wizardHandler.ListSlots)
				wiz.POST("/:id/datetime", wizardHandler.SelectDateTime)
				wiz.POST("/:id/customer", wizardHandler.SetCustomerInfo)

				wiz.POST("/:id/next", wizardHandler.Next)
				wiz.POST("/:id/back", wizardHandler.Back)
				wiz.POST("/:id/payment", wizardHandler.SubmitPayment)
			}

			// ------------------------------
			// RESERVAS (cliente)
			// ------------------------------
			secured.GET("/me/reservations", reservationHandler.ListMine)
			secured.PATCH("/me/reservations/:id/cancel", reservationHandler.Cancel)

			// ------------------------------
			// BARBERO
			// ------------------------------
			barber := secured.Group("/me")
			barber.Use(middleware.RequireRole(domain.RoleBarbero))
			{
				barber.GET("/agenda", reservationHandler.Agenda)
				barber.PATCH("/agenda/:id/complete", reservationHandler.Complete)

				barber.POST("/avatar", barberHandler.UploadAvatar)
				barber.PATCH("/status", barberHandler.UpdateStatus)
				barber.GET("/working-hours", barberHandler.GetWorkingHours)
				barber.PUT("/working-hours", barberHandler.UpdateWorkingHours)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(domain.RoleSuperAdmin))
			{
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
