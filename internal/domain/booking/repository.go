package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/models"
)

// Repository is the persistence port of the booking core. Implementations
// must run validation and the write in one transaction and translate
// storage constraint failures into httperr business errors.
type Repository interface {
	// -------- Accounts --------
	CreateAccount(ctx context.Context, acc *models.Account, role Role) error
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	GetRole(ctx context.Context, accountID uuid.UUID) (Role, error)
	UpdateRole(ctx context.Context, accountID uuid.UUID, role Role) (*models.UserProfile, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error

	// -------- Businesses --------
	CreateBusiness(ctx context.Context, b *models.Business) error
	GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error)
	ListBusinessesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Business, error)
	UpdateBusiness(ctx context.Context, b *models.Business) error
	DeleteBusiness(ctx context.Context, id uuid.UUID) error

	// -------- Services --------
	CreateService(ctx context.Context, s *models.Service) error
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ListServices(ctx context.Context, businessID uuid.UUID, onlyActive bool) ([]models.Service, error)
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, id uuid.UUID) error

	// -------- Availability --------
	CreateSlot(ctx context.Context, s *models.AvailabilitySlot) error
	GetSlot(ctx context.Context, id uuid.UUID) (*models.AvailabilitySlot, error)
	ListSlots(ctx context.Context, businessID uuid.UUID) ([]models.AvailabilitySlot, error)
	UpdateSlot(ctx context.Context, s *models.AvailabilitySlot) error
	DeleteSlot(ctx context.Context, id uuid.UUID) error

	// -------- Appointments --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	ListAppointmentsForBusiness(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]models.Appointment, error)
	ListAppointmentsForClient(ctx context.Context, clientID uuid.UUID) ([]models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
	AddAppointmentService(ctx context.Context, item *models.AppointmentService) error
	RemoveAppointmentService(ctx context.Context, appointmentID, serviceID uuid.UUID) error
}
