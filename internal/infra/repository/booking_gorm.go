package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/models"
)

var (
	ErrAccountNotFound     = httperr.NotFoundErr("account_not_found", "Conta não encontrada.")
	ErrBusinessNotFound    = httperr.NotFoundErr("business_not_found", "Negócio não encontrado.")
	ErrServiceNotFound     = httperr.NotFoundErr("service_not_found", "Serviço não encontrado.")
	ErrSlotNotFound        = httperr.NotFoundErr("slot_not_found", "Horário de disponibilidade não encontrado.")
	ErrAppointmentNotFound = httperr.NotFoundErr("appointment_not_found", "Agendamento não encontrado.")
	ErrItemNotFound        = httperr.NotFoundErr("appointment_service_not_found", "Serviço não faz parte do agendamento.")

	ErrAccountExists     = httperr.Conflict("account_exists", "Usuário ou e-mail já cadastrado.")
	ErrBusinessNameTaken = httperr.Conflict("business_name_taken", "Já existe um negócio com esse nome para este dono.")
	ErrServiceNameTaken  = httperr.Conflict("service_name_taken", "Já existe um serviço com esse nome neste negócio.")

	ErrAccountOwnsBusiness     = httperr.Protected("account_has_businesses", "A conta ainda possui negócios.")
	ErrAccountHasAppointments  = httperr.Protected("account_has_appointments", "A conta ainda possui agendamentos.")
	ErrBusinessHasAppointments = httperr.Protected("business_has_appointments", "O negócio possui agendamentos e não pode ser removido.")
	ErrServiceInUse            = httperr.Protected("service_in_use", "O serviço está vinculado a agendamentos.")
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func lockByID(tx *gorm.DB, dest any, id uuid.UUID) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(dest, "id = ?", id).Error
}

func countWhere(tx *gorm.DB, model any, query string, args ...any) (int64, error) {
	var n int64
	err := tx.Model(model).Where(query, args...).Count(&n).Error
	return n, err
}

// --------------------------------------------------
// Accounts
// --------------------------------------------------

func (r *BookingGormRepository) CreateAccount(
	ctx context.Context,
	acc *models.Account,
	role domain.Role,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(acc).Error; err != nil {
			return err
		}

		profile := models.UserProfile{
			AccountID: acc.ID,
			Role:      string(role),
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		acc.Profile = &profile
		return nil
	})

	return translation{duplicate: ErrAccountExists}.apply(err)
}

func (r *BookingGormRepository) GetAccount(
	ctx context.Context,
	id uuid.UUID,
) (*models.Account, error) {

	var acc models.Account
	err := r.db.WithContext(ctx).
		Preload("Profile").
		First(&acc, "id = ?", id).Error
	if err != nil {
		return nil, translation{notFound: ErrAccountNotFound}.apply(err)
	}
	return &acc, nil
}

func (r *BookingGormRepository) GetAccountByUsername(
	ctx context.Context,
	username string,
) (*models.Account, error) {

	var acc models.Account
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("username = ?", username).
		First(&acc).Error
	if err != nil {
		return nil, translation{notFound: ErrAccountNotFound}.apply(err)
	}
	return &acc, nil
}

// GetRole reads the role stored in the account's profile.
func (r *BookingGormRepository) GetRole(
	ctx context.Context,
	accountID uuid.UUID,
) (domain.Role, error) {

	var profile models.UserProfile
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&profile).Error; err != nil {
		return "", translation{notFound: ErrAccountNotFound}.apply(err)
	}
	return domain.ParseRole(profile.Role)
}

func (r *BookingGormRepository) UpdateRole(
	ctx context.Context,
	accountID uuid.UUID,
	role domain.Role,
) (*models.UserProfile, error) {

	var profile models.UserProfile
	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id = ?", accountID).
			First(&profile).Error; err != nil {
			return err
		}

		profile.Role = string(role)
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, translation{notFound: ErrAccountNotFound}.apply(err)
	}
	return &profile, nil
}

// DeleteAccount removes the account and its profile. Accounts still owning a
// business or booked as a client are protected.
func (r *BookingGormRepository) DeleteAccount(
	ctx context.Context,
	id uuid.UUID,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		var acc models.Account
		if err := lockByID(tx, &acc, id); err != nil {
			return err
		}

		n, err := countWhere(tx, &models.Business{}, "owner_id = ?", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrAccountOwnsBusiness
		}

		n, err = countWhere(tx, &models.Appointment{}, "client_id = ?", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrAccountHasAppointments
		}

		if err := tx.Where("account_id = ?", id).Delete(&models.UserProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&acc).Error
	})

	return translation{
		notFound:  ErrAccountNotFound,
		reference: httperr.Protected("account_in_use", "A conta ainda é referenciada."),
	}.apply(err)
}

// --------------------------------------------------
// Businesses
// --------------------------------------------------

func (r *BookingGormRepository) CreateBusiness(
	ctx context.Context,
	b *models.Business,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := domain.ValidateBusiness(b); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(b).Error
	})

	return translation{
		duplicate: ErrBusinessNameTaken,
		reference: ErrAccountNotFound,
	}.apply(err)
}

func (r *BookingGormRepository) GetBusiness(
	ctx context.Context,
	id uuid.UUID,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translation{notFound: ErrBusinessNotFound}.apply(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBusinessesByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]models.Business, error) {

	var list []models.Business
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) UpdateBusiness(
	ctx context.Context,
	b *models.Business,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := domain.ValidateBusiness(b); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(b).Error
	})

	return translation{duplicate: ErrBusinessNameTaken}.apply(err)
}

// DeleteBusiness cascades to services and availability slots and is refused
// while any appointment references the business.
func (r *BookingGormRepository) DeleteBusiness(
	ctx context.Context,
	id uuid.UUID,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		var b models.Business
		if err := lockByID(tx, &b, id); err != nil {
			return err
		}

		n, err := countWhere(tx, &models.Appointment{}, "business_id = ?", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrBusinessHasAppointments
		}

		if err := tx.Where("business_id = ?", id).Delete(&models.AvailabilitySlot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", id).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		return tx.Delete(&b).Error
	})

	return translation{
		notFound:  ErrBusinessNotFound,
		reference: ErrBusinessHasAppointments,
	}.apply(err)
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := domain.ValidateService(s); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(s).Error
	})

	return translation{
		duplicate: ErrServiceNameTaken,
		reference: ErrBusinessNotFound,
	}.apply(err)
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translation{notFound: ErrServiceNotFound}.apply(err)
	}
	return &s, nil
}

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
	businessID uuid.UUID,
	onlyActive bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	var list []models.Service
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) UpdateService(
	ctx context.Context,
	s *models.Service,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := domain.ValidateService(s); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(s).Error
	})

	return translation{duplicate: ErrServiceNameTaken}.apply(err)
}

func (r *BookingGormRepository) DeleteService(
	ctx context.Context,
	id uuid.UUID,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		var s models.Service
		if err := lockByID(tx, &s, id); err != nil {
			return err
		}

		n, err := countWhere(tx, &models.AppointmentService{}, "service_id = ?", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrServiceInUse
		}

		return tx.Delete(&s).Error
	})

	return translation{
		notFound:  ErrServiceNotFound,
		reference: ErrServiceInUse,
	}.apply(err)
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) CreateSlot(
	ctx context.Context,
	s *models.AvailabilitySlot,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := domain.ValidateAvailabilitySlot(s); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(s).Error
	})

	return translation{reference: ErrBusinessNotFound}.apply(err)
}

func (r *BookingGormRepository) GetSlot(
	ctx context.Context,
	id uuid.UUID,
) (*models.AvailabilitySlot, error) {

	var s models.AvailabilitySlot
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translation{notFound: ErrSlotNotFound}.apply(err)
	}
	return &s, nil
}

func (r *BookingGormRepository) ListSlots(
	ctx context.Context,
	businessID uuid.UUID,
) ([]models.AvailabilitySlot, error) {

	var list []models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("day_of_week ASC").
		Order("start_time ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) UpdateSlot(
	ctx context.Context,
	s *models.AvailabilitySlot,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := domain.ValidateAvailabilitySlot(s); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(s).Error
	})

	return translation{}.apply(err)
}

func (r *BookingGormRepository) DeleteSlot(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).Delete(&models.AvailabilitySlot{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *BookingGormRepository) preloadItems(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.Service")
}

// CreateAppointment persists the appointment and its service rows in one
// transaction. The time range is checked in that same transaction.
func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := domain.ValidateAppointment(ap); err != nil {
			return err
		}
		if len(ap.Items) == 0 {
			return domain.ErrNoServices
		}
		if err := domain.ValidateAppointmentItems(ap.Items); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			return err
		}

		for i := range ap.Items {
			ap.Items[i].AppointmentID = ap.ID
		}
		return tx.Omit(clause.Associations).Create(&ap.Items).Error
	})

	return translation{
		duplicate: domain.ErrDuplicateService,
		reference: httperr.Validation("invalid_reference", "Negócio, cliente ou serviço inexistente."),
	}.apply(err)
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.preloadItems(r.db.WithContext(ctx)).
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, translation{notFound: ErrAppointmentNotFound}.apply(err)
	}
	return &ap, nil
}

func (r *BookingGormRepository) ListAppointmentsForBusiness(
	ctx context.Context,
	businessID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.preloadItems(r.db.WithContext(ctx)).
		Where(
			"business_id = ? AND start_at >= ? AND start_at < ?",
			businessID, start, end,
		).
		Order("start_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *BookingGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uuid.UUID,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.preloadItems(r.db.WithContext(ctx)).
		Where("client_id = ?", clientID).
		Order("start_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := domain.ValidateAppointment(ap); err != nil {
			return err
		}

		var current models.Appointment
		if err := lockByID(tx, &current, ap.ID); err != nil {
			return err
		}
		if err := domain.CheckUpdate(&current, ap); err != nil {
			return err
		}

		return tx.Model(ap).
			Select("StartAt", "EndAt", "Status", "Notes").
			Updates(ap).Error
	})

	return translation{notFound: ErrAppointmentNotFound}.apply(err)
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uuid.UUID,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		var ap models.Appointment
		if err := lockByID(tx, &ap, id); err != nil {
			return err
		}

		if err := tx.Where("appointment_id = ?", id).Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ap).Error
	})

	return translation{notFound: ErrAppointmentNotFound}.apply(err)
}

func (r *BookingGormRepository) AddAppointmentService(
	ctx context.Context,
	item *models.AppointmentService,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := domain.ValidateAppointmentService(item); err != nil {
			return err
		}

		var ap models.Appointment
		if err := lockByID(tx, &ap, item.AppointmentID); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(item).Error
	})

	return translation{
		notFound:  ErrAppointmentNotFound,
		duplicate: domain.ErrDuplicateService,
		reference: ErrServiceNotFound,
	}.apply(err)
}

// RemoveAppointmentService detaches a service. The last service of an
// appointment cannot be removed.
func (r *BookingGormRepository) RemoveAppointmentService(
	ctx context.Context,
	appointmentID uuid.UUID,
	serviceID uuid.UUID,
) error {

	err := r.tx(ctx, func(tx *gorm.DB) error {
		var ap models.Appointment
		if err := lockByID(tx, &ap, appointmentID); err != nil {
			return translation{notFound: ErrAppointmentNotFound}.apply(err)
		}

		var item models.AppointmentService
		if err := tx.
			Where("appointment_id = ? AND service_id = ?", appointmentID, serviceID).
			First(&item).Error; err != nil {
			return err
		}

		n, err := countWhere(tx, &models.AppointmentService{}, "appointment_id = ?", appointmentID)
		if err != nil {
			return err
		}
		if n <= 1 {
			return domain.ErrNoServices
		}

		return tx.Delete(&item).Error
	})

	return translation{notFound: ErrItemNotFound}.apply(err)
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
