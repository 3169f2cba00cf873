package booking

import (
	"time"

	"github.com/agendafacil/backend/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func ChangeStatus(ap *models.Appointment, to Status) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}
	ap.Status = string(to)
	return nil
}

// Reschedule moves an open appointment. The new range is validated before
// the appointment is touched.
func Reschedule(ap *models.Appointment, start, end time.Time) error {
	if Status(ap.Status).IsTerminal() {
		return ErrAppointmentClosed
	}
	if err := ValidateTimeRange(start, end); err != nil {
		return err
	}
	ap.StartAt = start
	ap.EndAt = end
	return nil
}

// CheckUpdate decides whether next may overwrite the stored current row.
// A status change must be a legal transition from the stored status, and a
// closed appointment keeps its time range.
func CheckUpdate(current, next *models.Appointment) error {
	from := Status(current.Status)
	if to := Status(next.Status); to != from {
		return CanTransition(from, to)
	}
	if from.IsTerminal() && (!next.StartAt.Equal(current.StartAt) || !next.EndAt.Equal(current.EndAt)) {
		return ErrAppointmentClosed
	}
	return nil
}

// SnapshotItem builds the join row for service, copying its current price.
func SnapshotItem(service *models.Service, quantity int) models.AppointmentService {
	return models.AppointmentService{
		ServiceID: service.ID,
		Quantity:  quantity,
		UnitPrice: service.Price,
	}
}
