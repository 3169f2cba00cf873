package booking

import (
	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/models"
)

// Actor is the authenticated account performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

var (
	ErrNotBusinessOwner = httperr.Forbidden("not_business_owner", "Apenas o dono do negócio pode realizar esta operação.")
	ErrNotParticipant   = httperr.Forbidden("not_appointment_participant", "Agendamento pertence a outro cliente ou negócio.")
	ErrRoleNotAllowed   = httperr.Forbidden("role_not_allowed", "Perfil sem permissão para esta operação.")
)

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage reports whether a may change b and everything attached to it.
func (a Actor) CanManage(b *models.Business) error {
	if a.IsAdmin() || b.OwnerID == a.ID {
		return nil
	}
	return ErrNotBusinessOwner
}

// CanSee allows the booking client, the business owner and admins.
func (a Actor) CanSee(ap *models.Appointment, b *models.Business) error {
	if ap.ClientID == a.ID {
		return nil
	}
	return a.CanManage(b)
}
