package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agendafacil/backend/internal/audit"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/models"
)

var ErrInvalidClock = httperr.Validation("invalid_time_format", "Horário deve estar no formato HH:MM.")

// ParseClock reads "15:04" or "15:04:05" into a time of day.
func ParseClock(s string) (datatypes.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, ErrInvalidClock
}

type CreateInput struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

type UpdateInput struct {
	DayOfWeek *int
	StartTime *string
	EndTime   *string
	IsActive  *bool
}

// ------------------------------------------------------

type CreateSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateSlot(repo domain.Repository, audit *audit.Dispatcher) *CreateSlot {
	return &CreateSlot{repo: repo, audit: audit}
}

func (uc *CreateSlot) Execute(
	ctx context.Context,
	actor domain.Actor,
	businessID uuid.UUID,
	in CreateInput,
) (*models.AvailabilitySlot, error) {

	b, err := uc.repo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := actor.CanManage(b); err != nil {
		return nil, err
	}

	start, err := ParseClock(in.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(in.EndTime)
	if err != nil {
		return nil, err
	}

	slot := &models.AvailabilitySlot{
		BusinessID: b.ID,
		DayOfWeek:  in.DayOfWeek,
		StartTime:  start,
		EndTime:    end,
		IsActive:   true,
	}

	if err := uc.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: b.ID,
		ActorID:    &actor.ID,
		Action:     "availability_created",
		Entity:     "availability_slot",
		EntityID:   &slot.ID,
	})

	return slot, nil
}

// ------------------------------------------------------

type ListSlots struct {
	repo domain.Repository
}

func NewListSlots(repo domain.Repository) *ListSlots {
	return &ListSlots{repo: repo}
}

func (uc *ListSlots) Execute(ctx context.Context, businessID uuid.UUID) ([]models.AvailabilitySlot, error) {
	if _, err := uc.repo.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	return uc.repo.ListSlots(ctx, businessID)
}

// ------------------------------------------------------

type UpdateSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateSlot(repo domain.Repository, audit *audit.Dispatcher) *UpdateSlot {
	return &UpdateSlot{repo: repo, audit: audit}
}

func (uc *UpdateSlot) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uuid.UUID,
	in UpdateInput,
) (*models.AvailabilitySlot, error) {

	slot, b, err := loadSlot(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	if err := actor.CanManage(b); err != nil {
		return nil, err
	}

	if in.DayOfWeek != nil {
		slot.DayOfWeek = *in.DayOfWeek
	}
	if in.StartTime != nil {
		if slot.StartTime, err = ParseClock(*in.StartTime); err != nil {
			return nil, err
		}
	}
	if in.EndTime != nil {
		if slot.EndTime, err = ParseClock(*in.EndTime); err != nil {
			return nil, err
		}
	}
	if in.IsActive != nil {
		slot.IsActive = *in.IsActive
	}

	if err := uc.repo.UpdateSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: slot.BusinessID,
		ActorID:    &actor.ID,
		Action:     "availability_updated",
		Entity:     "availability_slot",
		EntityID:   &slot.ID,
	})

	return slot, nil
}

// ------------------------------------------------------

type DeleteSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSlot(repo domain.Repository, audit *audit.Dispatcher) *DeleteSlot {
	return &DeleteSlot{repo: repo, audit: audit}
}

func (uc *DeleteSlot) Execute(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	slot, b, err := loadSlot(ctx, uc.repo, id)
	if err != nil {
		return err
	}
	if err := actor.CanManage(b); err != nil {
		return err
	}

	if err := uc.repo.DeleteSlot(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: slot.BusinessID,
		ActorID:    &actor.ID,
		Action:     "availability_deleted",
		Entity:     "availability_slot",
		EntityID:   &id,
	})

	return nil
}

func loadSlot(
	ctx context.Context,
	repo domain.Repository,
	id uuid.UUID,
) (*models.AvailabilitySlot, *models.Business, error) {

	slot, err := repo.GetSlot(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	b, err := repo.GetBusiness(ctx, slot.BusinessID)
	if err != nil {
		return nil, nil, err
	}
	return slot, b, nil
}
