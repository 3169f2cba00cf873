package booking

import (
	"testing"

	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/models"
)

func TestDeletionPolicies(t *testing.T) {
	cases := []struct {
		parent, child string
		want          Policy
	}{
		{"account", "user_profile", Cascade},
		{"account", "business", Protect},
		{"account", "appointment", Protect},
		{"business", "service", Cascade},
		{"business", "availability_slot", Cascade},
		{"business", "appointment", Protect},
		{"appointment", "appointment_service", Cascade},
		{"service", "appointment_service", Protect},
	}

	if len(DeletionPolicies) != len(cases) {
		t.Fatalf("expected %d relations, got %d", len(cases), len(DeletionPolicies))
	}
	for _, tc := range cases {
		got, ok := PolicyFor(tc.parent, tc.child)
		if !ok || got != tc.want {
			t.Errorf("%s -> %s = %q (%v), want %q", tc.parent, tc.child, got, ok, tc.want)
		}
	}

	if _, ok := PolicyFor("service", "business"); ok {
		t.Fatal("unexpected reverse relation")
	}
}

func TestActorAccess(t *testing.T) {
	owner := Actor{ID: uuid.New(), Role: RoleBusiness}
	client := Actor{ID: uuid.New(), Role: RoleClient}
	admin := Actor{ID: uuid.New(), Role: RoleAdmin}

	b := &models.Business{OwnerID: owner.ID}
	ap := &models.Appointment{ClientID: client.ID}

	if owner.CanManage(b) != nil || admin.CanManage(b) != nil {
		t.Fatal("owner and admin manage the business")
	}
	assertCode(t, client.CanManage(b), "not_business_owner")

	if client.CanSee(ap, b) != nil || owner.CanSee(ap, b) != nil {
		t.Fatal("client and owner see the appointment")
	}
	stranger := Actor{ID: uuid.New(), Role: RoleClient}
	if stranger.CanSee(ap, b) == nil {
		t.Fatal("stranger must not see the appointment")
	}
}
