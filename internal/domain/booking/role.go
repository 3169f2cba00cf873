package booking

import "github.com/agendafacil/backend/internal/httperr"

type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleBusiness Role = "BUSINESS"
	RoleAdmin    Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleClient, RoleBusiness, RoleAdmin:
		return r, nil
	}
	return "", httperr.Validation("invalid_role", "Papel inválido: "+s)
}

// CanSelfAssign is false for ADMIN: admins are only promoted by other admins.
func (r Role) CanSelfAssign() bool {
	return r == RoleClient || r == RoleBusiness
}

func (r Role) CanOwnBusiness() bool {
	return r == RoleBusiness || r == RoleAdmin
}
