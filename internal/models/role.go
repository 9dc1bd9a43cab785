package models

import "fmt"

// Role distingue les deux types de comptes du marché.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// ParseRole convertit le tag stocké en session vers un Role connu.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSeller:
		return RoleSeller, nil
	case RoleBuyer:
		return RoleBuyer, nil
	default:
		return "", fmt.Errorf("rôle inconnu: %q", s)
	}
}

func (r Role) String() string {
	return string(r)
}
