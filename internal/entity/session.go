package entity

import (
	"fmt"
	"strings"
)

// Role é um enum fechado, validado uma única vez na borda (parse do token).
// Nada de comparação de string espalhada pelos usecases.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleSeller:
		return RoleSeller, nil
	case RoleBuyer:
		return RoleBuyer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Session identifica o ator de toda chamada de usecase. Sempre explícita,
// nunca estado global.
type Session struct {
	UserID string
	Name   string
	Role   Role
}
