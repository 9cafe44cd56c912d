package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Role роль пользователя
type Role string

const (
	RoleUser       Role = "user"
	RoleOperator   Role = "operator"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

var (
	// ErrUnauthorized действие требует аутентификации
	ErrUnauthorized = errors.New("domain: authentication required")

	// ErrForbidden роль не входит в разрешённое множество
	ErrForbidden = errors.New("domain: insufficient role")
)

// Наборы ролей для проверок доступа
var (
	AnyRole    = []Role{RoleUser, RoleOperator, RoleAdmin, RoleSuperadmin}
	StaffRoles = []Role{RoleOperator, RoleAdmin, RoleSuperadmin}
	AdminRoles = []Role{RoleAdmin, RoleSuperadmin}
)

// ParseRole разбирает роль из строки
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// IsValid проверяет, что роль из закрытого множества
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleOperator, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Actor аутентифицированный пользователь, выполняющий действие
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

// IsStaff оператор, админ или суперадмин
func (a *Actor) IsStaff() bool {
	return a != nil && a.HasRole(StaffRoles...)
}

// IsOperator роль operator (доступ ограничен назначенными парковками)
func (a *Actor) IsOperator() bool {
	return a != nil && a.Role == RoleOperator
}

// HasRole проверяет вхождение роли в набор
func (a *Actor) HasRole(roles ...Role) bool {
	if a == nil {
		return false
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// RequireRole проверка доступа по набору ролей
func RequireRole(actor *Actor, roles ...Role) error {
	if actor == nil {
		return ErrUnauthorized
	}
	if !actor.HasRole(roles...) {
		return fmt.Errorf("%w: role %s", ErrForbidden, actor.Role)
	}
	return nil
}
