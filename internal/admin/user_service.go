package admin

import (
	"errors"

	"curryleaf-backend/internal/models"
)

var (
	ErrSelfDeletion   = errors.New("you cannot delete your own account")
	ErrLastSuperAdmin = errors.New("the last super admin cannot be removed or demoted")
)

// CanDeleteUser checks the deletion guards before anything touches the
// database: self-deletion is always rejected, and the last remaining super
// admin cannot be deleted (that would lock everyone out of user management).
func CanDeleteUser(actorID uint, target models.User, superAdminCount int64) error {
	if actorID == target.ID {
		return ErrSelfDeletion
	}
	if target.Role == models.RoleSuperAdmin && superAdminCount <= 1 {
		return ErrLastSuperAdmin
	}
	return nil
}

// CanChangeRole checks that a role change does not demote the last super
// admin.
func CanChangeRole(target models.User, newRole models.UserRole, superAdminCount int64) error {
	if !models.IsValidRole(newRole) {
		return errors.New("unknown role: " + string(newRole))
	}
	if target.Role == models.RoleSuperAdmin && newRole != models.RoleSuperAdmin && superAdminCount <= 1 {
		return ErrLastSuperAdmin
	}
	return nil
}
