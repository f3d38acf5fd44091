package admin

import (
	"errors"
	"testing"

	"curryleaf-backend/internal/models"
)

func TestCanDeleteUser(t *testing.T) {
	super := models.User{ID: 1, Role: models.RoleSuperAdmin}
	content := models.User{ID: 2, Role: models.RoleContentAdmin}

	// Self-deletion is rejected before any remote call regardless of rank.
	if err := CanDeleteUser(1, super, 5); !errors.Is(err, ErrSelfDeletion) {
		t.Errorf("self delete = %v, want ErrSelfDeletion", err)
	}

	if err := CanDeleteUser(2, super, 1); !errors.Is(err, ErrLastSuperAdmin) {
		t.Errorf("deleting last super admin = %v, want ErrLastSuperAdmin", err)
	}
	if err := CanDeleteUser(1, content, 1); err != nil {
		t.Errorf("deleting content admin = %v, want nil", err)
	}
	if err := CanDeleteUser(2, super, 2); err != nil {
		t.Errorf("deleting one of two super admins = %v, want nil", err)
	}
}

func TestCanChangeRole(t *testing.T) {
	super := models.User{ID: 1, Role: models.RoleSuperAdmin}
	content := models.User{ID: 2, Role: models.RoleContentAdmin}

	if err := CanChangeRole(super, models.RoleContentAdmin, 1); !errors.Is(err, ErrLastSuperAdmin) {
		t.Errorf("demoting last super admin = %v, want ErrLastSuperAdmin", err)
	}
	if err := CanChangeRole(super, models.RoleContentAdmin, 2); err != nil {
		t.Errorf("demoting one of two = %v, want nil", err)
	}
	if err := CanChangeRole(content, models.RoleSuperAdmin, 1); err != nil {
		t.Errorf("promotion = %v, want nil", err)
	}
	if err := CanChangeRole(content, "owner", 2); err == nil {
		t.Error("unknown role should be rejected")
	}
}
