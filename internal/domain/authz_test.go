package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanManageFranchise(t *testing.T) {
	franchiseID := uuid.New()

	admin := &User{ID: uuid.New(), Roles: []RoleAssignment{Diner(), Admin()}}
	franchisee := &User{ID: uuid.New(), Roles: []RoleAssignment{Diner(), FranchiseeOf(franchiseID)}}
	otherFranchisee := &User{ID: uuid.New(), Roles: []RoleAssignment{FranchiseeOf(uuid.New())}}
	diner := &User{ID: uuid.New(), Roles: []RoleAssignment{Diner()}}

	if !CanManageFranchise(admin, franchiseID) {
		t.Error("admin should manage any franchise")
	}
	if !CanManageFranchise(franchisee, franchiseID) {
		t.Error("franchisee should manage its own franchise")
	}
	if CanManageFranchise(otherFranchisee, franchiseID) {
		t.Error("franchisee of another franchise must not manage this one")
	}
	if CanManageFranchise(diner, franchiseID) {
		t.Error("diner must not manage franchises")
	}
	if CanManageFranchise(nil, franchiseID) {
		t.Error("missing principal must not manage franchises")
	}
}

func TestVisibleFranchises(t *testing.T) {
	target := &User{ID: uuid.New(), Roles: []RoleAssignment{Diner()}}
	admin := &User{ID: uuid.New(), Roles: []RoleAssignment{Admin()}}
	stranger := &User{ID: uuid.New(), Roles: []RoleAssignment{Diner()}}

	fetched := []Franchise{{ID: uuid.New(), Name: "pizzaPocket"}}

	if got := VisibleFranchises(admin, target.ID, fetched); len(got) != 1 {
		t.Errorf("admin should see the target's franchises, got %v", got)
	}
	if got := VisibleFranchises(admin, admin.ID, fetched); len(got) != 1 {
		t.Errorf("admin should see franchises for its own id, got %v", got)
	}
	if got := VisibleFranchises(target, target.ID, fetched); len(got) != 1 {
		t.Errorf("user should see its own franchises, got %v", got)
	}

	got := VisibleFranchises(stranger, target.ID, fetched)
	if got == nil || len(got) != 0 {
		t.Errorf("unrelated user should get an empty non-nil list, got %#v", got)
	}

	if got := VisibleFranchises(target, target.ID, nil); got == nil {
		t.Error("expected an empty non-nil list when nothing was fetched")
	}
}

func TestCanUpdateUser(t *testing.T) {
	self := &User{ID: uuid.New(), Roles: []RoleAssignment{Diner()}}
	admin := &User{ID: uuid.New(), Roles: []RoleAssignment{Admin()}}

	if !CanUpdateUser(self, self.ID) {
		t.Error("users should update themselves")
	}
	if CanUpdateUser(self, admin.ID) {
		t.Error("users must not update others")
	}
	if CanUpdateUser(admin, self.ID) {
		t.Error("admins get no override for updating other users")
	}
}
