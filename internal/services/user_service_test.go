package services

import (
	"net/http"
	"testing"

	"github.com/sithub/sithub/internal/models"
)

func TestUserUpdate_EmailConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	createTestUser(t, db, "first", "first@example.com", models.RoleDeveloper)
	second := createTestUser(t, db, "second", "second@example.com", models.RoleDeveloper)

	taken := "first@example.com"
	_, err := svc.Update(second.ID, &UpdateUserRequest{Email: &taken})
	if err == nil {
		t.Fatal("expected conflict for taken email")
	}
	if status := appErrStatus(t, err); status != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, status)
	}
}

func TestUserUpdate_InvalidRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "user", "user@example.com", models.RoleDeveloper)

	bad := "SUPERUSER"
	_, err := svc.Update(user.ID, &UpdateUserRequest{Role: &bad})
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
	if status := appErrStatus(t, err); status != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, status)
	}
}

func TestUserUpdate_RolePromotion(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "user", "user@example.com", models.RoleDeveloper)

	admin := models.RoleAdmin
	updated, err := svc.Update(user.ID, &UpdateUserRequest{Role: &admin})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Errorf("role = %q, expected %q", updated.Role, models.RoleAdmin)
	}
}

func TestUserUpdate_NoFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "user", "user@example.com", models.RoleDeveloper)

	_, err := svc.Update(user.ID, &UpdateUserRequest{})
	if err == nil {
		t.Fatal("expected error for empty update")
	}
	if status := appErrStatus(t, err); status != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, status)
	}
}

func TestUserDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "user", "user@example.com", models.RoleDeveloper)

	if err := svc.Delete(user.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.GetByID(user.ID); err == nil {
		t.Error("deleted user must not be retrievable")
	}

	if err := svc.Delete(user.ID); err == nil {
		t.Error("deleting a deleted user must fail")
	}
}

func TestUserList_Filters(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	createTestUser(t, db, "alice", "alice@example.com", models.RoleAdmin)
	createTestUser(t, db, "bob", "bob@example.com", models.RoleDeveloper)
	createTestUser(t, db, "alicia", "alicia@example.com", models.RoleDeveloper)

	result, err := svc.List(&UserListRequest{Username: "ali"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("username filter: expected 2, got %d", result.Total)
	}

	result, err = svc.List(&UserListRequest{Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Total != 1 {
		t.Errorf("role filter: expected 1, got %d", result.Total)
	}
}
