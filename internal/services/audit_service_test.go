package services

import (
	"context"
	"testing"

	"expensetracker/internal/models"
	"expensetracker/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	user := testutil.CreateTestUser(t, db)

	svc.Log(context.Background(), user.ID, AuditCreate, "category", "cat-1", "127.0.0.1", map[string]interface{}{"name": "Pets"})

	var entry models.AuditLog
	if err := db.First(&entry, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("expected audit entry: %v", err)
	}
	if entry.Action != AuditCreate || entry.ResourceType != "category" || entry.ResourceID != "cat-1" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.Changes != `{"name":"Pets"}` {
		t.Errorf("unexpected changes %q", entry.Changes)
	}
}

func TestAuditLog_FailureDoesNotPanic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(db)
	testutil.TeardownTestDB(t, db)

	svc.Log(context.Background(), "user", AuditDelete, "expense", "x", "", nil)
}

func TestAuditLog_MasksSecrets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	user := testutil.CreateTestUser(t, db)

	svc.Log(context.Background(), user.ID, AuditRegister, "user", user.ID, "", map[string]interface{}{
		"username":     "alice",
		"new_password": "secret1",
		"csrf_token":   "abc",
	})

	var entry models.AuditLog
	if err := db.First(&entry, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("expected audit entry: %v", err)
	}
	want := `{"csrf_token":"[redacted]","new_password":"[redacted]","username":"alice"}`
	if entry.Changes != want {
		t.Errorf("expected %s, got %s", want, entry.Changes)
	}
}

func TestAuditLog_EmptyChanges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	user := testutil.CreateTestUser(t, db)

	svc.Log(context.Background(), user.ID, AuditLogin, "user", user.ID, "10.0.0.1", nil)

	var entry models.AuditLog
	if err := db.First(&entry, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("expected audit entry: %v", err)
	}
	if entry.Changes != "" || entry.IPAddress != "10.0.0.1" {
		t.Errorf("unexpected entry %+v", entry)
	}
}
