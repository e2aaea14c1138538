package database

import (
	"testing"

	"github.com/caioogatalabs/dashboard-workshop/internal/models"
)

func TestManager(t *testing.T) {
	m, err := NewManager("file:database_manager_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer m.Close()

	if err := m.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, model := range models.All() {
		if !m.DB().Migrator().HasTable(model) {
			t.Errorf("expected table for %T", model)
		}
	}

	// Migrate is idempotent
	if err := m.Migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}
