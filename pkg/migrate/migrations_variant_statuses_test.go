package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVariantStatusesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_variant_statuses.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no variant statuses migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS variant_statuses",
		"variant_id   TEXT PRIMARY KEY",
		"variant_statuses_product_gid_idx",
		"DROP TABLE IF EXISTS variant_statuses",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
