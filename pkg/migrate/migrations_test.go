package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/multiprice-backend/pkg/migrate"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", "*_"+suffix+".sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no %s migration file found", suffix)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, checks []string) {
	t.Helper()
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestUomMigrationContainsSchemas(t *testing.T) {
	assertContains(t, readMigration(t, "create_uom_tables"), []string{
		"CREATE TABLE IF NOT EXISTS uom_categories",
		"CREATE TABLE IF NOT EXISTS uoms",
		"CHECK (ratio > 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_uoms_category_reference",
	})
}

func TestProductsMigrationContainsSchemas(t *testing.T) {
	assertContains(t, readMigration(t, "create_products_tables"), []string{
		"CREATE TABLE IF NOT EXISTS price_names",
		"CREATE TABLE IF NOT EXISTS product_templates",
		"list_price numeric(16, 4) NOT NULL DEFAULT 1",
		"CREATE TABLE IF NOT EXISTS product_variants",
		"CREATE TABLE IF NOT EXISTS product_prices",
		"CHECK (price >= 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_product_prices_template_name",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_product_prices_variant_name",
	})
}

func TestPricelistsMigrationContainsSchemas(t *testing.T) {
	assertContains(t, readMigration(t, "create_pricelists_tables"), []string{
		"CREATE TABLE IF NOT EXISTS pricelists",
		"CREATE TABLE IF NOT EXISTS pricelist_items",
		"'multi_price'",
		"multi_price_name_id uuid REFERENCES price_names (id) ON DELETE SET NULL",
		"price_min_margin",
		"price_max_margin",
	})
}

func TestDocumentsMigrationContainsSchemas(t *testing.T) {
	assertContains(t, readMigration(t, "create_product_documents_table"), []string{
		"CREATE TABLE IF NOT EXISTS product_documents",
		"CREATE INDEX IF NOT EXISTS idx_product_documents_res",
	})
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Price Tags!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_price_tags.sql") {
		t.Fatalf("unexpected file name %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("validate created migration: %v", err)
	}
}
