package store

import (
	"testing"

	"gorm.io/gorm"
)

// Test fixtures insert directly and clean up with t.Cleanup so a failed
// assertion does not leak rows into later tests.

func insertSchool(t *testing.T, db *gorm.DB, name string, active bool) string {
	t.Helper()
	id := uniqueTestID("school")
	err := db.Exec(`INSERT INTO schools (id, code, name, is_active) VALUES (?, ?, ?, ?)`, id, id, name, active).Error
	if err != nil {
		t.Fatalf("insert school: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM schools WHERE id = ?`, id) })
	return id
}

func insertCentralUnit(t *testing.T, db *gorm.DB, name, shortName, deptType string) string {
	t.Helper()
	id := uniqueTestID("unit")
	err := db.Exec(`INSERT INTO organizational_units (id, kind, code, name, short_name, dept_type, is_active)
		VALUES (?, 'CENTRAL_DEPT', ?, ?, ?, ?, TRUE)`, id, id, name, shortName, deptType).Error
	if err != nil {
		t.Fatalf("insert central unit: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM organizational_units WHERE id = ?`, id) })
	return id
}

func insertSchoolDept(t *testing.T, db *gorm.DB, name, schoolID string) string {
	t.Helper()
	id := uniqueTestID("unit")
	err := db.Exec(`INSERT INTO organizational_units (id, kind, code, name, short_name, school_id, is_active)
		VALUES (?, 'SCHOOL_DEPT', ?, ?, ?, ?, TRUE)`, id, id, name, name, schoolID).Error
	if err != nil {
		t.Fatalf("insert school dept: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM organizational_units WHERE id = ?`, id) })
	return id
}

func insertProfile(t *testing.T, db *gorm.DB, displayName, role string) string {
	t.Helper()
	id := uniqueTestID("user")
	err := db.Exec(`INSERT INTO user_profiles (id, display_name, role) VALUES (?, ?, ?)`, id, displayName, role).Error
	if err != nil {
		t.Fatalf("insert profile: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM user_profiles WHERE id = ?`, id) })
	return id
}

func cleanupGrants(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	t.Cleanup(func() { db.Exec(`DELETE FROM permission_grants WHERE user_id = ?`, userID) })
}

// mapDomain pins a review domain to a unit for the duration of one test.
func mapDomain(t *testing.T, db *gorm.DB, domain, unitID string) {
	t.Helper()
	db.Exec(`DELETE FROM domain_unit_mappings WHERE domain = ?`, domain)
	err := db.Exec(`INSERT INTO domain_unit_mappings (domain, unit_id, updated_by) VALUES (?, ?, 'test')`, domain, unitID).Error
	if err != nil {
		t.Fatalf("map domain: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM domain_unit_mappings WHERE domain = ?`, domain) })
}
