package store

import (
	"context"
	"testing"

	"github.com/campus-hub/permission-service/apperrors"
	"github.com/campus-hub/permission-service/models"
	"github.com/campus-hub/permission-service/permission"
)

var adminActor = Actor{ID: "test-admin", Role: models.RoleAdmin}

func TestGrantStore_Grant_RequiresAdmin(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	grants := NewGrantStore(db)

	_, err = grants.Grant(context.Background(), Actor{ID: "u1", Role: models.RoleStaff}, GrantRequest{
		UserID: "u1", UnitID: "unit-x",
	})
	if apperrors.KindOf(err) != apperrors.KindAuthorization {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestGrantStore_Grant_Validation(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	grants := NewGrantStore(db)

	_, err = grants.Grant(context.Background(), adminActor, GrantRequest{UnitID: "unit-x"})
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error for missing user_id, got %v", err)
	}
	_, err = grants.Grant(context.Background(), adminActor, GrantRequest{UserID: "u1"})
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error for missing unit_id, got %v", err)
	}
}

func TestGrantStore_Grant_UpsertsSingleRow(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	ctx := context.Background()
	grants := NewGrantStore(db)

	userID := insertProfile(t, db, "Upsert Tester", models.RoleStaff)
	unitID := insertCentralUnit(t, db, "Human Resources", "HR", models.DeptTypeHR)
	cleanupGrants(t, db, userID)

	first, err := grants.Grant(ctx, adminActor, GrantRequest{
		UserID: userID, UnitID: unitID,
		Capabilities: models.CapabilityMap{"employee_manage": true},
	})
	if err != nil {
		t.Fatalf("first grant: %v", err)
	}
	second, err := grants.Grant(ctx, adminActor, GrantRequest{
		UserID: userID, UnitID: unitID,
		Capabilities: models.CapabilityMap{"employee_manage": true, "leave_approve": true},
	})
	if err != nil {
		t.Fatalf("second grant: %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("re-granting must update the existing row, not create a new one")
	}

	var count int64
	db.Table("permission_grants").Where("user_id = ? AND unit_id = ?", userID, unitID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one grant row, found %d", count)
	}
	keys := second.Capabilities.ActiveKeys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 active capabilities, got %v", keys)
	}
}

func TestGrantStore_PrimaryExclusivity(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	ctx := context.Background()
	grants := NewGrantStore(db)

	userID := insertProfile(t, db, "Primary Tester", models.RoleStaff)
	d1 := insertCentralUnit(t, db, "Human Resources", "HR", models.DeptTypeHR)
	d2 := insertCentralUnit(t, db, "Finance and Accounts", "Finance", models.DeptTypeFinance)
	cleanupGrants(t, db, userID)

	if _, err := grants.Grant(ctx, adminActor, GrantRequest{UserID: userID, UnitID: d1, IsPrimary: true}); err != nil {
		t.Fatalf("grant d1: %v", err)
	}
	if _, err := grants.Grant(ctx, adminActor, GrantRequest{UserID: userID, UnitID: d2, IsPrimary: true}); err != nil {
		t.Fatalf("grant d2: %v", err)
	}

	var g1, g2 models.PermissionGrant
	db.Where("user_id = ? AND unit_id = ?", userID, d1).First(&g1)
	db.Where("user_id = ? AND unit_id = ?", userID, d2).First(&g2)
	if g1.IsPrimary {
		t.Fatal("d1 must have been demoted")
	}
	if !g2.IsPrimary {
		t.Fatal("d2 must be primary")
	}

	var profile models.UserProfile
	db.Where("id = ?", userID).First(&profile)
	if profile.PrimaryCentralDeptID == nil || *profile.PrimaryCentralDeptID != d2 {
		t.Fatal("denormalized primary pointer must follow the new primary grant")
	}
}

func TestGrantStore_DemoteViaUpsert_ClearsPrimaryPointer(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	ctx := context.Background()
	grants := NewGrantStore(db)

	userID := insertProfile(t, db, "Demote Tester", models.RoleStaff)
	unitID := insertCentralUnit(t, db, "Human Resources", "HR", models.DeptTypeHR)
	cleanupGrants(t, db, userID)

	if _, err := grants.Grant(ctx, adminActor, GrantRequest{UserID: userID, UnitID: unitID, IsPrimary: true}); err != nil {
		t.Fatalf("grant primary: %v", err)
	}
	// Re-granting the same unit without the primary flag demotes it.
	if _, err := grants.Grant(ctx, adminActor, GrantRequest{
		UserID: userID, UnitID: unitID,
		Capabilities: models.CapabilityMap{"employee_manage": true},
	}); err != nil {
		t.Fatalf("demote via upsert: %v", err)
	}

	var g models.PermissionGrant
	db.Where("user_id = ? AND unit_id = ?", userID, unitID).First(&g)
	if g.IsPrimary {
		t.Fatal("re-grant without the primary flag must demote the row")
	}
	var profile models.UserProfile
	db.Where("id = ?", userID).First(&profile)
	if profile.PrimaryCentralDeptID != nil {
		t.Fatal("demoting the primary grant must clear the profile pointer")
	}
}

func TestGrantStore_Revoke_Idempotent(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	ctx := context.Background()
	grants := NewGrantStore(db)

	userID := insertProfile(t, db, "Revoke Tester", models.RoleStaff)
	unitID := insertCentralUnit(t, db, "Human Resources", "HR", models.DeptTypeHR)
	cleanupGrants(t, db, userID)

	if _, err := grants.Grant(ctx, adminActor, GrantRequest{
		UserID: userID, UnitID: unitID, IsPrimary: true,
		Capabilities: models.CapabilityMap{"employee_manage": true},
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	if err := grants.Revoke(ctx, adminActor, userID, unitID); err != nil {
		t.Fatalf("first revoke: %v", err)
	}
	if err := grants.Revoke(ctx, adminActor, userID, unitID); err != nil {
		t.Fatalf("second revoke must be a no-op, got %v", err)
	}
	// Revoking a grant that never existed is also a no-op.
	if err := grants.Revoke(ctx, adminActor, userID, "unit-never-existed"); err != nil {
		t.Fatalf("revoking missing grant must be a no-op, got %v", err)
	}

	var g models.PermissionGrant
	db.Where("user_id = ? AND unit_id = ?", userID, unitID).First(&g)
	if g.IsActive || g.IsPrimary {
		t.Fatalf("revoked grant must be inactive and non-primary: %+v", g)
	}
	var profile models.UserProfile
	db.Where("id = ?", userID).First(&profile)
	if profile.PrimaryCentralDeptID != nil {
		t.Fatal("revoking the primary grant must clear the profile pointer")
	}
}

func TestGrantStore_EffectivePermissions_SelfOrAdminOnly(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	ctx := context.Background()
	grants := NewGrantStore(db)

	userID := insertProfile(t, db, "View Tester", models.RoleStaff)

	_, err = grants.EffectivePermissions(ctx, Actor{ID: "someone-else", Role: models.RoleStaff}, userID)
	if apperrors.KindOf(err) != apperrors.KindAuthorization {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if _, err := grants.EffectivePermissions(ctx, Actor{ID: userID, Role: models.RoleStaff}, userID); err != nil {
		t.Fatalf("self view: %v", err)
	}
	if _, err := grants.EffectivePermissions(ctx, adminActor, userID); err != nil {
		t.Fatalf("admin view: %v", err)
	}
}

func TestGrantStore_EffectivePermissions_ExcludesRevoked(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	ctx := context.Background()
	grants := NewGrantStore(db)

	userID := insertProfile(t, db, "Soft Delete Tester", models.RoleStaff)
	unitID := insertCentralUnit(t, db, "Human Resources", "HR", models.DeptTypeHR)
	cleanupGrants(t, db, userID)

	if _, err := grants.Grant(ctx, adminActor, GrantRequest{
		UserID: userID, UnitID: unitID,
		Capabilities: models.CapabilityMap{"employee_manage": true},
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := grants.Revoke(ctx, adminActor, userID, unitID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	view, err := grants.EffectivePermissions(ctx, adminActor, userID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if !view.IsEmpty() {
		t.Fatalf("revoked grants must not appear in the effective view: %+v", view.Units)
	}
	if permission.HasCapability(view, "employee_manage") {
		t.Fatal("capability check against a revoked grant must be false")
	}

	// The row itself survives for the audit trail.
	var count int64
	db.Table("permission_grants").Where("user_id = ? AND unit_id = ?", userID, unitID).Count(&count)
	if count != 1 {
		t.Fatalf("revocation must not delete the row, found %d", count)
	}
}

func TestGrantStore_CheckCapability_LegacyVariant(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	ctx := context.Background()
	grants := NewGrantStore(db)

	userID := insertProfile(t, db, "Check Tester", models.RoleStaff)
	unitID := insertCentralUnit(t, db, "Human Resources", "HR", models.DeptTypeHR)
	cleanupGrants(t, db, userID)

	if _, err := grants.Grant(ctx, adminActor, GrantRequest{
		UserID: userID, UnitID: unitID,
		Capabilities: models.CapabilityMap{"drd_ipr_file": true, "leave_approve": false},
	}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	has, err := grants.CheckCapability(ctx, userID, unitID, "ipr_file_new")
	if err != nil || !has {
		t.Fatalf("legacy stored flag should satisfy the new key: has=%v err=%v", has, err)
	}
	// False-valued flags are not active.
	has, err = grants.CheckCapability(ctx, userID, unitID, "leave_approve")
	if err != nil || has {
		t.Fatalf("false-valued flag must not match: has=%v err=%v", has, err)
	}
	has, err = grants.CheckCapability(ctx, userID, "unit-missing", "ipr_file_new")
	if err != nil || has {
		t.Fatalf("missing grant must be a normal false: has=%v err=%v", has, err)
	}
}

func TestGrantStore_Grant_WritesAudit(t *testing.T) {
	db, err := getTestGormDB()
	if err != nil {
		t.Skip("No database connection available")
	}
	ctx := context.Background()
	grants := NewGrantStore(db)

	userID := insertProfile(t, db, "Audit Tester", models.RoleStaff)
	unitID := insertCentralUnit(t, db, "Human Resources", "HR", models.DeptTypeHR)
	cleanupGrants(t, db, userID)

	grant, err := grants.Grant(ctx, adminActor, GrantRequest{
		UserID: userID, UnitID: unitID,
		Capabilities: models.CapabilityMap{"employee_manage": true},
	})
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM audit_logs WHERE target_id = ?`, grant.ID) })

	var count int64
	db.Table("audit_logs").Where("target_id = ? AND action = ?", grant.ID, "grant.upsert").Count(&count)
	if count != 1 {
		t.Fatalf("expected one audit row for the grant, found %d", count)
	}
}
