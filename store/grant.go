package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campus-hub/permission-service/apperrors"
	"github.com/campus-hub/permission-service/catalog"
	"github.com/campus-hub/permission-service/models"
	"github.com/campus-hub/permission-service/permission"
)

// GrantStore owns the permission_grants table and its invariants: one row
// per (user, unit), soft-delete on revoke, at most one primary grant per
// grant kind per user, the user profile's primary pointer kept in the same
// transaction.
type GrantStore struct {
	DB      *gorm.DB
	Units   *UnitStore
	Schools *SchoolStore
}

func NewGrantStore(db *gorm.DB) *GrantStore {
	return &GrantStore{DB: db, Units: NewUnitStore(db), Schools: NewSchoolStore(db)}
}

// GrantRequest is the payload for a grant upsert.
type GrantRequest struct {
	UserID       string
	UnitID       string
	Capabilities models.CapabilityMap
	IsPrimary    bool
}

// Grant upserts a permission grant. Administrator only. Setting IsPrimary
// demotes every other primary grant of the same kind and moves the user
// profile's denormalized primary pointer; dropping the flag on a primary
// grant clears the pointer. All inside one transaction together with the
// audit row.
func (s *GrantStore) Grant(ctx context.Context, actor Actor, req GrantRequest) (*models.PermissionGrant, error) {
	if !models.IsAdminRole(actor.Role) {
		return nil, apperrors.Authorization("administrator role required")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, apperrors.Validation("user_id is required")
	}
	if strings.TrimSpace(req.UnitID) == "" {
		return nil, apperrors.Validation("unit_id is required")
	}

	var grant models.PermissionGrant
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var unit models.OrganizationalUnit
		if err := tx.Where("id = ? AND is_active = ?", req.UnitID, true).First(&unit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("organizational unit not found")
			}
			return apperrors.Wrap("load unit", err)
		}

		now := time.Now().UTC()
		caps := req.Capabilities
		if caps == nil {
			caps = models.CapabilityMap{}
		}

		wasPrimary := false
		err := tx.Where("user_id = ? AND unit_id = ?", req.UserID, req.UnitID).First(&grant).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			grant = models.PermissionGrant{
				ID:           models.NewID(),
				UserID:       req.UserID,
				UnitID:       req.UnitID,
				Kind:         unit.Kind,
				Capabilities: caps,
				IsPrimary:    req.IsPrimary,
				IsActive:     true,
				AssignedBy:   actor.ID,
				AssignedAt:   now,
				UpdatedAt:    now,
			}
			if err := tx.Create(&grant).Error; err != nil {
				return translateDBError("create grant", err)
			}
		case err != nil:
			return apperrors.Wrap("load grant", err)
		default:
			wasPrimary = grant.IsPrimary
			updates := map[string]interface{}{
				"capabilities": caps,
				"is_primary":   req.IsPrimary,
				"is_active":    true,
				"assigned_by":  actor.ID,
				"updated_at":   now,
			}
			if err := tx.Model(&models.PermissionGrant{}).Where("id = ?", grant.ID).Updates(updates).Error; err != nil {
				return translateDBError("update grant", err)
			}
			grant.Capabilities = caps
			grant.IsPrimary = req.IsPrimary
			grant.IsActive = true
			grant.AssignedBy = actor.ID
			grant.UpdatedAt = now
		}

		switch {
		case req.IsPrimary:
			if err := tx.Model(&models.PermissionGrant{}).
				Where("user_id = ? AND kind = ? AND id <> ?", req.UserID, unit.Kind, grant.ID).
				Update("is_primary", false).Error; err != nil {
				return apperrors.Wrap("demote primary grants", err)
			}
			if err := setPrimaryPointer(tx, req.UserID, unit.Kind, &req.UnitID); err != nil {
				return err
			}
		case wasPrimary:
			// Demoting via upsert clears the profile pointer in the same
			// transaction, like Revoke does.
			if err := setPrimaryPointer(tx, req.UserID, unit.Kind, nil); err != nil {
				return err
			}
		}

		return writeAudit(tx, actor, "grant.upsert", grant.TableName(), grant.ID, grant)
	})
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// Revoke soft-deletes a grant: is_active and is_primary go false, the row
// stays for the audit trail. Idempotent; revoking an inactive or missing
// grant is a no-op.
func (s *GrantStore) Revoke(ctx context.Context, actor Actor, userID, unitID string) error {
	if !models.IsAdminRole(actor.Role) {
		return apperrors.Authorization("administrator role required")
	}
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(unitID) == "" {
		return apperrors.Validation("user_id and unit_id are required")
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var grant models.PermissionGrant
		err := tx.Where("user_id = ? AND unit_id = ?", userID, unitID).First(&grant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return apperrors.Wrap("load grant", err)
		}
		if !grant.IsActive && !grant.IsPrimary {
			return nil
		}
		wasPrimary := grant.IsPrimary
		updates := map[string]interface{}{
			"is_active":  false,
			"is_primary": false,
			"updated_at": time.Now().UTC(),
		}
		if err := tx.Model(&models.PermissionGrant{}).Where("id = ?", grant.ID).Updates(updates).Error; err != nil {
			return apperrors.Wrap("revoke grant", err)
		}
		if wasPrimary {
			if err := setPrimaryPointer(tx, userID, grant.Kind, nil); err != nil {
				return err
			}
		}
		return writeAudit(tx, actor, "grant.revoke", grant.TableName(), grant.ID,
			map[string]string{"user_id": userID, "unit_id": unitID})
	})
}

// setPrimaryPointer maintains the denormalized primary-unit pointer on the
// user profile. unitID nil clears it. A missing profile row is tolerated —
// profiles are provisioned by the accounts service.
func setPrimaryPointer(tx *gorm.DB, userID, kind string, unitID *string) error {
	col := "primary_central_dept_id"
	if kind == models.UnitKindSchoolDept {
		col = "primary_school_dept_id"
	}
	err := tx.Model(&models.UserProfile{}).Where("id = ?", userID).
		Updates(map[string]interface{}{col: unitID, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		return apperrors.Wrap("update primary pointer", err)
	}
	return nil
}

// CheckCapability answers "does user hold key in unit": exact match first,
// then the alias/variant set, then the evaluator's substring fallback.
// Inactive grants never match.
func (s *GrantStore) CheckCapability(ctx context.Context, userID, unitID, key string) (bool, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(unitID) == "" || strings.TrimSpace(key) == "" {
		return false, apperrors.Validation("user_id, unit_id and permission_key are required")
	}
	var grant models.PermissionGrant
	err := s.DB.WithContext(ctx).Where("user_id = ? AND unit_id = ? AND is_active = ?", userID, unitID, true).First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap("load grant", err)
	}
	active := grant.Capabilities.ActiveKeys()
	for _, k := range active {
		if k == key {
			return true, nil
		}
	}
	view := &permission.View{
		UserID: userID,
		Units:  []permission.UnitPermissions{{UnitID: unitID, Capabilities: active}},
	}
	return permission.HasCapability(view, key), nil
}

// activeGrantsWithUnits loads a user's active grants joined to their units.
func (s *GrantStore) activeGrantsWithUnits(ctx context.Context, userID string) ([]models.PermissionGrant, map[string]models.OrganizationalUnit, error) {
	var grants []models.PermissionGrant
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("assigned_at ASC").Find(&grants).Error
	if err != nil {
		return nil, nil, apperrors.Wrap("load grants", err)
	}
	unitIDs := make([]string, 0, len(grants))
	for _, g := range grants {
		unitIDs = append(unitIDs, g.UnitID)
	}
	units := map[string]models.OrganizationalUnit{}
	if len(unitIDs) > 0 {
		var rows []models.OrganizationalUnit
		if err := s.DB.WithContext(ctx).Where("id IN ?", unitIDs).Find(&rows).Error; err != nil {
			return nil, nil, apperrors.Wrap("load units", err)
		}
		for _, u := range rows {
			units[u.ID] = u
		}
	}
	return grants, units, nil
}

// EffectivePermissions builds the effective view for a user: the union of all
// active grants with per-unit capability lists, per-domain school scopes and
// primary display info. Visible to the user themself or an administrator.
func (s *GrantStore) EffectivePermissions(ctx context.Context, actor Actor, userID string) (*permission.View, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.Validation("user_id is required")
	}
	if actor.ID != userID && !models.IsAdminRole(actor.Role) {
		return nil, apperrors.Authorization("only the user or an administrator may view effective permissions")
	}

	var profile models.UserProfile
	err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, apperrors.Wrap("load profile", err)
	}

	grants, units, err := s.activeGrantsWithUnits(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &permission.View{UserID: userID, Role: profile.Role}
	for _, g := range grants {
		unit, ok := units[g.UnitID]
		if !ok || !unit.IsActive {
			continue
		}
		up := permission.UnitPermissions{
			UnitID:       g.UnitID,
			UnitName:     unit.Name,
			Kind:         g.Kind,
			Category:     unitCategory(ctx, s.DB, unit),
			IsPrimary:    g.IsPrimary,
			Capabilities: g.Capabilities.ActiveKeys(),
		}
		for _, domain := range models.ReviewDomains {
			ids := g.SchoolIDsFor(domain)
			if len(ids) == 0 {
				continue
			}
			if up.AssignedSchools == nil {
				up.AssignedSchools = map[string][]string{}
			}
			up.AssignedSchools[domain] = append([]string(nil), ids...)
		}
		view.Units = append(view.Units, up)

		if g.IsPrimary {
			ref := &permission.UnitRef{UnitID: unit.ID, Name: unit.Name, Category: up.Category}
			if g.Kind == models.UnitKindSchoolDept {
				view.PrimarySchoolDept = ref
			} else {
				view.PrimaryCentralDept = ref
			}
		}
	}
	return view, nil
}

// unitCategory labels a unit for the view: central departments by their
// type, academic departments by their school's name when resolvable.
func unitCategory(ctx context.Context, db *gorm.DB, unit models.OrganizationalUnit) string {
	if unit.Kind == models.UnitKindCentralDept {
		return unit.DeptType
	}
	if unit.SchoolID != "" {
		var school models.School
		if err := db.WithContext(ctx).Select("name").Where("id = ?", unit.SchoolID).First(&school).Error; err == nil {
			return school.Name
		}
	}
	return models.UnitKindSchoolDept
}

// minimalReviewCapabilities is the capability set a scope assignment creates
// a grant with when none exists yet.
func minimalReviewCapabilities(domain string) models.CapabilityMap {
	return models.CapabilityMap{catalog.ReviewCapability(domain): true}
}
