package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campus-hub/permission-service/apperrors"
	"github.com/campus-hub/permission-service/models"
)

// Member is one reviewer in a domain, for the administrative views.
type Member struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// MemberSchools pairs a reviewer with their resolved school scope in one domain.
type MemberSchools struct {
	Member
	Schools []models.School `json:"schools"`
}

// SchoolMembers pairs a school with the reviewers covering it in one domain.
type SchoolMembers struct {
	School  models.School `json:"school"`
	Members []Member      `json:"members"`
}

// AssignScope writes a reviewer's school set for one domain, verbatim.
// The grant row lives on the domain's organizational unit; when the user has
// no grant there yet one is created carrying just the domain's review
// capability. Dangling school IDs are stored as-is and filtered at read time.
func (s *GrantStore) AssignScope(ctx context.Context, actor Actor, userID, domain string, schoolIDs []string) (*models.PermissionGrant, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.Validation("user_id is required")
	}
	if !models.IsReviewDomain(domain) {
		return nil, apperrors.Validation("unknown review domain: " + domain)
	}
	unit, err := s.Units.ResolveDomainUnit(ctx, domain)
	if err != nil {
		return nil, err
	}
	if schoolIDs == nil {
		schoolIDs = []string{}
	}

	var grant models.PermissionGrant
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		err := tx.Where("user_id = ? AND unit_id = ?", userID, unit.ID).First(&grant).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			grant = models.PermissionGrant{
				ID:           models.NewID(),
				UserID:       userID,
				UnitID:       unit.ID,
				Kind:         unit.Kind,
				Capabilities: minimalReviewCapabilities(domain),
				IsActive:     true,
				AssignedBy:   actor.ID,
				AssignedAt:   now,
				UpdatedAt:    now,
			}
			grant.SetSchoolIDsFor(domain, models.IDList(schoolIDs))
			if err := tx.Create(&grant).Error; err != nil {
				return translateDBError("create grant", err)
			}
		case err != nil:
			return apperrors.Wrap("load grant", err)
		default:
			col, _ := models.DomainColumn(domain)
			updates := map[string]interface{}{
				col:          models.IDList(schoolIDs),
				"is_active":  true,
				"updated_at": now,
			}
			if err := tx.Model(&models.PermissionGrant{}).Where("id = ?", grant.ID).Updates(updates).Error; err != nil {
				return translateDBError("update grant scope", err)
			}
			grant.SetSchoolIDsFor(domain, models.IDList(schoolIDs))
			grant.IsActive = true
			grant.UpdatedAt = now
		}
		return writeAudit(tx, actor, "scope.assign."+domain, grant.TableName(), grant.ID,
			map[string]interface{}{"user_id": userID, "domain": domain, "school_ids": schoolIDs})
	})
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// ResolveAssignedSchools computes the schools a reviewer may act on in one
// domain: the stored ID set intersected with currently-active schools,
// ordered by name. No grant or an empty set is a valid empty result.
func (s *GrantStore) ResolveAssignedSchools(ctx context.Context, userID, domain string) ([]models.School, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.Validation("user_id is required")
	}
	unit, err := s.Units.ResolveDomainUnit(ctx, domain)
	if err != nil {
		return nil, err
	}
	var grant models.PermissionGrant
	err = s.DB.WithContext(ctx).Where("user_id = ? AND unit_id = ? AND is_active = ?", userID, unit.ID, true).First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.School{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap("load grant", err)
	}
	return s.Schools.ActiveByIDs(ctx, grant.SchoolIDsFor(domain))
}

// activeDomainGrants loads all active grants on the domain's unit together
// with member display names.
func (s *GrantStore) activeDomainGrants(ctx context.Context, domain string) ([]models.PermissionGrant, map[string]string, error) {
	unit, err := s.Units.ResolveDomainUnit(ctx, domain)
	if err != nil {
		return nil, nil, err
	}
	var grants []models.PermissionGrant
	if err := s.DB.WithContext(ctx).Where("unit_id = ? AND is_active = ?", unit.ID, true).Find(&grants).Error; err != nil {
		return nil, nil, apperrors.Wrap("load domain grants", err)
	}
	userIDs := make([]string, 0, len(grants))
	for _, g := range grants {
		userIDs = append(userIDs, g.UserID)
	}
	names := map[string]string{}
	if len(userIDs) > 0 {
		var profiles []models.UserProfile
		if err := s.DB.WithContext(ctx).Select("id, display_name").Where("id IN ?", userIDs).Find(&profiles).Error; err != nil {
			return nil, nil, apperrors.Wrap("load profiles", err)
		}
		for _, p := range profiles {
			names[p.ID] = p.DisplayName
		}
	}
	return grants, names, nil
}

// MembersForSchool lists every reviewer whose domain scope contains the
// school. The JSON sets are small; membership is filtered in process rather
// than with dialect-specific JSON operators.
func (s *GrantStore) MembersForSchool(ctx context.Context, domain, schoolID string) ([]Member, error) {
	if strings.TrimSpace(schoolID) == "" {
		return nil, apperrors.Validation("school_id is required")
	}
	grants, names, err := s.activeDomainGrants(ctx, domain)
	if err != nil {
		return nil, err
	}
	var members []Member
	for _, g := range grants {
		if g.SchoolIDsFor(domain).Contains(schoolID) {
			members = append(members, Member{UserID: g.UserID, DisplayName: names[g.UserID]})
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].DisplayName < members[j].DisplayName })
	if members == nil {
		members = []Member{}
	}
	return members, nil
}

// MembersWithSchools is the admin view "each reviewer and the schools they
// cover" for one domain.
func (s *GrantStore) MembersWithSchools(ctx context.Context, domain string) ([]MemberSchools, error) {
	grants, names, err := s.activeDomainGrants(ctx, domain)
	if err != nil {
		return nil, err
	}
	out := make([]MemberSchools, 0, len(grants))
	for _, g := range grants {
		schools, err := s.Schools.ActiveByIDs(ctx, g.SchoolIDsFor(domain))
		if err != nil {
			return nil, err
		}
		out = append(out, MemberSchools{
			Member:  Member{UserID: g.UserID, DisplayName: names[g.UserID]},
			Schools: schools,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

// SchoolsWithMembers is the inverse admin view: every active school and the
// reviewers covering it in one domain. Schools with no coverage appear with
// an empty member list.
func (s *GrantStore) SchoolsWithMembers(ctx context.Context, domain string) ([]SchoolMembers, error) {
	grants, names, err := s.activeDomainGrants(ctx, domain)
	if err != nil {
		return nil, err
	}
	schools, err := s.Schools.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SchoolMembers, 0, len(schools))
	for _, school := range schools {
		sm := SchoolMembers{School: school, Members: []Member{}}
		for _, g := range grants {
			if g.SchoolIDsFor(domain).Contains(school.ID) {
				sm.Members = append(sm.Members, Member{UserID: g.UserID, DisplayName: names[g.UserID]})
			}
		}
		sort.Slice(sm.Members, func(i, j int) bool { return sm.Members[i].DisplayName < sm.Members[j].DisplayName })
		out = append(out, sm)
	}
	return out, nil
}
