package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campus-hub/permission-service/apperrors"
	"github.com/campus-hub/permission-service/models"
)

type UnitStore struct{ DB *gorm.DB }

func NewUnitStore(db *gorm.DB) *UnitStore { return &UnitStore{DB: db} }

// domainFuzzyTokens drive the legacy fallback lookup of a review domain's
// owning department when no explicit mapping row exists. All five domains
// live under the research/development office in practice.
var domainFuzzyTokens = map[string][]string{
	models.DomainIPR:        {"DRD", "Development", "Research"},
	models.DomainResearch:   {"DRD", "Development", "Research"},
	models.DomainBook:       {"DRD", "Development", "Research"},
	models.DomainConference: {"DRD", "Development", "Research"},
	models.DomainGrant:      {"DRD", "Development", "Research"},
}

func (s *UnitStore) Get(ctx context.Context, id string) (*models.OrganizationalUnit, error) {
	var unit models.OrganizationalUnit
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("organizational unit not found")
	}
	if err != nil {
		return nil, apperrors.Wrap("load unit", err)
	}
	return &unit, nil
}

// List returns active units, optionally filtered by kind, ordered by name.
func (s *UnitStore) List(ctx context.Context, kind string) ([]models.OrganizationalUnit, error) {
	q := s.DB.WithContext(ctx).Where("is_active = ?", true)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var units []models.OrganizationalUnit
	err := q.Order("name ASC").Find(&units).Error
	return units, err
}

// Create inserts a new unit. Administrator only.
func (s *UnitStore) Create(ctx context.Context, actor Actor, unit *models.OrganizationalUnit) error {
	if !models.IsAdminRole(actor.Role) {
		return apperrors.Authorization("administrator role required")
	}
	if strings.TrimSpace(unit.Code) == "" || strings.TrimSpace(unit.Name) == "" {
		return apperrors.Validation("unit code and name are required")
	}
	switch unit.Kind {
	case models.UnitKindSchoolDept:
		if strings.TrimSpace(unit.SchoolID) == "" {
			return apperrors.Validation("school_id is required for school departments")
		}
	case models.UnitKindCentralDept:
		if strings.TrimSpace(unit.DeptType) == "" {
			return apperrors.Validation("dept_type is required for central departments")
		}
	default:
		return apperrors.Validation("kind must be SCHOOL_DEPT or CENTRAL_DEPT")
	}
	unit.ID = models.NewID()
	unit.IsActive = true
	now := time.Now().UTC()
	unit.CreatedAt = now
	unit.UpdatedAt = now
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(unit).Error; err != nil {
			return translateDBError("create unit", err)
		}
		return writeAudit(tx, actor, "unit.create", unit.TableName(), unit.ID, unit)
	})
}

// SetDomainUnit pins a review domain to a unit, replacing any previous
// mapping. Administrator only.
func (s *UnitStore) SetDomainUnit(ctx context.Context, actor Actor, domain, unitID string) error {
	if !models.IsAdminRole(actor.Role) {
		return apperrors.Authorization("administrator role required")
	}
	if !models.IsReviewDomain(domain) {
		return apperrors.Validation("unknown review domain: " + domain)
	}
	if strings.TrimSpace(unitID) == "" {
		return apperrors.Validation("unit_id is required")
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var unit models.OrganizationalUnit
		if err := tx.Where("id = ? AND kind = ? AND is_active = ?", unitID, models.UnitKindCentralDept, true).First(&unit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("central department not found")
			}
			return apperrors.Wrap("load unit", err)
		}
		mapping := models.DomainUnitMapping{
			Domain:    domain,
			UnitID:    unitID,
			UpdatedBy: actor.ID,
			UpdatedAt: time.Now().UTC(),
		}
		if err := tx.Where("domain = ?", domain).Delete(&models.DomainUnitMapping{}).Error; err != nil {
			return apperrors.Wrap("replace mapping", err)
		}
		if err := tx.Create(&mapping).Error; err != nil {
			return translateDBError("create mapping", err)
		}
		return writeAudit(tx, actor, "domain_unit.set", mapping.TableName(), domain, mapping)
	})
}

// ResolveDomainUnit finds the organizational unit owning a review domain.
// The explicit admin-configured mapping wins; without one it falls back to a
// fuzzy substring scan over code/name/short_name, first match by creation
// order. NotFound carries a message telling the admin to create the
// department.
func (s *UnitStore) ResolveDomainUnit(ctx context.Context, domain string) (*models.OrganizationalUnit, error) {
	if !models.IsReviewDomain(domain) {
		return nil, apperrors.Validation("unknown review domain: " + domain)
	}
	var mapping models.DomainUnitMapping
	err := s.DB.WithContext(ctx).Where("domain = ?", domain).First(&mapping).Error
	if err == nil {
		unit, uerr := s.Get(ctx, mapping.UnitID)
		if uerr == nil && unit.IsActive {
			return unit, nil
		}
		// Mapping points at a deleted unit; fall through to the fuzzy scan.
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap("load domain mapping", err)
	}

	q := s.DB.WithContext(ctx).Where("kind = ? AND is_active = ?", models.UnitKindCentralDept, true)
	var clauses []string
	var args []interface{}
	for _, tok := range domainFuzzyTokens[domain] {
		like := "%" + strings.ToLower(tok) + "%"
		clauses = append(clauses, "(LOWER(code) LIKE ? OR LOWER(name) LIKE ? OR LOWER(short_name) LIKE ?)")
		args = append(args, like, like, like)
	}
	var unit models.OrganizationalUnit
	err = q.Where(strings.Join(clauses, " OR "), args...).Order("created_at ASC").First(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("no department is configured for the " + domain + " domain; please create it or set a domain mapping")
	}
	if err != nil {
		return nil, apperrors.Wrap("resolve domain unit", err)
	}
	return &unit, nil
}

// translateDBError maps persistence failures onto the service taxonomy.
// Unique-key violations become Conflict; retrying the idempotent upsert is
// safe.
func translateDBError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict(op + ": concurrent update")
	}
	if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") {
		return apperrors.Conflict(op + ": concurrent update")
	}
	return apperrors.Wrap(op, err)
}
