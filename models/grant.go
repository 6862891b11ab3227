package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Review domains. Each keeps an independent school-assignment set on the same
// grant row; do not collapse them.
const (
	DomainIPR        = "ipr"
	DomainResearch   = "research"
	DomainBook       = "book"
	DomainConference = "conference"
	DomainGrant      = "grant"
)

// ReviewDomains lists all domains in display order.
var ReviewDomains = []string{DomainIPR, DomainResearch, DomainBook, DomainConference, DomainGrant}

// IsReviewDomain reports whether s names a known review domain.
func IsReviewDomain(s string) bool {
	for _, d := range ReviewDomains {
		if d == s {
			return true
		}
	}
	return false
}

// CapabilityMap maps capability key to enabled flag. Stored as jsonb; only
// true-valued keys are active.
type CapabilityMap map[string]bool

func (m CapabilityMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *CapabilityMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = CapabilityMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("capability map: unsupported scan type %T", src)
	}
}

// ActiveKeys returns the sorted list of true-valued capability keys.
func (m CapabilityMap) ActiveKeys() []string {
	keys := make([]string, 0, len(m))
	for k, on := range m {
		if on {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// IDList is a set of referenced IDs stored as a jsonb array. Order is not
// significant; Contains is the only set operation call sites need.
type IDList []string

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *IDList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = IDList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("id list: unsupported scan type %T", src)
	}
}

func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// PermissionGrant associates a user with an organizational unit, the set of
// active capabilities there, and (for review-capable central units) the
// per-domain school scopes. One row per (user_id, unit_id) pair, enforced by
// a unique index; revocation flips is_active rather than deleting the row.
type PermissionGrant struct {
	ID                        string        `gorm:"column:id;primaryKey" json:"id"`
	UserID                    string        `gorm:"column:user_id;index;uniqueIndex:idx_grant_user_unit" json:"user_id"`
	UnitID                    string        `gorm:"column:unit_id;index;uniqueIndex:idx_grant_user_unit" json:"unit_id"`
	Kind                      string        `gorm:"column:kind;index" json:"kind"`
	Capabilities              CapabilityMap `gorm:"column:capabilities;type:jsonb" json:"capabilities"`
	IsPrimary                 bool          `gorm:"column:is_primary" json:"is_primary"`
	IsActive                  bool          `gorm:"column:is_active;index" json:"is_active"`
	AssignedSchoolIDs         IDList        `gorm:"column:assigned_school_ids;type:jsonb" json:"assigned_school_ids"`
	AssignedResearchSchoolIDs IDList        `gorm:"column:assigned_research_school_ids;type:jsonb" json:"assigned_research_school_ids"`
	AssignedBookSchoolIDs     IDList        `gorm:"column:assigned_book_school_ids;type:jsonb" json:"assigned_book_school_ids"`
	AssignedConfSchoolIDs     IDList        `gorm:"column:assigned_conference_school_ids;type:jsonb" json:"assigned_conference_school_ids"`
	AssignedGrantSchoolIDs    IDList        `gorm:"column:assigned_grant_school_ids;type:jsonb" json:"assigned_grant_school_ids"`
	AssignedBy                string        `gorm:"column:assigned_by" json:"assigned_by"`
	AssignedAt                time.Time     `gorm:"column:assigned_at" json:"assigned_at"`
	UpdatedAt                 time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (PermissionGrant) TableName() string { return "permission_grants" }

// SchoolIDsFor returns the assignment set for one review domain.
// The IPR domain reads the legacy unsuffixed column.
func (g *PermissionGrant) SchoolIDsFor(domain string) IDList {
	switch domain {
	case DomainIPR:
		return g.AssignedSchoolIDs
	case DomainResearch:
		return g.AssignedResearchSchoolIDs
	case DomainBook:
		return g.AssignedBookSchoolIDs
	case DomainConference:
		return g.AssignedConfSchoolIDs
	case DomainGrant:
		return g.AssignedGrantSchoolIDs
	}
	return nil
}

// SetSchoolIDsFor replaces the assignment set for one review domain.
// Unknown domains are ignored; callers validate with IsReviewDomain first.
func (g *PermissionGrant) SetSchoolIDsFor(domain string, ids IDList) {
	switch domain {
	case DomainIPR:
		g.AssignedSchoolIDs = ids
	case DomainResearch:
		g.AssignedResearchSchoolIDs = ids
	case DomainBook:
		g.AssignedBookSchoolIDs = ids
	case DomainConference:
		g.AssignedConfSchoolIDs = ids
	case DomainGrant:
		g.AssignedGrantSchoolIDs = ids
	}
}

// domainColumns maps review domain to its grant column name, for targeted updates.
var domainColumns = map[string]string{
	DomainIPR:        "assigned_school_ids",
	DomainResearch:   "assigned_research_school_ids",
	DomainBook:       "assigned_book_school_ids",
	DomainConference: "assigned_conference_school_ids",
	DomainGrant:      "assigned_grant_school_ids",
}

// DomainColumn returns the grant column holding the domain's assignment set.
func DomainColumn(domain string) (string, bool) {
	col, ok := domainColumns[domain]
	return col, ok
}
