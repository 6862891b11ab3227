package models

import "time"

// UnitKind distinguishes school-attached academic departments from central
// administrative departments. A grant always carries the kind of its unit;
// the two kinds never mix in one grant row.
const (
	UnitKindSchoolDept  = "SCHOOL_DEPT"
	UnitKindCentralDept = "CENTRAL_DEPT"
)

// Central department types. Each has its own capability catalog.
const (
	DeptTypeHR         = "HR"
	DeptTypeFinance    = "FINANCE"
	DeptTypeDRD        = "DRD"
	DeptTypeIT         = "IT"
	DeptTypeLibrary    = "LIBRARY"
	DeptTypeAdmissions = "ADMISSIONS"
	DeptTypeRegistrar  = "REGISTRAR"
	DeptTypeERP        = "ERP"
)

// OrganizationalUnit is either an academic department (SchoolID set) or a
// central administrative department (DeptType set). Referenced, never owned,
// by permission grants.
type OrganizationalUnit struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Kind      string    `gorm:"column:kind;index" json:"kind"`
	Code      string    `gorm:"column:code;uniqueIndex" json:"code"`
	Name      string    `gorm:"column:name" json:"name"`
	ShortName string    `gorm:"column:short_name" json:"short_name"`
	SchoolID  string    `gorm:"column:school_id;index" json:"school_id,omitempty"`
	DeptType  string    `gorm:"column:dept_type;index" json:"dept_type,omitempty"`
	IsActive  bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (OrganizationalUnit) TableName() string { return "organizational_units" }

// DomainUnitMapping pins a review domain to the organizational unit that owns
// it. Set once by an administrator; the grant store falls back to a fuzzy
// name match only when no mapping row exists for the domain.
type DomainUnitMapping struct {
	Domain    string    `gorm:"column:domain;primaryKey" json:"domain"`
	UnitID    string    `gorm:"column:unit_id" json:"unit_id"`
	UpdatedBy string    `gorm:"column:updated_by" json:"updated_by"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (DomainUnitMapping) TableName() string { return "domain_unit_mappings" }
