// Package permission evaluates capability checks against a snapshot of a
// user's effective grants. Pure functions, no I/O; the store builds the
// snapshot, the server and the frontend both consume the same decisions.
package permission

// UnitRef identifies a unit for display purposes.
type UnitRef struct {
	UnitID   string `json:"unit_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// UnitPermissions is one unit's slice of a user's effective permissions:
// the active capability keys plus, for review units, the per-domain school
// scopes.
type UnitPermissions struct {
	UnitID          string              `json:"unit_id"`
	UnitName        string              `json:"unit_name"`
	Kind            string              `json:"kind"`
	Category        string              `json:"category"` // dept type for central units, school name for academic ones
	IsPrimary       bool                `json:"is_primary"`
	Capabilities    []string            `json:"capabilities"`
	AssignedSchools map[string][]string `json:"assigned_schools,omitempty"` // domain -> school IDs
}

// View is the effective permission snapshot for one user: the union of all
// active grants. Recomputed on every read; never cached server-side.
type View struct {
	UserID             string            `json:"user_id"`
	Role               string            `json:"role"`
	Units              []UnitPermissions `json:"units"`
	PrimarySchoolDept  *UnitRef          `json:"primary_school_dept,omitempty"`
	PrimaryCentralDept *UnitRef          `json:"primary_central_dept,omitempty"`
}

// IsEmpty reports whether the view carries no active grants at all.
func (v *View) IsEmpty() bool {
	return v == nil || len(v.Units) == 0
}
