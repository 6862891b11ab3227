// Package gate derives what a user may see and do from their role and
// effective permission view. The same decisions back the server's route
// guards and the frontend's menu rendering, so the two cannot drift.
package gate

import (
	"github.com/campus-hub/permission-service/models"
	"github.com/campus-hub/permission-service/permission"
)

// MenuSection is one top-level navigation entry.
type MenuSection struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// domainKeywords feed HasAnyDomainAccess per review domain. "drd" and
// "research" both map departments named either way onto the IPR/research
// dashboards.
var domainKeywords = map[string][]string{
	models.DomainIPR:        {"drd", "research", "development"},
	models.DomainResearch:   {"drd", "research", "development"},
	models.DomainBook:       {"drd", "book", "publication"},
	models.DomainConference: {"drd", "conference", "publication"},
	models.DomainGrant:      {"drd", "grant", "research"},
}

var domainSections = []struct {
	domain string
	label  string
}{
	{models.DomainIPR, "IPR"},
	{models.DomainResearch, "Research Contributions"},
	{models.DomainBook, "Book Publications"},
	{models.DomainConference, "Conference Papers"},
	{models.DomainGrant, "Research Grants"},
}

// CanFile reports whether the user may start a new filing in a domain.
// Faculty and students file by inherent right; staff and admins need the
// explicit <domain>_file_new capability (legacy spellings accepted).
func CanFile(domain, role string, v *permission.View) bool {
	switch role {
	case models.RoleFaculty, models.RoleStudent:
		return true
	}
	return permission.HasCapability(v, domain+"_file_new")
}

// CanAssignSchools reports whether the caller may edit a domain's reviewer
// school assignments: admins always, otherwise the domain's approve or
// assign_school capability.
func CanAssignSchools(domain, role string, v *permission.View) bool {
	if models.IsAdminRole(role) {
		return true
	}
	return permission.HasCapability(v, domain+"_assign_school") ||
		permission.HasCapability(v, domain+"_approve")
}

// VisibleMenuSections builds the navigation for one user: role-inherent
// sections first, then domain dashboards gated by HasAnyDomainAccess, then
// system administration strictly on the admin role. No capability substitutes
// for the admin role check.
func VisibleMenuSections(role string, v *permission.View) []MenuSection {
	sections := []MenuSection{
		{Key: "my-work", Label: "My Work"},
		{Key: "apply", Label: "Apply"},
	}
	for _, ds := range domainSections {
		if permission.HasAnyDomainAccess(v, ds.domain, domainKeywords[ds.domain]) {
			sections = append(sections, MenuSection{Key: ds.domain + "-review", Label: ds.label})
		}
	}
	if models.IsAdminRole(role) {
		sections = append(sections,
			MenuSection{Key: "user-management", Label: "User Management"},
			MenuSection{Key: "permission-management", Label: "Permission Management"},
			MenuSection{Key: "system-settings", Label: "System Settings"},
		)
	}
	return sections
}
