package permission

import (
	"strings"

	"github.com/campus-hub/permission-service/catalog"
)

// HasCapability reports whether any unit in the view holds a capability
// equivalent to key. Equivalence is the alias/variant set from the catalog;
// as a final fallback a stored flag containing key as a case-insensitive
// substring also matches. The fallback is deliberately permissive —
// security-critical callers must pair this with an exact-key check.
// Never errors: an empty view or no match is a normal false.
func HasCapability(v *View, key string) bool {
	if v.IsEmpty() || strings.TrimSpace(key) == "" {
		return false
	}
	variants := catalog.Variants(key)
	lowerKey := strings.ToLower(key)
	for _, unit := range v.Units {
		for _, stored := range unit.Capabilities {
			for _, variant := range variants {
				if stored == variant {
					return true
				}
			}
			if strings.Contains(strings.ToLower(stored), lowerKey) {
				return true
			}
		}
	}
	return false
}

// HasExactCapability matches the stored flag name verbatim, with none of the
// variant or substring tolerance.
func HasExactCapability(v *View, key string) bool {
	if v.IsEmpty() {
		return false
	}
	for _, unit := range v.Units {
		for _, stored := range unit.Capabilities {
			if stored == key {
				return true
			}
		}
	}
	return false
}

// HasAnyDomainAccess decides whether a domain's dashboard entry point shows
// at all: true when any unit's category contains one of the keywords, or any
// capability matches one of the domain's access keys. Coarser than
// HasCapability by design; fine-grained actions still go through it.
func HasAnyDomainAccess(v *View, domain string, keywords []string) bool {
	if v.IsEmpty() {
		return false
	}
	accessKeys := catalog.DomainAccessKeys[domain]
	for _, unit := range v.Units {
		cat := strings.ToLower(unit.Category)
		name := strings.ToLower(unit.UnitName)
		for _, kw := range keywords {
			kw = strings.ToLower(kw)
			if strings.Contains(cat, kw) || strings.Contains(name, kw) {
				return true
			}
		}
		for _, key := range accessKeys {
			for _, variant := range catalog.Variants(key) {
				for _, stored := range unit.Capabilities {
					if stored == variant {
						return true
					}
				}
			}
		}
	}
	return false
}
