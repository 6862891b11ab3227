package permission

import (
	"testing"

	"github.com/campus-hub/permission-service/models"
)

func viewWith(caps ...string) *View {
	return &View{
		UserID: "u1",
		Units: []UnitPermissions{{
			UnitID:       "unit-drd",
			UnitName:     "Directorate of Research and Development",
			Kind:         models.UnitKindCentralDept,
			Category:     models.DeptTypeDRD,
			Capabilities: caps,
		}},
	}
}

func TestHasCapabilityVariantReflexivity(t *testing.T) {
	// A stored flag in either naming generation must satisfy a check for any
	// of the equivalent spellings.
	stored := []string{"ipr_file_new", "drd_ipr_file", "ipr_file", "drd_ipr_file_new"}
	checks := []string{"ipr_file_new", "drd_ipr_file", "ipr_file", "drd_ipr_file_new"}
	for _, s := range stored {
		v := viewWith(s)
		for _, k := range checks {
			if !HasCapability(v, k) {
				t.Fatalf("stored %q should satisfy check for %q", s, k)
			}
		}
	}
}

func TestHasCapabilityEmptyView(t *testing.T) {
	if HasCapability(nil, "ipr_file_new") {
		t.Fatal("nil view must not hold any capability")
	}
	if HasCapability(&View{UserID: "u1"}, "ipr_file_new") {
		t.Fatal("empty view must not hold any capability")
	}
	if HasCapability(viewWith("ipr_file_new"), "") {
		t.Fatal("empty key must not match")
	}
}

func TestHasCapabilityNoMatch(t *testing.T) {
	v := viewWith("budget_view", "payment_approve")
	if HasCapability(v, "ipr_review") {
		t.Fatal("unrelated capabilities must not match")
	}
}

func TestHasCapabilitySubstringFallback(t *testing.T) {
	// The requested key appearing anywhere inside a stored flag counts.
	v := viewWith("legacy_IPR_REVIEW_flag")
	if !HasCapability(v, "ipr_review") {
		t.Fatal("case-insensitive substring containment should match")
	}
}

func TestHasExactCapability(t *testing.T) {
	v := viewWith("drd_ipr_file")
	if HasExactCapability(v, "ipr_file_new") {
		t.Fatal("exact match must not apply variant tolerance")
	}
	if !HasExactCapability(v, "drd_ipr_file") {
		t.Fatal("exact match should find the stored key")
	}
}

func TestHasAnyDomainAccessByCategory(t *testing.T) {
	v := viewWith() // DRD unit, no capabilities at all
	if !HasAnyDomainAccess(v, models.DomainIPR, []string{"drd", "research"}) {
		t.Fatal("category keyword match should grant domain access")
	}
	if HasAnyDomainAccess(v, models.DomainIPR, []string{"library"}) {
		t.Fatal("unrelated keywords must not grant access")
	}
}

func TestHasAnyDomainAccessByCapability(t *testing.T) {
	v := &View{
		UserID: "u1",
		Units: []UnitPermissions{{
			UnitID:       "unit-x",
			UnitName:     "Office of Innovation",
			Category:     "INNOVATION",
			Capabilities: []string{"ipr_review"},
		}},
	}
	if !HasAnyDomainAccess(v, models.DomainIPR, []string{"drd"}) {
		t.Fatal("domain access key should grant access regardless of category")
	}
	// Legacy spelling of an access key counts too.
	v.Units[0].Capabilities = []string{"drd_ipr_review"}
	if !HasAnyDomainAccess(v, models.DomainIPR, []string{"drd"}) {
		t.Fatal("legacy access key spelling should grant access")
	}
}

func TestHasAnyDomainAccessEmptyView(t *testing.T) {
	if HasAnyDomainAccess(nil, models.DomainIPR, []string{"drd"}) {
		t.Fatal("nil view has no domain access")
	}
}
