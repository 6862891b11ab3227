// Package catalog is the static registry of every capability flag the
// permission system knows about, split by organizational-unit kind and, for
// central departments, by department type. Loaded once; pure lookups only.
package catalog

import "github.com/campus-hub/permission-service/models"

// Definition describes one capability flag for UI display and validation.
type Definition struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

// schoolDeptDefinitions is the fixed set for academic (school-attached)
// departments. Every school department offers the same flags.
var schoolDeptDefinitions = []Definition{
	{Key: "ipr_file_new", Label: "File IPR Application", Category: "IPR"},
	{Key: "research_file_new", Label: "File Research Contribution", Category: "Research"},
	{Key: "book_file_new", Label: "File Book Publication", Category: "Publications"},
	{Key: "conference_file_new", Label: "File Conference Paper", Category: "Publications"},
	{Key: "grant_file_new", Label: "File Grant Proposal", Category: "Grants"},
	{Key: "dept_reports_view", Label: "View Department Reports", Category: "Department"},
	{Key: "dept_members_manage", Label: "Manage Department Members", Category: "Department"},
	{Key: "course_allocation_manage", Label: "Manage Course Allocation", Category: "Department"},
	{Key: "leave_recommend", Label: "Recommend Leave Applications", Category: "Department"},
}

// centralDefinitions maps central department type to its capability set.
// A department type absent here has no catalog entries yet; callers get an
// empty list, not an error.
var centralDefinitions = map[string][]Definition{
	models.DeptTypeDRD: {
		{Key: "ipr_review", Label: "Review IPR Applications", Category: "IPR"},
		{Key: "ipr_approve", Label: "Approve IPR Applications", Category: "IPR"},
		{Key: "ipr_assign_school", Label: "Assign IPR Review Schools", Category: "IPR"},
		{Key: "ipr_file_new", Label: "File IPR Application", Category: "IPR"},
		{Key: "research_review", Label: "Review Research Contributions", Category: "Research"},
		{Key: "research_approve", Label: "Approve Research Contributions", Category: "Research"},
		{Key: "research_assign_school", Label: "Assign Research Review Schools", Category: "Research"},
		{Key: "book_review", Label: "Review Book Publications", Category: "Publications"},
		{Key: "book_assign_school", Label: "Assign Book Review Schools", Category: "Publications"},
		{Key: "conference_review", Label: "Review Conference Papers", Category: "Publications"},
		{Key: "conference_assign_school", Label: "Assign Conference Review Schools", Category: "Publications"},
		{Key: "grant_review", Label: "Review Grant Proposals", Category: "Grants"},
		{Key: "grant_assign_school", Label: "Assign Grant Review Schools", Category: "Grants"},
	},
	models.DeptTypeHR: {
		{Key: "employee_manage", Label: "Manage Employee Records", Category: "HR"},
		{Key: "leave_approve", Label: "Approve Leave Applications", Category: "HR"},
		{Key: "appraisal_manage", Label: "Manage Appraisals", Category: "HR"},
		{Key: "recruitment_manage", Label: "Manage Recruitment", Category: "HR"},
	},
	models.DeptTypeFinance: {
		{Key: "budget_view", Label: "View Budgets", Category: "Finance"},
		{Key: "payment_approve", Label: "Approve Payments", Category: "Finance"},
		{Key: "salary_process", Label: "Process Salaries", Category: "Finance"},
		{Key: "fee_manage", Label: "Manage Fee Structures", Category: "Finance"},
	},
	models.DeptTypeIT: {
		{Key: "system_config", Label: "Configure Systems", Category: "IT"},
		{Key: "account_reset", Label: "Reset User Accounts", Category: "IT"},
	},
	models.DeptTypeLibrary: {
		{Key: "catalog_manage", Label: "Manage Library Catalog", Category: "Library"},
		{Key: "fine_waive", Label: "Waive Library Fines", Category: "Library"},
	},
	models.DeptTypeAdmissions: {
		{Key: "application_review", Label: "Review Admission Applications", Category: "Admissions"},
		{Key: "merit_list_publish", Label: "Publish Merit Lists", Category: "Admissions"},
	},
	models.DeptTypeRegistrar: {
		{Key: "transcript_issue", Label: "Issue Transcripts", Category: "Registrar"},
		{Key: "degree_verify", Label: "Verify Degrees", Category: "Registrar"},
	},
	models.DeptTypeERP: {
		{Key: "erp_config", Label: "Configure ERP Modules", Category: "ERP"},
		{Key: "erp_reports", Label: "Run ERP Reports", Category: "ERP"},
	},
}

// Definitions returns the capability list for a unit kind. For central
// departments use CentralDefinitionsFor with the department type.
func Definitions(kind string) []Definition {
	if kind == models.UnitKindSchoolDept {
		out := make([]Definition, len(schoolDeptDefinitions))
		copy(out, schoolDeptDefinitions)
		return out
	}
	return nil
}

// CentralDefinitionsFor returns the capability list for one central
// department type. Unknown types yield an empty list.
func CentralDefinitionsFor(deptType string) []Definition {
	defs := centralDefinitions[deptType]
	out := make([]Definition, len(defs))
	copy(out, defs)
	return out
}

// CentralDefinitions returns a copy of the full department-type → capability
// list mapping, for the definitions endpoint.
func CentralDefinitions() map[string][]Definition {
	out := make(map[string][]Definition, len(centralDefinitions))
	for k := range centralDefinitions {
		out[k] = CentralDefinitionsFor(k)
	}
	return out
}

// ReviewCapability returns the minimal capability enabled when a school
// assignment creates a grant that did not exist yet.
func ReviewCapability(domain string) string {
	return domain + "_review"
}

// DomainAccessKeys lists, per review domain, the capability keys whose
// presence alone exposes the domain's dashboard entry point.
var DomainAccessKeys = map[string][]string{
	models.DomainIPR:        {"ipr_review", "ipr_approve", "ipr_assign_school", "ipr_file_new"},
	models.DomainResearch:   {"research_review", "research_approve", "research_assign_school", "research_file_new"},
	models.DomainBook:       {"book_review", "book_assign_school", "book_file_new"},
	models.DomainConference: {"conference_review", "conference_assign_school", "conference_file_new"},
	models.DomainGrant:      {"grant_review", "grant_assign_school", "grant_file_new"},
}
