// Package tenancy implements the workspace-scoped access-control and
// data-isolation engine.
//
// Every authenticated request resolves a workspace descriptor first
// (Resolve). Bulk reads then intersect the predicate from DeriveFilter with
// their own filters; single-resource fetches that bypassed a scoped query
// re-check the document with ValidateAccess before returning it.
package tenancy

// localityFields names the locality attributes a resource category defines,
// mapped to the concrete document fields. Adding a category is a data
// change here, not new branching logic: DeriveFilter and ValidateAccess
// both consume this table.
//
// An empty field means the category does not define that attribute and the
// corresponding sub-condition is skipped.
type localityFields struct {
	Institute string // shared institutional partition key
	Owner     string // owning user (individual workspaces)
	CreatedBy string // creating user (individual-teacher visibility)
	Student   string // student the record is about
	Class     string // class the record belongs to; "_id" for classes themselves
}

// Resource category names, as passed by the domain CRUD layer.
const (
	CategoryClasses    = "classes"
	CategoryMembers    = "members"
	CategorySections   = "sections"
	CategorySubjects   = "subjects"
	CategoryPeriods    = "periods"
	CategoryContent    = "content"
	CategoryStudyPlans = "study_plans"
)

var categories = map[string]localityFields{
	CategoryClasses: {
		Institute: "institute_id",
		Owner:     "owner_user_id",
		CreatedBy: "created_by",
		Class:     "_id", // a personal class is located by its own id
	},
	CategoryMembers: {
		Institute: "institute_id",
		CreatedBy: "created_by",
		Student:   "student_id",
		Class:     "class_id",
	},
	CategorySections: {
		Institute: "institute_id",
	},
	CategorySubjects: {
		Institute: "institute_id",
	},
	CategoryPeriods: {
		Institute: "institute_id",
	},
	CategoryContent: {
		Institute: "institute_id",
		Owner:     "owner_user_id",
		CreatedBy: "created_by",
		Class:     "class_id",
	},
	CategoryStudyPlans: {
		Institute: "institute_id",
		Owner:     "owner_user_id",
		CreatedBy: "created_by",
		Student:   "student_id",
		Class:     "class_id",
	},
}

// Categories returns the known resource category names.
func Categories() []string {
	out := make([]string, 0, len(categories))
	for name := range categories {
		out = append(out, name)
	}
	return out
}
