// internal/app/system/tenancy/locality.go
package tenancy

import (
	"github.com/lyceumhq/lyceum/internal/domain/models"
)

// Adapters from domain models to their Locality view. Each mirrors the
// field mapping declared for its category in categories.go.

// ClassLocality extracts the locality attributes of a class. The class
// attribute of a class is its own id: a personal class is located by the
// workspace's linked_class_id pointing at it.
func ClassLocality(c models.Class) Locality {
	id := c.ID
	return Locality{
		InstituteID: c.InstituteID,
		OwnerUserID: c.OwnerUserID,
		CreatedBy:   c.CreatedBy,
		ClassID:     &id,
	}
}

// MemberLocality extracts the locality attributes of a class member.
func MemberLocality(m models.ClassMember) Locality {
	sid := m.StudentID
	cid := m.ClassID
	return Locality{
		InstituteID: m.InstituteID,
		CreatedBy:   m.CreatedBy,
		StudentID:   &sid,
		ClassID:     &cid,
	}
}

// SectionLocality extracts the locality attributes of a section.
func SectionLocality(s models.Section) Locality {
	return Locality{InstituteID: s.InstituteID}
}

// SubjectLocality extracts the locality attributes of a subject.
func SubjectLocality(s models.Subject) Locality {
	return Locality{InstituteID: s.InstituteID}
}

// PeriodLocality extracts the locality attributes of a period.
func PeriodLocality(p models.Period) Locality {
	return Locality{InstituteID: p.InstituteID}
}

// ContentLocality extracts the locality attributes of a content record.
func ContentLocality(c models.Content) Locality {
	return Locality{
		InstituteID: c.InstituteID,
		OwnerUserID: c.OwnerUserID,
		CreatedBy:   c.CreatedBy,
		ClassID:     c.ClassID,
	}
}

// StudyPlanLocality extracts the locality attributes of a study plan.
func StudyPlanLocality(p models.StudyPlan) Locality {
	return Locality{
		InstituteID: p.InstituteID,
		OwnerUserID: p.OwnerUserID,
		CreatedBy:   p.CreatedBy,
		StudentID:   p.StudentID,
		ClassID:     p.ClassID,
	}
}
