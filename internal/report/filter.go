// Package report holds the read-side calculations behind the dashboards and
// exports. Every function works on an already loaded snapshot.
package report

import "github.com/noah-isme/ieve-api/internal/models"

// Criteria narrows an absence list. Zero values disable a condition; the
// remaining conditions are combined with AND.
type Criteria struct {
	DateFrom  models.Date
	DateTo    models.Date
	CourseID  string
	StudentID string
	Type      models.AbsenceType
	Situation string
}

// Empty reports whether no condition is set.
func (c Criteria) Empty() bool {
	return c == Criteria{}
}

// Match reports whether absence satisfies every set condition. Date bounds
// are inclusive and compared as YYYY-MM-DD text.
func (c Criteria) Match(absence models.Absence) bool {
	if c.DateFrom != "" && absence.Date < c.DateFrom {
		return false
	}
	if c.DateTo != "" && absence.Date > c.DateTo {
		return false
	}
	if c.CourseID != "" && absence.CourseID != c.CourseID {
		return false
	}
	if c.StudentID != "" && absence.StudentID != c.StudentID {
		return false
	}
	if c.Type != 0 && absence.Type != c.Type {
		return false
	}
	if c.Situation != "" && absence.Situation != c.Situation {
		return false
	}
	return true
}

// Filter returns the absences matching criteria in their original order.
func Filter(absences []models.Absence, criteria Criteria) []models.Absence {
	result := make([]models.Absence, 0, len(absences))
	for _, absence := range absences {
		if criteria.Match(absence) {
			result = append(result, absence)
		}
	}
	return result
}
