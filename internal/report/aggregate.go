package report

import (
	"math"

	"github.com/noah-isme/ieve-api/internal/models"
)

// Percentage returns part as a whole-number share of total, rounding halves
// up. A zero total yields 0.
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(100*float64(part)/float64(total) + 0.5))
}

// CountByType tallies absences per type.
func CountByType(absences []models.Absence) models.TypeCounts {
	var counts models.TypeCounts
	for _, absence := range absences {
		switch absence.Type {
		case models.AbsenceTardiness:
			counts.Tardiness++
		case models.AbsenceJustified:
			counts.Justified++
		case models.AbsenceUnjustified:
			counts.Unjustified++
		default:
			counts.Unknown++
		}
	}
	return counts
}

// Summarize returns the total, per-type counts and percentages.
func Summarize(absences []models.Absence) models.AbsenceBreakdown {
	counts := CountByType(absences)
	total := len(absences)
	return models.AbsenceBreakdown{
		Total:  total,
		Counts: counts,
		Percentages: models.TypePercentages{
			Tardiness:   Percentage(counts.Tardiness, total),
			Justified:   Percentage(counts.Justified, total),
			Unjustified: Percentage(counts.Unjustified, total),
		},
	}
}

// SummaryByCourse groups absences per course in course order. Absences that
// reference an unknown course are left out.
func SummaryByCourse(courses []models.Course, absences []models.Absence) []models.CourseSummary {
	byCourse := make(map[string][]models.Absence, len(courses))
	for _, absence := range absences {
		byCourse[absence.CourseID] = append(byCourse[absence.CourseID], absence)
	}

	summaries := make([]models.CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, models.CourseSummary{
			CourseID:         course.ID,
			CourseName:       course.Name,
			AbsenceBreakdown: Summarize(byCourse[course.ID]),
		})
	}
	return summaries
}

// SummaryForStudent summarises the absences belonging to student.
func SummaryForStudent(student models.Student, absences []models.Absence) models.StudentSummary {
	return models.StudentSummary{
		StudentID:        student.ID,
		StudentName:      student.Name,
		AbsenceBreakdown: Summarize(Filter(absences, Criteria{StudentID: student.ID})),
	}
}

// MostAbsences returns the student with the highest absence count and that
// count. On ties the student listed first wins. Nil is returned when nobody
// has an absence.
func MostAbsences(students []models.Student, absences []models.Absence) (*models.Student, int) {
	perStudent := make(map[string]int, len(students))
	for _, absence := range absences {
		perStudent[absence.StudentID]++
	}

	var top *models.Student
	highest := 0
	for i := range students {
		if n := perStudent[students[i].ID]; n > highest {
			highest = n
			top = &students[i]
		}
	}
	if top == nil {
		return nil, 0
	}
	winner := *top
	return &winner, highest
}

// General computes the institution-wide statistics.
func General(students []models.Student, absences []models.Absence) models.GeneralStats {
	top, highest := MostAbsences(students, absences)
	stats := models.GeneralStats{
		TotalAbsences:           len(absences),
		TotalStudents:           len(students),
		StudentWithMostAbsences: top,
		MaxAbsences:             highest,
	}
	if len(students) > 0 {
		avg := float64(len(absences)) / float64(len(students))
		stats.AverageAbsences = math.Round(avg*100) / 100
	}
	return stats
}

// Dashboard assembles the summary shown on the teacher and admin dashboards.
func Dashboard(students []models.Student, courses []models.Course, absences []models.Absence) models.DashboardSummary {
	return models.DashboardSummary{
		General: General(students, absences),
		ByType:  Summarize(absences),
		Courses: SummaryByCourse(courses, absences),
	}
}
