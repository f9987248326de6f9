package models

// TypeCounts tallies absences by type. Unknown counts types outside 1..3.
type TypeCounts struct {
	Tardiness   int `json:"tardiness"`
	Justified   int `json:"justified"`
	Unjustified int `json:"unjustified"`
	Unknown     int `json:"unknown"`
}

// TypePercentages are whole-number shares of the total.
type TypePercentages struct {
	Tardiness   int `json:"tardiness"`
	Justified   int `json:"justified"`
	Unjustified int `json:"unjustified"`
}

// AbsenceBreakdown summarises a set of absences.
type AbsenceBreakdown struct {
	Total       int             `json:"total"`
	Counts      TypeCounts      `json:"counts"`
	Percentages TypePercentages `json:"percentages"`
}

// CourseSummary is the breakdown for one course.
type CourseSummary struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	AbsenceBreakdown
}

// StudentSummary is the breakdown for one student.
type StudentSummary struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	AbsenceBreakdown
}

// GeneralStats are institution-wide totals.
type GeneralStats struct {
	TotalAbsences           int      `json:"total_absences"`
	TotalStudents           int      `json:"total_students"`
	AverageAbsences         float64  `json:"average_absences"`
	StudentWithMostAbsences *Student `json:"student_with_most_absences"`
	MaxAbsences             int      `json:"max_absences"`
}

// DashboardSummary is the payload of the teacher/admin dashboard.
type DashboardSummary struct {
	General GeneralStats     `json:"general"`
	ByType  AbsenceBreakdown `json:"by_type"`
	Courses []CourseSummary  `json:"courses"`
}

// AbsenceReport is a filtered absence list with its breakdown.
type AbsenceReport struct {
	Absences []Absence        `json:"absences"`
	Summary  AbsenceBreakdown `json:"summary"`
}
