package report

import (
	"github.com/noah-isme/ieve-api/internal/models"
	"github.com/noah-isme/ieve-api/pkg/export"
)

// Export column headers.
const (
	ColumnStudent   = "Estudiante"
	ColumnCourse    = "Curso"
	ColumnType      = "Tipo"
	ColumnDate      = "Fecha"
	ColumnCategory  = "Categoría"
	ColumnSituation = "Situación"
	ColumnSanction  = "Sanción"
	ColumnComments  = "Comentarios"

	missingStudent = "Estudiante no encontrado"
	missingCourse  = "Curso no encontrado"
)

var exportHeaders = []string{
	ColumnStudent, ColumnCourse, ColumnType, ColumnDate,
	ColumnCategory, ColumnSituation, ColumnSanction, ColumnComments,
}

// ExportDataset builds the tabular export of absences, resolving student and
// course names from the snapshot.
func ExportDataset(absences []models.Absence, students []models.Student, courses []models.Course) export.Dataset {
	studentNames := make(map[string]string, len(students))
	for _, s := range students {
		studentNames[s.ID] = s.Name
	}
	courseNames := make(map[string]string, len(courses))
	for _, c := range courses {
		courseNames[c.ID] = c.Name
	}

	rows := make([]map[string]string, 0, len(absences))
	for _, absence := range absences {
		studentName, ok := studentNames[absence.StudentID]
		if !ok {
			studentName = missingStudent
		}
		courseName, ok := courseNames[absence.CourseID]
		if !ok {
			courseName = missingCourse
		}
		comments := ""
		if absence.Comments != nil {
			comments = *absence.Comments
		}
		rows = append(rows, map[string]string{
			ColumnStudent:   studentName,
			ColumnCourse:    courseName,
			ColumnType:      absence.Type.Label(),
			ColumnDate:      absence.Date.String(),
			ColumnCategory:  absence.Category,
			ColumnSituation: absence.Situation,
			ColumnSanction:  absence.Sanction,
			ColumnComments:  comments,
		})
	}

	return export.Dataset{
		Title:   "Reporte de faltas",
		Headers: exportHeaders,
		Rows:    rows,
	}
}
