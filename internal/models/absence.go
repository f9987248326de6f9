package models

import "time"

// AbsenceType classifies a recorded incident.
type AbsenceType int

const (
	AbsenceTardiness   AbsenceType = 1
	AbsenceJustified   AbsenceType = 2
	AbsenceUnjustified AbsenceType = 3
)

// Label returns the display label. Unknown values are not rejected.
func (t AbsenceType) Label() string {
	switch t {
	case AbsenceTardiness:
		return "Tardanza"
	case AbsenceJustified:
		return "Ausencia justificada"
	case AbsenceUnjustified:
		return "Ausencia injustificada"
	default:
		return "Desconocido"
	}
}

// Absence is a single tardiness or absence incident.
type Absence struct {
	ID        string      `db:"id" json:"id"`
	StudentID string      `db:"student_id" json:"student_id"`
	CourseID  string      `db:"course_id" json:"course_id"`
	Type      AbsenceType `db:"type" json:"type"`
	Category  string      `db:"category" json:"category"`
	Situation string      `db:"situation" json:"situation"`
	Sanction  string      `db:"sanction" json:"sanction"`
	Date      Date        `db:"date" json:"date"`
	Comments  *string     `db:"comments" json:"comments"`
}

// AbsenceComment is one entry of an absence's comment thread.
type AbsenceComment struct {
	ID         string    `db:"id" json:"id"`
	AbsenceID  string    `db:"absence_id" json:"absence_id"`
	AuthorRole UserRole  `db:"author_role" json:"author_role"`
	Text       string    `db:"body" json:"text"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

const commentSeparator = "\n\n"

// CommentLabel is the prefix written before a comment from role.
func CommentLabel(role UserRole) string {
	switch role {
	case RoleStudent:
		return "Comentario del alumno: "
	case RoleTeacher:
		return "Comentario del profesor: "
	case RoleAdmin:
		return "Comentario del administrador: "
	default:
		return "Comentario: "
	}
}

// AppendComment renders the comments text after adding one entry. The first
// entry has no leading separator.
func AppendComment(existing *string, role UserRole, text string) string {
	entry := CommentLabel(role) + text
	if existing == nil || *existing == "" {
		return entry
	}
	return *existing + commentSeparator + entry
}
