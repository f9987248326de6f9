package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsenceTypeLabel(t *testing.T) {
	assert.Equal(t, "Tardanza", AbsenceTardiness.Label())
	assert.Equal(t, "Ausencia justificada", AbsenceJustified.Label())
	assert.Equal(t, "Ausencia injustificada", AbsenceUnjustified.Label())
	assert.Equal(t, "Desconocido", AbsenceType(7).Label())
	assert.Equal(t, "Desconocido", AbsenceType(0).Label())
}

func TestAppendComment(t *testing.T) {
	first := AppendComment(nil, RoleStudent, "Llegué tarde")
	assert.Equal(t, "Comentario del alumno: Llegué tarde", first)

	second := AppendComment(&first, RoleStudent, "Había tráfico")
	assert.Equal(t, "Comentario del alumno: Llegué tarde\n\nComentario del alumno: Había tráfico", second)

	empty := ""
	assert.Equal(t, "Comentario del profesor: Visto", AppendComment(&empty, RoleTeacher, "Visto"))
}

func TestStudentAccount(t *testing.T) {
	user := Student{ID: "s1", Email: "ana@ieve.edu"}.Account()
	assert.Equal(t, User{ID: "s1", Username: "ana@ieve.edu", Role: RoleStudent}, user)
}
