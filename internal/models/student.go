package models

// Student represents a learner. Every student has a user account with the
// same ID.
type Student struct {
	ID             string `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	Email          string `db:"email" json:"email"`
	CourseID       string `db:"course_id" json:"course_id"`
	EnrollmentDate Date   `db:"enrollment_date" json:"enrollment_date"`
}

// Account returns the user row provisioned alongside the student.
func (s Student) Account() User {
	return User{ID: s.ID, Username: s.Email, Role: RoleStudent}
}
