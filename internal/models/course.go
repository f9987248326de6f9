package models

// Course is a class group students belong to.
type Course struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Teacher  string `db:"teacher" json:"teacher"`
	Schedule string `db:"schedule" json:"schedule"`
}
