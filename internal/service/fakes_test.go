package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/noah-isme/ieve-api/internal/models"
	"github.com/noah-isme/ieve-api/internal/repository"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
)

type mockUserRepo struct {
	users     map[string]models.User
	order     []string
	err       error
	createErr error
	created   []models.User
}

func newMockUserRepo(users ...models.User) *mockUserRepo {
	m := &mockUserRepo{users: map[string]models.User{}}
	for _, u := range users {
		m.put(u)
	}
	return m
}

func (m *mockUserRepo) put(u models.User) {
	if _, ok := m.users[u.ID]; !ok {
		m.order = append(m.order, u.ID)
	}
	m.users[u.ID] = u
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.User, 0, len(m.order))
	for _, id := range m.order {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	for id, u := range m.users {
		if u.Username == username && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.put(*user)
	m.created = append(m.created, *user)
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.put(*user)
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	delete(m.users, id)
	return nil
}

type mockStudentRepo struct {
	students  map[string]models.Student
	order     []string
	err       error
	deleteErr error
	deleted   []string
}

func newMockStudentRepo(students ...models.Student) *mockStudentRepo {
	m := &mockStudentRepo{students: map[string]models.Student{}}
	for _, s := range students {
		m.put(s)
	}
	return m
}

func (m *mockStudentRepo) put(s models.Student) {
	if _, ok := m.students[s.ID]; !ok {
		m.order = append(m.order, s.ID)
	}
	m.students[s.ID] = s
}

func (m *mockStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Student, 0, len(m.order))
	for _, id := range m.order {
		if s, ok := m.students[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStudentRepo) ListByCourse(ctx context.Context, courseID string) ([]models.Student, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Student{}
	for _, s := range all {
		if s.CourseID == courseID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.students[id]
	return ok, nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	m.put(*student)
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	delete(m.students, id)
	return nil
}

// mockEnrollment writes into the student and user fakes only when both
// inserts would succeed.
type mockEnrollment struct {
	students *mockStudentRepo
	users    *mockUserRepo
	err      error
	calls    int
}

func (m *mockEnrollment) EnrollStudent(ctx context.Context, student *models.Student, user *models.User) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	if _, ok := m.students.students[student.ID]; ok {
		return &repository.DuplicateKeyError{Table: "students", Primary: true, Err: errors.New("Duplicate entry")}
	}
	if _, ok := m.users.users[user.ID]; ok {
		return &repository.DuplicateKeyError{Table: "users", Primary: true, Err: errors.New("Duplicate entry")}
	}
	for _, existing := range m.users.users {
		if existing.Username == user.Username {
			return &repository.DuplicateKeyError{Table: "users", Err: errors.New("Duplicate entry")}
		}
	}
	m.students.put(*student)
	m.users.put(*user)
	return nil
}

type mockCourseRepo struct {
	courses map[string]models.Course
	order   []string
	err     error
}

func newMockCourseRepo(courses ...models.Course) *mockCourseRepo {
	m := &mockCourseRepo{courses: map[string]models.Course{}}
	for _, c := range courses {
		m.put(c)
	}
	return m
}

func (m *mockCourseRepo) put(c models.Course) {
	if _, ok := m.courses[c.ID]; !ok {
		m.order = append(m.order, c.ID)
	}
	m.courses[c.ID] = c
}

func (m *mockCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Course, 0, len(m.order))
	for _, id := range m.order {
		if c, ok := m.courses[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.courses[id]
	return ok, nil
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	m.put(*course)
	return nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	m.put(*course)
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

type mockAbsenceRepo struct {
	absences  map[string]models.Absence
	order     []string
	comments  []models.AbsenceComment
	appendErr error
	err       error
}

func newMockAbsenceRepo(absences ...models.Absence) *mockAbsenceRepo {
	m := &mockAbsenceRepo{absences: map[string]models.Absence{}}
	for _, a := range absences {
		m.put(a)
	}
	return m
}

func (m *mockAbsenceRepo) put(a models.Absence) {
	if _, ok := m.absences[a.ID]; !ok {
		m.order = append(m.order, a.ID)
	}
	m.absences[a.ID] = a
}

func (m *mockAbsenceRepo) List(ctx context.Context) ([]models.Absence, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Absence, 0, len(m.order))
	for _, id := range m.order {
		if a, ok := m.absences[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAbsenceRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Absence, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Absence{}
	for _, a := range all {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAbsenceRepo) FindByID(ctx context.Context, id string) (*models.Absence, error) {
	if a, ok := m.absences[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAbsenceRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.absences[id]
	return ok, nil
}

func (m *mockAbsenceRepo) Create(ctx context.Context, absence *models.Absence) error {
	m.put(*absence)
	return nil
}

func (m *mockAbsenceRepo) Update(ctx context.Context, absence *models.Absence) error {
	if textOf(m.absences[absence.ID].Comments) != textOf(absence.Comments) {
		kept := m.comments[:0]
		for _, c := range m.comments {
			if c.AbsenceID != absence.ID {
				kept = append(kept, c)
			}
		}
		m.comments = kept
	}
	m.put(*absence)
	return nil
}

func textOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (m *mockAbsenceRepo) Delete(ctx context.Context, id string) error {
	delete(m.absences, id)
	return nil
}

func (m *mockAbsenceRepo) AppendComment(ctx context.Context, comment *models.AbsenceComment, rendered string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.comments = append(m.comments, *comment)
	a := m.absences[comment.AbsenceID]
	a.Comments = &rendered
	m.absences[comment.AbsenceID] = a
	return nil
}

func (m *mockAbsenceRepo) ListComments(ctx context.Context, absenceID string) ([]models.AbsenceComment, error) {
	out := []models.AbsenceComment{}
	for _, c := range m.comments {
		if c.AbsenceID == absenceID {
			out = append(out, c)
		}
	}
	return out, nil
}

// memoryCache is an in-process CacheRepository.
type memoryCache struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.sets++
	m.entries[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
