package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdu-se/zibot-go/internal/logger"
	"github.com/sdu-se/zibot-go/internal/store"
)

// fakeStore is an in-memory Store for schedule tests.
type fakeStore struct {
	students   map[string]*store.Student
	classes    map[string]map[string]store.ClassRecord
	studentErr error
	classesErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		students: make(map[string]*store.Student),
		classes:  make(map[string]map[string]store.ClassRecord),
	}
}

func (f *fakeStore) Student(_ context.Context, id string) (*store.Student, error) {
	if f.studentErr != nil {
		return nil, f.studentErr
	}
	return f.students[id], nil
}

func (f *fakeStore) SetStudent(_ context.Context, id string, s *store.Student) error {
	f.students[id] = s
	return nil
}

func (f *fakeStore) IsAdmin(context.Context, string) (bool, error) { return false, nil }

func (f *fakeStore) Classes(_ context.Context, dept string) (map[string]store.ClassRecord, error) {
	if f.classesErr != nil {
		return nil, f.classesErr
	}
	classes := f.classes[dept]
	if classes == nil {
		classes = map[string]store.ClassRecord{}
	}
	return classes, nil
}

func (f *fakeStore) SetClass(_ context.Context, dept, code string, r *store.ClassRecord) error {
	if f.classes[dept] == nil {
		f.classes[dept] = make(map[string]store.ClassRecord)
	}
	f.classes[dept][code] = *r
	return nil
}

func (f *fakeStore) Introduced(context.Context, string) (bool, error) { return false, nil }
func (f *fakeStore) SetIntroduced(context.Context, string) error      { return nil }

func newTestService(fs *fakeStore) *Service {
	svc := NewService(fs, "SE", logger.New("error"))
	svc.SetNow(func() time.Time {
		return time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)
	})
	return svc
}

func TestService_Department(t *testing.T) {
	tests := []struct {
		name     string
		student  *store.Student
		err      error
		expected string
	}{
		{"registered", &store.Student{Department: "CS"}, nil, "CS"},
		{"unregistered", nil, nil, "SE"},
		{"empty_department", &store.Student{}, nil, "SE"},
		{"lookup_failure", nil, errors.New("store down"), "SE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeStore()
			fs.studentErr = tt.err
			if tt.student != nil {
				fs.students["4512345678"] = tt.student
			}

			svc := newTestService(fs)
			assert.Equal(t, tt.expected, svc.Department(context.Background(), "4512345678"))
		})
	}
}

func TestService_NextClass(t *testing.T) {
	t.Run("empty department", func(t *testing.T) {
		svc := newTestService(newFakeStore())
		assert.Nil(t, svc.NextClass(context.Background(), "SE"))
	})

	t.Run("only past classes", func(t *testing.T) {
		fs := newFakeStore()
		fs.classes["SE"] = map[string]store.ClassRecord{
			"CS101": {Date: "2025-02-28", Time: "10:00", Lecturer: "Dr Smith"},
		}
		svc := newTestService(fs)
		assert.Nil(t, svc.NextClass(context.Background(), "SE"))
	})

	t.Run("today counts as upcoming", func(t *testing.T) {
		fs := newFakeStore()
		fs.classes["SE"] = map[string]store.ClassRecord{
			"CS101": {Date: "2025-03-01", Time: "10:00", Lecturer: "Dr Smith"},
		}
		svc := newTestService(fs)

		next := svc.NextClass(context.Background(), "SE")
		require.NotNil(t, next)
		assert.Equal(t, "CS101", next.CourseCode)
	})

	t.Run("earliest future wins over later", func(t *testing.T) {
		fs := newFakeStore()
		fs.classes["SE"] = map[string]store.ClassRecord{
			"CS201": {Date: "2025-03-10", Time: "12:00", Lecturer: "Dr Jones"},
			"CS101": {Date: "2025-03-05", Time: "10:00", Lecturer: "Dr Smith"},
			"CS001": {Date: "2025-01-01", Time: "08:00", Lecturer: "Dr Past"},
		}
		svc := newTestService(fs)

		next := svc.NextClass(context.Background(), "SE")
		require.NotNil(t, next)
		assert.Equal(t, "CS101", next.CourseCode)
		assert.Equal(t, "2025-03-05", next.Date)
		assert.Equal(t, "10:00", next.Time)
		assert.Equal(t, "Dr Smith", next.Lecturer)
	})

	t.Run("malformed dates are skipped individually", func(t *testing.T) {
		fs := newFakeStore()
		fs.classes["SE"] = map[string]store.ClassRecord{
			"BAD1":  {Date: "not-a-date", Time: "10:00", Lecturer: "Dr Who"},
			"BAD2":  {Date: "", Time: "10:00", Lecturer: "Dr Who"},
			"CS101": {Date: "2025-04-01", Time: "10:00", Lecturer: "Dr Smith"},
		}
		svc := newTestService(fs)

		next := svc.NextClass(context.Background(), "SE")
		require.NotNil(t, next)
		assert.Equal(t, "CS101", next.CourseCode)
	})

	t.Run("scan failure yields nil", func(t *testing.T) {
		fs := newFakeStore()
		fs.classesErr = errors.New("store down")
		svc := newTestService(fs)
		assert.Nil(t, svc.NextClass(context.Background(), "SE"))
	})
}

func TestService_Courses(t *testing.T) {
	fs := newFakeStore()
	fs.classes["SE"] = map[string]store.ClassRecord{
		"CS201": {Date: "2025-03-10"},
		"CS101": {Date: "2025-03-05"},
	}
	svc := newTestService(fs)

	codes, err := svc.Courses(context.Background(), "SE")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101", "CS201"}, codes)

	codes, err = svc.Courses(context.Background(), "EE")
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestService_Courses_Error(t *testing.T) {
	fs := newFakeStore()
	fs.classesErr = errors.New("store down")
	svc := newTestService(fs)

	_, err := svc.Courses(context.Background(), "SE")
	assert.Error(t, err)
}
