// Package schedule implements the scheduling queries: resolving a sender's
// department, finding the chronologically nearest future class, and listing
// a department's courses.
package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/sdu-se/zibot-go/internal/logger"
	"github.com/sdu-se/zibot-go/internal/store"
)

// DateLayout is the calendar date form used in class records.
const DateLayout = "2006-01-02"

// Service answers scheduling queries against the record store.
type Service struct {
	store             store.Store
	defaultDepartment string
	logger            *logger.Logger
	now               func() time.Time
}

// NewService creates a new schedule service.
func NewService(s store.Store, defaultDepartment string, log *logger.Logger) *Service {
	return &Service{
		store:             s,
		defaultDepartment: defaultDepartment,
		logger:            log.WithModule("schedule"),
		now:               time.Now,
	}
}

// SetNow overrides the clock. Used by tests.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// DefaultDepartment returns the department assigned to unregistered senders.
func (s *Service) DefaultDepartment() string {
	return s.defaultDepartment
}

// Department resolves the sender's department. Lookup failures and absent
// records both fall back to the default department; this never errors.
func (s *Service) Department(ctx context.Context, senderID string) string {
	student, err := s.store.Student(ctx, senderID)
	if err != nil {
		s.logger.WithError(err).WithField("sender", senderID).
			DebugContext(ctx, "Department lookup failed, using default")
		return s.defaultDepartment
	}
	if student == nil || student.Department == "" {
		return s.defaultDepartment
	}
	return student.Department
}

// NextClass scans the department's class records and returns the one with
// the earliest date that is today or later. Records with malformed dates
// are skipped individually. Ties keep the first record encountered, in
// whatever order the store returned them. Returns nil when no future or
// same-day class exists, or when the scan itself fails.
func (s *Service) NextClass(ctx context.Context, department string) *store.NextClass {
	classes, err := s.store.Classes(ctx, department)
	if err != nil {
		s.logger.WithError(err).WithField("department", department).
			DebugContext(ctx, "Class scan failed")
		return nil
	}

	today := dateOnly(s.now())

	var next *store.NextClass
	var nextDate time.Time
	for code, record := range classes {
		classDate, err := time.Parse(DateLayout, record.Date)
		if err != nil {
			s.logger.WithError(err).WithField("course_code", code).
				DebugContext(ctx, "Skipping class with malformed date")
			continue
		}
		if classDate.Before(today) {
			continue
		}
		if next == nil || classDate.Before(nextDate) {
			next = &store.NextClass{ClassRecord: record, CourseCode: code}
			nextDate = classDate
		}
	}
	return next
}

// Classes returns the department's class records keyed by course code.
// Unlike NextClass, lookup failures propagate: the dispatcher treats them
// as terminal for the request.
func (s *Service) Classes(ctx context.Context, department string) (map[string]store.ClassRecord, error) {
	return s.store.Classes(ctx, department)
}

// Courses returns the department's course codes, sorted for stable output.
func (s *Service) Courses(ctx context.Context, department string) ([]string, error) {
	classes, err := s.store.Classes(ctx, department)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(classes))
	for code := range classes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// dateOnly truncates a time to its calendar date in local time.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
