package store

// Student is the per-sender registration record at students/{id}.
// Created on first "next class" query from an unregistered sender or
// via the registration endpoint. Never deleted.
type Student struct {
	Department string `json:"department"`
}

// ClassRecord is a scheduled class at classes/{dept}/{code}.
// Admin updates replace the whole record; latest write wins, no history.
type ClassRecord struct {
	Date     string `json:"date"`     // calendar date, YYYY-MM-DD
	Time     string `json:"time"`     // free text, e.g. "10:00"
	Lecturer string `json:"lecturer"` // free text
}

// NextClass is a ClassRecord augmented with the course code it was
// found under. Returned by the next-class scan.
type NextClass struct {
	ClassRecord
	CourseCode string `json:"course_code"`
}
