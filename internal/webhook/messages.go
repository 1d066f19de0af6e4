package webhook

// Fixed user-facing reply texts.
const (
	msgScheduleUpdated  = "Schedule updated for %s."
	msgInvalidAdminCmd  = "Error: Invalid adminupdate format."
	msgNextClass        = "Your next class is %s on %s at %s with %s."
	msgNoUpcomingClass  = "No upcoming classes found."
	msgCourseList       = "Your courses: %s\nReply with a course code to get details."
	msgNoCourses        = "No courses found for your department."
	msgCourseDetail     = "Course: %s\nDate: %s\nTime: %s\nLecturer: %s"
	msgAssistantFailure = "Sorry, I could not process your request right now."
)

// missingFieldPlaceholder renders absent class record fields.
const missingFieldPlaceholder = "N/A"

func orPlaceholder(s string) string {
	if s == "" {
		return missingFieldPlaceholder
	}
	return s
}
