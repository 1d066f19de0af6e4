// Package webhook provides WhatsApp webhook handling: handshake
// verification, envelope parsing, and routing of inbound messages to the
// admin-update, scheduling, course-detail, and assistant-fallback paths.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sdu-se/zibot-go/internal/ctxutil"
	domerrors "github.com/sdu-se/zibot-go/internal/errors"
	"github.com/sdu-se/zibot-go/internal/logger"
	"github.com/sdu-se/zibot-go/internal/metrics"
	"github.com/sdu-se/zibot-go/internal/schedule"
	"github.com/sdu-se/zibot-go/internal/sentry"
	"github.com/sdu-se/zibot-go/internal/store"
)

// adminCommand is the privileged schedule-update keyword. Matched
// case-insensitively as a prefix of the message body.
const adminCommand = "adminupdate"

// Keyword phrases, compared case-insensitively against the whole body.
var nextClassPhrases = []string{"next class", "when is my next class?"}

const myCoursesPhrase = "my courses"

// MessageSender sends an outbound text message to a recipient.
type MessageSender interface {
	SendText(ctx context.Context, to, message string) (map[string]any, error)
}

// Responder answers a free-form question.
type Responder interface {
	Reply(ctx context.Context, text string) (string, error)
}

// Handler routes inbound webhook deliveries.
//
// Routing never surfaces a non-200 status for a parsed delivery: a failure
// status would make the platform retry the webhook or disable it entirely,
// so internal errors are logged and swallowed.
type Handler struct {
	verifyToken string
	store       store.Store
	schedule    *schedule.Service
	sender      MessageSender
	assistant   Responder
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

// HandlerConfig holds the dependencies for creating a Handler.
type HandlerConfig struct {
	VerifyToken string
	Store       store.Store
	Schedule    *schedule.Service
	Sender      MessageSender
	Assistant   Responder
	Metrics     *metrics.Metrics
	Logger      *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		verifyToken: cfg.VerifyToken,
		store:       cfg.Store,
		schedule:    cfg.Schedule,
		sender:      cfg.Sender,
		assistant:   cfg.Assistant,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger.WithModule("webhook"),
	}
}

// Verify is the Gin handler for the webhook handshake (GET).
// The platform sends hub.mode, hub.verify_token, and hub.challenge; a
// matching token echoes the challenge back.
func (h *Handler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		c.String(http.StatusOK, challenge)
		return
	}

	h.logger.WithField("mode", mode).Warn("Webhook verification failed")
	c.String(http.StatusForbidden, "Verification failed")
}

// Handle is the Gin handler for message deliveries (POST).
func (h *Handler) Handle(c *gin.Context) {
	if c.ContentType() != "application/json" {
		h.logger.WithField("content_type", c.ContentType()).
			Warn("Webhook POST with unsupported content type")
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"error": "Content-Type must be application/json",
		})
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to read webhook body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	if !json.Valid(raw) {
		h.logger.Warn("Webhook POST with malformed JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Valid JSON of an unexpected shape. The platform retries
		// non-success responses, so this still answers OK.
		h.logger.WithError(err).Warn("Webhook payload has unexpected shape")
		h.metrics.RecordWebhook("noop", "success", 0)
		c.String(http.StatusOK, "OK")
		return
	}

	msg, ok := env.FirstMessage()
	if !ok {
		// Status-only notification: nothing to do, but the platform
		// still expects a success response.
		h.metrics.RecordWebhook("noop", "success", 0)
		c.String(http.StatusOK, "OK")
		return
	}

	from := msg.From
	body := strings.TrimSpace(msg.Text.Body)
	if body == "" {
		// Non-text message (image, audio, sticker): nothing to route.
		h.metrics.RecordWebhook("noop", "success", 0)
		c.String(http.StatusOK, "OK")
		return
	}

	ctx := ctxutil.WithSenderID(c.Request.Context(), from)
	log := h.logger.WithField("sender", from)
	log.InfoContext(ctx, "Received message")

	start := time.Now()
	branch, err := h.dispatch(ctx, from, body)
	duration := time.Since(start).Seconds()

	status := "success"
	if err != nil {
		status = "error"
		log.WithError(err).WithField("branch", branch).
			ErrorContext(ctx, "Failed to handle message")
		sentry.CaptureExceptionWithContext(ctx, err)
	}
	h.metrics.RecordWebhook(branch, status, duration)

	c.String(http.StatusOK, "OK")
}

// dispatch routes the message body to the first matching branch and
// returns the branch name for metrics. Every branch replies to the sender
// before returning; errors are terminal for the request, never retried.
func (h *Handler) dispatch(ctx context.Context, from, body string) (string, error) {
	isAdmin, err := h.store.IsAdmin(ctx, from)
	if err != nil {
		// An admin-flag lookup failure aborts routing entirely,
		// without a reply. See DESIGN.md before changing this.
		return "admin_check", err
	}

	lower := strings.ToLower(body)

	switch {
	case strings.HasPrefix(lower, adminCommand) && isAdmin:
		return "admin_update", h.handleAdminUpdate(ctx, from, body)
	case matchesAny(lower, nextClassPhrases):
		return "next_class", h.handleNextClass(ctx, from)
	case lower == myCoursesPhrase:
		return "my_courses", h.handleMyCourses(ctx, from)
	default:
		return h.handleLookupOrAssistant(ctx, from, body)
	}
}

// handleAdminUpdate parses "adminupdate <dept> <code> <date> <time>
// <lecturer...>" and replaces the class record wholesale. Parse and write
// failures both answer with the fixed error text; the command itself is
// then considered handled.
func (h *Handler) handleAdminUpdate(ctx context.Context, from, body string) error {
	fields := strings.Fields(body)
	if len(fields) < 5 {
		h.logger.WithError(domerrors.ErrInvalidCommand).
			WithField("token_count", len(fields)).
			DebugContext(ctx, "Malformed admin command")
		_, err := h.sender.SendText(ctx, from, msgInvalidAdminCmd)
		return err
	}

	dept, code, date, classTime := fields[1], fields[2], fields[3], fields[4]
	lecturer := strings.Join(fields[5:], " ")

	record := &store.ClassRecord{
		Date:     date,
		Time:     classTime,
		Lecturer: lecturer,
	}
	if err := h.store.SetClass(ctx, dept, code, record); err != nil {
		h.logger.WithError(err).WithField("course_code", code).
			ErrorContext(ctx, "Failed to write class record")
		_, sendErr := h.sender.SendText(ctx, from, msgInvalidAdminCmd)
		return sendErr
	}

	h.logger.WithField("department", dept).WithField("course_code", code).
		InfoContext(ctx, "Schedule updated")
	_, err := h.sender.SendText(ctx, from, fmt.Sprintf(msgScheduleUpdated, code))
	return err
}

// handleNextClass resolves the department, auto-registers unregistered
// senders under the default department, and answers with the nearest
// future class.
//
// The scan deliberately queries the default department rather than the
// resolved one. The deployed bot has always behaved this way; see
// DESIGN.md before changing it.
func (h *Handler) handleNextClass(ctx context.Context, from string) error {
	dept := h.schedule.Department(ctx, from)
	if dept == h.schedule.DefaultDepartment() {
		student := &store.Student{Department: dept}
		if err := h.store.SetStudent(ctx, from, student); err != nil {
			return err
		}
	}

	next := h.schedule.NextClass(ctx, h.schedule.DefaultDepartment())
	if next == nil {
		_, err := h.sender.SendText(ctx, from, msgNoUpcomingClass)
		return err
	}

	reply := fmt.Sprintf(msgNextClass, next.CourseCode, next.Date, next.Time, next.Lecturer)
	_, err := h.sender.SendText(ctx, from, reply)
	return err
}

// handleMyCourses lists the department's course codes.
func (h *Handler) handleMyCourses(ctx context.Context, from string) error {
	dept := h.schedule.Department(ctx, from)
	codes, err := h.schedule.Courses(ctx, dept)
	if err != nil {
		return err
	}

	if len(codes) == 0 {
		_, err := h.sender.SendText(ctx, from, msgNoCourses)
		return err
	}

	reply := fmt.Sprintf(msgCourseList, strings.Join(codes, ", "))
	_, err = h.sender.SendText(ctx, from, reply)
	return err
}

// handleLookupOrAssistant answers with class details when the raw body is
// an exact course-code match (case-sensitive), and otherwise forwards the
// text to the assistant. Assistant failures become a fixed apology.
func (h *Handler) handleLookupOrAssistant(ctx context.Context, from, body string) (string, error) {
	dept := h.schedule.Department(ctx, from)
	classes, err := h.schedule.Classes(ctx, dept)
	if err != nil {
		return "course_detail", err
	}

	if record, ok := classes[body]; ok {
		reply := fmt.Sprintf(msgCourseDetail,
			body,
			orPlaceholder(record.Date),
			orPlaceholder(record.Time),
			orPlaceholder(record.Lecturer),
		)
		_, err := h.sender.SendText(ctx, from, reply)
		return "course_detail", err
	}

	answer, err := h.assistant.Reply(ctx, body)
	if err != nil {
		h.logger.WithError(err).WarnContext(ctx, "Assistant fallback failed")
		_, sendErr := h.sender.SendText(ctx, from, msgAssistantFailure)
		return "assistant", sendErr
	}

	_, err = h.sender.SendText(ctx, from, answer)
	return "assistant", err
}

func matchesAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if s == phrase {
			return true
		}
	}
	return false
}
