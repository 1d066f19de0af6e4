package store

import (
	"context"
	"encoding/json"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/sdu-se/zibot-go/internal/logger"
	"github.com/sdu-se/zibot-go/internal/metrics"
)

// Client is the Firebase Realtime Database backed Store implementation.
type Client struct {
	db      *db.Client
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// Config holds the settings needed to reach the database.
type Config struct {
	CredentialsFile string
	DatabaseURL     string
}

// NewClient initializes the Firebase app and connects to the Realtime Database.
func NewClient(ctx context.Context, cfg Config, log *logger.Logger, m *metrics.Metrics) (*Client, error) {
	app, err := firebase.NewApp(ctx,
		&firebase.Config{DatabaseURL: cfg.DatabaseURL},
		option.WithCredentialsFile(cfg.CredentialsFile),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect realtime database: %w", err)
	}

	return &Client{
		db:      client,
		logger:  log.WithModule("store"),
		metrics: m,
	}, nil
}

// Student retrieves students/{id}, or nil if absent.
func (c *Client) Student(ctx context.Context, id string) (*Student, error) {
	var raw map[string]string
	if err := c.db.NewRef("students/"+id).Get(ctx, &raw); err != nil {
		c.record("get", err)
		return nil, fmt.Errorf("get student %s: %w", id, err)
	}
	c.record("get", nil)
	if raw == nil {
		return nil, nil
	}
	dept, ok := raw["department"]
	if !ok {
		return nil, nil
	}
	return &Student{Department: dept}, nil
}

// SetStudent overwrites students/{id}.
func (c *Client) SetStudent(ctx context.Context, id string, student *Student) error {
	err := c.db.NewRef("students/"+id).Set(ctx, student)
	c.record("set", err)
	if err != nil {
		return fmt.Errorf("set student %s: %w", id, err)
	}
	return nil
}

// IsAdmin reports whether admins/{id} is strictly the boolean true.
func (c *Client) IsAdmin(ctx context.Context, id string) (bool, error) {
	var v any
	if err := c.db.NewRef("admins/"+id).Get(ctx, &v); err != nil {
		c.record("get", err)
		return false, fmt.Errorf("get admin flag %s: %w", id, err)
	}
	c.record("get", nil)
	flag, ok := v.(bool)
	return ok && flag, nil
}

// Classes retrieves all class records under classes/{department}.
// Each entry is decoded individually; values that are not records
// (scalars, malformed objects) are skipped without failing the scan.
func (c *Client) Classes(ctx context.Context, department string) (map[string]ClassRecord, error) {
	var raw map[string]json.RawMessage
	if err := c.db.NewRef("classes/"+department).Get(ctx, &raw); err != nil {
		c.record("get", err)
		return nil, fmt.Errorf("get classes for %s: %w", department, err)
	}
	c.record("get", nil)

	classes := make(map[string]ClassRecord, len(raw))
	for code, entry := range raw {
		var record ClassRecord
		if err := json.Unmarshal(entry, &record); err != nil {
			c.logger.WithError(err).WithField("course_code", code).
				Debug("Skipping malformed class entry")
			continue
		}
		classes[code] = record
	}
	return classes, nil
}

// SetClass overwrites classes/{department}/{courseCode} wholesale.
func (c *Client) SetClass(ctx context.Context, department, courseCode string, record *ClassRecord) error {
	err := c.db.NewRef("classes/"+department+"/"+courseCode).Set(ctx, record)
	c.record("set", err)
	if err != nil {
		return fmt.Errorf("set class %s/%s: %w", department, courseCode, err)
	}
	return nil
}

// Introduced reports whether users/{id}/introduced is set.
func (c *Client) Introduced(ctx context.Context, id string) (bool, error) {
	var introduced bool
	if err := c.db.NewRef("users/"+id+"/introduced").Get(ctx, &introduced); err != nil {
		c.record("get", err)
		return false, fmt.Errorf("get introduced flag %s: %w", id, err)
	}
	c.record("get", nil)
	return introduced, nil
}

// SetIntroduced marks users/{id}/introduced true.
func (c *Client) SetIntroduced(ctx context.Context, id string) error {
	err := c.db.NewRef("users/"+id+"/introduced").Set(ctx, true)
	c.record("set", err)
	if err != nil {
		return fmt.Errorf("set introduced flag %s: %w", id, err)
	}
	return nil
}

func (c *Client) record(operation string, err error) {
	if c.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordStoreRequest(operation, status)
}
