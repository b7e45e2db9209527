package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/tohands-inventory/internal/schema"
	"github.com/google/uuid"
)

// ProductAddedNotice is the one-time message shown after a successful submission.
const ProductAddedNotice = "Product added successfully!"

// ErrUnknownFormat is returned for export format keys that are not registered.
var ErrUnknownFormat = errors.New("unknown export format")

// Service provides the inventory operations on top of a session store.
type Service struct {
	store   SessionStore
	limiter *ExportLimiter
}

// NewService creates a new Service instance.
// A nil limiter falls back to the default export limits.
func NewService(store SessionStore, limiter *ExportLimiter) *Service {
	if limiter == nil {
		limiter = NewExportLimiter(DefaultMaxConcurrentExports, DefaultExportWait)
	}
	return &Service{
		store:   store,
		limiter: limiter,
	}
}

// OpenSession returns the session for id, or starts a new empty one when id
// is blank, unknown or expired. The returned bool reports whether a new
// session was created.
func (s *Service) OpenSession(ctx context.Context, id string) (*Session, bool, error) {
	if id != "" {
		sess, err := s.store.Load(ctx, id)
		if err == nil {
			return sess, false, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, false, err
		}
	}

	sess := &Session{
		ID:       uuid.NewString(),
		LastSeen: time.Now(),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, false, fmt.Errorf("start session: %w", err)
	}

	slog.Debug("session started", "session_id", sess.ID)
	return sess, true, nil
}

// AddProduct validates the form and appends the resulting row to the
// session's table. Invalid numbers return ValidationErrors and leave the
// table unchanged. On success the session carries ProductAddedNotice.
func (s *Service) AddProduct(ctx context.Context, sessionID string, form ProductForm) (InventoryRow, error) {
	row, err := form.Row()
	if err != nil {
		return InventoryRow{}, err
	}

	sess, err := s.store.Update(ctx, sessionID, func(sess *Session) error {
		sess.Table.Append(row)
		sess.Flash = ProductAddedNotice
		return nil
	})
	if err != nil {
		return InventoryRow{}, fmt.Errorf("add product: %w", err)
	}

	slog.Debug("product added",
		"session_id", sessionID,
		"sku_id", row.SKUID,
		"rows", sess.Table.Len(),
	)
	return row, nil
}

// View returns the session for rendering and consumes its pending notice.
func (s *Service) View(ctx context.Context, sessionID string) (*Session, string, error) {
	var flash string
	sess, err := s.store.Update(ctx, sessionID, func(sess *Session) error {
		flash = sess.TakeFlash()
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("view session: %w", err)
	}
	return sess, flash, nil
}

// Rows returns the session's table rows in insertion order.
func (s *Service) Rows(ctx context.Context, sessionID string) ([]InventoryRow, error) {
	sess, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load rows: %w", err)
	}
	return sess.Table.Rows(), nil
}

// Export renders the session's table in the requested format.
func (s *Service) Export(ctx context.Context, sessionID, formatKey string) (ExportFormat, []byte, error) {
	format, ok := Get(formatKey)
	if !ok {
		return ExportFormat{}, nil, fmt.Errorf("%w: %s", ErrUnknownFormat, formatKey)
	}

	rows, err := s.Rows(ctx, sessionID)
	if err != nil {
		return ExportFormat{}, nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return ExportFormat{}, nil, err
	}
	defer s.limiter.Release()

	var buf bytes.Buffer
	if err := format.Write(&buf, rows); err != nil {
		return ExportFormat{}, nil, fmt.Errorf("export %s: %w", format.Key, err)
	}

	slog.Debug("table exported",
		"session_id", sessionID,
		"format", format.Key,
		"rows", len(rows),
		"bytes", buf.Len(),
	)
	return format, buf.Bytes(), nil
}

// ExportFileName returns the download name for a format.
func ExportFileName(format ExportFormat) string {
	return format.FileName(schema.FileBase)
}

// ExportStatus reports the export limiter state.
func (s *Service) ExportStatus() ExportLimiterStatus {
	return s.limiter.Status()
}

// WaitForExports blocks until in-flight exports finish or ctx is done.
func (s *Service) WaitForExports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
