package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	withTestFormats(t)
	store := NewMemoryStore(time.Hour)
	return NewService(store, NewExportLimiter(2, time.Second)), store
}

func openSession(t *testing.T, svc *Service) string {
	t.Helper()
	sess, created, err := svc.OpenSession(context.Background(), "")
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if !created {
		t.Fatal("OpenSession(\"\") should create a session")
	}
	return sess.ID
}

func TestService_OpenSession(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	id := openSession(t, svc)
	if store.Len() != 1 {
		t.Fatalf("store Len() = %d, want 1", store.Len())
	}

	sess, created, err := svc.OpenSession(ctx, id)
	if err != nil {
		t.Fatalf("OpenSession(existing) error = %v", err)
	}
	if created || sess.ID != id {
		t.Errorf("OpenSession(existing) = (%s, %v), want (%s, false)", sess.ID, created, id)
	}

	sess, created, err = svc.OpenSession(ctx, "forged-id")
	if err != nil {
		t.Fatalf("OpenSession(unknown) error = %v", err)
	}
	if !created || sess.ID == "forged-id" {
		t.Errorf("unknown id should start a fresh session with a new id, got %s", sess.ID)
	}
	if sess.Table.Len() != 0 {
		t.Errorf("new session Len() = %d, want 0", sess.Table.Len())
	}
}

func TestService_AddProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := openSession(t, svc)

	row, err := svc.AddProduct(ctx, id, validForm())
	if err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	if row.SKUID != "A1" {
		t.Errorf("AddProduct() row = %+v", row)
	}

	sess, flash, err := svc.View(ctx, id)
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if sess.Table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", sess.Table.Len())
	}
	if flash != ProductAddedNotice {
		t.Errorf("flash = %q, want %q", flash, ProductAddedNotice)
	}

	_, flash, _ = svc.View(ctx, id)
	if flash != "" {
		t.Errorf("second View() flash = %q, want empty", flash)
	}
}

func TestService_AddProductInvalidLeavesTable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := openSession(t, svc)

	form := validForm()
	form.MRP = "abc"

	_, err := svc.AddProduct(ctx, id, form)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("AddProduct() error = %v, want ValidationErrors", err)
	}

	rows, _ := svc.Rows(ctx, id)
	if len(rows) != 0 {
		t.Errorf("Rows() = %d, want 0 after invalid submission", len(rows))
	}

	_, flash, _ := svc.View(ctx, id)
	if flash != "" {
		t.Errorf("flash = %q after invalid submission, want empty", flash)
	}
}

func TestService_AddProductExpiredSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddProduct(context.Background(), "gone", validForm())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("AddProduct() error = %v, want ErrSessionNotFound", err)
	}
}

func TestService_DuplicatesAndOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := openSession(t, svc)

	skus := []string{"A1", "B2", "A1"}
	for _, sku := range skus {
		form := validForm()
		form.SKUID = sku
		if _, err := svc.AddProduct(ctx, id, form); err != nil {
			t.Fatalf("AddProduct(%s) error = %v", sku, err)
		}
	}

	rows, err := svc.Rows(ctx, id)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(rows) != len(skus) {
		t.Fatalf("Rows() = %d, want %d", len(rows), len(skus))
	}
	for i, sku := range skus {
		if rows[i].SKUID != sku {
			t.Errorf("rows[%d].SKUID = %q, want %q", i, rows[i].SKUID, sku)
		}
	}
}

func TestService_SessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	a := openSession(t, svc)
	b := openSession(t, svc)

	if _, err := svc.AddProduct(ctx, a, validForm()); err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}

	rows, _ := svc.Rows(ctx, b)
	if len(rows) != 0 {
		t.Errorf("other session sees %d rows, want 0", len(rows))
	}
}

func TestService_Export(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := openSession(t, svc)

	format, data, err := svc.Export(ctx, id, DefaultFormat)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if format.ContentType != CSVContentType {
		t.Errorf("ContentType = %q", format.ContentType)
	}
	if string(data) != wantHeader+"\n" {
		t.Errorf("empty export = %q, want header only", data)
	}

	_, _ = svc.AddProduct(ctx, id, validForm())
	_, data, _ = svc.Export(ctx, id, DefaultFormat)
	if !strings.HasSuffix(string(data), "A1,Widget,9.99,7.99,C1,U1,10\n") {
		t.Errorf("export = %q", data)
	}

	_, data, err = svc.Export(ctx, id, "txt")
	if err != nil || string(data) != "1 rows" {
		t.Errorf("Export(txt) = %q, %v", data, err)
	}

	if svc.ExportStatus().Active != 0 {
		t.Error("export slot not released")
	}
}

func TestService_ExportUnknownFormat(t *testing.T) {
	svc, _ := newTestService(t)
	id := openSession(t, svc)

	_, _, err := svc.Export(context.Background(), id, "pdf")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Export(pdf) error = %v, want ErrUnknownFormat", err)
	}
}

func TestService_ExportBusy(t *testing.T) {
	withTestFormats(t)
	store := NewMemoryStore(time.Hour)
	limiter := NewExportLimiter(1, 20*time.Millisecond)
	svc := NewService(store, limiter)
	id := openSession(t, svc)

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer limiter.Release()

	if _, _, err := svc.Export(context.Background(), id, DefaultFormat); !errors.Is(err, ErrTooManyExports) {
		t.Errorf("Export() error = %v, want ErrTooManyExports", err)
	}
}

func TestService_WaitForExports(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := svc.WaitForExports(ctx); err != nil {
		t.Errorf("WaitForExports() error = %v", err)
	}
}
