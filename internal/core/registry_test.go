package core

import (
	"fmt"
	"io"
	"testing"
)

// withTestFormats replaces the registry with csv plus a plain-text format.
func withTestFormats(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)

	Register(ExportFormat{
		Key:         DefaultFormat,
		Label:       "Download CSV File",
		ContentType: CSVContentType,
		Write:       WriteCSV,
	})
	Register(ExportFormat{
		Key:         "txt",
		Label:       "Download Text",
		ContentType: "text/plain",
		Write: func(w io.Writer, rows []InventoryRow) error {
			_, err := fmt.Fprintf(w, "%d rows", len(rows))
			return err
		},
	})
}

func TestRegister(t *testing.T) {
	withTestFormats(t)

	if got := FormatCount(); got != 2 {
		t.Fatalf("FormatCount() = %d, want 2", got)
	}

	f, ok := Get(DefaultFormat)
	if !ok {
		t.Fatal("Get(csv) not found")
	}
	if f.Extension != "csv" {
		t.Errorf("Extension = %q, want default from key", f.Extension)
	}

	if _, ok := Get("pdf"); ok {
		t.Error("Get(pdf) should not be found")
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	withTestFormats(t)

	defer func() {
		if recover() == nil {
			t.Error("Register() with duplicate key should panic")
		}
	}()
	Register(ExportFormat{Key: DefaultFormat, Write: WriteCSV})
}

func TestRegister_PanicsWithoutWriter(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	defer func() {
		if recover() == nil {
			t.Error("Register() without writer should panic")
		}
	}()
	Register(ExportFormat{Key: "broken"})
}

func TestAll_DefaultFirst(t *testing.T) {
	withTestFormats(t)
	Register(ExportFormat{Key: "aaa", Write: WriteCSV})

	all := All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d formats, want 3", len(all))
	}

	want := []string{DefaultFormat, "aaa", "txt"}
	for i, key := range want {
		if all[i].Key != key {
			t.Errorf("All()[%d].Key = %q, want %q", i, all[i].Key, key)
		}
	}
}
