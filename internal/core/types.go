package core

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRow is one product line of the Tohands inventory file.
type InventoryRow struct {
	SKUID        string          `json:"sku_id"`
	Name         string          `json:"product_name"`
	MRP          decimal.Decimal `json:"product_mrp"`
	SellingPrice decimal.Decimal `json:"product_selling_price"`
	CategoryID   string          `json:"product_category_id"`
	UnitID       string          `json:"product_unit_id"`
	Quantity     int64           `json:"product_quantity"`
}

// Record returns the row as CSV cells in schema.TohandsFieldSpecs order.
func (r InventoryRow) Record() []string {
	return []string{
		r.SKUID,
		r.Name,
		FormatMoney(r.MRP),
		FormatMoney(r.SellingPrice),
		r.CategoryID,
		r.UnitID,
		strconv.FormatInt(r.Quantity, 10),
	}
}

// InventoryTable is an ordered, append-only list of rows.
// The zero value is an empty table.
type InventoryTable struct {
	rows []InventoryRow
}

// Append adds row at the end of the table.
func (t *InventoryTable) Append(row InventoryRow) {
	t.rows = append(t.rows, row)
}

// Rows returns a copy of the rows in insertion order.
func (t *InventoryTable) Rows() []InventoryRow {
	out := make([]InventoryRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of rows.
func (t *InventoryTable) Len() int {
	return len(t.rows)
}

// MarshalJSON encodes the table as an array of rows.
func (t InventoryTable) MarshalJSON() ([]byte, error) {
	if t.rows == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.rows)
}

// UnmarshalJSON decodes an array of rows.
func (t *InventoryTable) UnmarshalJSON(data []byte) error {
	var rows []InventoryRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	t.rows = rows
	return nil
}

// Session is one visitor's working state: the table being built and a
// notice to show once on the next page render.
type Session struct {
	ID       string         `json:"id"`
	Table    InventoryTable `json:"rows"`
	Flash    string         `json:"flash,omitempty"`
	LastSeen time.Time      `json:"last_seen"`
}

// Clone returns a deep copy so callers never share a table with the store.
func (s *Session) Clone() *Session {
	c := *s
	c.Table = InventoryTable{rows: s.Table.Rows()}
	return &c
}

// TakeFlash returns the pending notice and clears it.
func (s *Session) TakeFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}

// ExportFormat describes one download representation of the table.
type ExportFormat struct {
	Key         string // URL key: "csv"
	Label       string // Link text
	Extension   string // File extension without dot
	ContentType string
	Write       ExportFunc
}

// FileName returns the download file name for this format.
func (f ExportFormat) FileName(base string) string {
	return base + "." + f.Extension
}
