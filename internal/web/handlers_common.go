package web

// This file contains shared helpers used across handlers.

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/JonMunkholm/tohands-inventory/internal/core"
)

// productFormFromValues reads the form inputs by name.
func productFormFromValues(v url.Values) core.ProductForm {
	return core.ProductForm{
		SKUID:        v.Get("sku_id"),
		Name:         v.Get("product_name"),
		MRP:          v.Get("product_mrp"),
		SellingPrice: v.Get("product_selling_price"),
		CategoryID:   v.Get("product_category_id"),
		UnitID:       v.Get("product_unit_id"),
		Quantity:     v.Get("product_quantity"),
	}
}

// formValues maps a form back to input names for re-filling the page.
func formValues(f core.ProductForm) map[string]string {
	return map[string]string{
		"sku_id":                f.SKUID,
		"product_name":          f.Name,
		"product_mrp":           f.MRP,
		"product_selling_price": f.SellingPrice,
		"product_category_id":   f.CategoryID,
		"product_unit_id":       f.UnitID,
		"product_quantity":      f.Quantity,
	}
}

// looseString accepts a JSON string or number and keeps its literal text,
// so "9.99" and 9.99 validate the same way as a form value.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

// productRequest is the JSON body of POST /api/rows.
type productRequest struct {
	SKUID        string      `json:"sku_id"`
	Name         string      `json:"product_name"`
	MRP          looseString `json:"product_mrp"`
	SellingPrice looseString `json:"product_selling_price"`
	CategoryID   string      `json:"product_category_id"`
	UnitID       string      `json:"product_unit_id"`
	Quantity     looseString `json:"product_quantity"`
}

func (p productRequest) form() core.ProductForm {
	return core.ProductForm{
		SKUID:        p.SKUID,
		Name:         p.Name,
		MRP:          string(p.MRP),
		SellingPrice: string(p.SellingPrice),
		CategoryID:   p.CategoryID,
		UnitID:       p.UnitID,
		Quantity:     string(p.Quantity),
	}
}

// rowResponse is a row as returned by the API, with numbers as JSON numbers.
type rowResponse struct {
	SKUID        string      `json:"sku_id"`
	Name         string      `json:"product_name"`
	MRP          json.Number `json:"product_mrp"`
	SellingPrice json.Number `json:"product_selling_price"`
	CategoryID   string      `json:"product_category_id"`
	UnitID       string      `json:"product_unit_id"`
	Quantity     int64       `json:"product_quantity"`
}

func toRowResponse(row core.InventoryRow) rowResponse {
	return rowResponse{
		SKUID:        row.SKUID,
		Name:         row.Name,
		MRP:          json.Number(core.FormatMoney(row.MRP)),
		SellingPrice: json.Number(core.FormatMoney(row.SellingPrice)),
		CategoryID:   row.CategoryID,
		UnitID:       row.UnitID,
		Quantity:     row.Quantity,
	}
}

// healthResponse reports liveness and export capacity.
type healthResponse struct {
	Status  string                   `json:"status"`
	Exports core.ExportLimiterStatus `json:"exports"`
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status:  "ok",
		Exports: s.service.ExportStatus(),
	})
}

// writeJSON encodes v as JSON with status 200.
func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, http.StatusOK, v)
}

// writeJSONStatus encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err, "status", status)
	}
}
