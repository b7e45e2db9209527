// Package templates renders the HTML pages of the inventory form.
//
// The *.templ files are the source; run `templ generate` after editing them.
package templates

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/tohands-inventory/internal/core"
	"github.com/JonMunkholm/tohands-inventory/internal/schema"
)

// Title is the page heading and document title.
const Title = "Tohands Inventory CSV Creator"

// Intro explains the page under the title.
const Intro = "This app helps you create a CSV file with your product inventory data in the format required by the Tohands smart calculator. " +
	"Fill in the details for each product below and click 'Add Product'. " +
	"Once you have added all your products, you can download the complete CSV file."

// EmptyTableNotice is shown instead of the table when no product was added.
const EmptyTableNotice = "No products added yet. Fill the form above to add products."

// DownloadLink is one way to save the table.
type DownloadLink struct {
	Label    string // Link text
	Href     string // Data URI or export route, built by the server
	FileName string // Suggested file name for the download attribute
}

// PageData is everything the inventory page shows.
type PageData struct {
	Rows      []core.InventoryRow
	Flash     string            // One-time success notice
	Values    map[string]string // Form values to re-fill, keyed by input name
	Errors    map[string]string // Field messages, keyed by input name
	Problem   *core.UserMessage // Non-field error shown above the form
	Downloads []DownloadLink
}

func fieldClass(msg string) string {
	if msg != "" {
		return "field field-invalid"
	}
	return "field"
}

func inputStep(field schema.FieldSpec) string {
	if field.Type == schema.FieldQuantity {
		return "1"
	}
	return "0.01"
}

// inputValue returns the submitted value, or the number input's starting
// value on a fresh form.
func inputValue(field schema.FieldSpec, values map[string]string) string {
	if v, ok := values[field.FormKey]; ok {
		return v
	}
	if field.Type == schema.FieldQuantity {
		return "0"
	}
	return "0.00"
}

func rowCount(n int) string {
	if n == 1 {
		return "1 product"
	}
	return strconv.Itoa(n) + " products"
}

func statusTitle(status int) string {
	return strconv.Itoa(status) + " " + http.StatusText(status)
}
