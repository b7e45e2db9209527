// Package schema describes the column layout of the Tohands inventory import file.
package schema

// FieldType represents the expected data type for a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldMoney
	FieldQuantity
)

// FieldSpec ties a CSV header to the form input that fills it.
type FieldSpec struct {
	Name    string    // CSV header, must match the Tohands tool exactly
	FormKey string    // HTML form input name
	Label   string    // Form label shown to the user
	Type    FieldType // Expected data type
}

// FileBase is the download name of the export without its extension.
const FileBase = "tohands_inventory"

// TohandsFieldSpecs lists the inventory columns in file order.
var TohandsFieldSpecs = []FieldSpec{
	{Name: "SKU_ID", FormKey: "sku_id", Label: "SKU ID", Type: FieldText},
	{Name: "PRODUCT_NAME", FormKey: "product_name", Label: "Product Name", Type: FieldText},
	{Name: "PRODUCT_MRP", FormKey: "product_mrp", Label: "Product MRP", Type: FieldMoney},
	{Name: "PRODUCT_SELLING_PRICE", FormKey: "product_selling_price", Label: "Product Selling Price", Type: FieldMoney},
	{Name: "PRODUCT_CATEGORY_ID", FormKey: "product_category_id", Label: "Product Category ID", Type: FieldText},
	{Name: "PRODUCT_UNIT_ID", FormKey: "product_unit_id", Label: "Product Unit ID", Type: FieldText},
	{Name: "PRODUCT_QUANTITY", FormKey: "product_quantity", Label: "Product Quantity", Type: FieldQuantity},
}

// Header returns the CSV header row.
func Header() []string {
	header := make([]string, len(TohandsFieldSpecs))
	for i, spec := range TohandsFieldSpecs {
		header[i] = spec.Name
	}
	return header
}

// ByFormKey returns the spec whose form input name is key.
func ByFormKey(key string) (FieldSpec, bool) {
	for _, spec := range TohandsFieldSpecs {
		if spec.FormKey == key {
			return spec, true
		}
	}
	return FieldSpec{}, false
}
