package core

// validation.go checks a submitted product form before it becomes a row.
//
// The only rule is numeric typing: MRP and selling price must be
// non-negative decimals, quantity a non-negative whole number. Text fields
// are accepted as-is, empty or duplicated.

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/JonMunkholm/tohands-inventory/internal/schema"
	"github.com/go-playground/validator/v10"
)

// ProductForm holds the raw values of one form submission.
type ProductForm struct {
	SKUID        string `form:"sku_id"`
	Name         string `form:"product_name"`
	MRP          string `form:"product_mrp" validate:"money"`
	SellingPrice string `form:"product_selling_price" validate:"money"`
	CategoryID   string `form:"product_category_id"`
	UnitID       string `form:"product_unit_id"`
	Quantity     string `form:"product_quantity" validate:"quantity"`
}

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Form input name
	Label   string // Label shown next to the input
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s: %s", e.Label, e.Message)
	}
	return e.Message
}

// ValidationErrors is returned when a form has one or more invalid fields.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return "invalid number: " + strings.Join(parts, "; ")
}

// ByField indexes the errors by form input name.
func (errs ValidationErrors) ByField() map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return out
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their form input name so errors line up with the HTML.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		_, err := ParseMoney(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("quantity", func(fl validator.FieldLevel) bool {
		_, err := ParseQuantity(fl.Field().String())
		return err == nil
	})

	return v
}

// Validate checks the form and returns ValidationErrors listing every bad field.
func (f ProductForm) Validate() error {
	err := formValidator.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate form: %w", err)
	}

	result := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		value, _ := fe.Value().(string)
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Label:   fieldLabel(fe.Field()),
			Value:   value,
			Message: fieldMessage(fe.Tag(), value),
		})
	}
	return result
}

// Row converts a valid form into an InventoryRow.
func (f ProductForm) Row() (InventoryRow, error) {
	if err := f.Validate(); err != nil {
		return InventoryRow{}, err
	}

	// Validate already proved these parse.
	mrp, _ := ParseMoney(f.MRP)
	price, _ := ParseMoney(f.SellingPrice)
	qty, _ := ParseQuantity(f.Quantity)

	return InventoryRow{
		SKUID:        f.SKUID,
		Name:         f.Name,
		MRP:          mrp,
		SellingPrice: price,
		CategoryID:   f.CategoryID,
		UnitID:       f.UnitID,
		Quantity:     qty,
	}, nil
}

// fieldLabel returns the user-facing label for a form input name.
func fieldLabel(formKey string) string {
	if spec, ok := schema.ByFormKey(formKey); ok {
		return spec.Label
	}
	return formKey
}

// fieldMessage explains why a value failed its tag.
func fieldMessage(tag, value string) string {
	var err error
	switch tag {
	case "money":
		_, err = ParseMoney(value)
	case "quantity":
		_, err = ParseQuantity(value)
	}

	switch {
	case errors.Is(err, ErrNegative):
		return "must not be negative"
	case errors.Is(err, ErrNotInteger):
		return "must be a whole number"
	case tag == "quantity":
		return "must be a whole number of 0 or more"
	default:
		return "must be a number of 0 or more"
	}
}
