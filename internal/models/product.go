package models

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"gorm.io/gorm"
)

const (
	MsgBlank       = "can't be blank"
	MsgInvalidPath = "must only contain letters, numbers, or dashes"
	MsgNegative    = "must be greater than or equal to 0"
)

// pathPattern rejects digits even though MsgInvalidPath mentions numbers.
// The pattern is the contract.
var pathPattern = regexp.MustCompile(`^[A-Za-z'-]*$`)

// tagMessages maps a failed validation tag onto the message recorded in Errors
var tagMessages = map[string]string{
	"notblank": MsgBlank,
	"path":     MsgInvalidPath,
	"min":      MsgNegative,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("path", func(fl validator.FieldLevel) bool {
		return pathPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Product is a purchasable item. Path is a URL-safe slug.
type Product struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `json:"name" validate:"notblank"`
	Path       string  `json:"path" validate:"notblank,path"`
	PriceCents int64   `gorm:"not null;default:0" json:"price_cents" validate:"min=0"`
	Orders     []Order `gorm:"many2many:orders_products" json:"orders,omitempty"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "products"
}

// Validate checks the product's fields without touching the database.
func (p Product) Validate() Errors {
	errs := Errors{}
	addFieldErrors(errs, "", validate.Struct(p))

	// the struct pass stops at the first failing tag of a field, so a blank
	// path still needs its pattern checked
	if slices.Contains(errs.On("path"), MsgBlank) {
		addFieldErrors(errs, "path", validate.Var(p.Path, "path"))
	}
	return errs
}

// addFieldErrors records each validator failure under its field. field
// overrides the name reported by the validator, which is empty for Var.
func addFieldErrors(errs Errors, field string, err error) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add("base", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		name := field
		if name == "" {
			name = fe.Field()
		}
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		errs.Add(name, msg)
	}
}

// BeforeSave refuses to write an invalid product, whatever the caller.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if errs := p.Validate(); !errs.Valid() {
		return &ValidationError{Model: "Product", Errors: errs}
	}
	return nil
}
