package records

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/templates"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared instance with the invoice tags registered:
// hexrgb (#RGB / #RRGGBB), currency (a listed code) and template (a registry id)
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v, "hexrgb", func(fl validator.FieldLevel) bool {
			return invoice.IsHexColor(fl.Field().String())
		})
		mustRegister(v, "currency", func(fl validator.FieldLevel) bool {
			_, ok := invoice.LookupCurrency(fl.Field().String())
			return ok
		})
		mustRegister(v, "template", func(fl validator.FieldLevel) bool {
			return templates.Has(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// Validate checks a record against its schema tags plus the rules tags cannot express
func Validate(rec *invoice.Record) error {
	if err := Validator().Struct(rec); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				details = append(details, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return invalid("%s", strings.Join(details, "; "))
		}
		return invalid("%v", err)
	}
	seen := make(map[string]struct{}, len(rec.LineItems))
	for _, item := range rec.LineItems {
		if _, dup := seen[item.ID]; dup {
			return invalid("duplicate line item id %s", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	if logo := rec.LogoData(); logo != "" && !invoice.IsImageDataURI(logo) {
		return invalid("logo is not an image data URI")
	}
	return nil
}
