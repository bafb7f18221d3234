package validator

import (
	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed struct validation.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

var validate = validator.New()

// ValidateStruct runs struct-tag validation and returns one FieldError per
// failed field, or nil when the value is valid.
func ValidateStruct(data any) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Tag: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.StructNamespace(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}
