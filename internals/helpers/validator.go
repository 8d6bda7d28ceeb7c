// file: internals/helpers/validator.go
package helper

import (
	"github.com/go-playground/validator/v10"
)

// Satu instance validator untuk seluruh app (thread-safe, cache struct info).
var Validate = validator.New()

// ValidationErrorsToMap mengubah error validator.v10 menjadi map field → pesan,
// siap dipakai JsonValidationError.
func ValidationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		out[field] = append(out[field], fe.Tag())
	}
	return out
}
