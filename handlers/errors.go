package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// formatBindingError itemizes validation failures per field so clients
// see every rejected field at once, not just the first.
func formatBindingError(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, map[string]string{
			"field": strings.ToLower(fe.Field()),
			"rule":  fe.Tag(),
			"value": fe.Param(),
		})
	}
	return fields
}
