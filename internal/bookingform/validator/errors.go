package validator

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ByField keys the messages by form field. The first error per field wins.
func (v ValidationErrors) ByField() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		if _, seen := fields[err.Field]; !seen {
			fields[err.Field] = err.Message
		}
	}
	return fields
}

func (v ValidationErrors) Get(field string) (ValidationError, bool) {
	for _, err := range v {
		if err.Field == field {
			return err, true
		}
	}
	return ValidationError{}, false
}
