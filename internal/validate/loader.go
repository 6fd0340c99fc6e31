package validate

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Load reads the file at path and parses it into a generic JSON value.
// It fails with FileNotFound when the file cannot be read and with
// MalformedJSON when its content is not strictly valid UTF-8 JSON.
func Load(path string) (gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, &Error{
			Kind:   FileNotFound,
			Reason: fmt.Sprintf("file '%s' not found or unreadable", path),
			Err:    err,
		}
	}
	if !utf8.Valid(data) {
		return gjson.Result{}, &Error{
			Kind:   MalformedJSON,
			Reason: fmt.Sprintf("file '%s' is not valid UTF-8", path),
		}
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, &Error{
			Kind:   MalformedJSON,
			Reason: fmt.Sprintf("file '%s' does not contain valid JSON", path),
		}
	}
	return gjson.ParseBytes(data), nil
}
