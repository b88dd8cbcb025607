// Package utils holds small helpers shared by the CLI and handlers.
package utils

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes v to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling the JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}
