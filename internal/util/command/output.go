package command

import (
	"io"

	"github/chapool/go-xwc/internal/util/jsonx"
)

// PrintJSON writes v as indented JSON followed by a newline.
func PrintJSON(w io.Writer, v any) error {
	enc := jsonx.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
