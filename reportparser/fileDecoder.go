package reportparser

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeExportBytes normalizes raw export content to UTF-8. Practice
// management systems write .txt exports in Windows-1252, so those always
// decode through charmap even when the raw bytes happen to form valid
// UTF-8 sequences. .json exports are UTF-8; invalid bytes there are
// retried as Windows-1252 rather than failing the file.
func decodeExportBytes(raw []byte, ext string) ([]byte, error) {
	if ext != ".txt" && utf8.Valid(raw) {
		return raw, nil
	}

	reader := charmap.Windows1252.NewDecoder().Reader(bytes.NewReader(raw))
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("windows-1252 decode failed: %w", err)
	}
	return decoded, nil
}
