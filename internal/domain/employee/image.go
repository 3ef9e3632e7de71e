package employee

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
)

// EncodeImage turns raw image bytes into the data-URI string persisted in the
// image column. The MIME type comes from the filename extension; anything
// other than .png or .jpg fails the whole ingestion rather than producing a
// prefix-less value.
func EncodeImage(data []byte, filename string) (string, error) {
	var prefix string
	switch {
	case strings.HasSuffix(filename, ".png"):
		prefix = "data:image/png;base64,"
	case strings.HasSuffix(filename, ".jpg"):
		prefix = "data:image/jpeg;base64,"
	default:
		return "", fmt.Errorf("unsupported image extension %q", filepath.Ext(filename))
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image %s has no content", filename)
	}
	return prefix + base64.StdEncoding.EncodeToString(data), nil
}
