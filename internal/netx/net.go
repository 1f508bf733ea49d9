// Package netx holds small HTTP helpers shared by the server and the CLI.
package netx

import (
	"mime"
	"path/filepath"
)

// Attachment builds a Content-Disposition value offering filename for download.
func Attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

// AttachmentFilename extracts the file name from a Content-Disposition value.
// Directory parts are stripped; "" means the header carried no usable name.
func AttachmentFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := filepath.Base(params["filename"])
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
