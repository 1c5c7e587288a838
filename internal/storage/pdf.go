package storage

import (
	"bytes"
	"errors"
	"strings"
)

const PDFContentType = "application/pdf"

var (
	ErrNotPDF   = errors.New("file is not a PDF")
	ErrTooLarge = errors.New("file exceeds maximum size")
)

var pdfMagic = []byte("%PDF-")

// ValidatePDF checks the declared MIME type, then that the content really starts
// with the PDF signature so a renamed file cannot slip through.
func ValidatePDF(upload Upload, maxBytes int) error {
	ct := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct != PDFContentType {
		return ErrNotPDF
	}
	if maxBytes > 0 && len(upload.Data) > maxBytes {
		return ErrTooLarge
	}
	if !bytes.HasPrefix(upload.Data, pdfMagic) {
		return ErrNotPDF
	}
	return nil
}
