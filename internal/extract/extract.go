// Package extract pulls plain text out of resume and job-description files.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedType is returned for anything other than PDF, DOCX or TXT.
var ErrUnsupportedType = errors.New("unsupported file type")

// ReadError wraps a failure to open or parse a supported file.
type ReadError struct {
	Kind Kind
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading %s file: %v", e.Kind, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Kind is a supported document format.
type Kind string

const (
	PDF  Kind = "pdf"
	DOCX Kind = "docx"
	TXT  Kind = "txt"
)

var mimeKinds = map[string]Kind{
	"application/pdf": PDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": DOCX,
	"text/plain": TXT,
}

// KindOf maps a file extension or a MIME type to a Kind.
func KindOf(nameOrMime string) (Kind, error) {
	s := strings.ToLower(strings.TrimSpace(nameOrMime))
	if mt, _, _ := strings.Cut(s, ";"); mimeKinds[mt] != "" {
		return mimeKinds[mt], nil
	}
	switch strings.TrimPrefix(filepath.Ext(s), ".") {
	case "pdf":
		return PDF, nil
	case "docx":
		return DOCX, nil
	case "txt":
		return TXT, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, nameOrMime)
}

// File extracts text from the file at path, choosing the parser by extension.
func File(path string) (string, error) {
	kind, err := KindOf(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Kind: kind, Err: err}
	}
	return Bytes(kind, data)
}

// Bytes extracts text from an in-memory document.
func Bytes(kind Kind, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch kind {
	case PDF:
		text, err = pdfText(data)
	case DOCX:
		text, err = docxText(data)
	case TXT:
		text, err = plainText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, kind)
	}
	if err != nil {
		return "", &ReadError{Kind: kind, Err: err}
	}
	return strings.TrimSpace(text), nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return unescapeXML(content), nil
}

var xmlEntities = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&")

func unescapeXML(s string) string {
	return xmlEntities.Replace(s)
}

// plainText decodes UTF-8, falling back to Latin-1.
func plainText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(out), nil
}
