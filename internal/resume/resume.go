// Package resume распознаёт тип загруженного резюме и извлекает из него текст.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrUnsupportedType = errors.New("unsupported resume file type")

// Detect определяет MIME-тип по содержимому. allowed ограничивает допустимые типы.
func Detect(data []byte, filename string, allowed ...string) (string, error) {
	detected := mimetype.Detect(data)

	var mime string
	switch {
	case detected.Is(MIMEPDF):
		mime = MIMEPDF
	case detected.Is(MIMEDOCX):
		mime = MIMEDOCX
	case detected.Is("application/zip") && strings.EqualFold(filepath.Ext(filename), ".docx"):
		// короткий заголовок не всегда позволяет отличить docx от zip
		mime = MIMEDOCX
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, detected.String())
	}

	for _, a := range allowed {
		if a == mime {
			return mime, nil
		}
	}
	if len(allowed) == 0 {
		return mime, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
}

// Extension - расширение файла для ключа в хранилище
func Extension(mime string) string {
	switch mime {
	case MIMEPDF:
		return ".pdf"
	case MIMEDOCX:
		return ".docx"
	}
	return ""
}

// ExtractText извлекает текст резюме
func ExtractText(mime string, data []byte) (string, error) {
	switch mime {
	case MIMEPDF:
		return extractPDFText(data)
	case MIMEDOCX:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
	}
	return strings.TrimSpace(b.String()), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return strings.TrimSpace(stripXML(doc.Editable().GetContent())), nil
}

// stripXML убирает разметку document.xml, оставляя текст
func stripXML(content string) string {
	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteByte(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ReadLimited читает не больше max байт; если файл больше - ошибка ErrTooLarge
func ReadLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, ErrTooLarge
	}
	return data, nil
}

var ErrTooLarge = errors.New("file too large")
