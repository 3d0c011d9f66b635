package resume

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	pdfHeader := []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n")

	mime, err := Detect(pdfHeader, "cv.pdf", MIMEPDF)
	require.NoError(t, err)
	assert.Equal(t, MIMEPDF, mime)
	assert.Equal(t, ".pdf", Extension(mime))

	_, err = Detect([]byte("hello, plain text resume"), "cv.pdf", MIMEPDF)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	zipHeader := []byte("PK\x03\x04\x14\x00\x06\x00")
	_, err = Detect(zipHeader, "cv.docx", MIMEPDF)
	assert.ErrorIs(t, err, ErrUnsupportedType, "docx is not accepted where only PDF is allowed")
}

func TestReadLimited(t *testing.T) {
	data, err := ReadLimited(strings.NewReader("12345"), 5)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(data))

	_, err = ReadLimited(bytes.NewReader(make([]byte, 6)), 5)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestStripXML(t *testing.T) {
	assert.Equal(t, "John Doe Security Officer", stripXML("<w:p><w:r><w:t>John Doe</w:t></w:r></w:p><w:p><w:t>Security Officer</w:t></w:p>"))
}
