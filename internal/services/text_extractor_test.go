package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestFileTypeOf(t *testing.T) {
	assert.Equal(t, FileTypePDF, FileTypeOf("cv.PDF"))
	assert.Equal(t, FileTypeDOCX, FileTypeOf("resume.final.docx"))
	assert.Equal(t, FileTypeTXT, FileTypeOf("notes.txt"))
	assert.Equal(t, "", FileTypeOf("resume.doc"))
	assert.Equal(t, "", FileTypeOf("resume"))
}

func TestExtractTextPlain(t *testing.T) {
	text, err := NewTextExtractorService().ExtractText("resume.txt", []byte("Jane Doe\nGo developer"))

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", text)
}

func TestExtractTextPlainInvalidUTF8(t *testing.T) {
	text, err := NewTextExtractorService().ExtractText("resume.txt", []byte{'o', 'k', 0xff})

	require.NoError(t, err)
	assert.Equal(t, "ok�", text)
}

func TestExtractTextDOCX(t *testing.T) {
	data := buildDOCX(t, `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Backend</w:t><w:tab/><w:t xml:space="preserve">Engineer</w:t></w:r></w:p>`)

	text, err := NewTextExtractorService().ExtractText("resume.docx", data)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend\tEngineer", text)
}

func TestExtractTextDOCXWithoutBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("docProps/core.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = NewTextExtractorService().ExtractText("resume.docx", buf.Bytes())

	assert.ErrorContains(t, err, "word/document.xml not found")
}

func TestExtractTextCorruptFiles(t *testing.T) {
	extractor := NewTextExtractorService()

	_, err := extractor.ExtractText("resume.pdf", []byte("definitely not a pdf"))
	assert.Error(t, err)

	_, err = extractor.ExtractText("resume.docx", []byte("definitely not a zip"))
	assert.Error(t, err)
}

func TestExtractTextUnsupported(t *testing.T) {
	extractor := NewTextExtractorService()

	_, err := extractor.ExtractText("resume.odt", []byte("content"))

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, extractor.Supports("resume.odt"))
	assert.True(t, extractor.Supports("resume.pdf"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a\nb", CleanText("  a  \n\n   \n b \n"))
	assert.Equal(t, "", CleanText("   "))
}
