package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(documentXML string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	if documentXML != "" {
		doc, _ := w.Create("word/document.xml")
		doc.Write([]byte(documentXML))
	}

	w.Close()
	return buf.Bytes()
}

func TestExtractor_Format(t *testing.T) {
	assert.Equal(t, domain.FormatDocx, New().Format())
}

func TestExtractor_Extract(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts paragraph text", func(t *testing.T) {
		docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
<w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
</w:body>
</w:document>`

		text, err := New().Extract(ctx, "report.docx", createTestDOCX(docXML))

		require.NoError(t, err)
		assert.Equal(t, "First paragraph.\n\nSecond paragraph.", text)
	})

	t.Run("paragraphs are blank-line separated", func(t *testing.T) {
		docXML := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>A</w:t></w:r></w:p>
<w:p><w:r><w:t>B</w:t></w:r></w:p>
</w:body>
</w:document>`

		text, err := New().Extract(ctx, "x.docx", createTestDOCX(docXML))

		require.NoError(t, err)
		assert.Equal(t, "A\n\nB", text)
	})

	t.Run("missing document.xml yields empty text", func(t *testing.T) {
		text, err := New().Extract(ctx, "empty.docx", createTestDOCX(""))

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("rejects bytes that are not a zip archive", func(t *testing.T) {
		_, err := New().Extract(ctx, "broken.docx", []byte("not a zip"))

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("malformed XML yields empty text", func(t *testing.T) {
		text, err := New().Extract(ctx, "bad.docx", createTestDOCX("<w:document><unclosed"))

		require.NoError(t, err)
		assert.Empty(t, text)
	})
}
