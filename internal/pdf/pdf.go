package pdf

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/ledongthuc/pdf"
)

// IsPDF sniffs the content type from the leading bytes of the blob.
// The filename and its extension are deliberately ignored.
func IsPDF(data []byte) bool {
	return http.DetectContentType(data) == "application/pdf"
}

// ExtractText concatenates per-page text in document order.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
