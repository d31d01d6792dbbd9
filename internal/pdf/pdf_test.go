package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{name: "pdf magic header", data: []byte("%PDF-1.7\nsome content"), want: true},
		{name: "plain text named like pdf", data: []byte("this is not a pdf"), want: false},
		{name: "html", data: []byte("<html><body>cv</body></html>"), want: false},
		{name: "png header", data: []byte("\x89PNG\r\n\x1a\n"), want: false},
		{name: "empty", data: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPDF(tt.data))
		})
	}
}

func TestExtractTextRejectsGarbage(t *testing.T) {
	_, err := ExtractText([]byte("%PDF-1.7 but truncated"))
	assert.Error(t, err)
}
