package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	tests := []struct {
		name         string
		userID       int64
		originalName string
		suffix       string
		want         string
	}{
		{
			name:         "pdf upload",
			userID:       123,
			originalName: "resume.pdf",
			suffix:       "abcd1234",
			want:         "cvs/123/20250314_150926_abcd1234.pdf",
		},
		{
			name:         "no extension",
			userID:       7,
			originalName: "resume",
			suffix:       "ffff0000",
			want:         "cvs/7/20250314_150926_ffff0000",
		},
		{
			name:         "extension preserved verbatim",
			userID:       123,
			originalName: "cv.docx",
			suffix:       "12ab34cd",
			want:         "cvs/123/20250314_150926_12ab34cd.docx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, objectKey(tt.userID, tt.originalName, now, tt.suffix))
		})
	}
}

func TestObjectKeySuffixDisambiguatesSameSecond(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	first := objectKey(123, "resume.pdf", now, "aaaaaaaa")
	second := objectKey(123, "resume.pdf", now, "bbbbbbbb")
	assert.NotEqual(t, first, second)
}
