package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	raw := `{
		"full_name": "Jane Doe",
		"email": "jane@example.com",
		"phone": "+1 555 0100",
		"skills": ["Go", "SQL"],
		"work_experience": ["Backend engineer at Acme, 2019-2024"],
		"education": ["BSc Computer Science"]
	}`

	p, err := ParseProfile([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.FullName)
	assert.Equal(t, []string{"Go", "SQL"}, p.Skills)

	encoded, err := p.Encode()
	require.NoError(t, err)

	decoded, err := ParseProfile([]byte(encoded))
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestParseProfileMissingName(t *testing.T) {
	_, err := ParseProfile([]byte(`{"email": "jane@example.com"}`))
	assert.ErrorIs(t, err, ErrProfileIncomplete)
}

func TestParseProfileInvalidJSON(t *testing.T) {
	_, err := ParseProfile([]byte("Here is the extracted information: {..."))
	assert.Error(t, err)
}
