package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobbotwork/jobbot/internal/model"
)

func TestParseProfileForm(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *model.Profile
	}{
		{
			name: "full form",
			text: "Jane Doe\nGo, SQL, Docker\nBackend engineer at Acme\nBSc Computer Science",
			want: &model.Profile{
				FullName:       "Jane Doe",
				Skills:         []string{"Go", "SQL", "Docker"},
				WorkExperience: []string{"Backend engineer at Acme"},
				Education:      []string{"BSc Computer Science"},
			},
		},
		{
			name: "name only",
			text: "Jane Doe",
			want: &model.Profile{FullName: "Jane Doe"},
		},
		{
			name: "whitespace and empty skill entries dropped",
			text: "  Jane Doe  \n Go ,  , SQL ",
			want: &model.Profile{
				FullName: "Jane Doe",
				Skills:   []string{"Go", "SQL"},
			},
		},
		{
			name: "empty input",
			text: "",
			want: &model.Profile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseProfileForm(tt.text))
		})
	}
}

func TestStatusEmoji(t *testing.T) {
	assert.Equal(t, "🎉", statusEmoji(model.ApplicationAccepted))
	assert.Equal(t, "❌", statusEmoji(model.ApplicationRejected))
	assert.Equal(t, "📨", statusEmoji(model.ApplicationSubmitted))
	assert.Equal(t, "⏳", statusEmoji(model.ApplicationPending))
}
