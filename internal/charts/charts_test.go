package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobbotwork/jobbot/internal/model"
)

func TestGenerateApplicationsChartEmpty(t *testing.T) {
	g := NewChartGenerator()

	png, err := g.GenerateApplicationsChart(nil)
	require.NoError(t, err)
	assert.Nil(t, png)
}

func TestGenerateApplicationsChart(t *testing.T) {
	g := NewChartGenerator()

	png, err := g.GenerateApplicationsChart([]model.Application{
		{JobTitle: "Backend Developer", Status: model.ApplicationSubmitted},
		{JobTitle: "Go Developer", Status: model.ApplicationSubmitted},
		{JobTitle: "SRE", Status: model.ApplicationRejected},
	})
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG signature
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
