package chart_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgsales-predictor/dataset"
	"vgsales-predictor/internal/chart"
)

func TestRender(t *testing.T) {
	records := []dataset.Record{
		{Name: "Pong", Year: 1980, GlobalSales: 5.0},
		{Name: "Pac-Man", Year: 1981, GlobalSales: 7.0},
	}
	path := filepath.Join(t.TempDir(), "chart.png")

	c := chart.New(records, path)
	require.NoError(t, c.Render())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_WithPredictions(t *testing.T) {
	records := []dataset.Record{
		{Name: "Pong", Year: 1980, GlobalSales: 5.0},
	}
	path := filepath.Join(t.TempDir(), "chart.png")

	c := chart.New(records, path)
	c.AddPrediction(1995, 3.25)
	c.AddPrediction(2001, 1.5)
	require.NoError(t, c.Render())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRender_BadPath(t *testing.T) {
	c := chart.New(nil, filepath.Join(t.TempDir(), "missing-dir", "chart.png"))
	assert.Error(t, c.Render())
}
