package production

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/malariasim/simulation"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestChartVisualizerRender(t *testing.T) {
	v := NewChartVisualizer()
	assert.Equal(t, "Malaria Spread Simulation", v.Title)

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, testResult(t, 5).History))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestChartVisualizerFlatCurve(t *testing.T) {
	h := simulation.History{{Day: 1}, {Day: 2}, {Day: 3}}
	var buf bytes.Buffer
	require.NoError(t, NewChartVisualizer().Render(&buf, h))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestChartVisualizerSingleDay(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewChartVisualizer().Render(&buf, simulation.History{{Day: 1, Infected: 4}}))
	assert.NotZero(t, buf.Len())
}

func TestChartVisualizerEmptyHistoryDrawsAxes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewChartVisualizer().Render(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	buf.Reset()
	require.NoError(t, NewChartVisualizer().Render(&buf, simulation.History{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestSaveChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "infected.png")
	require.NoError(t, NewChartVisualizer().SaveChart(path, testResult(t, 8).History))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestChartVisualizerRenderSummary(t *testing.T) {
	runs := []simulation.History{testResult(t, 1).History, testResult(t, 2).History}
	summary := simulation.Summarize(runs)

	var buf bytes.Buffer
	require.NoError(t, NewChartVisualizer().RenderSummary(&buf, summary))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

}

func TestChartVisualizerEmptySummaryDrawsAxes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewChartVisualizer().RenderSummary(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, NewChartVisualizer().SaveSummaryChart(path, simulation.Summarize([]simulation.History{{}, {}})))
	assert.FileExists(t, path)
}

func TestSaveSummaryChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ensemble.png")
	summary := simulation.Summarize([]simulation.History{testResult(t, 3).History})
	require.NoError(t, NewChartVisualizer().SaveSummaryChart(path, summary))
	assert.FileExists(t, path)
}
