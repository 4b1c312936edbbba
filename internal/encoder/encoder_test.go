package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFailsOnMissingBinary(t *testing.T) {
	e := New("geogebra-mcp-nonexistent-encoder-binary")
	_, err := e.Encode(Options{
		Frames:    []string{},
		FrameRate: 10,
		Width:     100,
		Height:    100,
		Format:    FormatGIF,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEPENDENCY_MISSING")
}

func TestEncodeFailsOnMalformedFrame(t *testing.T) {
	e := New("true") // resolvable binary; we only exercise the pre-exec frame decode path
	_, err := e.Encode(Options{
		Frames:    []string{"not-valid-base64!!"},
		FrameRate: 10,
		Width:     100,
		Height:    100,
		Format:    FormatGIF,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENCODING_ERROR")
}

func TestMapQualityToGIFLoss(t *testing.T) {
	assert.Equal(t, 0, mapQualityToGIFLoss(100))
	assert.Equal(t, 2, mapQualityToGIFLoss(0))
	assert.GreaterOrEqual(t, mapQualityToGIFLoss(50), 0)
	assert.LessOrEqual(t, mapQualityToGIFLoss(50), 5)
}

func TestBuildArgsGIFIncludesPaletteFilter(t *testing.T) {
	e := New("ffmpeg")
	args := e.buildArgs("/tmp/scratch", "/tmp/scratch/output.gif", Options{
		FrameRate: 12, Width: 320, Height: 240, Quality: 80, Format: FormatGIF,
	})
	assert.Contains(t, args, "-vf")
	found := false
	for i, a := range args {
		if a == "/tmp/scratch/output.gif" {
			found = true
		}
		if a == "-vf" && i+1 < len(args) {
			assert.Contains(t, args[i+1], "palettegen")
		}
	}
	assert.True(t, found)
}

func TestBuildArgsMP4UsesCRF(t *testing.T) {
	e := New("ffmpeg")
	args := e.buildArgs("/tmp/scratch", "/tmp/scratch/output.mp4", Options{
		FrameRate: 30, Width: 640, Height: 480, Quality: 23, Format: FormatMP4,
	})
	assert.Contains(t, args, "-crf")
	assert.Contains(t, args, "23")
	assert.Contains(t, args, "libx264")
}
