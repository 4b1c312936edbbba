// Package encoder implements the Animation Encoder (C7): it writes a
// sequence of base64 PNG frames to a scratch directory and invokes an
// external media-encoder binary (ffmpeg) to produce a GIF or MP4.
package encoder

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/geogebra-mcp/geogebra-mcp/internal/errs"
)

// Format is the target animation container.
type Format string

const (
	FormatGIF Format = "gif"
	FormatMP4 Format = "mp4"
)

// Options configures one encode call.
type Options struct {
	Frames    []string // base64 PNG, in simulated-time order
	FrameRate float64
	Width     int
	Height    int
	Quality   int // GIF: [1,100] quality/loss mapping; MP4: interpreted directly as CRF
	Format    Format
	OutputDir string
}

// Result reports the encoded artifact.
type Result struct {
	OutputPath string
	Bytes      []byte
}

// Encoder wraps the path to the external ffmpeg-compatible binary.
type Encoder struct {
	ffmpegPath string
}

// New creates an Encoder bound to the given ffmpeg binary path (or name,
// resolved via PATH).
func New(ffmpegPath string) *Encoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Encoder{ffmpegPath: ffmpegPath}
}

// Encode writes opts.Frames to a scratch directory and invokes ffmpeg to
// produce a GIF or MP4, per spec.md §4.7's procedure. The scratch directory
// is removed on success and retained on failure for inspection.
func (e *Encoder) Encode(opts Options) (Result, error) {
	if _, err := exec.LookPath(e.ffmpegPath); err != nil {
		return Result{}, errs.Newf(errs.DependencyMissing, "media encoder binary %q not found on PATH", e.ffmpegPath).
			WithHint("install ffmpeg or set FFMPEG_PATH")
	}

	scratch, err := os.MkdirTemp(opts.OutputDir, "geogebra-frames-")
	if err != nil {
		return Result{}, errs.Newf(errs.EncodingError, "creating scratch directory: %v", err)
	}

	for i, frame := range opts.Frames {
		raw, err := base64.StdEncoding.DecodeString(frame)
		if err != nil {
			return Result{}, errs.Newf(errs.EncodingError, "decoding frame %d: %v", i, err)
		}
		path := filepath.Join(scratch, fmt.Sprintf("frame_%06d.png", i+1))
		if err := os.WriteFile(path, raw, 0o600); err != nil {
			return Result{}, errs.Newf(errs.EncodingError, "writing frame %d: %v", i, err)
		}
	}

	outputPath := filepath.Join(scratch, "output."+string(opts.Format))
	args := e.buildArgs(scratch, outputPath, opts)

	cmd := exec.Command(e.ffmpegPath, args...)
	stderr, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, errs.Newf(errs.EncodingError, "encoder exited with error: %v: %s", err, string(stderr))
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return Result{}, errs.Newf(errs.EncodingError, "reading encoded output: %v", err)
	}

	finalDir := opts.OutputDir
	if finalDir == "" {
		finalDir = os.TempDir()
	}
	finalPath := filepath.Join(finalDir, filepath.Base(scratch)+"."+string(opts.Format))
	if err := os.WriteFile(finalPath, data, 0o600); err != nil {
		return Result{}, errs.Newf(errs.EncodingError, "writing final artifact: %v", err)
	}

	if err := os.RemoveAll(scratch); err != nil {
		return Result{}, errs.Newf(errs.EncodingError, "cleaning up scratch directory: %v", err)
	}

	return Result{OutputPath: finalPath, Bytes: data}, nil
}

// buildArgs constructs the ffmpeg argument set for the requested format.
func (e *Encoder) buildArgs(scratch, outputPath string, opts Options) []string {
	inputPattern := filepath.Join(scratch, "frame_%06d.png")
	base := []string{
		"-y",
		"-framerate", fmt.Sprintf("%v", opts.FrameRate),
		"-i", inputPattern,
	}

	switch opts.Format {
	case FormatGIF:
		loss := mapQualityToGIFLoss(opts.Quality)
		filter := fmt.Sprintf(
			"fps=%v,scale=%d:%d:flags=lanczos,split[s0][s1];[s0]palettegen[p];[s1][p]paletteuse=dither=bayer:bayer_scale=%d",
			opts.FrameRate, opts.Width, opts.Height, loss,
		)
		return append(base, "-vf", filter, "-loop", "0", outputPath)
	case FormatMP4:
		return append(base,
			"-vf", fmt.Sprintf("scale=%d:%d", opts.Width, opts.Height),
			"-c:v", "libx264",
			"-crf", fmt.Sprintf("%d", opts.Quality),
			"-pix_fmt", "yuv420p",
			outputPath,
		)
	default:
		return append(base, outputPath)
	}
}

// mapQualityToGIFLoss maps a [1,100] quality score to ffmpeg's bayer_scale
// [0,5] dithering parameter (higher quality → lower bayer_scale → less
// visible dithering).
func mapQualityToGIFLoss(quality int) int {
	if quality <= 0 {
		quality = 75
	}
	scale := 5 - (quality * 5 / 100)
	if scale < 0 {
		scale = 0
	}
	if scale > 5 {
		scale = 5
	}
	return scale
}
