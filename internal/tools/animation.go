package tools

import (
	"context"
	"encoding/json"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
	"github.com/geogebra-mcp/geogebra-mcp/internal/encoder"
	"github.com/geogebra-mcp/geogebra-mcp/internal/export"
	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
	"github.com/geogebra-mcp/geogebra-mcp/internal/validator"
)

// RegisterAnimation adds the animation export tool, supplementing spec.md's
// §6.2 catalogue (see SPEC_FULL.md §6.1-6.4): it chains C4's frame capture,
// C7's encoder, and C8's envelope wrapping into a single dispatch.
func RegisterAnimation(reg *mcp.Registry, d Deps) {
	reg.Register(NewTool("geogebra_export_animation",
		"Captures an animation as a sequence of frames and encodes it to GIF or MP4.",
		`{"type":"object","properties":{"durationMs":{"type":"integer"},"frameRate":{"type":"number"},"width":{"type":"integer"},"height":{"type":"integer"},"format":{"type":"string","enum":["gif","mp4"]},"quality":{"type":"integer"},"sliderName":{"type":"string"}},"required":["durationMs","frameRate","format"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			args := struct {
				DurationMs int     `json:"durationMs" validate:"min=0,max=60000"`
				FrameRate  float64 `json:"frameRate" validate:"required,min=1,max=60"`
				Width      int     `json:"width"`
				Height     int     `json:"height"`
				Format     string  `json:"format" validate:"required,oneof=gif mp4"`
				Quality    int     `json:"quality"`
				SliderName string  `json:"sliderName"`
			}{Width: 800, Height: 600}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			if r := validator.ValidateExportPNG(1, 72, args.Width, args.Height); !r.Valid {
				return mcp.ErrorResult(r.Reason), nil
			}
			if args.Quality == 0 {
				// Quality means different things per format (GIF: 1-100
				// dither quality; MP4: CRF, lower is better), so the
				// default can't be shared.
				if args.Format == "mp4" {
					args.Quality = 23
				} else {
					args.Quality = 75
				}
			}

			return d.WithDriver(ctx, "export_animation", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				if args.SliderName != "" {
					if err := drv.SetAnimating(ctx, args.SliderName, true); err != nil {
						return nil, err
					}
				}

				frames, cancelled, err := drv.ExportAnimation(ctx, browser.AnimationOptions{
					DurationMs: args.DurationMs,
					FrameRate:  args.FrameRate,
					Width:      args.Width,
					Height:     args.Height,
				})
				if err != nil {
					return nil, err
				}
				if len(frames) == 0 {
					// durationMs=0 (or a cancelled capture before the first
					// frame) yields an empty frame list; nothing to encode.
					env := export.WrapAnimation(args.Format, nil, export.Metadata{
						Width:  args.Width,
						Height: args.Height,
					})
					return mcp.JSONResult(map[string]any{
						"frameCount": 0,
						"cancelled":  cancelled,
						"envelope":   env,
					})
				}

				pngs := make([]string, len(frames))
				for i, f := range frames {
					pngs[i] = f.PNGBase64
				}

				result, err := d.Encoder.Encode(encoder.Options{
					Frames:    pngs,
					FrameRate: args.FrameRate,
					Width:     args.Width,
					Height:    args.Height,
					Quality:   args.Quality,
					Format:    encoder.Format(args.Format),
				})
				if err != nil {
					return nil, err
				}

				env := export.WrapAnimation(args.Format, result.Bytes, export.Metadata{
					Width:  args.Width,
					Height: args.Height,
				})
				if cancelled {
					return mcp.JSONResult(map[string]any{
						"cancelled": true,
						"envelope":  env,
					})
				}
				return mcp.JSONResult(env)
			})
		}))
}
