package tools

import (
	"context"
	"encoding/json"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
	"github.com/geogebra-mcp/geogebra-mcp/internal/export"
	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
	"github.com/geogebra-mcp/geogebra-mcp/internal/validator"
)

// RegisterExport adds the export tools: PNG, SVG, PDF.
func RegisterExport(reg *mcp.Registry, d Deps) {
	reg.Register(NewTool("geogebra_export_png", "Exports the current view as a PNG image.",
		`{"type":"object","properties":{"scale":{"type":"number"},"transparent":{"type":"boolean"},"dpi":{"type":"integer"},"width":{"type":"integer"},"height":{"type":"integer"},"xmin":{"type":"number"},"xmax":{"type":"number"},"ymin":{"type":"number"},"ymax":{"type":"number"},"showAxes":{"type":"boolean"},"showGrid":{"type":"boolean"}}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			args := struct {
				Scale       float64  `json:"scale"`
				Transparent bool     `json:"transparent"`
				DPI         int      `json:"dpi"`
				Width       int      `json:"width"`
				Height      int      `json:"height"`
				XMin        *float64 `json:"xmin"`
				XMax        *float64 `json:"xmax"`
				YMin        *float64 `json:"ymin"`
				YMax        *float64 `json:"ymax"`
				ShowAxes    *bool    `json:"showAxes"`
				ShowGrid    *bool    `json:"showGrid"`
			}{Scale: 1, DPI: 72, Width: 800, Height: 600}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			if r := validator.ValidateExportPNG(args.Scale, args.DPI, args.Width, args.Height); !r.Valid {
				return mcp.ErrorResult(r.Reason), nil
			}
			return d.WithDriver(ctx, "export_png", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				if args.XMin != nil && args.XMax != nil && args.YMin != nil && args.YMax != nil {
					if err := drv.SetCoordSystem(ctx, *args.XMin, *args.XMax, *args.YMin, *args.YMax); err != nil {
						return nil, err
					}
				}
				if args.ShowAxes != nil {
					if err := drv.SetAxesVisible(ctx, *args.ShowAxes, *args.ShowAxes); err != nil {
						return nil, err
					}
				}
				if args.ShowGrid != nil {
					if err := drv.SetGridVisible(ctx, *args.ShowGrid); err != nil {
						return nil, err
					}
				}
				png, err := drv.ExportPNG(ctx, browser.ExportPNGOptions{
					Scale: args.Scale, Transparent: args.Transparent, DPI: args.DPI, Width: args.Width, Height: args.Height,
				})
				if err != nil {
					return nil, err
				}
				env := export.WrapPNG(png, export.Metadata{
					Scale: args.Scale, Transparent: args.Transparent, DPI: args.DPI, Width: args.Width, Height: args.Height,
				})
				return mcp.JSONResult(env)
			})
		}))

	reg.Register(NewTool("geogebra_export_svg", "Exports the current view as an SVG document.",
		`{"type":"object","properties":{"xmin":{"type":"number"},"xmax":{"type":"number"},"ymin":{"type":"number"},"ymax":{"type":"number"}}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				XMin *float64 `json:"xmin"`
				XMax *float64 `json:"xmax"`
				YMin *float64 `json:"ymin"`
				YMax *float64 `json:"ymax"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return d.WithDriver(ctx, "export_svg", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				if args.XMin != nil && args.XMax != nil && args.YMin != nil && args.YMax != nil {
					if err := drv.SetCoordSystem(ctx, *args.XMin, *args.XMax, *args.YMin, *args.YMax); err != nil {
						return nil, err
					}
				}
				svg, err := drv.ExportSVG(ctx)
				if err != nil {
					return nil, err
				}
				return mcp.JSONResult(export.WrapSVG(svg, export.Metadata{}))
			})
		}))

	reg.Register(NewTool("geogebra_export_pdf", "Exports the current view as a PDF document.",
		`{"type":"object","properties":{}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			return d.WithDriver(ctx, "export_pdf", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				pdf, err := drv.ExportPDF(ctx)
				if err != nil {
					return nil, err
				}
				env, err := export.WrapPDF(pdf, export.Metadata{})
				if err != nil {
					return nil, err
				}
				return mcp.JSONResult(env)
			})
		}))
}
