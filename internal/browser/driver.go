// Package browser implements the Instance Driver (C4): it hosts exactly
// one headless GeoGebra applet in a chromedp-controlled page and exposes a
// typed facade over the in-page JS bridge.
package browser

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"github.com/geogebra-mcp/geogebra-mcp/internal/errs"
)

// AppName selects the applet variant loaded into the page.
type AppName string

const (
	AppClassic  AppName = "classic"
	AppGraphing AppName = "graphing"
	AppGeometry AppName = "geometry"
	App3D       AppName = "3d"
	AppSuite    AppName = "suite"
)

// Options configure a Driver's initialization.
type Options struct {
	AppName       AppName
	CanvasWidth   int
	CanvasHeight  int
	Headless      bool
	ReadyTimeout  time.Duration
	BrowserArgs   []string
}

// EvalResult is the envelope returned by evalCommand.
type EvalResult struct {
	Success bool
	Result  string
}

// Driver hosts one applet and serializes every bridge call onto it, per the
// "each Instance serializes its own bridge calls" ordering rule.
type Driver struct {
	mu    sync.Mutex
	state State
	log   *slog.Logger

	allocCtx   context.Context
	allocCancel context.CancelFunc
	browserCtx context.Context
	browserCancel context.CancelFunc
}

// New creates a Driver in the UNINIT state.
func New(logger *slog.Logger) *Driver {
	return &Driver{state: StateUninit, log: logger}
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// requireReady returns INSTANCE_NOT_READY unless the driver is READY.
func (d *Driver) requireReady() error {
	d.mu.Lock()
	s := d.state
	d.mu.Unlock()
	if s != StateReady {
		return errs.Newf(errs.InstanceNotReady, "instance is in state %s, not READY", s)
	}
	return nil
}

// Initialize drives UNINIT → LAUNCHING_BROWSER → LOADING_PAGE →
// WAITING_READY → READY, or FAILED on any step's error.
func (d *Driver) Initialize(ctx context.Context, opts Options) error {
	d.mu.Lock()
	if d.state != StateUninit {
		d.mu.Unlock()
		return errs.Newf(errs.InternalError, "initialize called from state %s", d.state)
	}
	d.state = StateLaunchingBrowser
	d.mu.Unlock()

	args := append([]string{
		"--disable-gpu",
		"--disable-dev-shm-usage",
		"--disable-extensions",
		"--no-sandbox",
		"--js-flags=--max-old-space-size=256",
	}, opts.BrowserArgs...)

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], func() chromedp.ExecAllocatorOption {
		return chromedp.WindowSize(opts.CanvasWidth, opts.CanvasHeight)
	}())
	for _, a := range args {
		allocOpts = append(allocOpts, chromedp.Flag(a[2:], true))
	}
	if !opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		allocCancel()
		d.fail()
		return errs.Newf(errs.InternalError, "launching headless browser: %v", err).WithHint("retryable")
	}

	d.mu.Lock()
	d.allocCtx, d.allocCancel = allocCtx, allocCancel
	d.browserCtx, d.browserCancel = browserCtx, browserCancel
	d.state = StateLoadingPage
	d.mu.Unlock()

	pageURL := appletPageURL(opts.AppName, opts.CanvasWidth, opts.CanvasHeight)
	if err := chromedp.Run(browserCtx,
		emulation.SetDeviceMetricsOverride(int64(opts.CanvasWidth), int64(opts.CanvasHeight), 1, false),
		chromedp.Navigate(pageURL),
	); err != nil {
		d.fail()
		return errs.Newf(errs.InternalError, "loading applet page: %v", err)
	}

	d.mu.Lock()
	d.state = StateWaitingReady
	d.mu.Unlock()

	readyTimeout := opts.ReadyTimeout
	if readyTimeout < 15*time.Second {
		readyTimeout = 15 * time.Second
	}
	waitCtx, cancel := context.WithTimeout(browserCtx, readyTimeout)
	defer cancel()

	if err := pollReady(waitCtx); err != nil {
		d.fail()
		return errs.New(errs.Timeout, "applet did not become ready before the configured timeout").WithHint(fmt.Sprintf("increase ready_timeout_ms beyond %s", readyTimeout))
	}

	d.mu.Lock()
	d.state = StateReady
	d.mu.Unlock()
	return nil
}

// pollReady polls the page-global ggbReady flag until true or ctx expires.
func pollReady(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		var ready bool
		if err := chromedp.Run(ctx, chromedp.Evaluate(`window.ggbReady === true`, &ready)); err == nil && ready {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (d *Driver) fail() {
	d.mu.Lock()
	d.state = StateFailed
	d.mu.Unlock()
}

// EvalCommand runs one GeoGebra DSL command through the bridge's
// evalCommand, returning success:false envelopes for DSL-level rejections
// rather than an error (spec.md §4.3.3); an error return means a transport
// fault (page crashed, bridge missing).
func (d *Driver) EvalCommand(ctx context.Context, cmd string) (EvalResult, error) {
	if err := d.requireReady(); err != nil {
		return EvalResult{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var ok bool
	script := fmt.Sprintf(`window.ggbApplet.evalCommandGetLabels(%s)`, jsString(cmd))
	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(fmt.Sprintf(`(function(){
		try { var r = %s; return true; } catch (e) { return false; }
	})()`, script), &ok)); err != nil {
		return EvalResult{}, errs.Newf(errs.CommandFailed, "bridge transport fault evaluating command: %v", err)
	}
	return EvalResult{Success: ok, Result: ""}, nil
}

// Exists reports whether a named object exists in the Construction.
func (d *Driver) Exists(ctx context.Context, name string) (bool, error) {
	if err := d.requireReady(); err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var exists bool
	expr := fmt.Sprintf(`window.ggbApplet.exists(%s)`, jsString(name))
	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, &exists)); err != nil {
		return false, errs.Newf(errs.InternalError, "checking object existence: %v", err)
	}
	return exists, nil
}

// coordGetter runs one of getXcoord/getYcoord/getZcoord, returning NaN for
// undefined objects (spec.md §4.3.3).
func (d *Driver) coordGetter(ctx context.Context, fn, name string) (float64, error) {
	if err := d.requireReady(); err != nil {
		return math.NaN(), err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var coord float64
	expr := fmt.Sprintf(`window.ggbApplet.%s(%s)`, fn, jsString(name))
	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, &coord)); err != nil {
		return math.NaN(), errs.Newf(errs.InternalError, "reading %s(%s): %v", fn, name, err)
	}
	return coord, nil
}

func (d *Driver) GetXCoord(ctx context.Context, name string) (float64, error) { return d.coordGetter(ctx, "getXcoord", name) }
func (d *Driver) GetYCoord(ctx context.Context, name string) (float64, error) { return d.coordGetter(ctx, "getYcoord", name) }
func (d *Driver) GetZCoord(ctx context.Context, name string) (float64, error) { return d.coordGetter(ctx, "getZcoord", name) }

// GetObjectType returns the GeoGebra object type string for name.
func (d *Driver) GetObjectType(ctx context.Context, name string) (string, error) {
	return d.stringGetter(ctx, "getObjectType", name)
}

// GetObjectValueString returns the human-readable value string for name.
func (d *Driver) GetObjectValueString(ctx context.Context, name string) (string, error) {
	return d.stringGetter(ctx, "getValueString", name)
}

// GetColor returns the hex color string for name.
func (d *Driver) GetColor(ctx context.Context, name string) (string, error) {
	return d.stringGetter(ctx, "getColor", name)
}

func (d *Driver) stringGetter(ctx context.Context, fn, name string) (string, error) {
	if err := d.requireReady(); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var val string
	expr := fmt.Sprintf(`window.ggbApplet.%s(%s)`, fn, jsString(name))
	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, &val)); err != nil {
		return "", errs.Newf(errs.InternalError, "reading %s(%s): %v", fn, name, err)
	}
	return val, nil
}

// IsVisible reports an object's visibility flag.
func (d *Driver) IsVisible(ctx context.Context, name string) (bool, error) {
	if err := d.requireReady(); err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var visible bool
	expr := fmt.Sprintf(`window.ggbApplet.getVisible(%s)`, jsString(name))
	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, &visible)); err != nil {
		return false, errs.Newf(errs.InternalError, "reading visibility of %s: %v", name, err)
	}
	return visible, nil
}

// GetAllObjectNames lists object names, optionally filtered by GeoGebra
// object type ("point", "line", ...); empty kind returns every object.
func (d *Driver) GetAllObjectNames(ctx context.Context, kind string) ([]string, error) {
	if err := d.requireReady(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var names []string
	expr := fmt.Sprintf(`window.ggbApplet.getAllObjectNames(%s)`, jsString(kind))
	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, &names)); err != nil {
		return nil, errs.Newf(errs.InternalError, "listing objects: %v", err)
	}
	return names, nil
}

// DeleteObject removes a named object from the Construction.
func (d *Driver) DeleteObject(ctx context.Context, name string) error {
	if err := d.requireReady(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	expr := fmt.Sprintf(`window.ggbApplet.deleteObject(%s)`, jsString(name))
	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, nil)); err != nil {
		return errs.Newf(errs.InternalError, "deleting object %s: %v", name, err)
	}
	return nil
}

// NewConstruction clears all objects and resets the view.
func (d *Driver) NewConstruction(ctx context.Context) error {
	if err := d.requireReady(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(`window.ggbApplet.newConstruction()`, nil)); err != nil {
		return errs.Newf(errs.InternalError, "clearing construction: %v", err)
	}
	return nil
}

// RefreshViews forces a view redraw.
func (d *Driver) RefreshViews(ctx context.Context) error {
	if err := d.requireReady(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return chromedpErr(chromedp.Run(d.browserCtx, chromedp.Evaluate(`window.ggbApplet.refreshViews()`, nil)))
}

// SetCoordSystem sets the graphics view bounds.
func (d *Driver) SetCoordSystem(ctx context.Context, xmin, xmax, ymin, ymax float64) error {
	if err := d.requireReady(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	expr := fmt.Sprintf(`window.ggbApplet.setCoordSystem(%v, %v, %v, %v)`, xmin, xmax, ymin, ymax)
	return chromedpErr(chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, nil)))
}

// SetAxesVisible toggles x/y axis visibility.
func (d *Driver) SetAxesVisible(ctx context.Context, x, y bool) error {
	if err := d.requireReady(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	expr := fmt.Sprintf(`window.ggbApplet.setAxesVisible(%t, %t)`, x, y)
	return chromedpErr(chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, nil)))
}

// SetGridVisible toggles grid visibility.
func (d *Driver) SetGridVisible(ctx context.Context, visible bool) error {
	if err := d.requireReady(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	expr := fmt.Sprintf(`window.ggbApplet.setGridVisible(%t)`, visible)
	return chromedpErr(chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, nil)))
}

// ExportPNGOptions carries exportPNG's parameters; validator.ValidateExportPNG
// checks their ranges. ExportPNG passes only Scale, Transparent and DPI to the
// applet; Width and Height are not applied to the image.
type ExportPNGOptions struct {
	Scale       float64
	Transparent bool
	DPI         int
	Width       int
	Height      int
}

// ExportPNG returns raw PNG bytes for the current view.
func (d *Driver) ExportPNG(ctx context.Context, opts ExportPNGOptions) ([]byte, error) {
	if err := d.requireReady(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var dataURL string
	expr := fmt.Sprintf(`window.ggbApplet.getPNGBase64(%v, %t, %d)`, opts.Scale, opts.Transparent, opts.DPI)
	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, &dataURL)); err != nil {
		return nil, errs.Newf(errs.InternalError, "exporting PNG: %v", err)
	}
	return base64.StdEncoding.DecodeString(dataURL)
}

// ExportSVG returns the current view as an SVG document.
func (d *Driver) ExportSVG(ctx context.Context) ([]byte, error) {
	if err := d.requireReady(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var svg string
	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(`window.ggbApplet.exportSVG()`, &svg)); err != nil {
		return nil, errs.Newf(errs.InternalError, "exporting SVG: %v", err)
	}
	return []byte(svg), nil
}

// ExportPDF rasterizes the live page to PDF via the browser's own print
// pipeline (cdproto Page.PrintToPDF), rather than a standalone PDF library.
func (d *Driver) ExportPDF(ctx context.Context) ([]byte, error) {
	if err := d.requireReady(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf []byte
	if err := chromedp.Run(d.browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
		if err != nil {
			return err
		}
		buf = data
		return nil
	})); err != nil {
		return nil, errs.Newf(errs.InternalError, "exporting PDF: %v", err)
	}
	return buf, nil
}

// SetAnimating toggles a Slider's animating flag.
func (d *Driver) SetAnimating(ctx context.Context, name string, on bool) error {
	if err := d.requireReady(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	expr := fmt.Sprintf(`window.ggbApplet.setAnimating(%s, %t)`, jsString(name), on)
	return chromedpErr(chromedp.Run(d.browserCtx, chromedp.Evaluate(expr, nil)))
}

// StartAnimation starts all primed animations.
func (d *Driver) StartAnimation(ctx context.Context) error {
	if err := d.requireReady(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return chromedpErr(chromedp.Run(d.browserCtx, chromedp.Evaluate(`window.ggbApplet.startAnimation()`, nil)))
}

// StopAnimation stops all running animations.
func (d *Driver) StopAnimation(ctx context.Context) error {
	if err := d.requireReady(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return chromedpErr(chromedp.Run(d.browserCtx, chromedp.Evaluate(`window.ggbApplet.stopAnimation()`, nil)))
}

// IsAnimationRunning reports whether any Slider animation is active.
func (d *Driver) IsAnimationRunning(ctx context.Context) (bool, error) {
	if err := d.requireReady(); err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var running bool
	if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(`window.ggbApplet.isAnimationRunning()`, &running)); err != nil {
		return false, errs.Newf(errs.InternalError, "reading animation state: %v", err)
	}
	return running, nil
}

// AnimationOptions configures ExportAnimation.
type AnimationOptions struct {
	DurationMs int
	FrameRate  float64
	Width      int
	Height     int
}

// AnimationFrame is one captured frame of an animation sequence.
type AnimationFrame struct {
	PNGBase64 string
}

// ExportAnimation implements the composite capture contract of spec.md
// §4.3.2: start the animation, sample N frames at fixed simulated-time
// intervals paced by a rate.Limiter, stop the animation, and return the
// ordered frame sequence. Returns the partial sequence and true (for
// "cancelled") if ctx is cancelled between frames.
func (d *Driver) ExportAnimation(ctx context.Context, opts AnimationOptions) ([]AnimationFrame, bool, error) {
	if err := d.StartAnimation(ctx); err != nil {
		return nil, false, err
	}
	defer d.StopAnimation(ctx)

	n := int(math.Ceil(float64(opts.DurationMs) * opts.FrameRate / 1000))
	limiter := rate.NewLimiter(rate.Limit(opts.FrameRate), 1)

	frames := make([]AnimationFrame, 0, n)
	for i := 0; i < n; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return frames, true, nil
		}
		select {
		case <-ctx.Done():
			return frames, true, nil
		default:
		}

		png, err := d.ExportPNG(ctx, ExportPNGOptions{Scale: 1, Transparent: false, DPI: 72, Width: opts.Width, Height: opts.Height})
		if err != nil {
			return frames, false, err
		}
		frames = append(frames, AnimationFrame{PNGBase64: base64.StdEncoding.EncodeToString(png)})
	}
	return frames, false, nil
}

// Cleanup closes the page then the browser process, tolerating errors
// (logged, not returned) per spec.md §4.3.1's CLEANING semantics. Idempotent.
func (d *Driver) Cleanup(ctx context.Context) error {
	d.mu.Lock()
	if d.state == StateDisposed {
		d.mu.Unlock()
		return nil
	}
	d.state = StateCleaning
	cancelBrowser := d.browserCancel
	cancelAlloc := d.allocCancel
	d.mu.Unlock()

	if cancelBrowser != nil {
		cancelBrowser()
	}
	if cancelAlloc != nil {
		cancelAlloc()
	}

	d.mu.Lock()
	d.state = StateDisposed
	d.mu.Unlock()

	if d.log != nil {
		d.log.Debug("instance cleaned up")
	}
	return nil
}

func chromedpErr(err error) error {
	if err == nil {
		return nil
	}
	return errs.Newf(errs.InternalError, "bridge call failed: %v", err)
}

// jsString produces a JS-safe double-quoted literal for interpolation into
// chromedp.Evaluate expressions.
func jsString(s string) string {
	out := []byte{'"'}
	for _, r := range s {
		switch r {
		case '"', '\\':
			out = append(out, '\\', byte(r))
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, string(r)...)
		}
	}
	out = append(out, '"')
	return string(out)
}

// appletPageURL builds the data: URL for the host page embedding the
// requested GeoGebra applet variant, with menu/toolbar/algebra input off
// and an appletOnLoad callback that flips window.ggbReady.
func appletPageURL(app AppName, width, height int) string {
	html := fmt.Sprintf(`<!doctype html><html><head><meta charset="utf-8">
<script src="https://www.geogebra.org/apps/deployggb.js"></script></head>
<body>
<div id="ggb-element"></div>
<script>
window.ggbReady = false;
var params = {
  appName: %q, width: %d, height: %d,
  showMenuBar: false, showToolBar: false, showAlgebraInput: false,
  showResetIcon: false, enableLabelDrags: false, enableShiftDragZoom: true,
  appletOnLoad: function(api) { window.ggbApplet = api; window.ggbReady = true; }
};
var applet = new GGBApplet(params, true);
applet.inject('ggb-element');
</script>
</body></html>`, string(app), width, height)
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
}
