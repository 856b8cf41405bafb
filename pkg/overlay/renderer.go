// Package overlay paints the latest comparison feedback onto a drawing
// surface: skeleton segments, per-joint markers, and an accuracy badge.
//
// The renderer free-runs at display cadence, independent of the network
// cycle. It only ever reads the feedback store, never blocks on it, and
// never triggers a comparison itself. What it draws is a pure function
// of the snapshot it reads.
package overlay

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/yogalign/yogalign/pkg/engine"
	"github.com/yogalign/yogalign/pkg/poseapi"
)

// FrameFunc receives each rendered overlay frame as JPEG bytes.
type FrameFunc func(jpeg []byte)

// Renderer owns the drawing surface and the render loop.
type Renderer struct {
	store   *engine.Store
	cfg     Config
	logger  *slog.Logger
	onFrame FrameFunc

	mu      sync.Mutex
	surface gocv.Mat
	scale   Scale
	width   int
	height  int
	closed  bool
}

// New creates a renderer reading from the given store. onFrame may be
// nil when no consumer wants the rendered frames.
func New(store *engine.Store, onFrame FrameFunc, opts ...Option) *Renderer {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	r := &Renderer{
		store:   store,
		cfg:     *cfg,
		logger:  cfg.Logger.With("component", "overlay"),
		onFrame: onFrame,
		surface: gocv.NewMatWithSize(cfg.ReferenceHeight, cfg.ReferenceWidth, gocv.MatTypeCV8UC3),
	}
	r.width = cfg.ReferenceWidth
	r.height = cfg.ReferenceHeight
	r.scale = NewScale(cfg.ReferenceWidth, cfg.ReferenceHeight, r.width, r.height)
	return r
}

// SetSurfaceSize re-derives the backing-store size. Called on camera
// start and whenever the source's native resolution or display size
// changes. Safe to call while the render loop runs.
func (r *Renderer) SetSurfaceSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || (w == r.width && h == r.height) {
		return
	}

	r.surface.Close()
	r.surface = gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	r.width = w
	r.height = h
	r.scale = NewScale(r.cfg.ReferenceWidth, r.cfg.ReferenceHeight, w, h)
	r.logger.Debug("surface resized", "width", w, "height", h)
}

// Run ticks the render loop until the context is cancelled.
func (r *Renderer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.renderTick()
		}
	}
}

// renderTick clears the surface, draws the current snapshot if any, and
// hands the encoded frame to the consumer.
func (r *Renderer) renderTick() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}

	r.surface.SetTo(gocv.NewScalar(0, 0, 0, 0))

	if snap := r.store.Load(); snap != nil {
		draw(&r.surface, snap, r.scale, r.width)
	}

	var data []byte
	if r.onFrame != nil {
		buf, err := gocv.IMEncode(gocv.JPEGFileExt, r.surface)
		if err == nil {
			data = make([]byte, len(buf.GetBytes()))
			copy(data, buf.GetBytes())
			buf.Close()
		} else {
			r.logger.Warn("overlay encode failed", "error", err)
		}
	}
	r.mu.Unlock()

	if data != nil {
		r.onFrame(data)
	}
}

// Close releases the drawing surface.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		r.surface.Close()
	}
}

// draw renders one snapshot. Segments first so joint markers sit on top
// of the bone lines, then the accuracy badge.
func draw(img *gocv.Mat, res *poseapi.ComparisonResult, sc Scale, surfaceWidth int) {
	for _, seg := range res.Skeleton {
		gocv.Line(img, sc.Point(seg.X1, seg.Y1), sc.Point(seg.X2, seg.Y2), ColorSegment, 2)
	}

	radius := JointRadius(surfaceWidth)
	for _, j := range res.LiveFeedback {
		pt := sc.Point(j.X, j.Y)
		gocv.Circle(img, pt, radius, JointColor(j.IsCorrect), -1)
		if !j.IsCorrect {
			gocv.PutText(img, j.JointName,
				image.Pt(pt.X+radius+2, pt.Y-radius-2),
				gocv.FontHersheySimplex, 0.4, ColorLabel, 1)
		}
	}

	if res.PoseAccuracy != nil {
		drawBadge(img, *res.PoseAccuracy, surfaceWidth)
	}
}

// drawBadge paints the rounded accuracy badge in the top-right corner.
func drawBadge(img *gocv.Mat, accuracy float64, surfaceWidth int) {
	rect := BadgeRect(surfaceWidth)
	c := BadgeColor(accuracy)

	// Rounded ends: a filled rectangle capped with circles.
	rounding := rect.Dy() / 2
	gocv.Rectangle(img, rect, c, -1)
	gocv.Circle(img, image.Pt(rect.Min.X, rect.Min.Y+rounding), rounding, c, -1)
	gocv.Circle(img, image.Pt(rect.Max.X, rect.Min.Y+rounding), rounding, c, -1)

	label := BadgeLabel(accuracy)
	gocv.PutText(img, label,
		image.Pt(rect.Min.X+10, rect.Max.Y-11),
		gocv.FontHersheySimplex, 0.7, ColorLabel, 2)
}

// BadgeLabel formats the accuracy percentage shown in the badge.
func BadgeLabel(accuracy float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(accuracy)))
}
