package animator

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/scenekit"
	"github.com/gogpu/scenekit/scene"
	"github.com/gogpu/scenekit/text"
)

// ErrNoResources is returned by Compose without resources.
var ErrNoResources = errors.New("animator: nil resources")

// Composer draws the reference animation from a Config.
type Composer struct {
	cfg Config
}

// NewComposer creates a composer for cfg. The config is not validated;
// configs from LoadConfig already are.
func NewComposer(cfg Config) *Composer {
	return &Composer{cfg: cfg}
}

// Config returns the config in use.
func (c *Composer) Config() Config { return c.cfg }

// SetConfig replaces the config. It takes effect from the next Compose and
// must be called on the render thread.
func (c *Composer) SetConfig(cfg Config) {
	c.cfg = cfg
	scenekit.Logger().Info("animator: config updated", "text", cfg.Text, "styles", len(cfg.Styles))
}

// Compose records frame into dst, which must already be reset. The result
// depends only on frame, the config and res.
func (c *Composer) Compose(dst *scene.Scene, frame uint64, res *Resources) error {
	if res == nil {
		return ErrNoResources
	}
	cfg := &c.cfg
	i := float32(frame)
	rect := scene.NewRectShape(0, 0, cfg.Background.Width, cfg.Background.Height)

	dst.Fill(scene.FillNonZero, scene.IdentityAffine(), scene.SolidBrush(cfg.Background.Color), nil, rect)

	if err := c.drawText(dst, math32.Sin(0.01*i)*0.5+1.5, res); err != nil {
		return err
	}

	c.drawLine(dst, frame)

	dst.Fill(scene.FillNonZero, placeRect(150, 150), scene.SolidBrush(cfg.Rects.Outer), nil, rect)

	alpha := 0.5*math32.Sin(0.03*i) + 0.5
	dst.PushLayer(scene.BlendNormal, alpha, scene.IdentityAffine(), rect)
	dst.Fill(scene.FillNonZero, placeRect(100, 100), scene.SolidBrush(cfg.Rects.First), nil, rect)
	dst.Fill(scene.FillNonZero, placeRect(200, 200), scene.SolidBrush(cfg.Rects.Second), nil, rect)
	return dst.PopLayer()
}

func (c *Composer) drawText(dst *scene.Scene, scale float32, res *Resources) error {
	cfg := &c.cfg
	b := res.Text.NewBuilder(cfg.Text, scale).
		PushDefault(text.FontFace(res.Font)).
		PushDefault(text.FontSize(cfg.Size)).
		PushDefault(text.FontBrush(scene.SolidBrush(cfg.Color)))
	if cfg.Locale != "" {
		b.PushDefault(text.Locale(cfg.Locale))
	}
	for _, s := range cfg.Styles {
		if s.Size > 0 {
			b.Push(text.FontSize(s.Size), s.Start, s.End)
		}
		if s.Color != nil {
			b.Push(text.FontBrush(scene.SolidBrush(*s.Color)), s.Start, s.End)
		}
	}
	layout, err := b.Build()
	if err != nil {
		return fmt.Errorf("animator: layout text: %w", err)
	}
	origin := scene.TranslateAffine(cfg.TextOrigin.X, cfg.TextOrigin.Y)
	text.Render(dst, res.Fragments, origin, layout)
	return nil
}

func (c *Composer) drawLine(dst *scene.Scene, frame uint64) {
	l := &c.cfg.Line
	deg := math32.Mod(float32(frame)*l.DegreesPerFrame, 360)
	sin, cos := math32.Sincos(deg * math32.Pi / 180)
	p := scene.NewLineShape(l.Center.X, l.Center.Y, l.Center.X+l.Length*cos, l.Center.Y+l.Length*sin).ToPath()
	dst.Stroke(scene.NewStroke(l.Width), scene.IdentityAffine(), scene.SolidBrush(l.Color), nil, p)
}

// placeRect scales the background rectangle down to a fifth at (x, y).
func placeRect(x, y float32) scene.Affine {
	return scene.TranslateAffine(x, y).Multiply(scene.UniformScaleAffine(0.2))
}
