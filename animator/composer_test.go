package animator

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/scenekit"
	"github.com/gogpu/scenekit/scene"
	"github.com/gogpu/scenekit/text"
)

func testResources(t *testing.T) *Resources {
	t.Helper()
	res, err := NewResources(nil)
	if err != nil {
		t.Fatalf("NewResources() = %v", err)
	}
	return res
}

func compose(t *testing.T, c *Composer, frame uint64, res *Resources) *scene.Scene {
	t.Helper()
	s := scene.NewScene()
	s.Begin()
	if err := c.Compose(s, frame, res); err != nil {
		t.Fatalf("Compose(%d) = %v", frame, err)
	}
	if err := s.Finish(); err != nil {
		t.Fatalf("Finish() = %v", err)
	}
	return s
}

func TestComposeStructure(t *testing.T) {
	s := compose(t, NewComposer(DefaultConfig()), 0, testResources(t))
	cmds := s.Commands()
	n := len(cmds)
	if n < 8 {
		t.Fatalf("got %d commands, want at least 8", n)
	}

	bg, ok := cmds[0].(scene.Fill)
	if !ok || !bg.Brush.Equal(scene.SolidBrush(scenekit.RGB8(128, 128, 128))) {
		t.Fatalf("first command = %#v, want gray background fill", cmds[0])
	}
	if bg.Shape.Bounds() != scene.RectXYWH(0, 0, 1000, 1000) {
		t.Errorf("background bounds = %+v", bg.Shape.Bounds())
	}

	frags := s.Count(scene.KindAppendFragment)
	if frags == 0 {
		t.Error("no glyph fragments appended")
	}

	wantTail := []scene.CommandKind{
		scene.KindStroke, scene.KindFill, scene.KindPushLayer,
		scene.KindFill, scene.KindFill, scene.KindPopLayer,
	}
	tail := cmds[n-len(wantTail):]
	for i, k := range wantTail {
		if tail[i].Kind() != k {
			t.Errorf("command %d = %v, want %v", n-len(wantTail)+i, tail[i].Kind(), k)
		}
	}
	if 1+frags+len(wantTail) != n {
		t.Errorf("%d commands, want 1 + %d fragments + %d", n, frags, len(wantTail))
	}

	layer := tail[2].(scene.PushLayer)
	if layer.Alpha != 0.5 || layer.Blend != scene.BlendNormal || layer.Clip == nil {
		t.Errorf("layer = %+v, want alpha 0.5 normal clipped", layer)
	}
	red := tail[1].(scene.Fill)
	if x, y := red.Transform.TransformPoint(1000, 1000); x != 350 || y != 350 {
		t.Errorf("red rect corner = (%v,%v), want (350,350)", x, y)
	}
}

func TestComposeDeterministic(t *testing.T) {
	c := NewComposer(DefaultConfig())
	for _, frame := range []uint64{0, 17, 360, 1234} {
		a := compose(t, c, frame, testResources(t))
		b := compose(t, c, frame, testResources(t))
		if !reflect.DeepEqual(a.Commands(), b.Commands()) {
			t.Errorf("frame %d differs between runs", frame)
		}
	}
}

func TestComposeReusesFragments(t *testing.T) {
	c := NewComposer(DefaultConfig())
	res := testResources(t)
	compose(t, c, 0, res)
	misses := res.Fragments.Stats().Misses

	compose(t, c, 0, res)
	st := res.Fragments.Stats()
	if st.Misses != misses {
		t.Errorf("second identical frame missed %d times", st.Misses-misses)
	}
	if st.Hits == 0 {
		t.Error("no cache hits on the second frame")
	}
}

func TestComposeCacheBounded(t *testing.T) {
	c := NewComposer(DefaultConfig())
	res := testResources(t)
	compose(t, c, 0, res)
	perFrame := res.Fragments.Len()
	res.EndFrame()

	for frame := uint64(1); frame < 4*text.DefaultFrameLifetime; frame++ {
		compose(t, c, frame, res)
		res.EndFrame()
	}
	if limit := (text.DefaultFrameLifetime + 2) * perFrame; res.Fragments.Len() > limit {
		t.Errorf("cache holds %d entries after %d frames, want at most %d",
			res.Fragments.Len(), 4*text.DefaultFrameLifetime, limit)
	}
	if res.Fragments.Stats().Evictions == 0 {
		t.Error("no entries evicted while the text scale changes every frame")
	}
}

func TestComposeLineRotation(t *testing.T) {
	c := NewComposer(DefaultConfig())
	res := testResources(t)
	tests := []struct {
		frame  uint64
		wx, wy float32
	}{
		{0, 900, 500},
		{90, 500, 900},
		{180, 100, 500},
		{450, 500, 900},
	}
	for _, tt := range tests {
		s := compose(t, c, tt.frame, res)
		var line scene.Stroke
		for _, cmd := range s.Commands() {
			if st, ok := cmd.(scene.Stroke); ok {
				line = st
			}
		}
		if line.Style.Width != 5 {
			t.Fatalf("frame %d: stroke width = %v, want 5", tt.frame, line.Style.Width)
		}
		b := line.Path.Bounds()
		ex, ey := b.MaxX, b.MaxY
		if tt.wx < 500 {
			ex = b.MinX
		}
		if abs(ex-tt.wx) > 0.01 || abs(ey-tt.wy) > 0.01 {
			t.Errorf("frame %d: line end = (%v,%v), want (%v,%v)", tt.frame, ex, ey, tt.wx, tt.wy)
		}
	}
}

func TestComposeStyleOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Text = "Hello piet-gpu!"
	c := NewComposer(cfg)
	s := compose(t, c, 0, testResources(t))

	yellow := scene.SolidBrush(scenekit.Yellow)
	n := 0
	for _, cmd := range s.Commands() {
		af, ok := cmd.(scene.AppendFragment)
		if !ok {
			continue
		}
		for inner := range af.Fragment.Commands() {
			if inner.(scene.Fill).Brush.Equal(yellow) {
				n++
			}
		}
	}
	if n != 4 {
		t.Errorf("%d yellow glyphs, want 4 (\"piet\")", n)
	}
}

func TestComposeNilResources(t *testing.T) {
	err := NewComposer(DefaultConfig()).Compose(scene.NewScene(), 0, nil)
	if !errors.Is(err, ErrNoResources) {
		t.Errorf("Compose(nil resources) = %v, want ErrNoResources", err)
	}
}

func TestComposeInvalidLocale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Locale = "not a locale!"
	s := scene.NewScene()
	if err := NewComposer(cfg).Compose(s, 0, testResources(t)); err == nil {
		t.Error("Compose() with invalid locale succeeded")
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
