// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

type fakeDevice struct{}

type fakeProvider struct {
	device gpucontext.Device
	format gputypes.TextureFormat
}

func (p *fakeProvider) Device() gpucontext.Device { return p.device }
func (p *fakeProvider) Queue() gpucontext.Queue   { return "queue" }
func (p *fakeProvider) Adapter() gpucontext.Adapter {
	return nil
}
func (p *fakeProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p *fakeProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "fake", Type: gpucontext.AdapterTypeUnknown}
}

var _ gpucontext.DeviceProvider = (*fakeProvider)(nil)

func TestImageBackendTarget(t *testing.T) {
	var got *image.RGBA
	b := NewImageBackend(func(img *image.RGBA, f gputypes.TextureFormat) error {
		if f != gputypes.TextureFormatRGBA8Unorm {
			t.Errorf("presented format = %v", f)
		}
		got = img
		return nil
	})
	tg, err := b.CreateTarget(16, 8)
	if err != nil {
		t.Fatal(err)
	}
	if tg.Width() != 16 || tg.Height() != 8 {
		t.Fatalf("target size = %dx%d", tg.Width(), tg.Height())
	}
	if _, ok := tg.(Timestamper); !ok {
		t.Error("image target does not report timestamps")
	}
	if err := tg.Present(); err != nil {
		t.Fatal(err)
	}
	if got != tg.Image() {
		t.Error("presenter did not receive the staging image")
	}
	if n := tg.(*ImageTarget).Presented(); n != 1 {
		t.Errorf("Presented() = %d, want 1", n)
	}
	if err := tg.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := tg.Destroy(); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("second Destroy() = %v, want ErrSurfaceClosed", err)
	}
	if _, ok := tg.(Timestamper).Timestamp(); ok {
		t.Error("destroyed target reported a timestamp")
	}
}

func TestImageTargetPresentError(t *testing.T) {
	boom := errors.New("boom")
	tg, _ := NewImageBackend(func(*image.RGBA, gputypes.TextureFormat) error { return boom }).CreateTarget(1, 1)
	if err := tg.Present(); !errors.Is(err, boom) {
		t.Errorf("Present() = %v, want presenter error", err)
	}
	if tg.(*ImageTarget).Presented() != 0 {
		t.Error("failed present was counted")
	}
}

func TestDeviceBackendNoDevice(t *testing.T) {
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
	}{
		{"nil provider", nil},
		{"nil device", &fakeProvider{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(NewDeviceBackend(tt.provider, nil))
			err := m.OnConnect(NewHeadlessWindow(800, 600))
			if !errors.Is(err, ErrSurfaceCreate) || !errors.Is(err, ErrNoDevice) {
				t.Errorf("OnConnect() = %v, want CreateError wrapping ErrNoDevice", err)
			}
		})
	}
}

func TestDeviceBackendFormat(t *testing.T) {
	tests := []struct {
		provided gputypes.TextureFormat
		want     gputypes.TextureFormat
	}{
		{gputypes.TextureFormatUndefined, gputypes.TextureFormatBGRA8Unorm},
		{gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm},
	}
	for _, tt := range tests {
		b := NewDeviceBackend(&fakeProvider{device: &fakeDevice{}, format: tt.provided}, nil)
		tg, err := b.CreateTarget(4, 4)
		if err != nil {
			t.Fatalf("CreateTarget() = %v", err)
		}
		if tg.Format() != tt.want {
			t.Errorf("format for %v = %v, want %v", tt.provided, tg.Format(), tt.want)
		}
		dt := tg.(*DeviceTarget)
		if dt.Device() == nil || dt.Queue() != "queue" {
			t.Error("device target lost its device or queue")
		}
		if err := tg.Destroy(); err != nil {
			t.Fatal(err)
		}
		if dt.Device() != nil {
			t.Error("Destroy kept the device reference")
		}
	}
}

func TestDeviceTargetPresentsBGRA(t *testing.T) {
	var got color.RGBA
	present := func(img *image.RGBA, f gputypes.TextureFormat) error {
		if f != gputypes.TextureFormatBGRA8Unorm {
			t.Errorf("format = %v", f)
		}
		got = img.RGBAAt(0, 0)
		return nil
	}
	b := NewDeviceBackend(&fakeProvider{device: &fakeDevice{}}, present)
	tg, err := b.CreateTarget(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	tg.Image().SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	if err := tg.Present(); err != nil {
		t.Fatal(err)
	}
	if want := (color.RGBA{R: 30, G: 20, B: 10, A: 255}); got != want {
		t.Errorf("presented pixel = %v, want swizzled %v", got, want)
	}
	if c := tg.Image().RGBAAt(0, 0); c.R != 10 {
		t.Error("staging image was modified by Present")
	}
}
