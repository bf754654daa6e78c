// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/scenekit"
)

// DeviceBackend allocates targets bound to a GPU device shared by the host
// application. The host supplies the device through a DeviceProvider and
// uploads presented frames through the Presenter.
//
// Example integration with a gogpu host:
//
//	backend := surface.NewDeviceBackend(app, func(img *image.RGBA, f gputypes.TextureFormat) error {
//	    return uploadToSwapchain(app.Queue(), img, f)
//	})
//	mgr := surface.NewManager(backend)
type DeviceBackend struct {
	provider gpucontext.DeviceProvider
	present  Presenter
}

// NewDeviceBackend creates a backend over provider.
func NewDeviceBackend(provider gpucontext.DeviceProvider, present Presenter) *DeviceBackend {
	return &DeviceBackend{provider: provider, present: present}
}

// Name implements Backend.
func (b *DeviceBackend) Name() string { return "device" }

// CreateTarget implements Backend. It fails with ErrNoDevice when the
// provider or its device is missing.
func (b *DeviceBackend) CreateTarget(width, height int) (Target, error) {
	if b.provider == nil || b.provider.Device() == nil {
		return nil, ErrNoDevice
	}
	format := b.provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	info := b.provider.AdapterInfo()
	scenekit.Logger().Debug("surface: device target",
		"adapter", info.Name, "format", format.String(), "width", width, "height", height)

	return &DeviceTarget{
		ImageTarget: newImageTarget(width, height, format, b.present),
		device:      b.provider.Device(),
		queue:       b.provider.Queue(),
	}, nil
}

// DeviceTarget is a staging target tied to a host GPU device.
type DeviceTarget struct {
	*ImageTarget
	device gpucontext.Device
	queue  gpucontext.Queue
}

// Device returns the device the target was created on.
func (t *DeviceTarget) Device() gpucontext.Device { return t.device }

// Queue returns the queue frames are submitted on.
func (t *DeviceTarget) Queue() gpucontext.Queue { return t.queue }

// Destroy implements Target.
func (t *DeviceTarget) Destroy() error {
	if err := t.ImageTarget.Destroy(); err != nil {
		return err
	}
	t.device, t.queue = nil, nil
	return nil
}
