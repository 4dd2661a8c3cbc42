// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"testing"

	"github.com/gogpu/vkcore/vk"
)

func TestFormatBridgeRoundTrip(t *testing.T) {
	for vkf, dxf := range vkToDXGI {
		if back := FormatFromDXGI(dxf); back != vkf {
			t.Errorf("round trip %d -> %d -> %d", vkf, dxf, back)
		}
	}
	for dxf, vkf := range dxgiToVk {
		if fwd := FormatToDXGI(vkf); fwd != dxf {
			t.Errorf("reverse round trip %d -> %d -> %d", dxf, vkf, fwd)
		}
	}
}

func TestFormatBridgeUnknown(t *testing.T) {
	if FormatToDXGI(vk.FormatUndefined) != DXGIFormatUnknown {
		t.Error("UNDEFINED did not map to UNKNOWN")
	}
	if FormatFromDXGI(DXGIFormatUnknown) != vk.FormatUndefined {
		t.Error("UNKNOWN did not map to UNDEFINED")
	}
	// YCbCr formats have no DXGI counterpart.
	if FormatToDXGI(vk.FormatG8B8R82Plane420Unorm) != DXGIFormatUnknown {
		t.Error("planar format unexpectedly mapped")
	}
}

func TestIsYCbCr(t *testing.T) {
	cases := []struct {
		format vk.Format
		want   bool
	}{
		{vk.FormatR8G8B8A8Unorm, false},
		{vk.FormatR16G16B16A16Sfloat, false},
		{vk.FormatG8B8R82Plane420Unorm, true},
		{vk.FormatG16B16R163Plane444Unorm, true},
		{vk.FormatR10X6UnormPack16, true},
		{vk.FormatD32Sfloat, false},
	}
	for _, c := range cases {
		if got := IsYCbCr(c.format); got != c.want {
			t.Errorf("IsYCbCr(%d) = %v, want %v", c.format, got, c.want)
		}
	}
}

func TestEffectiveExtentHalvesYCbCr(t *testing.T) {
	img := &Image{
		format: vk.FormatG8B8R82Plane420Unorm,
		extent: vk.Extent2D{Width: 1920, Height: 1080},
	}
	if got := img.EffectiveExtent(); got.Width != 960 || got.Height != 1080 {
		t.Errorf("effective extent = %dx%d, want 960x1080", got.Width, got.Height)
	}
	if img.EffectiveFormat() != vk.FormatR8G8B8A8Unorm {
		t.Errorf("effective format = %d, want RGBA8", img.EffectiveFormat())
	}

	rgba := &Image{format: vk.FormatR8G8B8A8Unorm, extent: vk.Extent2D{Width: 1920, Height: 1080}}
	if got := rgba.EffectiveExtent(); got.Width != 1920 {
		t.Errorf("non-planar extent halved to %d", got.Width)
	}
}
