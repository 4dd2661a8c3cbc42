// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import "github.com/gogpu/vkcore/vk"

// DXGIFormat is a DXGI_FORMAT value, used when bridging resources to and
// from Direct3D through NativeInterop.
type DXGIFormat uint32

// DXGI_FORMAT values covered by the bridge.
const (
	DXGIFormatUnknown           DXGIFormat = 0
	DXGIFormatR32G32B32A32Float DXGIFormat = 2
	DXGIFormatR32G32B32A32Uint  DXGIFormat = 3
	DXGIFormatR32G32B32A32Sint  DXGIFormat = 4
	DXGIFormatR32G32B32Float    DXGIFormat = 6
	DXGIFormatR32G32B32Uint     DXGIFormat = 7
	DXGIFormatR32G32B32Sint     DXGIFormat = 8
	DXGIFormatR16G16B16A16Float DXGIFormat = 10
	DXGIFormatR16G16B16A16Unorm DXGIFormat = 11
	DXGIFormatR16G16B16A16Uint  DXGIFormat = 12
	DXGIFormatR16G16B16A16Snorm DXGIFormat = 13
	DXGIFormatR16G16B16A16Sint  DXGIFormat = 14
	DXGIFormatR32G32Float       DXGIFormat = 16
	DXGIFormatR32G32Uint        DXGIFormat = 17
	DXGIFormatR32G32Sint        DXGIFormat = 18
	DXGIFormatR10G10B10A2Unorm  DXGIFormat = 24
	DXGIFormatR10G10B10A2Uint   DXGIFormat = 25
	DXGIFormatR11G11B10Float    DXGIFormat = 26
	DXGIFormatR8G8B8A8Unorm     DXGIFormat = 28
	DXGIFormatR8G8B8A8UnormSrgb DXGIFormat = 29
	DXGIFormatR8G8B8A8Uint      DXGIFormat = 30
	DXGIFormatR8G8B8A8Snorm     DXGIFormat = 31
	DXGIFormatR8G8B8A8Sint      DXGIFormat = 32
	DXGIFormatR16G16Float       DXGIFormat = 34
	DXGIFormatR16G16Unorm       DXGIFormat = 35
	DXGIFormatR16G16Uint        DXGIFormat = 36
	DXGIFormatR16G16Snorm       DXGIFormat = 37
	DXGIFormatR16G16Sint        DXGIFormat = 38
	DXGIFormatD32Float          DXGIFormat = 40
	DXGIFormatR32Float          DXGIFormat = 41
	DXGIFormatR32Uint           DXGIFormat = 42
	DXGIFormatR32Sint           DXGIFormat = 43
	DXGIFormatR8G8Unorm         DXGIFormat = 49
	DXGIFormatR8G8Uint          DXGIFormat = 50
	DXGIFormatR8G8Snorm         DXGIFormat = 51
	DXGIFormatR8G8Sint          DXGIFormat = 52
	DXGIFormatR16Float          DXGIFormat = 54
	DXGIFormatR16Unorm          DXGIFormat = 56
	DXGIFormatR16Uint           DXGIFormat = 57
	DXGIFormatR16Snorm          DXGIFormat = 58
	DXGIFormatR16Sint           DXGIFormat = 59
	DXGIFormatR8Unorm           DXGIFormat = 61
	DXGIFormatR8Uint            DXGIFormat = 62
	DXGIFormatR8Snorm           DXGIFormat = 63
	DXGIFormatR8Sint            DXGIFormat = 64
	DXGIFormatB8G8R8A8Unorm     DXGIFormat = 87
	DXGIFormatB8G8R8A8UnormSrgb DXGIFormat = 91
)

// vkToDXGI is the fixed bidirectional format bridge. Any format absent
// from the table maps to UNDEFINED/UNKNOWN.
var vkToDXGI = map[vk.Format]DXGIFormat{
	vk.FormatR32G32B32A32Sfloat:     DXGIFormatR32G32B32A32Float,
	vk.FormatR32G32B32A32Uint:       DXGIFormatR32G32B32A32Uint,
	vk.FormatR32G32B32A32Sint:       DXGIFormatR32G32B32A32Sint,
	vk.FormatR32G32B32Sfloat:        DXGIFormatR32G32B32Float,
	vk.FormatR32G32B32Uint:          DXGIFormatR32G32B32Uint,
	vk.FormatR32G32B32Sint:          DXGIFormatR32G32B32Sint,
	vk.FormatR16G16B16A16Sfloat:     DXGIFormatR16G16B16A16Float,
	vk.FormatR16G16B16A16Unorm:      DXGIFormatR16G16B16A16Unorm,
	vk.FormatR16G16B16A16Uint:       DXGIFormatR16G16B16A16Uint,
	vk.FormatR16G16B16A16Snorm:      DXGIFormatR16G16B16A16Snorm,
	vk.FormatR16G16B16A16Sint:       DXGIFormatR16G16B16A16Sint,
	vk.FormatR32G32Sfloat:           DXGIFormatR32G32Float,
	vk.FormatR32G32Uint:             DXGIFormatR32G32Uint,
	vk.FormatR32G32Sint:             DXGIFormatR32G32Sint,
	vk.FormatA2R10G10B10UnormPack32: DXGIFormatR10G10B10A2Unorm,
	vk.FormatA2R10G10B10UintPack32:  DXGIFormatR10G10B10A2Uint,
	vk.FormatB10G11R11UfloatPack32:  DXGIFormatR11G11B10Float,
	vk.FormatR8G8B8A8Unorm:          DXGIFormatR8G8B8A8Unorm,
	vk.FormatR8G8B8A8Srgb:           DXGIFormatR8G8B8A8UnormSrgb,
	vk.FormatR8G8B8A8Uint:           DXGIFormatR8G8B8A8Uint,
	vk.FormatR8G8B8A8Snorm:          DXGIFormatR8G8B8A8Snorm,
	vk.FormatR8G8B8A8Sint:           DXGIFormatR8G8B8A8Sint,
	vk.FormatR16G16Sfloat:           DXGIFormatR16G16Float,
	vk.FormatR16G16Unorm:            DXGIFormatR16G16Unorm,
	vk.FormatR16G16Uint:             DXGIFormatR16G16Uint,
	vk.FormatR16G16Snorm:            DXGIFormatR16G16Snorm,
	vk.FormatR16G16Sint:             DXGIFormatR16G16Sint,
	vk.FormatD32Sfloat:              DXGIFormatD32Float,
	vk.FormatR32Sfloat:              DXGIFormatR32Float,
	vk.FormatR32Uint:                DXGIFormatR32Uint,
	vk.FormatR32Sint:                DXGIFormatR32Sint,
	vk.FormatR8G8Unorm:              DXGIFormatR8G8Unorm,
	vk.FormatR8G8Uint:               DXGIFormatR8G8Uint,
	vk.FormatR8G8Snorm:              DXGIFormatR8G8Snorm,
	vk.FormatR8G8Sint:               DXGIFormatR8G8Sint,
	vk.FormatR16Sfloat:              DXGIFormatR16Float,
	vk.FormatR16Unorm:               DXGIFormatR16Unorm,
	vk.FormatR16Uint:                DXGIFormatR16Uint,
	vk.FormatR16Snorm:               DXGIFormatR16Snorm,
	vk.FormatR16Sint:                DXGIFormatR16Sint,
	vk.FormatR8Unorm:                DXGIFormatR8Unorm,
	vk.FormatR8Uint:                 DXGIFormatR8Uint,
	vk.FormatR8Snorm:                DXGIFormatR8Snorm,
	vk.FormatR8Sint:                 DXGIFormatR8Sint,
	vk.FormatB8G8R8A8Unorm:          DXGIFormatB8G8R8A8Unorm,
	vk.FormatB8G8R8A8Srgb:           DXGIFormatB8G8R8A8UnormSrgb,
}

var dxgiToVk = func() map[DXGIFormat]vk.Format {
	m := make(map[DXGIFormat]vk.Format, len(vkToDXGI))
	for v, d := range vkToDXGI {
		m[d] = v
	}
	return m
}()

// FormatToDXGI maps a Vulkan format to its DXGI equivalent, or UNKNOWN.
func FormatToDXGI(f vk.Format) DXGIFormat {
	return vkToDXGI[f]
}

// FormatFromDXGI maps a DXGI format to its Vulkan equivalent, or UNDEFINED.
func FormatFromDXGI(f DXGIFormat) vk.Format {
	return dxgiToVk[f]
}

// IsYCbCr reports whether the format is a YCbCr (often planar) format.
// Such formats halve the logical width per chroma sample and are viewed
// as R8G8B8A8_UNORM after the sampler YCbCr conversion.
func IsYCbCr(f vk.Format) bool {
	switch f {
	case vk.FormatG8B8G8R8422Unorm,
		vk.FormatB8G8R8G8422Unorm,
		vk.FormatG8B8R83Plane420Unorm,
		vk.FormatG8B8R82Plane420Unorm,
		vk.FormatG8B8R83Plane422Unorm,
		vk.FormatG8B8R82Plane422Unorm,
		vk.FormatG8B8R83Plane444Unorm,
		vk.FormatR10X6UnormPack16,
		vk.FormatR10X6G10X6Unorm2Pack16,
		vk.FormatR10X6G10X6B10X6A10X6Unorm4Pack16,
		vk.FormatG10X6B10X6G10X6R10X6422Unorm4Pack16,
		vk.FormatB10X6G10X6R10X6G10X6422Unorm4Pack16,
		vk.FormatG10X6B10X6R10X63Plane420Unorm3Pack16,
		vk.FormatG10X6B10X6R10X62Plane420Unorm3Pack16,
		vk.FormatG10X6B10X6R10X63Plane422Unorm3Pack16,
		vk.FormatG10X6B10X6R10X62Plane422Unorm3Pack16,
		vk.FormatG10X6B10X6R10X63Plane444Unorm3Pack16,
		vk.FormatR12X4UnormPack16,
		vk.FormatR12X4G12X4Unorm2Pack16,
		vk.FormatR12X4G12X4B12X4A12X4Unorm4Pack16,
		vk.FormatG12X4B12X4G12X4R12X4422Unorm4Pack16,
		vk.FormatB12X4G12X4R12X4G12X4422Unorm4Pack16,
		vk.FormatG12X4B12X4R12X43Plane420Unorm3Pack16,
		vk.FormatG12X4B12X4R12X42Plane420Unorm3Pack16,
		vk.FormatG12X4B12X4R12X43Plane422Unorm3Pack16,
		vk.FormatG12X4B12X4R12X42Plane422Unorm3Pack16,
		vk.FormatG12X4B12X4R12X43Plane444Unorm3Pack16,
		vk.FormatG16B16G16R16422Unorm,
		vk.FormatB16G16R16G16422Unorm,
		vk.FormatG16B16R163Plane420Unorm,
		vk.FormatG16B16R162Plane420Unorm,
		vk.FormatG16B16R163Plane422Unorm,
		vk.FormatG16B16R162Plane422Unorm,
		vk.FormatG16B16R163Plane444Unorm:
		return true
	default:
		return false
	}
}
