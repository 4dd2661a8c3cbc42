// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// Format is VkFormat.
type Format uint32

// VkFormat values used by the framework and its DXGI bridge.
const (
	FormatUndefined Format = 0

	FormatR8Unorm Format = 9
	FormatR8Snorm Format = 10
	FormatR8Uint  Format = 13
	FormatR8Sint  Format = 14

	FormatR8G8Unorm Format = 16
	FormatR8G8Snorm Format = 17
	FormatR8G8Uint  Format = 20
	FormatR8G8Sint  Format = 21

	FormatR8G8B8Uint Format = 27
	FormatR8G8B8Sint Format = 28

	FormatR8G8B8A8Unorm Format = 37
	FormatR8G8B8A8Snorm Format = 38
	FormatR8G8B8A8Uint  Format = 41
	FormatR8G8B8A8Sint  Format = 42
	FormatR8G8B8A8Srgb  Format = 43

	FormatB8G8R8A8Unorm Format = 44
	FormatB8G8R8A8Srgb  Format = 50

	FormatA2R10G10B10UnormPack32 Format = 58
	FormatA2R10G10B10UintPack32  Format = 62

	FormatR16Unorm  Format = 70
	FormatR16Snorm  Format = 71
	FormatR16Uint   Format = 74
	FormatR16Sint   Format = 75
	FormatR16Sfloat Format = 76

	FormatR16G16Unorm  Format = 77
	FormatR16G16Snorm  Format = 78
	FormatR16G16Uint   Format = 81
	FormatR16G16Sint   Format = 82
	FormatR16G16Sfloat Format = 83

	FormatR16G16B16Uint   Format = 88
	FormatR16G16B16Sint   Format = 89
	FormatR16G16B16Sfloat Format = 90

	FormatR16G16B16A16Unorm  Format = 91
	FormatR16G16B16A16Snorm  Format = 92
	FormatR16G16B16A16Uint   Format = 95
	FormatR16G16B16A16Sint   Format = 96
	FormatR16G16B16A16Sfloat Format = 97

	FormatR32Uint   Format = 98
	FormatR32Sint   Format = 99
	FormatR32Sfloat Format = 100

	FormatR32G32Uint   Format = 101
	FormatR32G32Sint   Format = 102
	FormatR32G32Sfloat Format = 103

	FormatR32G32B32Uint   Format = 104
	FormatR32G32B32Sint   Format = 105
	FormatR32G32B32Sfloat Format = 106

	FormatR32G32B32A32Uint   Format = 107
	FormatR32G32B32A32Sint   Format = 108
	FormatR32G32B32A32Sfloat Format = 109

	FormatR64Uint            Format = 110
	FormatR64Sint            Format = 111
	FormatR64G64Sfloat       Format = 115
	FormatR64G64Sint         Format = 114
	FormatR64G64Uint         Format = 113
	FormatR64G64B64Uint      Format = 116
	FormatR64G64B64Sint      Format = 117
	FormatR64G64B64Sfloat    Format = 118
	FormatR64G64B64A64Uint   Format = 119
	FormatR64G64B64A64Sint   Format = 120
	FormatR64G64B64A64Sfloat Format = 121

	FormatB10G11R11UfloatPack32 Format = 122

	FormatD32Sfloat Format = 126

	// YCbCr / planar family (Vulkan 1.1 sampler YCbCr conversion).
	FormatG8B8G8R8422Unorm                     Format = 1000156000
	FormatB8G8R8G8422Unorm                     Format = 1000156001
	FormatG8B8R83Plane420Unorm                 Format = 1000156002
	FormatG8B8R82Plane420Unorm                 Format = 1000156003
	FormatG8B8R83Plane422Unorm                 Format = 1000156004
	FormatG8B8R82Plane422Unorm                 Format = 1000156005
	FormatG8B8R83Plane444Unorm                 Format = 1000156006
	FormatR10X6UnormPack16                     Format = 1000156007
	FormatR10X6G10X6Unorm2Pack16               Format = 1000156008
	FormatR10X6G10X6B10X6A10X6Unorm4Pack16     Format = 1000156009
	FormatG10X6B10X6G10X6R10X6422Unorm4Pack16  Format = 1000156010
	FormatB10X6G10X6R10X6G10X6422Unorm4Pack16  Format = 1000156011
	FormatG10X6B10X6R10X63Plane420Unorm3Pack16 Format = 1000156012
	FormatG10X6B10X6R10X62Plane420Unorm3Pack16 Format = 1000156013
	FormatG10X6B10X6R10X63Plane422Unorm3Pack16 Format = 1000156014
	FormatG10X6B10X6R10X62Plane422Unorm3Pack16 Format = 1000156015
	FormatG10X6B10X6R10X63Plane444Unorm3Pack16 Format = 1000156016
	FormatR12X4UnormPack16                     Format = 1000156017
	FormatR12X4G12X4Unorm2Pack16               Format = 1000156018
	FormatR12X4G12X4B12X4A12X4Unorm4Pack16     Format = 1000156019
	FormatG12X4B12X4G12X4R12X4422Unorm4Pack16  Format = 1000156020
	FormatB12X4G12X4R12X4G12X4422Unorm4Pack16  Format = 1000156021
	FormatG12X4B12X4R12X43Plane420Unorm3Pack16 Format = 1000156022
	FormatG12X4B12X4R12X42Plane420Unorm3Pack16 Format = 1000156023
	FormatG12X4B12X4R12X43Plane422Unorm3Pack16 Format = 1000156024
	FormatG12X4B12X4R12X42Plane422Unorm3Pack16 Format = 1000156025
	FormatG12X4B12X4R12X43Plane444Unorm3Pack16 Format = 1000156026
	FormatG16B16G16R16422Unorm                 Format = 1000156027
	FormatB16G16R16G16422Unorm                 Format = 1000156028
	FormatG16B16R163Plane420Unorm              Format = 1000156029
	FormatG16B16R162Plane420Unorm              Format = 1000156030
	FormatG16B16R163Plane422Unorm              Format = 1000156031
	FormatG16B16R162Plane422Unorm              Format = 1000156032
	FormatG16B16R163Plane444Unorm              Format = 1000156033
)
