// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import "github.com/gogpu/vkcore/vk"

// Binding stages one resource for a descriptor write: either an image
// view (with a sampler filter) or a buffer (with a byte offset), at a
// binding index and optional array element.
type Binding struct {
	// Exactly one of Image or Buffer is set.
	Image  *Image
	Buffer *Buffer

	Index      uint32
	ArrayIndex uint32

	Filter       vk.Filter
	BufferOffset uint32
}

// BindImage stages an image at a binding index.
func BindImage(img *Image, index uint32, filter vk.Filter, arrayIndex uint32) Binding {
	return Binding{Image: img, Index: index, Filter: filter, ArrayIndex: arrayIndex}
}

// BindBuffer stages a buffer at a binding index.
func BindBuffer(buf *Buffer, index uint32, offset uint32) Binding {
	return Binding{Buffer: buf, Index: index, BufferOffset: offset}
}

// DescriptorTypeUsage maps a descriptor type to the image or buffer usage
// bits a bound resource must carry.
func DescriptorTypeUsage(ty vk.DescriptorType) vk.Flags {
	switch ty {
	case vk.DescriptorTypeCombinedImageSampler, vk.DescriptorTypeSampledImage:
		return vk.ImageUsageSampledBit
	case vk.DescriptorTypeStorageImage:
		return vk.ImageUsageStorageBit
	case vk.DescriptorTypeInputAttachment:
		return vk.ImageUsageInputAttachmentBit
	case vk.DescriptorTypeUniformTexelBuffer:
		return vk.BufferUsageUniformTexelBufferBit
	case vk.DescriptorTypeStorageTexelBuffer:
		return vk.BufferUsageStorageTexelBufferBit
	case vk.DescriptorTypeUniformBuffer, vk.DescriptorTypeUniformBufferDynamic:
		return vk.BufferUsageUniformBufferBit
	case vk.DescriptorTypeStorageBuffer, vk.DescriptorTypeStorageBufferDynamic:
		return vk.BufferUsageStorageBufferBit
	default:
		return 0
	}
}

// DescriptorTypeLayout maps a descriptor type to the image layout a bound
// image must be in.
func DescriptorTypeLayout(ty vk.DescriptorType) vk.ImageLayout {
	switch ty {
	case vk.DescriptorTypeCombinedImageSampler, vk.DescriptorTypeSampledImage, vk.DescriptorTypeInputAttachment:
		return vk.ImageLayoutShaderReadOnlyOptimal
	case vk.DescriptorTypeStorageImage:
		return vk.ImageLayoutGeneral
	default:
		return vk.ImageLayoutUndefined
	}
}

// DescriptorTypeAccess maps a descriptor type to the access flags shader
// reads/writes through it imply.
func DescriptorTypeAccess(ty vk.DescriptorType) vk.AccessFlags {
	switch ty {
	case vk.DescriptorTypeCombinedImageSampler, vk.DescriptorTypeSampledImage:
		return vk.AccessShaderReadBit
	case vk.DescriptorTypeStorageImage:
		return vk.AccessShaderReadBit | vk.AccessShaderWriteBit
	case vk.DescriptorTypeInputAttachment:
		return vk.AccessInputAttachmentReadBit
	default:
		return 0
	}
}

// imageInfo resolves the binding's view and fills its descriptor info with
// the layout implied by the descriptor type.
func (b Binding) imageInfo(ty vk.DescriptorType) vk.DescriptorImageInfo {
	usage := vk.ImageUsageFlags(DescriptorTypeUsage(ty))
	view, err := b.Image.GetView(0, usage)
	if err != nil {
		Logger().Error("vkcore: binding view creation failed", "error", err)
		return vk.DescriptorImageInfo{}
	}
	info := view.descriptorInfo(b.Filter)
	info.ImageLayout = DescriptorTypeLayout(ty)
	return info
}

// bufferInfo fills the binding's buffer descriptor info.
func (b Binding) bufferInfo(ty vk.DescriptorType) vk.DescriptorBufferInfo {
	if usage := DescriptorTypeUsage(ty); usage != 0 && b.Buffer.usage&usage == 0 {
		Logger().Warn("vkcore: bound buffer lacks usage for descriptor type",
			"type", ty.String(), "usage", b.Buffer.usage)
	}
	info := b.Buffer.descriptorInfo()
	info.Offset = vk.DeviceSize(b.BufferOffset)
	return info
}
