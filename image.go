// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// ImageCreateInfo describes a 2D image. YCbCr formats are allocated with
// their native format but viewed as R8G8B8A8_UNORM over the halved
// effective extent.
type ImageCreateInfo struct {
	Extent             vk.Extent2D
	Format             vk.Format
	Usage              vk.ImageUsageFlags
	Samples            vk.SampleCountFlagBits
	Tiling             vk.ImageTiling
	Flags              vk.ImageCreateFlags
	ExternalHandleType vk.ExternalMemoryHandleTypeFlagBits
	Imported           *MemoryExportInfo
}

// poolKey restricts pool identity to layout-affecting fields.
func (info ImageCreateInfo) poolKey() imagePoolKey {
	samples := info.Samples
	if samples == 0 {
		samples = vk.SampleCount1Bit
	}
	tiling := info.Tiling
	return imagePoolKey{
		Width:      info.Extent.Width,
		Height:     info.Extent.Height,
		Format:     info.Format,
		Usage:      info.Usage,
		Samples:    samples,
		Tiling:     tiling,
		Flags:      info.Flags,
		HandleType: info.ExternalHandleType,
	}
}

type imagePoolKey struct {
	Width, Height uint32
	Format        vk.Format
	Usage         vk.ImageUsageFlags
	Samples       vk.SampleCountFlagBits
	Tiling        vk.ImageTiling
	Flags         vk.ImageCreateFlags
	HandleType    vk.ExternalMemoryHandleTypeFlagBits
}

// Image owns a VkImage, its allocation, and the tracked ImageState, plus a
// cache of views keyed by (format, usage).
type Image struct {
	dev    *Device
	handle vk.Image
	alloc  Allocation

	extent  vk.Extent2D
	format  vk.Format
	usage   vk.ImageUsageFlags
	samples vk.SampleCountFlagBits

	// State advances only through Transition; concurrent users must
	// arrange external synchronisation.
	State ImageState

	views map[uint64]*ImageView
}

// NewImage creates (or imports) an image. Tiling downgrades from OPTIMAL
// to LINEAR when the format does not support the requested usage
// optimally. Imported images start in PREINITIALIZED layout.
func NewImage(dev *Device, info ImageCreateInfo) (*Image, error) {
	if info.Extent.Width == 0 || info.Extent.Height == 0 {
		return nil, fmt.Errorf("vkcore: image extent must be > 0")
	}
	if info.Samples == 0 {
		info.Samples = vk.SampleCount1Bit
	}

	img := &Image{
		dev:     dev,
		extent:  info.Extent,
		format:  info.Format,
		usage:   info.Usage,
		samples: info.Samples,
		views:   make(map[uint64]*ImageView),
		State: ImageState{
			StageMask:  vk.PipelineStageFlags2(vk.PipelineStageNone),
			AccessMask: vk.AccessFlags2(vk.AccessMemoryReadBit | vk.AccessMemoryWriteBit),
			Layout:     vk.ImageLayoutUndefined,
		},
	}
	if info.Imported != nil {
		img.State.Layout = vk.ImageLayoutPreinitialized
	}

	tiling := info.Tiling
	if tiling == vk.ImageTilingOptimal {
		var props vk.FormatProperties
		dev.cmds.GetPhysicalDeviceFormatProperties(dev.physical, img.EffectiveFormat(), &props)
		if !tilingSupportsUsage(props.OptimalTilingFeatures, info.Usage) {
			tiling = vk.ImageTilingLinear
			Logger().Debug("vkcore: optimal tiling unsupported for usage, falling back to linear",
				"format", uint32(info.Format), "usage", info.Usage)
		}
	}

	external := vk.ExternalMemoryImageCreateInfo{
		SType:       vk.StructureTypeExternalMemoryImageCreateInfo,
		HandleTypes: vk.ExternalMemoryHandleTypeFlags(info.ExternalHandleType),
	}
	createInfo := vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		Flags:         info.Flags,
		ImageType:     vk.ImageType2D,
		Format:        img.EffectiveFormat(),
		Extent:        vk.Extent3D{Width: img.EffectiveExtent().Width, Height: info.Extent.Height, Depth: 1},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       info.Samples,
		Tiling:        tiling,
		Usage:         info.Usage,
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}
	if info.ExternalHandleType != 0 {
		createInfo.PNext = unsafe.Pointer(&external)
	}

	if r := dev.cmds.CreateImage(dev.handle, &createInfo, &img.handle); r != vk.Success {
		return nil, resultErr("vkCreateImage", r)
	}

	alloc, err := dev.allocator.AllocateImageMemory(img.handle, info.Extent, info.Format, info.ExternalHandleType, info.Imported)
	if err != nil {
		dev.cmds.DestroyImage(dev.handle, img.handle)
		return nil, fmt.Errorf("vkcore: image memory: %w", err)
	}
	img.alloc = alloc
	return img, nil
}

// tilingSupportsUsage checks the format feature bits each requested usage
// needs under optimal tiling.
func tilingSupportsUsage(features vk.FormatFeatureFlags, usage vk.ImageUsageFlags) bool {
	checks := []struct {
		usage   vk.ImageUsageFlags
		feature vk.FormatFeatureFlags
	}{
		{vk.ImageUsageSampledBit, vk.FormatFeatureSampledImageBit},
		{vk.ImageUsageStorageBit, vk.FormatFeatureStorageImageBit},
		{vk.ImageUsageTransferSrcBit, vk.FormatFeatureTransferSrcBit},
		{vk.ImageUsageTransferDstBit, vk.FormatFeatureTransferDstBit},
		{vk.ImageUsageColorAttachmentBit, vk.FormatFeatureColorAttachmentBit},
		{vk.ImageUsageDepthStencilAttachmentBit, vk.FormatFeatureDepthStencilAttachmentBit},
	}
	for _, c := range checks {
		if usage&c.usage != 0 && features&c.feature == 0 {
			return false
		}
	}
	return true
}

// Handle returns the VkImage handle.
func (img *Image) Handle() vk.Image { return img.handle }

// Extent returns the logical extent.
func (img *Image) Extent() vk.Extent2D { return img.extent }

// Format returns the native format.
func (img *Image) Format() vk.Format { return img.format }

// Usage returns the usage flags.
func (img *Image) Usage() vk.ImageUsageFlags { return img.usage }

// Allocation returns the backing allocation.
func (img *Image) Allocation() Allocation { return img.alloc }

// EffectiveFormat is the format views use: YCbCr images are viewed as
// RGBA8 after conversion.
func (img *Image) EffectiveFormat() vk.Format {
	if IsYCbCr(img.format) {
		return vk.FormatR8G8B8A8Unorm
	}
	return img.format
}

// EffectiveExtent halves the width of YCbCr images.
func (img *Image) EffectiveExtent() vk.Extent2D {
	if IsYCbCr(img.format) {
		return vk.Extent2D{Width: img.extent.Width / 2, Height: img.extent.Height}
	}
	return img.extent
}

// Aspect returns the image aspect derived from usage.
func (img *Image) Aspect() vk.ImageAspectFlags {
	if img.usage&vk.ImageUsageDepthStencilAttachmentBit != 0 {
		return vk.ImageAspectDepthBit
	}
	return vk.ImageAspectColorBit
}

// Transition records a layout/stage/access barrier into cmd, advances the
// tracked state and keeps the image alive until the fence completes.
func (img *Image) Transition(cmd *CommandBuffer, dst ImageState) {
	if img.dev.Features.Synchronization2 {
		imageLayoutTransition2(cmd, img.handle, img.State, dst, img.Aspect())
	} else {
		imageLayoutTransition(cmd, img.handle, img.State, dst, img.Aspect())
	}
	img.State = dst
	cmd.AddDependency(img)
}

// endDependency widens the tracked access/stage after the commands that
// used the image have retired, so the next transition synchronises against
// everything.
func (img *Image) endDependency() {
	img.State.AccessMask = vk.AccessFlags2(vk.AccessMemoryWriteBit | vk.AccessMemoryReadBit)
	img.State.StageMask = vk.PipelineStageFlags2(vk.PipelineStageAllCommandsBit)
}

// Clear records a clear of the whole image to the given color.
func (img *Image) Clear(cmd *CommandBuffer, color vk.ClearColorValue) error {
	if img.usage&vk.ImageUsageTransferDstBit == 0 {
		return fmt.Errorf("vkcore: clear target lacks TRANSFER_DST usage")
	}
	img.Transition(cmd, ImageState{
		AccessMask: vk.AccessFlags2(vk.AccessMemoryWriteBit),
		Layout:     vk.ImageLayoutTransferDstOptimal,
	})
	rng := vk.ImageSubresourceRange{AspectMask: img.Aspect(), LevelCount: 1, LayerCount: 1}
	img.dev.cmds.CmdClearColorImage(cmd.handle, img.handle, vk.ImageLayoutTransferDstOptimal, &color, 1, &rng)
	return nil
}

// Upload records a buffer-to-image copy covering the effective extent.
func (img *Image) Upload(cmd *CommandBuffer, src *Buffer, bufferRowLength, bufferImageHeight uint32) error {
	if img.usage&vk.ImageUsageTransferDstBit == 0 {
		return fmt.Errorf("vkcore: upload target lacks TRANSFER_DST usage")
	}
	if src.usage&vk.BufferUsageTransferSrcBit == 0 {
		return fmt.Errorf("vkcore: upload source lacks TRANSFER_SRC usage")
	}

	cmd.AddDependency(src)

	img.Transition(cmd, ImageState{
		StageMask:  vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
		AccessMask: vk.AccessFlags2(vk.AccessTransferWriteBit),
		Layout:     vk.ImageLayoutTransferDstOptimal,
	})

	region := vk.BufferImageCopy{
		BufferRowLength:   bufferRowLength,
		BufferImageHeight: bufferImageHeight,
		ImageSubresource:  vk.ImageSubresourceLayers{AspectMask: img.Aspect(), LayerCount: 1},
		ImageExtent:       vk.Extent3D{Width: img.EffectiveExtent().Width, Height: img.extent.Height, Depth: 1},
	}
	img.dev.cmds.CmdCopyBufferToImage(cmd.handle, src.handle, img.handle, img.State.Layout, 1, &region)
	return nil
}

// Copy records a copy of the image into a newly created one with the same
// parameters (plus TRANSFER_DST) and returns it.
func (img *Image) Copy(cmd *CommandBuffer) (*Image, error) {
	if img.usage&vk.ImageUsageTransferSrcBit == 0 {
		return nil, fmt.Errorf("vkcore: copy source lacks TRANSFER_SRC usage")
	}

	dst, err := NewImage(img.dev, ImageCreateInfo{
		Extent: img.extent,
		Format: img.format,
		Usage:  img.usage | vk.ImageUsageTransferDstBit,
	})
	if err != nil {
		return nil, err
	}
	dst.CopyFrom(cmd, img)
	return dst, nil
}

// CopyFrom records a whole-image copy from src into img.
func (img *Image) CopyFrom(cmd *CommandBuffer, src *Image) {
	if img == src {
		Logger().Error("vkcore: image copy with identical source and destination")
		return
	}

	src.Transition(cmd, ImageState{
		StageMask:  vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
		AccessMask: vk.AccessFlags2(vk.AccessTransferReadBit),
		Layout:     vk.ImageLayoutTransferSrcOptimal,
	})
	img.Transition(cmd, ImageState{
		StageMask:  vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
		AccessMask: vk.AccessFlags2(vk.AccessTransferWriteBit),
		Layout:     vk.ImageLayoutTransferDstOptimal,
	})

	region := vk.ImageCopy{
		SrcSubresource: vk.ImageSubresourceLayers{AspectMask: src.Aspect(), LayerCount: 1},
		DstSubresource: vk.ImageSubresourceLayers{AspectMask: img.Aspect(), LayerCount: 1},
		Extent:         vk.Extent3D{Width: img.EffectiveExtent().Width, Height: img.extent.Height, Depth: 1},
	}
	img.dev.cmds.CmdCopyImage(cmd.handle, src.handle, vk.ImageLayoutTransferSrcOptimal,
		img.handle, vk.ImageLayoutTransferDstOptimal, 1, &region)
}

// BlitFrom records a scaled blit from src into img, using the copy2 path
// when available.
func (img *Image) BlitFrom(cmd *CommandBuffer, src *Image, filter vk.Filter) {
	if img == src {
		Logger().Error("vkcore: blit with identical source and destination")
		return
	}

	src.Transition(cmd, ImageState{
		StageMask:  vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
		AccessMask: vk.AccessFlags2(vk.AccessTransferReadBit),
		Layout:     vk.ImageLayoutTransferSrcOptimal,
	})
	img.Transition(cmd, ImageState{
		StageMask:  vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
		AccessMask: vk.AccessFlags2(vk.AccessTransferWriteBit),
		Layout:     vk.ImageLayoutTransferDstOptimal,
	})

	srcExtent := src.EffectiveExtent()
	dstExtent := img.EffectiveExtent()

	if img.dev.Features.CopyCommands2 {
		region := vk.ImageBlit2{
			SType:          vk.StructureTypeImageBlit2,
			SrcSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectColorBit, LayerCount: 1},
			SrcOffsets:     [2]vk.Offset3D{{}, {X: int32(srcExtent.Width), Y: int32(srcExtent.Height), Z: 1}},
			DstSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectColorBit, LayerCount: 1},
			DstOffsets:     [2]vk.Offset3D{{}, {X: int32(dstExtent.Width), Y: int32(dstExtent.Height), Z: 1}},
		}
		info := vk.BlitImageInfo2{
			SType:          vk.StructureTypeBlitImageInfo2,
			SrcImage:       src.handle,
			SrcImageLayout: vk.ImageLayoutTransferSrcOptimal,
			DstImage:       img.handle,
			DstImageLayout: vk.ImageLayoutTransferDstOptimal,
			RegionCount:    1,
			PRegions:       &region,
			Filter:         filter,
		}
		img.dev.cmds.CmdBlitImage2(cmd.handle, &info)
		return
	}

	region := vk.ImageBlit{
		SrcSubresource: vk.ImageSubresourceLayers{AspectMask: src.Aspect(), LayerCount: 1},
		SrcOffsets:     [2]vk.Offset3D{{}, {X: int32(srcExtent.Width), Y: int32(srcExtent.Height), Z: 1}},
		DstSubresource: vk.ImageSubresourceLayers{AspectMask: img.Aspect(), LayerCount: 1},
		DstOffsets:     [2]vk.Offset3D{{}, {X: int32(dstExtent.Width), Y: int32(dstExtent.Height), Z: 1}},
	}
	img.dev.cmds.CmdBlitImage(cmd.handle, src.handle, vk.ImageLayoutTransferSrcOptimal,
		img.handle, vk.ImageLayoutTransferDstOptimal, 1, &region, filter)
}

// ResolveFrom records a multisample resolve from src into img.
func (img *Image) ResolveFrom(cmd *CommandBuffer, src *Image) {
	src.Transition(cmd, ImageState{
		StageMask:  vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
		AccessMask: vk.AccessFlags2(vk.AccessTransferReadBit),
		Layout:     vk.ImageLayoutTransferSrcOptimal,
	})
	img.Transition(cmd, ImageState{
		StageMask:  vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
		AccessMask: vk.AccessFlags2(vk.AccessTransferWriteBit),
		Layout:     vk.ImageLayoutTransferDstOptimal,
	})

	region := vk.ImageResolve2{
		SType:          vk.StructureTypeImageResolve2,
		SrcSubresource: vk.ImageSubresourceLayers{AspectMask: src.Aspect(), LayerCount: 1},
		DstSubresource: vk.ImageSubresourceLayers{AspectMask: img.Aspect(), LayerCount: 1},
		Extent:         vk.Extent3D{Width: img.EffectiveExtent().Width, Height: img.extent.Height, Depth: 1},
	}
	info := vk.ResolveImageInfo2{
		SType:          vk.StructureTypeResolveImageInfo2,
		SrcImage:       src.handle,
		SrcImageLayout: vk.ImageLayoutTransferSrcOptimal,
		DstImage:       img.handle,
		DstImageLayout: vk.ImageLayoutTransferDstOptimal,
		RegionCount:    1,
		PRegions:       &region,
	}
	img.dev.cmds.CmdResolveImage2(cmd.handle, &info)
}

// Download records an image-to-buffer copy into a freshly created staging
// buffer sized to the allocation.
func (img *Image) Download(cmd *CommandBuffer) (*Buffer, error) {
	if img.usage&vk.ImageUsageTransferSrcBit == 0 {
		return nil, fmt.Errorf("vkcore: download source lacks TRANSFER_SRC usage")
	}
	staging, err := NewBuffer(img.dev, BufferCreateInfo{
		Size:     img.alloc.LocalSize(),
		Usage:    vk.BufferUsageTransferDstBit,
		MemProps: MemoryProperties{Mapped: true, Download: true},
	})
	if err != nil {
		return nil, err
	}
	img.DownloadTo(cmd, staging)
	return staging, nil
}

// DownloadTo records an image-to-buffer copy into buf.
func (img *Image) DownloadTo(cmd *CommandBuffer, buf *Buffer) {
	img.Transition(cmd, ImageState{
		StageMask:  vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
		AccessMask: vk.AccessFlags2(vk.AccessTransferReadBit),
		Layout:     vk.ImageLayoutTransferSrcOptimal,
	})

	region := vk.BufferImageCopy{
		ImageSubresource: vk.ImageSubresourceLayers{AspectMask: img.Aspect(), LayerCount: 1},
		ImageExtent:      vk.Extent3D{Width: img.EffectiveExtent().Width, Height: img.extent.Height, Depth: 1},
	}
	img.dev.cmds.CmdCopyImageToBuffer(cmd.handle, img.handle, img.State.Layout, buf.handle, 1, &region)
	cmd.AddDependency(img, buf)
}

// GetView returns the cached view for (format, usage), creating it on
// first use. Zero format/usage default to the image's own.
func (img *Image) GetView(format vk.Format, usage vk.ImageUsageFlags) (*ImageView, error) {
	if format == 0 {
		format = img.format
	}
	if usage == 0 {
		usage = img.usage
	}
	hash := uint64(format)<<32 | uint64(usage)
	if v, ok := img.views[hash]; ok {
		return v, nil
	}
	v, err := newImageView(img, format, usage)
	if err != nil {
		return nil, err
	}
	img.views[hash] = v
	return v, nil
}

// ExportInfo packages the image's backing memory for another process.
func (img *Image) ExportInfo() MemoryExportInfo {
	return MemoryExportInfo{
		HandleType:     uint32(img.alloc.HandleType()),
		PID:            platformCurrentPID(),
		Handle:         img.alloc.OSHandle(),
		Offset:         img.alloc.GlobalOffset(),
		Size:           img.alloc.LocalSize(),
		AllocationSize: img.alloc.GlobalSize(),
		MemProps:       MemoryProperties{VRAM: true},
	}
}

// Destroy releases the views, the image and its memory.
func (img *Image) Destroy() {
	for _, v := range img.views {
		v.destroy()
	}
	img.views = nil
	if img.handle != 0 {
		img.dev.cmds.DestroyImage(img.dev.handle, img.handle)
		img.handle = 0
	}
	img.alloc.Free()
	img.alloc = Allocation{}
}

// ImageView is a cached (image, format, usage) view.
type ImageView struct {
	img    *Image
	handle vk.ImageView
	format vk.Format
	usage  vk.ImageUsageFlags
}

func newImageView(img *Image, format vk.Format, usage vk.ImageUsageFlags) (*ImageView, error) {
	usageInfo := vk.ImageViewUsageCreateInfo{
		SType: vk.StructureTypeImageViewUsageCreateInfo,
		Usage: usage,
	}
	viewFormat := format
	if IsYCbCr(format) {
		viewFormat = vk.FormatR8G8B8A8Unorm
	}
	info := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		PNext:    unsafe.Pointer(&usageInfo),
		Image:    img.handle,
		ViewType: vk.ImageViewType2D,
		Format:   viewFormat,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: img.Aspect(),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var handle vk.ImageView
	if r := img.dev.cmds.CreateImageView(img.dev.handle, &info, &handle); r != vk.Success {
		return nil, resultErr("vkCreateImageView", r)
	}
	return &ImageView{img: img, handle: handle, format: format, usage: usage}, nil
}

// Handle returns the VkImageView handle.
func (v *ImageView) Handle() vk.ImageView { return v.handle }

// Image returns the viewed image.
func (v *ImageView) Image() *Image { return v.img }

// EffectiveFormat is the format the view was created with after YCbCr
// substitution.
func (v *ImageView) EffectiveFormat() vk.Format {
	if IsYCbCr(v.format) {
		return vk.FormatR8G8B8A8Unorm
	}
	return v.format
}

// descriptorInfo builds the view's descriptor image info with a device
// sampler for the given filter.
func (v *ImageView) descriptorInfo(filter vk.Filter) vk.DescriptorImageInfo {
	return vk.DescriptorImageInfo{
		Sampler:     v.img.dev.GetSampler(filter),
		ImageView:   v.handle,
		ImageLayout: vk.ImageLayoutGeneral,
	}
}

func (v *ImageView) destroy() {
	if v.handle != 0 {
		v.img.dev.cmds.DestroyImageView(v.img.dev.handle, v.handle)
		v.handle = 0
	}
}
