// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// ImageState is the tracked pipeline position of an image: the stages that
// last touched it, the access mask, and the current layout. Advanced only
// by Image.Transition; not thread-safe by contract.
type ImageState struct {
	StageMask  vk.PipelineStageFlags2
	AccessMask vk.AccessFlags2
	Layout     vk.ImageLayout
}

// BufferMemoryState tracks a buffer's last stage/access for barriers.
type BufferMemoryState struct {
	StageMask  vk.PipelineStageFlags2
	AccessMask vk.AccessFlags2
}

// imageLayoutTransition emits a legacy (sync1) barrier.
func imageLayoutTransition(cmd *CommandBuffer, image vk.Image, src, dst ImageState, aspect vk.ImageAspectFlags) {
	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       vk.AccessFlags(src.AccessMask),
		DstAccessMask:       vk.AccessFlags(dst.AccessMask),
		OldLayout:           src.Layout,
		NewLayout:           dst.Layout,
		SrcQueueFamilyIndex: vk.QueueFamilyExternal,
		DstQueueFamilyIndex: cmd.pool.queue.family,
		Image:               image,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: aspect,
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	cmd.device().cmds.CmdPipelineBarrier(cmd.handle,
		vk.PipelineStageFlags(src.StageMask), vk.PipelineStageFlags(dst.StageMask),
		vk.DependencyDeviceGroupBit,
		0, nil, 0, nil, 1, &barrier)
}

// imageLayoutTransition2 emits a synchronization2 barrier.
func imageLayoutTransition2(cmd *CommandBuffer, image vk.Image, src, dst ImageState, aspect vk.ImageAspectFlags) {
	barrier := vk.ImageMemoryBarrier2{
		SType:               vk.StructureTypeImageMemoryBarrier2,
		SrcStageMask:        src.StageMask,
		SrcAccessMask:       src.AccessMask,
		DstStageMask:        dst.StageMask,
		DstAccessMask:       dst.AccessMask,
		OldLayout:           src.Layout,
		NewLayout:           dst.Layout,
		SrcQueueFamilyIndex: vk.QueueFamilyExternal,
		DstQueueFamilyIndex: cmd.pool.queue.family,
		Image:               image,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: aspect,
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	info := vk.DependencyInfo{
		SType:                   vk.StructureTypeDependencyInfo,
		DependencyFlags:         vk.DependencyDeviceGroupBit,
		ImageMemoryBarrierCount: 1,
		PImageMemoryBarriers:    &barrier,
	}
	cmd.device().cmds.CmdPipelineBarrier2(cmd.handle, &info)
}

// bufferMemoryBarrier emits a buffer barrier on either the sync2 or the
// legacy path depending on device support.
func bufferMemoryBarrier(cmd *CommandBuffer, buffer vk.Buffer, src, dst BufferMemoryState, offset, size uint64) {
	d := cmd.device()
	if d.Features.Synchronization2 {
		barrier := vk.BufferMemoryBarrier2{
			SType:               vk.StructureTypeBufferMemoryBarrier2,
			SrcStageMask:        src.StageMask,
			SrcAccessMask:       src.AccessMask,
			DstStageMask:        dst.StageMask,
			DstAccessMask:       dst.AccessMask,
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Buffer:              buffer,
			Offset:              vk.DeviceSize(offset),
			Size:                vk.DeviceSize(size),
		}
		info := vk.DependencyInfo{
			SType:                    vk.StructureTypeDependencyInfo,
			BufferMemoryBarrierCount: 1,
			PBufferMemoryBarriers:    &barrier,
		}
		d.cmds.CmdPipelineBarrier2(cmd.handle, &info)
		return
	}

	barrier := vk.BufferMemoryBarrier{
		SType:               vk.StructureTypeBufferMemoryBarrier,
		SrcAccessMask:       vk.AccessFlags(src.AccessMask),
		DstAccessMask:       vk.AccessFlags(dst.AccessMask),
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Buffer:              buffer,
		Offset:              vk.DeviceSize(offset),
		Size:                vk.DeviceSize(size),
	}
	d.cmds.CmdPipelineBarrier(cmd.handle,
		vk.PipelineStageFlags(src.StageMask), vk.PipelineStageFlags(dst.StageMask), 0,
		0, nil, 1, &barrier, 0, nil)
}

// pushConstantBytes reinterprets a fixed-layout struct as raw bytes for
// vkCmdPushConstants.
func pushConstantBytes[T any](v *T) (unsafe.Pointer, uint32) {
	return unsafe.Pointer(v), uint32(unsafe.Sizeof(*v))
}
