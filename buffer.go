// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// BufferCreateInfo describes a buffer. A zero ExternalHandleType creates
// non-shareable memory; set it to PlatformExternalMemoryHandleType (or a
// D3D type) to make the backing block exportable. Imported takes
// precedence over fresh allocation.
type BufferCreateInfo struct {
	Size               uint64
	Usage              vk.BufferUsageFlags
	MemProps           MemoryProperties
	ExternalHandleType vk.ExternalMemoryHandleTypeFlagBits
	Imported           *MemoryExportInfo

	// ElementSize tags the element type so reflection-time size checks can
	// verify SSBO strides. Zero means untyped.
	ElementSize uint32
}

// poolKey returns the identity used by the recycling resource pool: only
// fields that affect the physical allocation participate.
func (info BufferCreateInfo) poolKey() bufferPoolKey {
	return bufferPoolKey{
		Size:       info.Size,
		Usage:      info.Usage,
		Mapped:     info.MemProps.Mapped,
		VRAM:       info.MemProps.VRAM,
		Download:   info.MemProps.Download,
		HandleType: info.ExternalHandleType,
	}
}

type bufferPoolKey struct {
	Size       uint64
	Usage      vk.BufferUsageFlags
	Mapped     bool
	VRAM       bool
	Download   bool
	HandleType vk.ExternalMemoryHandleTypeFlagBits
}

// Buffer is a VkBuffer with its allocation, usage flags and barrier state.
type Buffer struct {
	dev         *Device
	handle      vk.Buffer
	alloc       Allocation
	usage       vk.BufferUsageFlags
	size        uint64
	elementSize uint32
	memProps    MemoryProperties

	// state tracks the last stage/access for Transition barriers. Guarded
	// by external synchronisation, like image state.
	state BufferMemoryState
}

// NewBuffer creates a buffer, composing an external-memory chain when a
// handle type is requested and mapping the memory if MemProps.Mapped.
func NewBuffer(dev *Device, info BufferCreateInfo) (*Buffer, error) {
	if info.Size == 0 {
		return nil, fmt.Errorf("vkcore: buffer size must be > 0")
	}

	external := vk.ExternalMemoryBufferCreateInfo{
		SType:       vk.StructureTypeExternalMemoryBufferCreateInfo,
		HandleTypes: vk.ExternalMemoryHandleTypeFlags(info.ExternalHandleType),
	}
	createInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(info.Size),
		Usage:       info.Usage,
		SharingMode: vk.SharingModeExclusive,
	}
	if info.ExternalHandleType != 0 {
		createInfo.PNext = unsafe.Pointer(&external)
	}

	var handle vk.Buffer
	if r := dev.cmds.CreateBuffer(dev.handle, &createInfo, &handle); r != vk.Success {
		return nil, resultErr("vkCreateBuffer", r)
	}

	alloc, err := dev.allocator.AllocateBufferMemory(handle, info.ExternalHandleType, info.MemProps, info.Imported)
	if err != nil {
		dev.cmds.DestroyBuffer(dev.handle, handle)
		return nil, fmt.Errorf("vkcore: buffer memory: %w", err)
	}

	return &Buffer{
		dev:         dev,
		handle:      handle,
		alloc:       alloc,
		usage:       info.Usage,
		size:        info.Size,
		elementSize: info.ElementSize,
		memProps:    info.MemProps,
	}, nil
}

// Handle returns the VkBuffer handle.
func (b *Buffer) Handle() vk.Buffer { return b.handle }

// Size returns the buffer size in bytes.
func (b *Buffer) Size() uint64 { return b.size }

// Usage returns the buffer usage flags.
func (b *Buffer) Usage() vk.BufferUsageFlags { return b.usage }

// ElementSize returns the element-type tag, or zero if untyped.
func (b *Buffer) ElementSize() uint32 { return b.elementSize }

// Allocation returns the backing allocation.
func (b *Buffer) Allocation() Allocation { return b.alloc }

// Map returns the host mapping of the buffer's memory. For imported-only
// allocations the memory is map-bound on demand.
func (b *Buffer) Map() []byte {
	if m := b.alloc.Map(); m != nil {
		return m
	}
	if b.alloc.Imported() {
		return b.alloc.ensureMapped(b.dev)
	}
	return nil
}

// Copy writes len(data) bytes into the mapped range at offset.
func (b *Buffer) Copy(data []byte, offset uint64) error {
	m := b.Map()
	if m == nil {
		return fmt.Errorf("vkcore: buffer is not host-visible")
	}
	if offset+uint64(len(data)) > uint64(len(m)) {
		return fmt.Errorf("vkcore: copy of %d bytes at %d exceeds mapping of %d", len(data), offset, len(m))
	}
	copy(m[offset:], data)
	return nil
}

// Upload records a copy from src into b. Both buffers are kept alive by
// the command buffer until its fence completes.
func (b *Buffer) Upload(cmd *CommandBuffer, src *Buffer, region *vk.BufferCopy) error {
	if b.usage&vk.BufferUsageTransferDstBit == 0 {
		return fmt.Errorf("vkcore: upload destination lacks TRANSFER_DST usage")
	}
	if src.usage&vk.BufferUsageTransferSrcBit == 0 {
		return fmt.Errorf("vkcore: upload source lacks TRANSFER_SRC usage")
	}

	defaultRegion := vk.BufferCopy{Size: vk.DeviceSize(src.alloc.LocalSize())}
	if region == nil {
		region = &defaultRegion
	}

	barrier := vk.BufferMemoryBarrier{
		SType:  vk.StructureTypeBufferMemoryBarrier,
		Buffer: b.handle,
		Size:   region.Size,
	}
	b.dev.cmds.CmdPipelineBarrier(cmd.handle,
		vk.PipelineStageAllCommandsBit, vk.PipelineStageAllCommandsBit, 0,
		0, nil, 1, &barrier, 0, nil)

	b.dev.cmds.CmdCopyBuffer(cmd.handle, src.handle, b.handle, 1, region)

	cmd.AddDependency(src, b)
	return nil
}

// Transition records a barrier moving the buffer to a new stage/access
// state and updates the tracked state.
func (b *Buffer) Transition(cmd *CommandBuffer, dst BufferMemoryState, offset, size uint64) {
	bufferMemoryBarrier(cmd, b.handle, b.state, dst, offset, size)
	b.state = dst
	cmd.AddDependency(b)
}

// descriptorInfo returns the buffer's whole-range descriptor info.
func (b *Buffer) descriptorInfo() vk.DescriptorBufferInfo {
	return vk.DescriptorBufferInfo{
		Buffer: b.handle,
		Offset: 0,
		Range:  vk.WholeSize,
	}
}

// ExportInfo packages the buffer's backing memory for another process.
func (b *Buffer) ExportInfo() MemoryExportInfo {
	return MemoryExportInfo{
		HandleType:     uint32(b.alloc.HandleType()),
		PID:            platformCurrentPID(),
		Handle:         b.alloc.OSHandle(),
		Offset:         b.alloc.GlobalOffset(),
		Size:           b.alloc.LocalSize(),
		AllocationSize: b.alloc.GlobalSize(),
		MemProps:       b.memProps,
	}
}

// endDependency is the buffer's dependency epilogue; buffers carry no
// layout, so there is nothing to restore.
func (b *Buffer) endDependency() {}

// Destroy releases the buffer and frees its chunk.
func (b *Buffer) Destroy() {
	if b.handle != 0 {
		b.dev.cmds.DestroyBuffer(b.dev.handle, b.handle)
		b.handle = 0
	}
	b.alloc.Free()
	b.alloc = Allocation{}
}
