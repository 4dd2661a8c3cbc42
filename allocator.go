// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// DefaultBlockSize is the minimum size of a freshly created memory block.
// Requests larger than this get a block of exactly their size.
const DefaultBlockSize uint64 = 256 << 20

// interval is one free range inside a block.
type interval struct {
	offset uint64
	size   uint64
}

// MemoryBlock is an allocation unit carved from one VkDeviceMemory object,
// sub-partitioned into live chunks and free intervals.
//
// Invariants: the disjoint union of free intervals and live chunks covers
// [0, size); adjacent free intervals are coalesced; inUse equals the sum
// of live chunk sizes. The block destroys itself (releasing the mapping,
// the OS handle and the device memory) when its last chunk is freed.
type MemoryBlock struct {
	alloc *Allocator

	mu         sync.Mutex
	memory     vk.DeviceMemory
	props      vk.MemoryPropertyFlags
	handleType vk.ExternalMemoryHandleTypeFlagBits
	typeIndex  uint32
	osHandle   OSHandle
	mapping    unsafe.Pointer

	// offset is the block's byte offset within the device memory; non-zero
	// for imports that start mid-memory.
	offset uint64
	size   uint64
	inUse  uint64

	// free is ordered by offset and coalesced. chunks maps live offsets to
	// sizes.
	free   []interval
	chunks map[uint64]uint64

	imported bool
	dead     bool
}

// Allocation names a live chunk: (block, offset, size). The zero value is
// invalid.
type Allocation struct {
	block  *MemoryBlock
	offset uint64
	size   uint64
}

// IsValid reports whether the allocation names a chunk.
func (a Allocation) IsValid() bool { return a.block != nil }

// LocalOffset is the chunk offset relative to the block.
func (a Allocation) LocalOffset() uint64 { return a.offset }

// GlobalOffset is the chunk offset relative to the device memory; imported
// blocks may start at a non-zero intra-memory offset.
func (a Allocation) GlobalOffset() uint64 { return a.offset + a.block.offset }

// LocalSize is the chunk size.
func (a Allocation) LocalSize() uint64 { return a.size }

// GlobalSize is the whole block size.
func (a Allocation) GlobalSize() uint64 { return a.block.size }

// Memory returns the underlying device memory handle.
func (a Allocation) Memory() vk.DeviceMemory {
	if a.block == nil {
		return 0
	}
	return a.block.memory
}

// HandleType returns the external handle type the block was created with.
func (a Allocation) HandleType() vk.ExternalMemoryHandleTypeFlagBits {
	return a.block.handleType
}

// OSHandle returns the block's exported OS handle.
func (a Allocation) OSHandle() OSHandle { return a.block.osHandle }

// Imported reports whether the backing memory was imported from another
// process.
func (a Allocation) Imported() bool { return a.block.imported }

// Map returns the chunk's bytes within the block's host mapping, or nil
// if the memory is not host-visible.
func (a Allocation) Map() []byte {
	if a.block == nil || a.block.mapping == nil {
		return nil
	}
	// The block mapping starts at the block's intra-memory offset, so only
	// the chunk offset is added here.
	base := unsafe.Add(a.block.mapping, a.offset)
	return unsafe.Slice((*byte)(base), a.size)
}

// ensureMapped map-binds the block on demand (imported blocks are not
// mapped at creation) and returns the chunk's bytes.
func (a Allocation) ensureMapped(dev *Device) []byte {
	b := a.block
	b.mu.Lock()
	if b.mapping == nil {
		var p unsafe.Pointer
		if r := dev.cmds.MapMemory(dev.handle, b.memory, vk.DeviceSize(b.offset), vk.DeviceSize(b.size-b.offset), &p); r != vk.Success {
			b.mu.Unlock()
			Logger().Warn("vkcore: on-demand map failed", "result", r.String())
			return nil
		}
		b.mapping = p
	}
	b.mu.Unlock()
	base := unsafe.Add(b.mapping, a.offset)
	return unsafe.Slice((*byte)(base), a.size)
}

// Flush flushes the chunk's mapped range for non-coherent memory.
func (a Allocation) Flush() error {
	blk := a.block
	rng := vk.MappedMemoryRange{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: blk.memory,
		Offset: vk.DeviceSize(a.GlobalOffset()),
		Size:   vk.DeviceSize(a.size),
	}
	return resultErr("vkFlushMappedMemoryRanges", blk.alloc.dev.cmds.FlushMappedMemoryRanges(blk.alloc.dev.handle, 1, &rng))
}

// BindBuffer binds the chunk's memory range to a buffer.
func (a Allocation) BindBuffer(buffer vk.Buffer) error {
	d := a.block.alloc.dev
	return resultErr("vkBindBufferMemory", d.cmds.BindBufferMemory(d.handle, buffer, a.block.memory, vk.DeviceSize(a.GlobalOffset())))
}

// BindImage binds the chunk's memory range to an image.
func (a Allocation) BindImage(image vk.Image) error {
	d := a.block.alloc.dev
	return resultErr("vkBindImageMemory", d.cmds.BindImageMemory(d.handle, image, a.block.memory, vk.DeviceSize(a.GlobalOffset())))
}

// Free returns the chunk to its block, coalescing adjacent free intervals.
func (a Allocation) Free() {
	if a.IsValid() {
		a.block.freeChunk(a)
	}
}

func alignUp(offset, alignment uint64) uint64 {
	return (offset + alignment - 1) &^ (alignment - 1)
}

// chunkFits reports whether a request fits an interval once its start is
// aligned up.
func chunkFits(iv interval, reqSize, alignment uint64) bool {
	start := alignUp(iv.offset, alignment)
	end := iv.offset + iv.size
	return start <= end && end-start >= reqSize
}

// allocate carves a chunk out of the block using first-fit over the free
// intervals, splitting leading padding back into the free list.
func (b *MemoryBlock) allocate(reqSize, alignment uint64) Allocation {
	if alignment == 0 {
		alignment = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dead || b.inUse+reqSize > b.size {
		return Allocation{}
	}

	idx := -1
	for i, iv := range b.free {
		if chunkFits(iv, reqSize, alignment) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Allocation{}
	}

	iv := b.free[idx]
	offset := alignUp(iv.offset, alignment)
	usedFromStart := reqSize + offset - iv.offset

	b.chunks[offset] = reqSize
	b.inUse += reqSize

	var repl []interval
	if offset > iv.offset {
		repl = append(repl, interval{iv.offset, offset - iv.offset})
	}
	if iv.size > usedFromStart {
		repl = append(repl, interval{offset + reqSize, iv.size - usedFromStart})
	}
	b.free = append(b.free[:idx], append(repl, b.free[idx+1:]...)...)

	return Allocation{block: b, offset: offset, size: reqSize}
}

// freeChunk removes a live chunk, re-inserts it as a free interval and
// coalesces backward then forward with its neighbours. The block is
// destroyed when the last chunk goes.
func (b *MemoryBlock) freeChunk(a Allocation) {
	b.mu.Lock()

	size, ok := b.chunks[a.offset]
	if !ok || size != a.size {
		b.mu.Unlock()
		return
	}
	delete(b.chunks, a.offset)
	b.inUse -= a.size

	idx := sort.Search(len(b.free), func(i int) bool { return b.free[i].offset >= a.offset })
	b.free = append(b.free[:idx], append([]interval{{a.offset, a.size}}, b.free[idx:]...)...)

	// Merge backwards.
	for idx > 0 && b.free[idx-1].offset+b.free[idx-1].size == b.free[idx].offset {
		b.free[idx-1].size += b.free[idx].size
		b.free = append(b.free[:idx], b.free[idx+1:]...)
		idx--
	}
	// Merge forwards.
	for idx+1 < len(b.free) && b.free[idx].offset+b.free[idx].size == b.free[idx+1].offset {
		b.free[idx].size += b.free[idx+1].size
		b.free = append(b.free[:idx+1], b.free[idx+2:]...)
	}

	empty := len(b.chunks) == 0
	if empty {
		b.dead = true
	}
	b.mu.Unlock()

	if empty {
		b.destroy()
	}
}

// destroy unregisters the block and releases the OS handle and device
// memory. Runs once, after the last chunk is freed.
func (b *MemoryBlock) destroy() {
	if b.alloc == nil {
		return
	}
	b.alloc.unregister(b)

	if b.osHandle != 0 {
		if err := platformCloseHandle(b.osHandle); err != nil {
			Logger().Warn("vkcore: closing exported memory handle", "error", err)
		}
		b.osHandle = 0
	}
	if d := b.alloc.dev; d != nil && b.memory != 0 {
		d.cmds.FreeMemory(d.handle, b.memory)
		b.memory = 0
	}
	b.mapping = nil
}

// freeIntervals snapshots the free map for diagnostics and tests.
func (b *MemoryBlock) freeIntervals() map[uint64]uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := make(map[uint64]uint64, len(b.free))
	for _, iv := range b.free {
		m[iv.offset] = iv.size
	}
	return m
}

// Allocator is the per-device suballocator. Blocks are grouped by memory
// type index; each block carries its own lock. Lock order is always
// allocator, then block.
type Allocator struct {
	dev     *Device
	interop NativeInterop

	mu     sync.Mutex
	blocks map[uint32][]*MemoryBlock
}

// NewAllocator creates the device suballocator. interop may be nil; it is
// only needed for D3D-backed image memory.
func NewAllocator(dev *Device, interop NativeInterop) *Allocator {
	return &Allocator{
		dev:     dev,
		interop: interop,
		blocks:  make(map[uint32][]*MemoryBlock),
	}
}

func (a *Allocator) unregister(b *MemoryBlock) {
	a.mu.Lock()
	defer a.mu.Unlock()
	list := a.blocks[b.typeIndex]
	for i, blk := range list {
		if blk == b {
			a.blocks[b.typeIndex] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(a.blocks[b.typeIndex]) == 0 {
		delete(a.blocks, b.typeIndex)
	}
}

// memoryTypeIndex selects the memory type whose property flags match the
// most requested bits, among those allowed by typeBits. Ties break toward
// the lowest index.
func memoryTypeIndex(props *vk.PhysicalDeviceMemoryProperties, typeBits uint32, requested vk.MemoryPropertyFlags) (uint32, vk.MemoryPropertyFlags, error) {
	if typeBits == 0 {
		return 0, 0, fmt.Errorf("%w: empty memory type mask", ErrUnsupported)
	}
	if requested == 0 {
		idx := uint32(bits.TrailingZeros32(typeBits))
		return idx, props.MemoryTypes[idx].PropertyFlags, nil
	}

	best, bestCount := -1, -1
	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		count := bits.OnesCount32(uint32(props.MemoryTypes[i].PropertyFlags & requested))
		if count > bestCount {
			best, bestCount = int(i), count
		}
	}
	if best < 0 {
		return 0, 0, fmt.Errorf("%w: no memory type in mask %#x", ErrUnsupported, typeBits)
	}
	return uint32(best), props.MemoryTypes[best].PropertyFlags, nil
}

// desiredProps derives memory property flags from the requested residency.
func desiredProps(mem MemoryProperties) vk.MemoryPropertyFlags {
	var props vk.MemoryPropertyFlags
	if mem.VRAM {
		props |= vk.MemoryPropertyDeviceLocalBit
	}
	if mem.Mapped {
		props |= vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit | vk.MemoryPropertyHostCachedBit
	}
	if props == 0 {
		props = vk.MemoryPropertyDeviceLocalBit
	}
	return props
}

// AllocateBufferMemory allocates and binds memory for a buffer.
func (a *Allocator) AllocateBufferMemory(buffer vk.Buffer, handleType vk.ExternalMemoryHandleTypeFlagBits, mem MemoryProperties, imported *MemoryExportInfo) (Allocation, error) {
	var req vk.MemoryRequirements
	a.dev.cmds.GetBufferMemoryRequirements(a.dev.handle, buffer, &req)

	alloc, err := a.allocate(req, handleType, desiredProps(mem), imported)
	if err != nil {
		return Allocation{}, err
	}
	if err := alloc.BindBuffer(buffer); err != nil {
		alloc.Free()
		return Allocation{}, err
	}
	return alloc, nil
}

// AllocateImageMemory allocates and binds memory for an image. For D3D
// handle types the memory is created through NativeInterop (or imported)
// as a dedicated allocation; opaque types go through the suballocator.
func (a *Allocator) AllocateImageMemory(img vk.Image, extent vk.Extent2D, format vk.Format, handleType vk.ExternalMemoryHandleTypeFlagBits, imported *MemoryExportInfo) (Allocation, error) {
	switch handleType {
	case vk.ExternalMemoryHandleTypeD3D11TextureBit, vk.ExternalMemoryHandleTypeD3D12HeapBit, vk.ExternalMemoryHandleTypeD3D12ResourceBit:
		return a.allocateD3DImage(img, extent, format, handleType, imported)
	default:
	}

	var req vk.MemoryRequirements
	a.dev.cmds.GetImageMemoryRequirements(a.dev.handle, img, &req)

	props := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	alloc, err := a.allocate(req, handleType, props, imported)
	if err != nil {
		return Allocation{}, err
	}
	if err := alloc.BindImage(img); err != nil {
		alloc.Free()
		return Allocation{}, err
	}
	return alloc, nil
}

// allocateD3DImage backs an image with a shared D3D texture or heap: the
// handle is created by the injected interop (or duplicated from the
// exporting process), its memory-type bits are queried from the handle,
// and the memory is imported as a dedicated allocation.
func (a *Allocator) allocateD3DImage(img vk.Image, extent vk.Extent2D, format vk.Format, handleType vk.ExternalMemoryHandleTypeFlagBits, imported *MemoryExportInfo) (Allocation, error) {
	var req vk.MemoryRequirements
	a.dev.cmds.GetImageMemoryRequirements(a.dev.handle, img, &req)

	var handle OSHandle
	var blockOffset uint64
	var err error
	if imported != nil {
		blockOffset = imported.Offset
		handle, err = platformDupeHandle(imported.PID, imported.Handle)
		if err != nil {
			return Allocation{}, err
		}
	} else {
		if a.interop == nil {
			return Allocation{}, fmt.Errorf("%w: no native interop for handle type %#x", ErrUnsupported, handleType)
		}
		handle, err = a.interop.CreateSharedTexture(extent, format)
		if err != nil {
			return Allocation{}, fmt.Errorf("%w: CreateSharedTexture: %v", ErrInvalidExternalHandle, err)
		}
	}

	var handleProps vk.MemoryWin32HandlePropertiesKHR
	handleProps.SType = vk.StructureTypeMemoryWin32HandlePropertiesKHR
	if r := a.dev.cmds.GetMemoryWin32HandlePropertiesKHR(a.dev.handle, handleType, handle, &handleProps); r != vk.Success {
		return Allocation{}, resultErr("vkGetMemoryWin32HandlePropertiesKHR", r)
	}

	typeIndex, actualProps, err := memoryTypeIndex(&a.dev.memProps, handleProps.MemoryTypeBits, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return Allocation{}, err
	}

	dedicated := vk.MemoryDedicatedAllocateInfo{
		SType: vk.StructureTypeMemoryDedicatedAllocateInfo,
		Image: img,
	}
	importInfo := vk.ImportMemoryWin32HandleInfoKHR{
		SType:      vk.StructureTypeImportMemoryWin32HandleInfoKHR,
		PNext:      unsafe.Pointer(&dedicated),
		HandleType: handleType,
		Handle:     handle,
	}
	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		PNext:           unsafe.Pointer(&importInfo),
		AllocationSize:  req.Size,
		MemoryTypeIndex: typeIndex,
	}

	var memory vk.DeviceMemory
	if r := a.dev.cmds.AllocateMemory(a.dev.handle, &info, &memory); r != vk.Success {
		return Allocation{}, resultErr("vkAllocateMemory (import)", r)
	}

	block := a.newBlock(memory, typeIndex, actualProps, handleType, blockOffset, uint64(req.Size), true)
	block.osHandle = handle
	alloc := block.allocate(uint64(req.Size), uint64(req.Alignment))
	if !alloc.IsValid() {
		return Allocation{}, ErrDeviceOOM
	}
	if err := alloc.BindImage(img); err != nil {
		alloc.Free()
		return Allocation{}, err
	}
	return alloc, nil
}

// allocate implements the import and fresh paths over the free-interval
// suballocator.
func (a *Allocator) allocate(req vk.MemoryRequirements, handleType vk.ExternalMemoryHandleTypeFlagBits, props vk.MemoryPropertyFlags, imported *MemoryExportInfo) (Allocation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	typeIndex, actualProps, err := memoryTypeIndex(&a.dev.memProps, req.MemoryTypeBits, props)
	if err != nil {
		return Allocation{}, err
	}

	if imported != nil {
		return a.importMemory(req, handleType, typeIndex, actualProps, imported)
	}

	// First fit across the existing blocks of this type.
	for _, block := range a.blocks[typeIndex] {
		if alloc := block.allocate(uint64(req.Size), uint64(req.Alignment)); alloc.IsValid() {
			return alloc, nil
		}
	}

	// The export chain must carry the requested external-handle type: a
	// non-zero VkExportMemoryAllocateInfo::handleTypes must include the
	// types the resource was created with.
	size := max(uint64(req.Size), DefaultBlockSize)

	win32Info := vk.ExportMemoryWin32HandleInfoKHR{
		SType:    vk.StructureTypeExportMemoryWin32HandleInfoKHR,
		DwAccess: genericAllAccess,
	}
	exportInfo := vk.ExportMemoryAllocateInfo{
		SType:       vk.StructureTypeExportMemoryAllocateInfo,
		HandleTypes: vk.ExternalMemoryHandleTypeFlags(handleType),
	}
	if handleType == vk.ExternalMemoryHandleTypeOpaqueWin32Bit {
		exportInfo.PNext = unsafe.Pointer(&win32Info)
	}

	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(size),
		MemoryTypeIndex: typeIndex,
	}
	if handleType != 0 {
		info.PNext = unsafe.Pointer(&exportInfo)
	}

	var memory vk.DeviceMemory
	if r := a.dev.cmds.AllocateMemory(a.dev.handle, &info, &memory); r != vk.Success {
		return Allocation{}, resultErr("vkAllocateMemory", r)
	}

	block := a.newBlock(memory, typeIndex, actualProps, handleType, 0, size, false)
	a.blocks[typeIndex] = append(a.blocks[typeIndex], block)

	Logger().Debug("vkcore: new memory block",
		"typeIndex", typeIndex, "size", size, "props", memPropsString(actualProps))

	alloc := block.allocate(uint64(req.Size), uint64(req.Alignment))
	if !alloc.IsValid() {
		return Allocation{}, ErrDeviceOOM
	}
	return alloc, nil
}

// importMemory duplicates the foreign handle and allocates device memory
// with an import chain. The allocation occupies the requested size at the
// import's intra-memory offset.
func (a *Allocator) importMemory(req vk.MemoryRequirements, handleType vk.ExternalMemoryHandleTypeFlagBits, typeIndex uint32, actualProps vk.MemoryPropertyFlags, imported *MemoryExportInfo) (Allocation, error) {
	handle, err := platformDupeHandle(imported.PID, imported.Handle)
	if err != nil {
		return Allocation{}, err
	}

	size := imported.Offset + uint64(req.Size)

	var memory vk.DeviceMemory
	var r vk.Result
	if handleType == vk.ExternalMemoryHandleTypeOpaqueFdBit {
		importInfo := vk.ImportMemoryFdInfoKHR{
			SType:      vk.StructureTypeImportMemoryFdInfoKHR,
			HandleType: handleType,
			Fd:         int32(handle),
		}
		info := vk.MemoryAllocateInfo{
			SType:           vk.StructureTypeMemoryAllocateInfo,
			PNext:           unsafe.Pointer(&importInfo),
			AllocationSize:  vk.DeviceSize(size),
			MemoryTypeIndex: typeIndex,
		}
		r = a.dev.cmds.AllocateMemory(a.dev.handle, &info, &memory)
	} else {
		importInfo := vk.ImportMemoryWin32HandleInfoKHR{
			SType:      vk.StructureTypeImportMemoryWin32HandleInfoKHR,
			HandleType: handleType,
			Handle:     handle,
		}
		info := vk.MemoryAllocateInfo{
			SType:           vk.StructureTypeMemoryAllocateInfo,
			PNext:           unsafe.Pointer(&importInfo),
			AllocationSize:  vk.DeviceSize(size),
			MemoryTypeIndex: typeIndex,
		}
		r = a.dev.cmds.AllocateMemory(a.dev.handle, &info, &memory)
	}
	if r != vk.Success {
		return Allocation{}, resultErr("vkAllocateMemory (import)", r)
	}

	block := a.newBlock(memory, typeIndex, actualProps, handleType, imported.Offset, size, true)
	block.osHandle = handle
	alloc := block.allocate(uint64(req.Size), uint64(req.Alignment))
	if !alloc.IsValid() {
		return Allocation{}, ErrInvalidExternalHandle
	}
	return alloc, nil
}

// newBlock wires a fresh block: the whole span starts free, host-visible
// memory is mapped, exportable memory has its OS handle fetched.
func (a *Allocator) newBlock(memory vk.DeviceMemory, typeIndex uint32, props vk.MemoryPropertyFlags, handleType vk.ExternalMemoryHandleTypeFlagBits, offset, size uint64, imported bool) *MemoryBlock {
	b := &MemoryBlock{
		alloc:      a,
		memory:     memory,
		props:      props,
		handleType: handleType,
		typeIndex:  typeIndex,
		offset:     offset,
		size:       size,
		free:       []interval{{0, size}},
		chunks:     make(map[uint64]uint64),
		imported:   imported,
	}

	if props&vk.MemoryPropertyHostVisibleBit != 0 {
		var p unsafe.Pointer
		if r := a.dev.cmds.MapMemory(a.dev.handle, memory, vk.DeviceSize(offset), vk.DeviceSize(size), &p); r == vk.Success {
			b.mapping = p
		} else {
			Logger().Warn("vkcore: mapping host-visible block failed", "result", r.String())
		}
	}

	if !imported && handleType != 0 {
		b.exportOSHandle()
	}
	return b
}

// exportOSHandle fetches the shareable OS handle for the block's memory.
func (b *MemoryBlock) exportOSHandle() {
	d := b.alloc.dev
	switch b.handleType {
	case vk.ExternalMemoryHandleTypeOpaqueFdBit:
		var fd int32
		info := vk.MemoryGetFdInfoKHR{
			SType:      vk.StructureTypeMemoryGetFdInfoKHR,
			Memory:     b.memory,
			HandleType: b.handleType,
		}
		if r := d.cmds.GetMemoryFdKHR(d.handle, &info, &fd); r == vk.Success {
			b.osHandle = OSHandle(fd)
		}
	default:
		var handle OSHandle
		info := vk.MemoryGetWin32HandleInfoKHR{
			SType:      vk.StructureTypeMemoryGetWin32HandleInfoKHR,
			Memory:     b.memory,
			HandleType: b.handleType,
		}
		if r := d.cmds.GetMemoryWin32HandleKHR(d.handle, &info, &handle); r == vk.Success {
			b.osHandle = handle
		}
	}
}

// genericAllAccess is the NT GENERIC_ALL mask carried on export chains.
const genericAllAccess = 0x10000000

// memPropsString formats memory property flags for logs.
func memPropsString(flags vk.MemoryPropertyFlags) string {
	var parts []string
	if flags&vk.MemoryPropertyDeviceLocalBit != 0 {
		parts = append(parts, "DEVICE_LOCAL")
	}
	if flags&vk.MemoryPropertyHostVisibleBit != 0 {
		parts = append(parts, "HOST_VISIBLE")
	}
	if flags&vk.MemoryPropertyHostCoherentBit != 0 {
		parts = append(parts, "HOST_COHERENT")
	}
	if flags&vk.MemoryPropertyHostCachedBit != 0 {
		parts = append(parts, "HOST_CACHED")
	}
	if flags&vk.MemoryPropertyLazilyAllocatedBit != 0 {
		parts = append(parts, "LAZILY_ALLOCATED")
	}
	if flags&vk.MemoryPropertyProtectedBit != 0 {
		parts = append(parts, "PROTECTED")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}
