// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"fmt"
	"sort"

	"github.com/gogpu/vkcore/spirv"
	"github.com/gogpu/vkcore/vk"
)

// UniformClass classifies what a shader name refers to at bind time.
type UniformClass int

// Uniform classes.
const (
	ClassInvalid UniformClass = iota
	ClassUniform
	ClassImage
	ClassImageArray
	ClassBuffer
)

// storageBuffer pairs a per-pass SSBO with its dirty flag.
type storageBuffer struct {
	buf   *Buffer
	dirty bool
}

// Basepass owns a pipeline, a descriptor pool chain, the pass's coalesced
// uniform buffer, its storage buffers, and the staged bindings per set.
// Renderpass and Computepass build on it.
type Basepass struct {
	dev *Device
	pl  *Pipeline

	descriptorPool *DescriptorPool

	uniformBuffer *Buffer
	uniformDirty  bool

	// storageBuffers is keyed by (set<<32|binding).
	storageBuffers map[uint64]*storageBuffer

	// bindings stages per-set ordered binding lists until BindResources.
	bindings map[uint32][]Binding

	descriptorSets []*DescriptorSet
}

func newBasepass(pl *Pipeline) (*Basepass, error) {
	pool, err := pl.Layout.CreatePool()
	if err != nil {
		return nil, err
	}

	bp := &Basepass{
		dev:            pl.dev,
		pl:             pl,
		descriptorPool: pool,
		storageBuffers: make(map[uint64]*storageBuffer),
		bindings:       make(map[uint32][]Binding),
	}

	if pl.Layout.UniformSize > 0 {
		bp.uniformBuffer, err = bp.createUniformSizedBuffer()
		if err != nil {
			return nil, err
		}
	}
	for key, size := range pl.Layout.SizeMap {
		buf, err := bp.createStorageBuffer(size)
		if err != nil {
			return nil, err
		}
		bp.storageBuffers[key] = &storageBuffer{buf: buf}
	}
	return bp, nil
}

func (bp *Basepass) createUniformSizedBuffer() (*Buffer, error) {
	return NewBuffer(bp.dev, BufferCreateInfo{
		Size:     uint64(bp.pl.Layout.UniformSize),
		Usage:    vk.BufferUsageUniformBufferBit,
		MemProps: MemoryProperties{Mapped: true},
	})
}

func (bp *Basepass) createStorageBuffer(size uint64) (*Buffer, error) {
	return NewBuffer(bp.dev, BufferCreateInfo{
		Size:     size,
		Usage:    vk.BufferUsageStorageBufferBit,
		MemProps: MemoryProperties{Mapped: true},
	})
}

// Layout returns the pass's pipeline layout.
func (bp *Basepass) Layout() *PipelineLayout { return bp.pl.Layout }

// stage returns the pipeline stage shaders of this pass run in.
func (bp *Basepass) stage() vk.PipelineStageFlags2 {
	if bp.pl.BindPoint() == vk.PipelineBindPointCompute {
		return vk.PipelineStageFlags2(vk.PipelineStageComputeShaderBit)
	}
	return vk.PipelineStageFlags2(vk.PipelineStageFragmentShaderBit)
}

// UniformClass classifies the name: a uniform member, an image, an image
// array, or a storage buffer.
func (bp *Basepass) UniformClass(name string) UniformClass {
	idx, ok := bp.pl.Layout.Lookup(name)
	if !ok {
		return ClassInvalid
	}
	b, ok := bp.pl.Layout.BindingAt(idx)
	if !ok {
		return ClassInvalid
	}
	switch {
	case b.Type.Tag == spirv.TagImage:
		if b.Count > 1 || b.Type.ArraySize != 0 {
			return ClassImageArray
		}
		return ClassImage
	case b.SSBO():
		return ClassBuffer
	default:
		return ClassUniform
	}
}

// lookup resolves a name to its binding, index, and value type (the member
// type when the name refers to a struct member).
func (bp *Basepass) lookup(name string) (spirv.NamedBinding, spirv.BindingIndex, *spirv.Type, bool) {
	idx, ok := bp.pl.Layout.Lookup(name)
	if !ok {
		return spirv.NamedBinding{}, idx, nil, false
	}
	b, ok := bp.pl.Layout.BindingAt(idx)
	if !ok {
		return spirv.NamedBinding{}, idx, nil, false
	}
	ty := b.Type
	if name != b.Name && ty.IsStruct() {
		if m, ok := ty.Members[name]; ok {
			ty = m.Type
		}
	}
	return b, idx, ty, true
}

// updateOrInsert replaces the staged binding with the same (index, array
// element) or inserts it keeping the list ordered.
func updateOrInsert(list []Binding, b Binding) []Binding {
	at := sort.Search(len(list), func(i int) bool {
		if list[i].Index != b.Index {
			return list[i].Index > b.Index
		}
		return list[i].ArrayIndex >= b.ArrayIndex
	})
	if at < len(list) && list[at].Index == b.Index && list[at].ArrayIndex == b.ArrayIndex {
		list[at] = b
		return list
	}
	list = append(list, Binding{})
	copy(list[at+1:], list[at:])
	list[at] = b
	return list
}

// BindImage stages an image under a shader name with a sampler filter.
func (bp *Basepass) BindImage(name string, img *Image, filter vk.Filter) error {
	if bp.UniformClass(name) != ClassImage {
		return fmt.Errorf("vkcore: %q is not an image binding", name)
	}
	_, idx, _, _ := bp.lookup(name)
	bp.bindings[idx.Set] = updateOrInsert(bp.bindings[idx.Set], BindImage(img, idx.Binding, filter, 0))
	return nil
}

// ImageFilter pairs an image with its sampler filter for array bindings.
type ImageFilter struct {
	Image  *Image
	Filter vk.Filter
}

// BindImageArray stages a slice of images into an arrayed binding.
func (bp *Basepass) BindImageArray(name string, images []ImageFilter) error {
	if bp.UniformClass(name) != ClassImageArray {
		return fmt.Errorf("vkcore: %q is not an image array binding", name)
	}
	_, idx, _, _ := bp.lookup(name)
	set := bp.bindings[idx.Set]
	for i, entry := range images {
		set = updateOrInsert(set, BindImage(entry.Image, idx.Binding, entry.Filter, uint32(i)))
	}
	bp.bindings[idx.Set] = set
	return nil
}

// BindBuffer stages a caller-owned buffer under a storage buffer name.
func (bp *Basepass) BindBuffer(name string, buf *Buffer) error {
	if bp.UniformClass(name) != ClassBuffer {
		return fmt.Errorf("vkcore: %q is not a buffer binding", name)
	}
	_, idx, _, _ := bp.lookup(name)
	bp.bindings[idx.Set] = updateOrInsert(bp.bindings[idx.Set], BindBuffer(buf, idx.Binding, 0))
	return nil
}

// BindData writes bytes under a shader name: uniform members go into the
// pass's coalesced uniform buffer at their packed offset, SSBO members
// into the pass's storage buffer. A write at the offset of a trailing
// variable-length array copies the full slab.
func (bp *Basepass) BindData(name string, data []byte) error {
	class := bp.UniformClass(name)
	if class != ClassUniform && class != ClassBuffer {
		return fmt.Errorf("vkcore: %q is not a data binding", name)
	}
	binding, idx, ty, ok := bp.lookup(name)
	if !ok {
		return fmt.Errorf("vkcore: unknown binding %q", name)
	}

	var buf *Buffer
	key := bindingKey(idx.Set, idx.Binding)
	var baseOffset uint32
	if class == ClassUniform {
		buf = bp.uniformBuffer
		bp.uniformDirty = true
		baseOffset = bp.pl.Layout.OffsetMap[key]
	} else {
		sb, ok := bp.storageBuffers[key]
		if !ok {
			return fmt.Errorf("vkcore: no storage buffer for %q", name)
		}
		buf = sb.buf
		sb.dirty = true
	}
	if buf == nil {
		return fmt.Errorf("vkcore: pass has no uniform buffer for %q", name)
	}

	offset := baseOffset + idx.Offset

	copySize := min(uint32(len(data)), ty.Size)
	if ty.Size == 0 {
		copySize = uint32(len(data))
	}
	// A trailing VLA sits exactly at the struct's non-VLA size; copy the
	// whole slab there.
	if class == ClassBuffer && idx.Offset == binding.Type.Size {
		copySize = uint32(len(data))
	}

	m := buf.Map()
	if m == nil {
		return fmt.Errorf("vkcore: pass buffer is not mapped")
	}
	if int(offset)+int(copySize) > len(m) {
		return fmt.Errorf("vkcore: write of %d bytes at %d overflows pass buffer of %d", copySize, offset, len(m))
	}
	if ty.Size > 0 && int(offset)+int(ty.Size) <= len(m) {
		clear(m[offset : offset+ty.Size])
	}
	copy(m[offset:], data[:copySize])

	bp.bindings[idx.Set] = updateOrInsert(bp.bindings[idx.Set], BindBuffer(buf, idx.Binding, baseOffset))
	return nil
}

// TransitionInput moves an image into the layout/access/stage its
// descriptor type implies before the pass samples or stores it.
func (bp *Basepass) TransitionInput(cmd *CommandBuffer, name string, img *Image) {
	if img == nil {
		return
	}
	binding, _, _, ok := bp.lookup(name)
	if !ok || binding.Type.Tag != spirv.TagImage {
		return
	}
	ty := kindToDescriptorType(binding.Kind)
	img.Transition(cmd, ImageState{
		StageMask:  bp.stage(),
		AccessMask: vk.AccessFlags2(DescriptorTypeAccess(ty)),
		Layout:     DescriptorTypeLayout(ty),
	})
}

// TransitionInputBuffer emits a barrier for a storage buffer input based
// on its reflected access flags.
func (bp *Basepass) TransitionInputBuffer(cmd *CommandBuffer, name string, buf *Buffer) {
	if buf == nil {
		return
	}
	binding, _, _, ok := bp.lookup(name)
	if !ok || !binding.Type.IsStruct() {
		return
	}
	dst := BufferMemoryState{StageMask: bp.stage()}
	if binding.Access&spirv.AccessRead != 0 {
		dst.AccessMask |= vk.AccessFlags2(vk.AccessMemoryReadBit)
	}
	if binding.Access&spirv.AccessWrite != 0 {
		dst.AccessMask |= vk.AccessFlags2(vk.AccessMemoryWriteBit)
	}
	buf.Transition(cmd, dst, 0, buf.Size())
}

// BindResources allocates a descriptor set per staged set, writes all
// staged bindings, binds the sets at the pass's bind point and clears the
// staging maps. A dirty uniform buffer is snapshotted into a fresh buffer
// so later passes do not clobber in-flight data.
func (bp *Basepass) BindResources(cmd *CommandBuffer) error {
	if err := bp.updateDescriptorSets(); err != nil {
		return err
	}
	for _, set := range bp.descriptorSets {
		set.Bind(cmd, bp.pl.BindPoint())
	}
	// Only the dependency installed by Bind keeps the sets alive now.
	bp.descriptorSets = nil
	return bp.refreshUniformBuffer(cmd)
}

func (bp *Basepass) updateDescriptorSets() error {
	bp.descriptorSets = bp.descriptorSets[:0]
	for _, set := range sortedKeys(bp.bindings) {
		staged := bp.bindings[set]
		ds, err := bp.descriptorPool.AllocateSet(set)
		if err != nil {
			return err
		}
		ds.Update(staged)
		bp.descriptorSets = append(bp.descriptorSets, ds)
	}
	clear(bp.bindings)
	return nil
}

// refreshUniformBuffer snapshots a dirty uniform buffer: the old buffer
// stays referenced by the command buffer until completion, subsequent
// passes write into the fresh copy.
func (bp *Basepass) refreshUniformBuffer(cmd *CommandBuffer) error {
	if bp.uniformBuffer == nil || !bp.uniformDirty {
		return nil
	}
	bp.uniformDirty = false
	cmd.AddDependency(bp.uniformBuffer)

	fresh, err := bp.createUniformSizedBuffer()
	if err != nil {
		return err
	}
	copy(fresh.Map(), bp.uniformBuffer.Map())
	bp.uniformBuffer = fresh
	return nil
}

// endDependency keeps the pass alive through submissions that reference
// it; there is no state to restore.
func (bp *Basepass) endDependency() {}

// Destroy releases the pass-owned buffers and descriptor pool. The
// pipeline belongs to the caller.
func (bp *Basepass) Destroy() {
	if bp.uniformBuffer != nil {
		bp.uniformBuffer.Destroy()
		bp.uniformBuffer = nil
	}
	for _, sb := range bp.storageBuffers {
		sb.buf.Destroy()
	}
	bp.storageBuffers = nil
	if bp.descriptorPool != nil {
		bp.descriptorPool.Destroy()
		bp.descriptorPool = nil
	}
}
