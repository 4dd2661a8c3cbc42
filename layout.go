// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"sort"

	"github.com/gogpu/vkcore/spirv"
	"github.com/gogpu/vkcore/vk"
)

// DescriptorLayout is one VkDescriptorSetLayout built from a reflected
// binding map.
type DescriptorLayout struct {
	dev    *Device
	handle vk.DescriptorSetLayout

	// Bindings maps binding index to its reflected description.
	Bindings map[uint32]spirv.NamedBinding

	// MaxDescriptors is the sum of descriptor counts over the bindings.
	MaxDescriptors uint32
}

func newDescriptorLayout(dev *Device, bindings map[uint32]spirv.NamedBinding) (*DescriptorLayout, error) {
	l := &DescriptorLayout{dev: dev, Bindings: bindings}

	vkBindings := make([]vk.DescriptorSetLayoutBinding, 0, len(bindings))
	for _, idx := range sortedKeys(bindings) {
		b := bindings[idx]
		l.MaxDescriptors += b.Count
		vkBindings = append(vkBindings, vk.DescriptorSetLayoutBinding{
			Binding:         idx,
			DescriptorType:  kindToDescriptorType(b.Kind),
			DescriptorCount: b.Count,
			StageFlags:      vk.ShaderStageFlags(b.Stages),
		})
	}

	info := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(vkBindings)),
	}
	if len(vkBindings) > 0 {
		info.PBindings = &vkBindings[0]
	}
	if r := dev.cmds.CreateDescriptorSetLayout(dev.handle, &info, &l.handle); r != vk.Success {
		return nil, resultErr("vkCreateDescriptorSetLayout", r)
	}
	return l, nil
}

// Handle returns the VkDescriptorSetLayout handle.
func (l *DescriptorLayout) Handle() vk.DescriptorSetLayout { return l.handle }

// Binding returns the reflected description at a binding index.
func (l *DescriptorLayout) Binding(idx uint32) (spirv.NamedBinding, bool) {
	b, ok := l.Bindings[idx]
	return b, ok
}

func (l *DescriptorLayout) destroy() {
	if l.handle != 0 {
		l.dev.cmds.DestroyDescriptorSetLayout(l.dev.handle, l.handle)
		l.handle = 0
	}
}

// bindingKey packs (set, binding) into the OffsetMap/SizeMap key.
func bindingKey(set, binding uint32) uint64 {
	return uint64(set)<<32 | uint64(binding)
}

// buildUniformPacking lays the non-SSBO bindings of a merged layout into
// one coalesced uniform buffer: each binding's offset is aligned up to its
// type alignment, SSBOs instead record their byte size for per-pass
// storage buffers.
func buildUniformPacking(sets map[uint32]map[uint32]spirv.NamedBinding) (offsets map[uint64]uint32, uniformSize uint32, ssboSizes map[uint64]uint64) {
	offsets = make(map[uint64]uint32)
	ssboSizes = make(map[uint64]uint64)

	for _, set := range sortedKeys(sets) {
		bindings := sets[set]
		for _, binding := range sortedKeys(bindings) {
			b := bindings[binding]
			if b.SSBO() {
				ssboSizes[bindingKey(set, binding)] = uint64(b.Type.Size)
				continue
			}
			if shift := uniformSize % b.Type.Alignment; shift != 0 {
				uniformSize += b.Type.Alignment - shift
			}
			offsets[bindingKey(set, binding)] = uniformSize
			uniformSize += b.Type.Size
		}
	}
	return offsets, uniformSize, ssboSizes
}

func sortedKeys[V any](m map[uint32]V) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// PipelineLayout assembles the descriptor set layouts of a merged shader
// layout plus a push-constant range covering every stage in which any
// binding is used.
type PipelineLayout struct {
	dev    *Device
	handle vk.PipelineLayout

	// DescriptorLayouts maps set index to its layout.
	DescriptorLayouts map[uint32]*DescriptorLayout

	PushConstantSize uint32
	PushStages       vk.ShaderStageFlags
	RTCount          uint32

	// BindingsByName resolves binding and struct member names.
	BindingsByName map[string]spirv.BindingIndex

	// OffsetMap places each non-SSBO binding in the coalesced uniform
	// buffer; UniformSize is that buffer's total size.
	OffsetMap   map[uint64]uint32
	UniformSize uint32

	// SizeMap carries the byte size of each SSBO binding.
	SizeMap map[uint64]uint64
}

// NewPipelineLayout builds set layouts, uniform packing and the Vulkan
// pipeline layout from a merged reflected layout.
func NewPipelineLayout(dev *Device, layout spirv.Layout) (*PipelineLayout, error) {
	pl := &PipelineLayout{
		dev:               dev,
		DescriptorLayouts: make(map[uint32]*DescriptorLayout, len(layout.Sets)),
		PushConstantSize:  layout.PushConstantSize,
		RTCount:           layout.RTCount,
		BindingsByName:    layout.BindingsByName,
	}

	var handles []vk.DescriptorSetLayout
	for _, set := range sortedKeys(layout.Sets) {
		bindings := layout.Sets[set]
		for _, b := range bindings {
			pl.PushStages |= vk.ShaderStageFlags(b.Stages)
		}
		dl, err := newDescriptorLayout(dev, bindings)
		if err != nil {
			pl.destroyLayouts()
			return nil, err
		}
		pl.DescriptorLayouts[set] = dl
		handles = append(handles, dl.handle)
	}

	pl.OffsetMap, pl.UniformSize, pl.SizeMap = buildUniformPacking(layout.Sets)

	pushRange := vk.PushConstantRange{
		StageFlags: pl.PushStages,
		Size:       pl.PushConstantSize,
	}
	info := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(handles)),
	}
	if len(handles) > 0 {
		info.PSetLayouts = &handles[0]
	}
	if pl.PushConstantSize > 0 {
		info.PushConstantRangeCount = 1
		info.PPushConstantRanges = &pushRange
	}
	if r := dev.cmds.CreatePipelineLayout(dev.handle, &info, &pl.handle); r != vk.Success {
		pl.destroyLayouts()
		return nil, resultErr("vkCreatePipelineLayout", r)
	}
	return pl, nil
}

// Handle returns the VkPipelineLayout handle.
func (pl *PipelineLayout) Handle() vk.PipelineLayout { return pl.handle }

// Lookup resolves a binding or member name.
func (pl *PipelineLayout) Lookup(name string) (spirv.BindingIndex, bool) {
	idx, ok := pl.BindingsByName[name]
	return idx, ok
}

// BindingAt returns the reflected binding at an index.
func (pl *PipelineLayout) BindingAt(idx spirv.BindingIndex) (spirv.NamedBinding, bool) {
	dl, ok := pl.DescriptorLayouts[idx.Set]
	if !ok {
		return spirv.NamedBinding{}, false
	}
	return dl.Binding(idx.Binding)
}

// CreatePool creates the head of a descriptor pool chain for this layout.
func (pl *PipelineLayout) CreatePool() (*DescriptorPool, error) {
	return newDescriptorPool(pl)
}

func (pl *PipelineLayout) destroyLayouts() {
	for _, dl := range pl.DescriptorLayouts {
		dl.destroy()
	}
	pl.DescriptorLayouts = nil
}

// Destroy releases the pipeline layout and its set layouts.
func (pl *PipelineLayout) Destroy() {
	if pl.handle != 0 {
		pl.dev.cmds.DestroyPipelineLayout(pl.dev.handle, pl.handle)
		pl.handle = 0
	}
	pl.destroyLayouts()
}
