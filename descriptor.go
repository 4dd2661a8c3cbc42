// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"sync"

	"github.com/gogpu/vkcore/vk"
)

// descriptorPoolSetsPerLayout scales the nominal pool capacity:
// maxSets = layoutCount × descriptorPoolSetsPerLayout.
const descriptorPoolSetsPerLayout = 1024

// DescriptorPool is one link of a lazily grown chain of fixed-capacity
// pools. When the head is exhausted, allocation chains to (or creates) the
// successor. Sets keep their pool alive; prev is bookkeeping only and is
// never dereferenced after the link drains.
type DescriptorPool struct {
	layout *PipelineLayout
	handle vk.DescriptorPool
	sizes  []vk.DescriptorPoolSize

	mu      sync.Mutex
	maxSets uint32
	inUse   uint32
	next    *DescriptorPool
	prev    *DescriptorPool
}

// poolSizes totals descriptor counts per type over every set layout,
// scaled by the nominal per-layout capacity.
func poolSizes(layout *PipelineLayout) []vk.DescriptorPoolSize {
	counter := make(map[vk.DescriptorType]uint32)
	for _, dl := range layout.DescriptorLayouts {
		for _, b := range dl.Bindings {
			counter[kindToDescriptorType(b.Kind)] += b.Count
		}
	}

	sizes := make([]vk.DescriptorPoolSize, 0, len(counter))
	for ty, count := range counter {
		sizes = append(sizes, vk.DescriptorPoolSize{Type: ty, DescriptorCount: count * descriptorPoolSetsPerLayout})
	}
	if len(sizes) == 0 {
		sizes = append(sizes, vk.DescriptorPoolSize{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: descriptorPoolSetsPerLayout})
	}
	return sizes
}

func newDescriptorPool(layout *PipelineLayout) (*DescriptorPool, error) {
	p := &DescriptorPool{
		layout:  layout,
		sizes:   poolSizes(layout),
		maxSets: uint32(len(layout.DescriptorLayouts)) * descriptorPoolSetsPerLayout,
	}
	if p.maxSets == 0 {
		p.maxSets = descriptorPoolSetsPerLayout
	}

	info := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateFreeDescriptorSetBit,
		MaxSets:       p.maxSets,
		PoolSizeCount: uint32(len(p.sizes)),
		PPoolSizes:    &p.sizes[0],
	}
	d := layout.dev
	if r := d.cmds.CreateDescriptorPool(d.handle, &info, &p.handle); r != vk.Success {
		return nil, resultErr("vkCreateDescriptorPool", r)
	}
	return p, nil
}

// AllocateSet allocates a descriptor set for the given set index,
// chaining a successor pool when this link is full.
func (p *DescriptorPool) AllocateSet(set uint32) (*DescriptorSet, error) {
	p.mu.Lock()
	if p.inUse == p.maxSets {
		if p.next == nil {
			next, err := newDescriptorPool(p.layout)
			if err != nil {
				p.mu.Unlock()
				return nil, err
			}
			next.prev = p
			p.next = next
		}
		next := p.next
		p.mu.Unlock()
		return next.AllocateSet(set)
	}
	p.inUse++
	p.mu.Unlock()

	ds, err := newDescriptorSet(p, set)
	if err != nil {
		p.mu.Lock()
		p.inUse--
		p.mu.Unlock()
		return nil, err
	}
	return ds, nil
}

// Destroy releases the pool and its chained successors. Requires no live
// sets.
func (p *DescriptorPool) Destroy() {
	if p.next != nil {
		p.next.Destroy()
		p.next = nil
	}
	if p.handle != 0 {
		d := p.layout.dev
		d.cmds.DestroyDescriptorPool(d.handle, p.handle)
		p.handle = 0
	}
}

// DescriptorSet is an allocated set referencing its pool and layout by
// shared lifetime.
type DescriptorSet struct {
	pool     *DescriptorPool
	layout   *DescriptorLayout
	handle   vk.DescriptorSet
	setIndex uint32
}

func newDescriptorSet(pool *DescriptorPool, set uint32) (*DescriptorSet, error) {
	dl, ok := pool.layout.DescriptorLayouts[set]
	if !ok {
		return nil, ErrPoolExhausted
	}

	info := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool.handle,
		DescriptorSetCount: 1,
		PSetLayouts:        &dl.handle,
	}
	ds := &DescriptorSet{pool: pool, layout: dl, setIndex: set}
	d := pool.layout.dev
	if r := d.cmds.AllocateDescriptorSets(d.handle, &info, &ds.handle); r != vk.Success {
		return nil, resultErr("vkAllocateDescriptorSets", r)
	}
	return ds, nil
}

// Handle returns the VkDescriptorSet handle.
func (s *DescriptorSet) Handle() vk.DescriptorSet { return s.handle }

// descriptorType returns the Vulkan type of a binding index in this set.
func (s *DescriptorSet) descriptorType(binding uint32) vk.DescriptorType {
	b := s.layout.Bindings[binding]
	return kindToDescriptorType(b.Kind)
}

// Update writes all staged bindings of the set in a single
// vkUpdateDescriptorSets call, grouping array entries into contiguous
// image-info runs.
func (s *DescriptorSet) Update(bindings []Binding) {
	if len(bindings) == 0 {
		return
	}

	d := s.pool.layout.dev
	writes := make([]vk.WriteDescriptorSet, 0, len(s.layout.Bindings))

	// imageRuns and bufferRuns keep the per-write info arrays alive and
	// contiguous until the update call.
	var imageRuns [][]vk.DescriptorImageInfo
	var bufferRuns [][]vk.DescriptorBufferInfo

	for start := 0; start < len(bindings); {
		idx := bindings[start].Index
		end := start
		for end < len(bindings) && bindings[end].Index == idx {
			end++
		}

		b := s.layout.Bindings[idx]
		ty := kindToDescriptorType(b.Kind)
		group := bindings[start:end]

		write := vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          s.handle,
			DstBinding:      idx,
			DescriptorType:  ty,
			DescriptorCount: b.Count,
		}

		if group[0].Buffer != nil {
			infos := make([]vk.DescriptorBufferInfo, 1)
			infos[0] = group[0].bufferInfo(ty)
			bufferRuns = append(bufferRuns, infos)
			write.DescriptorCount = 1
			write.PBufferInfo = &infos[0]
		} else {
			infos := make([]vk.DescriptorImageInfo, b.Count)
			first := group[0].imageInfo(ty)
			for i := range infos {
				infos[i] = first
			}
			for _, entry := range group {
				if entry.ArrayIndex < uint32(len(infos)) {
					infos[entry.ArrayIndex] = entry.imageInfo(ty)
				}
			}
			imageRuns = append(imageRuns, infos)
			write.PImageInfo = &infos[0]
		}

		writes = append(writes, write)
		start = end
	}

	d.cmds.UpdateDescriptorSets(d.handle, uint32(len(writes)), &writes[0], 0, nil)

	// The runs must stay reachable until the call above returns.
	_ = imageRuns
	_ = bufferRuns
}

// Bind records the set at the given bind point and keeps it alive until
// the command buffer completes.
func (s *DescriptorSet) Bind(cmd *CommandBuffer, bindPoint vk.PipelineBindPoint) {
	cmd.AddDependency(s)
	d := s.pool.layout.dev
	d.cmds.CmdBindDescriptorSets(cmd.handle, bindPoint, s.pool.layout.handle, s.setIndex, 1, &s.handle, 0, nil)
}

// endDependency releases the set back to its pool once the command buffer
// that bound it has retired.
func (s *DescriptorSet) endDependency() {
	s.Free()
}

// Free returns the set to its pool.
func (s *DescriptorSet) Free() {
	if s.handle == 0 {
		return
	}
	p := s.pool
	p.mu.Lock()
	defer p.mu.Unlock()

	d := p.layout.dev
	if r := d.cmds.FreeDescriptorSets(d.handle, p.handle, 1, &s.handle); r != vk.Success {
		Logger().Warn("vkcore: vkFreeDescriptorSets failed", "result", r.String())
	}
	s.handle = 0
	p.inUse--
	if p.inUse == 0 {
		// Unlink a drained chain member; prev is bookkeeping only.
		if p.prev != nil {
			p.prev.next = p.next
		}
		if p.next != nil {
			p.next.prev = p.prev
		}
	}
}
