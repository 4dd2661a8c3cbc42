// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"time"

	"github.com/gogpu/vkcore/vk"
)

// DefaultCommandPoolSize is the number of command buffers in a pool's
// ring.
const DefaultCommandPoolSize = 256

// exhaustedLogAfter is how long BeginCmd polls a fully busy ring before
// warning once.
const exhaustedLogAfter = 10 * time.Millisecond

// CommandPool owns a fixed ring of command buffers handed out round-robin
// by a wrapping cursor. The pool never grows: when every buffer is busy it
// polls fences until one retires.
type CommandPool struct {
	handle  vk.CommandPool
	queue   *Queue
	buffers []*CommandBuffer
	next    uint64
}

// NewCommandPool creates a pool of size command buffers on the queue.
func NewCommandPool(queue *Queue, size int) (*CommandPool, error) {
	if size <= 0 {
		size = DefaultCommandPoolSize
	}
	d := queue.dev

	info := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateResetCommandBufferBit | vk.CommandPoolCreateTransientBit,
		QueueFamilyIndex: queue.family,
	}
	p := &CommandPool{queue: queue}
	if r := d.cmds.CreateCommandPool(d.handle, &info, &p.handle); r != vk.Success {
		return nil, resultErr("vkCreateCommandPool", r)
	}

	handles := make([]vk.CommandBuffer, size)
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        p.handle,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(size),
	}
	if r := d.cmds.AllocateCommandBuffers(d.handle, &allocInfo, &handles[0]); r != vk.Success {
		d.cmds.DestroyCommandPool(d.handle, p.handle)
		return nil, resultErr("vkAllocateCommandBuffers", r)
	}

	p.buffers = make([]*CommandBuffer, 0, size)
	for _, h := range handles {
		cb, err := newCommandBuffer(p, h)
		if err != nil {
			p.Destroy()
			return nil, err
		}
		p.buffers = append(p.buffers, cb)
	}
	return p, nil
}

// Queue returns the pool's queue.
func (p *CommandPool) Queue() *Queue { return p.queue }

// AllocBuffer advances the wrapping cursor to the first free command
// buffer, opportunistically flipping Pending buffers whose fences have
// signalled. If the whole ring stays busy the pool keeps polling and logs
// an exhaustion warning once; it never allocates new buffers.
func (p *CommandPool) AllocBuffer() *CommandBuffer {
	for _, cb := range p.buffers {
		cb.UpdatePendingState()
	}

	start := time.Now()
	exhausted := false
	for {
		cb := p.buffers[p.next%uint64(len(p.buffers))]
		if cb.IsFree() {
			return cb
		}
		p.next++
		if !exhausted && time.Since(start) > exhaustedLogAfter {
			Logger().Warn("vkcore: command pool is exhausted", "size", len(p.buffers))
			exhausted = true
		}
	}
}

// BeginCmd allocates a free command buffer and begins recording.
func (p *CommandPool) BeginCmd() (*CommandBuffer, error) {
	cmd := p.AllocBuffer()
	if err := cmd.Begin(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Clear waits out and clears every non-Initial buffer in the ring.
func (p *CommandPool) Clear() {
	for _, cb := range p.buffers {
		if cb.State() != CmdInitial {
			cb.WaitAndClear()
		}
	}
}

// Destroy drains the ring and destroys the pool.
func (p *CommandPool) Destroy() {
	for _, cb := range p.buffers {
		cb.destroy()
	}
	p.buffers = nil

	d := p.queue.dev
	if p.handle != 0 {
		d.cmds.DestroyCommandPool(d.handle, p.handle)
		p.handle = 0
	}
}
