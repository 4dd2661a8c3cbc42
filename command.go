// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"fmt"
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// CmdState is the command buffer lifecycle state.
type CmdState int32

// Command buffer states.
const (
	CmdInitial CmdState = iota
	CmdRecording
	CmdExecutable
	CmdPending
	CmdInvalid
)

// String returns the state name.
func (s CmdState) String() string {
	switch s {
	case CmdInitial:
		return "Initial"
	case CmdRecording:
		return "Recording"
	case CmdExecutable:
		return "Executable"
	case CmdPending:
		return "Pending"
	default:
		return "Invalid"
	}
}

// DefaultWaitTimeout is the fence wait deadline used by Wait.
const DefaultWaitTimeout uint64 = 3_000_000_000 // 3s in ns

// Dependency is anything a command buffer keeps alive until its fence is
// observed signalled. endDependency runs on Clear, after completion.
type Dependency interface {
	endDependency()
}

type waitEntry struct {
	value uint64
	stage vk.PipelineStageFlags
}

// CommandBuffer is one recorded unit of GPU work with an explicit
// five-state lifecycle, timeline-semaphore wait/signal groups, deferred
// callbacks and a dependency list that outlives submission.
type CommandBuffer struct {
	pool   *CommandPool
	handle vk.CommandBuffer
	fence  vk.Fence

	state atomic.Int32

	waitGroup   map[*Semaphore]waitEntry
	signalGroup map[*Semaphore]uint64
	callbacks   []func()
	preSubmit   []func(*CommandBuffer)
}

func newCommandBuffer(pool *CommandPool, handle vk.CommandBuffer) (*CommandBuffer, error) {
	c := &CommandBuffer{
		pool:        pool,
		handle:      handle,
		waitGroup:   make(map[*Semaphore]waitEntry),
		signalGroup: make(map[*Semaphore]uint64),
	}

	d := pool.queue.dev
	info := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	if r := d.cmds.CreateFence(d.handle, &info, &c.fence); r != vk.Success {
		return nil, resultErr("vkCreateFence", r)
	}
	return c, nil
}

func (c *CommandBuffer) device() *Device { return c.pool.queue.dev }

// Handle returns the VkCommandBuffer handle.
func (c *CommandBuffer) Handle() vk.CommandBuffer { return c.handle }

// State returns the current lifecycle state.
func (c *CommandBuffer) State() CmdState { return CmdState(c.state.Load()) }

// Begin moves Initial -> Recording.
func (c *CommandBuffer) Begin() error {
	if c.pool == nil || c.State() != CmdInitial {
		return fmt.Errorf("%w: begin from %s", ErrInvalidState, c.State())
	}
	if len(c.waitGroup) != 0 || len(c.signalGroup) != 0 {
		return fmt.Errorf("%w: begin with non-empty wait/signal groups", ErrInvalidState)
	}

	info := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageOneTimeSubmitBit,
	}
	if r := c.device().cmds.BeginCommandBuffer(c.handle, &info); r != vk.Success {
		return resultErr("vkBeginCommandBuffer", r)
	}
	c.state.Store(int32(CmdRecording))
	return nil
}

// end moves Recording -> Executable. Submit calls it implicitly.
func (c *CommandBuffer) end() error {
	if c.pool == nil || c.State() != CmdRecording {
		return fmt.Errorf("%w: end from %s", ErrInvalidState, c.State())
	}
	if r := c.device().cmds.EndCommandBuffer(c.handle); r != vk.Success {
		return resultErr("vkEndCommandBuffer", r)
	}
	c.state.Store(int32(CmdExecutable))
	return nil
}

// AddWait makes the submission wait for the semaphore to reach value at
// the given stages.
func (c *CommandBuffer) AddWait(sem *Semaphore, value uint64, stage vk.PipelineStageFlags) {
	c.waitGroup[sem] = waitEntry{value: value, stage: stage}
}

// AddSignal makes the submission advance the semaphore to value.
func (c *CommandBuffer) AddSignal(sem *Semaphore, value uint64) {
	c.signalGroup[sem] = value
}

// AddCallback defers fn until the command buffer is cleared after
// completion.
func (c *CommandBuffer) AddCallback(fn func()) {
	c.callbacks = append(c.callbacks, fn)
}

// AddPreSubmit registers a hook that runs at the start of Submit.
func (c *CommandBuffer) AddPreSubmit(fn func(*CommandBuffer)) {
	c.preSubmit = append(c.preSubmit, fn)
}

// AddDependency holds strong references to the resources until the fence
// is observed signalled; their dependency epilogues run on Clear. This is
// the mechanism keeping images, buffers, views, descriptor sets and
// uniform snapshots alive through submission.
func (c *CommandBuffer) AddDependency(resources ...Dependency) {
	c.callbacks = append(c.callbacks, func() {
		for _, r := range resources {
			r.endDependency()
		}
	})
}

// Submit flattens the wait/signal groups into a timeline submission,
// signals the buffer's fence and moves it to Pending. A buffer still
// Recording is ended first. Errors leave the state unchanged.
func (c *CommandBuffer) Submit() error {
	for _, fn := range c.preSubmit {
		fn(c)
	}
	c.preSubmit = nil

	if c.pool == nil {
		return fmt.Errorf("%w: submit on orphaned command buffer", ErrInvalidState)
	}
	if c.State() == CmdRecording {
		if err := c.end(); err != nil {
			return err
		}
	}
	if c.State() != CmdExecutable {
		return fmt.Errorf("%w: submit from %s", ErrInvalidState, c.State())
	}

	waits := make([]vk.Semaphore, 0, len(c.waitGroup))
	waitValues := make([]uint64, 0, len(c.waitGroup))
	waitStages := make([]vk.PipelineStageFlags, 0, len(c.waitGroup))
	for sem, entry := range c.waitGroup {
		waits = append(waits, sem.handle)
		waitValues = append(waitValues, entry.value)
		waitStages = append(waitStages, entry.stage)
	}

	signals := make([]vk.Semaphore, 0, len(c.signalGroup))
	signalValues := make([]uint64, 0, len(c.signalGroup))
	for sem, value := range c.signalGroup {
		signals = append(signals, sem.handle)
		signalValues = append(signalValues, value)
	}

	timeline := vk.TimelineSemaphoreSubmitInfo{
		SType:                     vk.StructureTypeTimelineSemaphoreSubmitInfo,
		WaitSemaphoreValueCount:   uint32(len(waitValues)),
		SignalSemaphoreValueCount: uint32(len(signalValues)),
	}
	if len(waitValues) > 0 {
		timeline.PWaitSemaphoreValues = &waitValues[0]
	}
	if len(signalValues) > 0 {
		timeline.PSignalSemaphoreValues = &signalValues[0]
	}

	submit := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    &c.handle,
	}
	submit.PNext = unsafe.Pointer(&timeline)
	if len(waits) > 0 {
		submit.WaitSemaphoreCount = uint32(len(waits))
		submit.PWaitSemaphores = &waits[0]
		submit.PWaitDstStageMask = &waitStages[0]
	}
	if len(signals) > 0 {
		submit.SignalSemaphoreCount = uint32(len(signals))
		submit.PSignalSemaphores = &signals[0]
	}

	if r := c.pool.queue.Submit(1, &submit, c.fence); r != vk.Success {
		return resultErr("vkQueueSubmit", r)
	}
	c.state.Store(int32(CmdPending))
	return nil
}

// Wait blocks up to timeoutNs for the fence, clearing the buffer on
// success. On timeout the buffer stays Pending and Wait returns false.
func (c *CommandBuffer) Wait(timeoutNs uint64) bool {
	d := c.device()
	if r := d.cmds.WaitForFences(d.handle, 1, &c.fence, false, timeoutNs); r != vk.Success {
		Logger().Warn("vkcore: command buffer wait timeout")
		return false
	}
	c.Clear()
	return true
}

// WaitAndClear blocks without bound for a Pending buffer, then clears it.
func (c *CommandBuffer) WaitAndClear() {
	if c.State() == CmdPending {
		d := c.device()
		if r := d.cmds.WaitForFences(d.handle, 1, &c.fence, false, math.MaxUint64); r != vk.Success {
			Logger().Error("vkcore: clearing command buffer without finishing", "result", r.String())
		}
	}
	c.Clear()
}

// Clear resets the fence and the recorded commands, runs the deferred
// callbacks (releasing held dependencies) and returns to Initial.
func (c *CommandBuffer) Clear() {
	d := c.device()
	if r := d.cmds.ResetFences(d.handle, 1, &c.fence); r != vk.Success {
		Logger().Warn("vkcore: fence reset failed", "result", r.String())
	}
	if r := d.cmds.ResetCommandBuffer(c.handle, vk.CommandBufferResetReleaseResourcesBit); r != vk.Success {
		Logger().Warn("vkcore: command buffer reset failed", "result", r.String())
	}

	for _, fn := range c.callbacks {
		fn()
	}
	c.callbacks = nil
	clear(c.waitGroup)
	clear(c.signalGroup)
	c.state.Store(int32(CmdInitial))
}

// UpdatePendingState opportunistically observes the fence of a Pending
// buffer and clears it when signalled.
func (c *CommandBuffer) UpdatePendingState() {
	if c.State() != CmdPending {
		return
	}
	d := c.device()
	if d.cmds.GetFenceStatus(d.handle, c.fence) != vk.Success {
		return
	}
	c.Clear()
}

// IsFree reports whether the buffer can start recording: Initial, or
// Pending with the fence observed signalled (which clears it).
func (c *CommandBuffer) IsFree() bool {
	switch c.State() {
	case CmdInitial:
		return true
	case CmdPending:
		d := c.device()
		if d.cmds.GetFenceStatus(d.handle, c.fence) == vk.Success {
			c.Clear()
			return true
		}
		return false
	default:
		return false
	}
}

func (c *CommandBuffer) destroy() {
	c.WaitAndClear()
	d := c.device()
	d.cmds.DestroyFence(d.handle, c.fence)
	c.fence = 0
	c.pool = nil
}
