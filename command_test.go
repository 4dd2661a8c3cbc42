// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"errors"
	"testing"

	"github.com/gogpu/vkcore/vk"
)

// hostCommandBuffer builds a command buffer whose device has no loaded
// entry points: state-machine guards run host-side, device calls no-op.
func hostCommandBuffer() *CommandBuffer {
	dev := &Device{cmds: vk.NewCommands()}
	queue := &Queue{dev: dev}
	pool := &CommandPool{queue: queue}
	return &CommandBuffer{
		pool:        pool,
		waitGroup:   make(map[*Semaphore]waitEntry),
		signalGroup: make(map[*Semaphore]uint64),
	}
}

func TestCommandBufferStateGuards(t *testing.T) {
	cb := hostCommandBuffer()

	if cb.State() != CmdInitial {
		t.Fatalf("fresh buffer state = %s", cb.State())
	}
	if !cb.IsFree() {
		t.Error("Initial buffer not free")
	}

	// Begin from a non-Initial state must fail without a state change.
	cb.state.Store(int32(CmdRecording))
	if err := cb.Begin(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Begin from Recording: %v", err)
	}
	if cb.State() != CmdRecording {
		t.Error("failed Begin changed state")
	}

	// end from non-Recording must fail.
	cb.state.Store(int32(CmdExecutable))
	if err := cb.end(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("end from Executable: %v", err)
	}

	// Submit from Pending (before fence observation) must fail with no
	// state change.
	cb.state.Store(int32(CmdPending))
	if err := cb.Submit(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Submit from Pending: %v", err)
	}
	if cb.State() != CmdPending {
		t.Error("failed Submit changed state")
	}

	// Submit from Initial must fail too.
	cb.state.Store(int32(CmdInitial))
	if err := cb.Submit(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Submit from Initial: %v", err)
	}

	// Invalid is terminal for recording.
	cb.state.Store(int32(CmdInvalid))
	if cb.IsFree() {
		t.Error("Invalid buffer reported free")
	}
}

func TestCommandBufferClear(t *testing.T) {
	cb := hostCommandBuffer()
	sem := &Semaphore{}

	cb.AddWait(sem, 7, vk.PipelineStageAllCommandsBit)
	cb.AddSignal(sem, 8)

	fired := 0
	cb.AddCallback(func() { fired++ })

	released := false
	cb.AddDependency(depFunc(func() { released = true }))

	cb.state.Store(int32(CmdExecutable))
	cb.Clear()

	if cb.State() != CmdInitial {
		t.Errorf("state after Clear = %s", cb.State())
	}
	if fired != 1 {
		t.Errorf("callbacks fired %d times, want 1", fired)
	}
	if !released {
		t.Error("dependency epilogue did not run")
	}
	if len(cb.waitGroup) != 0 || len(cb.signalGroup) != 0 {
		t.Error("wait/signal groups survived Clear")
	}
	if len(cb.callbacks) != 0 {
		t.Error("callbacks survived Clear")
	}

	// Clear from Initial is allowed and idempotent.
	cb.Clear()
	if fired != 1 {
		t.Error("Clear re-ran stale callbacks")
	}
}

func TestCommandBufferBeginRejectsPendingGroups(t *testing.T) {
	cb := hostCommandBuffer()
	cb.AddSignal(&Semaphore{}, 1)
	if err := cb.Begin(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Begin with staged signal group: %v", err)
	}
}

// depFunc adapts a func to the Dependency interface.
type depFunc func()

func (f depFunc) endDependency() { f() }

func TestImageEndDependencyWidensState(t *testing.T) {
	img := &Image{State: ImageState{
		StageMask:  vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
		AccessMask: vk.AccessFlags2(vk.AccessTransferWriteBit),
		Layout:     vk.ImageLayoutTransferDstOptimal,
	}}
	img.endDependency()

	if img.State.Layout != vk.ImageLayoutTransferDstOptimal {
		t.Error("endDependency must not change the layout")
	}
	wantAccess := vk.AccessFlags2(vk.AccessMemoryWriteBit | vk.AccessMemoryReadBit)
	if img.State.AccessMask != wantAccess {
		t.Errorf("access = %#x, want %#x", img.State.AccessMask, wantAccess)
	}
	if img.State.StageMask != vk.PipelineStageFlags2(vk.PipelineStageAllCommandsBit) {
		t.Errorf("stage = %#x", img.State.StageMask)
	}
}
