// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"bytes"
	"testing"

	"github.com/gogpu/vkcore/vk"
)

// newTestContext opens a context or skips when no Vulkan driver (or no
// adapter with the required feature set) is present.
func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := NewContext(ContextOptions{AppName: "vkcore-test"})
	if err != nil {
		t.Skipf("no usable Vulkan driver: %v", err)
	}
	t.Cleanup(ctx.Destroy)
	return ctx
}

func TestIntegrationBufferUploadRoundTrip(t *testing.T) {
	ctx := newTestContext(t)
	dev := ctx.Device()

	src, err := NewBuffer(dev, BufferCreateInfo{
		Size:     1024,
		Usage:    vk.BufferUsageTransferSrcBit,
		MemProps: MemoryProperties{Mapped: true},
	})
	if err != nil {
		t.Fatalf("NewBuffer src: %v", err)
	}
	defer src.Destroy()

	dst, err := NewBuffer(dev, BufferCreateInfo{
		Size:     1024,
		Usage:    vk.BufferUsageTransferDstBit,
		MemProps: MemoryProperties{Mapped: true, Download: true},
	})
	if err != nil {
		t.Fatalf("NewBuffer dst: %v", err)
	}
	defer dst.Destroy()

	payload := bytes.Repeat([]byte{0xAB, 0xCD}, 512)
	if err := src.Copy(payload, 0); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	cmd, err := dev.BeginCmd()
	if err != nil {
		t.Fatalf("BeginCmd: %v", err)
	}
	if err := dst.Upload(cmd, src, nil); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := cmd.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !cmd.Wait(DefaultWaitTimeout) {
		t.Fatal("command buffer wait timed out")
	}
	if cmd.State() != CmdInitial {
		t.Errorf("state after fence = %s, want Initial", cmd.State())
	}

	if !bytes.Equal(dst.Map()[:len(payload)], payload) {
		t.Error("download bytes differ from upload")
	}
}

func TestIntegrationCommandBufferLifecycle(t *testing.T) {
	ctx := newTestContext(t)
	dev := ctx.Device()

	cmd, err := dev.BeginCmd()
	if err != nil {
		t.Fatalf("BeginCmd: %v", err)
	}
	if cmd.State() != CmdRecording {
		t.Fatalf("state after Begin = %s", cmd.State())
	}

	img, err := NewImage(dev, ImageCreateInfo{
		Extent: vk.Extent2D{Width: 64, Height: 64},
		Format: vk.FormatR8G8B8A8Unorm,
		Usage:  vk.ImageUsageTransferDstBit | vk.ImageUsageTransferSrcBit,
	})
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	defer img.Destroy()

	if img.State.Layout != vk.ImageLayoutUndefined {
		t.Errorf("fresh image layout = %d", img.State.Layout)
	}
	if err := img.Clear(cmd, vk.ClearColorValue{Float32: [4]float32{1, 0, 0, 1}}); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	fired := false
	cmd.AddCallback(func() { fired = true })

	if err := cmd.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if cmd.State() != CmdPending {
		t.Fatalf("state after Submit = %s", cmd.State())
	}
	if err := cmd.Submit(); err == nil {
		t.Error("second Submit before observation succeeded")
	}
	if cmd.State() != CmdPending {
		t.Error("failed second Submit changed state")
	}

	if !cmd.Wait(DefaultWaitTimeout) {
		t.Fatal("wait timed out")
	}
	if !fired {
		t.Error("completion callback did not fire")
	}
	if cmd.State() != CmdInitial {
		t.Errorf("state after observation = %s", cmd.State())
	}
}

func TestIntegrationTimelineSemaphoreOrdering(t *testing.T) {
	ctx := newTestContext(t)
	dev := ctx.Device()

	sem, err := NewSemaphore(dev, 0, 0)
	if err != nil {
		t.Fatalf("NewSemaphore: %v", err)
	}
	defer sem.Destroy()

	first, err := dev.BeginCmd()
	if err != nil {
		t.Fatalf("BeginCmd: %v", err)
	}
	first.AddSignal(sem, 1)
	if err := first.Submit(); err != nil {
		t.Fatalf("Submit first: %v", err)
	}

	second, err := dev.BeginCmd()
	if err != nil {
		t.Fatalf("BeginCmd second: %v", err)
	}
	second.AddWait(sem, 1, vk.PipelineStageAllCommandsBit)
	second.AddSignal(sem, 2)
	if err := second.Submit(); err != nil {
		t.Fatalf("Submit second: %v", err)
	}

	if err := sem.Wait(2, DefaultWaitTimeout); err != nil {
		t.Fatalf("semaphore wait: %v", err)
	}
	value, err := sem.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if value < 2 {
		t.Errorf("timeline value = %d, want >= 2", value)
	}

	first.WaitAndClear()
	second.WaitAndClear()
}

func TestIntegrationImagePoolRecycling(t *testing.T) {
	ctx := newTestContext(t)
	dev := ctx.Device()

	info := ImageCreateInfo{
		Extent: vk.Extent2D{Width: 128, Height: 128},
		Format: vk.FormatR8G8B8A8Unorm,
		Usage:  vk.ImageUsageSampledBit | vk.ImageUsageTransferDstBit,
	}

	img, err := dev.Pools.Image.Get(info, "test")
	if err != nil {
		t.Fatalf("pool Get: %v", err)
	}
	handle := uint64(img.Handle())
	if !dev.Pools.Image.IsUsed(handle) {
		t.Error("pooled image not marked in-use")
	}
	dev.Pools.Image.Release(handle)

	again, err := dev.Pools.Image.Get(info, "test")
	if err != nil {
		t.Fatalf("pool Get again: %v", err)
	}
	if uint64(again.Handle()) != handle {
		t.Error("pool did not recycle the image within the window")
	}
	dev.Pools.Image.Release(uint64(again.Handle()))
}
