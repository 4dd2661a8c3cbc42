// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import "github.com/gogpu/vkcore/vk"

// OSHandle is an OS-level reference to a memory or synchronisation object:
// an NT handle on Windows, a file descriptor on POSIX systems. Usable
// across processes and GPU APIs.
type OSHandle = uintptr

// NativeInterop creates shareable objects through a foreign GPU API
// (D3D11/D3D12 on Windows). Implementations create heaps, textures and
// fences with the SHARED flag and return NT handles with GENERIC_ALL
// access. The capability is injected; vkcore never links the foreign API
// itself.
type NativeInterop interface {
	// CreateSharedMemory creates a shareable memory object of the given
	// byte size and returns its OS handle.
	CreateSharedMemory(sizeBytes uint64) (OSHandle, error)

	// CreateSharedSync creates a shareable fence/semaphore object.
	CreateSharedSync() (OSHandle, error)

	// CreateSharedTexture creates a shareable texture and returns its OS
	// handle. The handle is importable as Vulkan device memory.
	CreateSharedTexture(extent vk.Extent2D, format vk.Format) (OSHandle, error)
}

// MemoryProperties describes how an allocation is reachable by the host.
type MemoryProperties struct {
	Mapped    bool
	VRAM      bool
	Download  bool
	Alignment uint32
}

// MemoryExportInfo is the wire struct handed to a consumer process. The
// consumer duplicates Handle from the owning process (PID) before
// allocating: the handle value is only meaningful inside the owner.
type MemoryExportInfo struct {
	HandleType     uint32
	PID            uint64
	Handle         OSHandle
	Offset         uint64
	Size           uint64
	AllocationSize uint64
	MemProps       MemoryProperties
}

// PlatformExternalMemoryHandleType is the default external-memory handle
// type for the host platform.
var PlatformExternalMemoryHandleType = platformMemoryHandleType

// PlatformExternalSemaphoreHandleType is the default external-semaphore
// handle type for the host platform.
var PlatformExternalSemaphoreHandleType = platformSemaphoreHandleType
