// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package vkcore

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/gogpu/vkcore/vk"
)

const (
	platformMemoryHandleType    = vk.ExternalMemoryHandleTypeOpaqueWin32Bit
	platformSemaphoreHandleType = vk.ExternalSemaphoreHandleTypeOpaqueWin32Bit
)

// genericAll is the NT GENERIC_ALL access mask used for shared handles.
const genericAll = 0x10000000

// platformDupeHandle duplicates an NT handle out of the owning process
// into the current one.
func platformDupeHandle(pid uint64, handle OSHandle) (OSHandle, error) {
	src, err := windows.OpenProcess(genericAll, false, uint32(pid))
	if err != nil {
		return 0, fmt.Errorf("%w: OpenProcess(%d): %v", ErrInvalidExternalHandle, pid, err)
	}
	defer windows.CloseHandle(src) //nolint:errcheck // best-effort close of the source process handle

	cur := windows.CurrentProcess()

	var dup windows.Handle
	err = windows.DuplicateHandle(src, windows.Handle(handle), cur, &dup, genericAll, false, windows.DUPLICATE_SAME_ACCESS)
	if err != nil {
		return 0, fmt.Errorf("%w: DuplicateHandle: %v", ErrInvalidExternalHandle, err)
	}
	return OSHandle(dup), nil
}

// platformCloseHandle releases a duplicated or exported handle.
func platformCloseHandle(handle OSHandle) error {
	if handle == 0 {
		return nil
	}
	return windows.CloseHandle(windows.Handle(handle))
}

// platformCurrentPID returns the current process id for export info.
func platformCurrentPID() uint64 {
	return uint64(windows.GetCurrentProcessId())
}

// platformThreadID identifies the calling OS thread. Callers that record
// commands are expected to have locked their goroutine to a thread.
func platformThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}

// platformExternalExtensions are the external-handle device extensions on
// Windows.
var platformExternalExtensions = []string{
	"VK_KHR_external_semaphore_win32",
	"VK_KHR_external_memory_win32",
	"VK_EXT_external_memory_host",
}
