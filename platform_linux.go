// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build linux

package vkcore

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/gogpu/vkcore/vk"
)

const (
	platformMemoryHandleType    = vk.ExternalMemoryHandleTypeOpaqueFdBit
	platformSemaphoreHandleType = vk.ExternalSemaphoreHandleTypeOpaqueFdBit
)

// platformDupeHandle pulls a file descriptor out of the owning process via
// pidfd_getfd(2). Requires Linux 5.6+ and ptrace permission over the owner.
func platformDupeHandle(pid uint64, handle OSHandle) (OSHandle, error) {
	pidfd, err := unix.PidfdOpen(int(pid), 0)
	if err != nil {
		return 0, fmt.Errorf("%w: pidfd_open(%d): %v", ErrInvalidExternalHandle, pid, err)
	}
	defer unix.Close(pidfd) //nolint:errcheck // best-effort close of the pidfd

	fd, err := unix.PidfdGetfd(pidfd, int(handle), 0)
	if err != nil {
		return 0, fmt.Errorf("%w: pidfd_getfd: %v", ErrInvalidExternalHandle, err)
	}
	return OSHandle(fd), nil
}

// platformCloseHandle releases a duplicated or exported descriptor.
func platformCloseHandle(handle OSHandle) error {
	if handle == 0 {
		return nil
	}
	return unix.Close(int(handle))
}

// platformCurrentPID returns the current process id for export info.
func platformCurrentPID() uint64 {
	return uint64(unix.Getpid())
}

// platformThreadID identifies the calling OS thread. Callers that record
// commands are expected to have locked their goroutine to a thread.
func platformThreadID() uint64 {
	return uint64(unix.Gettid())
}

// platformExternalExtensions are the external-handle device extensions on
// Linux.
var platformExternalExtensions = []string{
	"VK_KHR_external_semaphore_fd",
	"VK_KHR_external_memory_fd",
}
