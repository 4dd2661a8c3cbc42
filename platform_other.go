// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build !windows && !linux

package vkcore

import (
	"fmt"
	"os"

	"github.com/gogpu/vkcore/vk"
)

const (
	platformMemoryHandleType    = vk.ExternalMemoryHandleTypeOpaqueFdBit
	platformSemaphoreHandleType = vk.ExternalSemaphoreHandleTypeOpaqueFdBit
)

// Cross-process handle duplication has no portable implementation here;
// import paths report ErrUnsupported.
func platformDupeHandle(pid uint64, handle OSHandle) (OSHandle, error) {
	return 0, fmt.Errorf("%w: cross-process handle duplication", ErrUnsupported)
}

func platformCloseHandle(handle OSHandle) error { return nil }

func platformCurrentPID() uint64 { return uint64(os.Getpid()) }

// platformThreadID identifies the calling OS thread; without a native
// thread id the process-wide pool is shared.
func platformThreadID() uint64 { return 0 }

// platformExternalExtensions is empty where no external-handle transport
// exists.
var platformExternalExtensions []string
