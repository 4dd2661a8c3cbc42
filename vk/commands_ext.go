// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// External memory / external semaphore entry points
// (VK_KHR_external_memory_win32, VK_KHR_external_memory_fd,
// VK_KHR_external_semaphore_win32, VK_KHR_external_semaphore_fd).

// HasExternalMemoryWin32 reports whether the win32 memory handle entry
// points resolved.
func (c *Commands) HasExternalMemoryWin32() bool { return c.getMemoryWin32HandleKHR != nil }

// HasExternalMemoryFd reports whether the fd memory handle entry points
// resolved.
func (c *Commands) HasExternalMemoryFd() bool { return c.getMemoryFdKHR != nil }

// GetMemoryWin32HandleKHR wraps vkGetMemoryWin32HandleKHR.
func (c *Commands) GetMemoryWin32HandleKHR(device Device, info *MemoryGetWin32HandleInfoKHR, handle *uintptr) Result {
	return callR(&SigResultHandlePtrPtr, c.getMemoryWin32HandleKHR, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(info), ptr(handle),
	})
}

// GetMemoryWin32HandlePropertiesKHR wraps vkGetMemoryWin32HandlePropertiesKHR.
func (c *Commands) GetMemoryWin32HandlePropertiesKHR(device Device, handleType ExternalMemoryHandleTypeFlagBits, handle uintptr, props *MemoryWin32HandlePropertiesKHR) Result {
	h := uint64(handle)
	return callR(&SigResultHandleU32U64Ptr, c.getMemoryWin32HandlePropertiesKHR, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&handleType), unsafe.Pointer(&h), ptr(props),
	})
}

// GetMemoryFdKHR wraps vkGetMemoryFdKHR.
func (c *Commands) GetMemoryFdKHR(device Device, info *MemoryGetFdInfoKHR, fd *int32) Result {
	return callR(&SigResultHandlePtrPtr, c.getMemoryFdKHR, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(info), ptr(fd),
	})
}

// GetMemoryFdPropertiesKHR wraps vkGetMemoryFdPropertiesKHR.
func (c *Commands) GetMemoryFdPropertiesKHR(device Device, handleType ExternalMemoryHandleTypeFlagBits, fd int32, props *MemoryFdPropertiesKHR) Result {
	return callR(&SigResultHandleU32I32Ptr, c.getMemoryFdPropertiesKHR, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&handleType), unsafe.Pointer(&fd), ptr(props),
	})
}

// GetSemaphoreWin32HandleKHR wraps vkGetSemaphoreWin32HandleKHR.
func (c *Commands) GetSemaphoreWin32HandleKHR(device Device, info *SemaphoreGetWin32HandleInfoKHR, handle *uintptr) Result {
	return callR(&SigResultHandlePtrPtr, c.getSemaphoreWin32HandleKHR, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(info), ptr(handle),
	})
}

// ImportSemaphoreWin32HandleKHR wraps vkImportSemaphoreWin32HandleKHR.
func (c *Commands) ImportSemaphoreWin32HandleKHR(device Device, info *ImportSemaphoreWin32HandleInfoKHR) Result {
	return callR(&SigResultHandlePtr, c.importSemaphoreWin32HandleKHR, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(info),
	})
}

// GetSemaphoreFdKHR wraps vkGetSemaphoreFdKHR.
func (c *Commands) GetSemaphoreFdKHR(device Device, info *SemaphoreGetFdInfoKHR, fd *int32) Result {
	return callR(&SigResultHandlePtrPtr, c.getSemaphoreFdKHR, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(info), ptr(fd),
	})
}

// ImportSemaphoreFdKHR wraps vkImportSemaphoreFdKHR.
func (c *Commands) ImportSemaphoreFdKHR(device Device, info *ImportSemaphoreFdInfoKHR) Result {
	return callR(&SigResultHandlePtr, c.importSemaphoreFdKHR, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(info),
	})
}
