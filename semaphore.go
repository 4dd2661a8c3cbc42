// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// Semaphore is a timeline semaphore with an exported OS handle. The value
// is a 64-bit monotonic counter both CPU and GPU can wait on.
type Semaphore struct {
	dev      *Device
	handle   vk.Semaphore
	osHandle OSHandle
}

// NewSemaphore creates an exportable timeline semaphore. When extHandle is
// non-zero the payload is imported from the owning process (pid) before
// the handle is re-exported.
func NewSemaphore(dev *Device, pid uint64, extHandle OSHandle) (*Semaphore, error) {
	handleType := PlatformExternalSemaphoreHandleType

	win32Info := vk.ExportSemaphoreWin32HandleInfoKHR{
		SType:    vk.StructureTypeExportSemaphoreWin32HandleInfoKHR,
		DwAccess: genericAllAccess,
	}
	exportInfo := vk.ExportSemaphoreCreateInfo{
		SType:       vk.StructureTypeExportSemaphoreCreateInfo,
		HandleTypes: vk.ExternalSemaphoreHandleTypeFlags(handleType),
	}
	if handleType == vk.ExternalSemaphoreHandleTypeOpaqueWin32Bit {
		exportInfo.PNext = unsafe.Pointer(&win32Info)
	}
	typeInfo := vk.SemaphoreTypeCreateInfo{
		SType:         vk.StructureTypeSemaphoreTypeCreateInfo,
		PNext:         unsafe.Pointer(&exportInfo),
		SemaphoreType: vk.SemaphoreTypeTimeline,
		InitialValue:  0,
	}
	createInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
		PNext: unsafe.Pointer(&typeInfo),
	}

	s := &Semaphore{dev: dev}
	if r := dev.cmds.CreateSemaphore(dev.handle, &createInfo, &s.handle); r != vk.Success {
		return nil, resultErr("vkCreateSemaphore", r)
	}

	if extHandle != 0 {
		dup, err := platformDupeHandle(pid, extHandle)
		if err != nil {
			dev.cmds.DestroySemaphore(dev.handle, s.handle)
			return nil, err
		}
		if err := s.importPayload(dup); err != nil {
			dev.cmds.DestroySemaphore(dev.handle, s.handle)
			return nil, err
		}
	}

	if err := s.export(); err != nil {
		dev.cmds.DestroySemaphore(dev.handle, s.handle)
		return nil, err
	}
	return s, nil
}

func (s *Semaphore) importPayload(handle OSHandle) error {
	d := s.dev
	if PlatformExternalSemaphoreHandleType == vk.ExternalSemaphoreHandleTypeOpaqueFdBit {
		info := vk.ImportSemaphoreFdInfoKHR{
			SType:      vk.StructureTypeImportSemaphoreFdInfoKHR,
			Semaphore:  s.handle,
			HandleType: PlatformExternalSemaphoreHandleType,
			Fd:         int32(handle),
		}
		return resultErr("vkImportSemaphoreFdKHR", d.cmds.ImportSemaphoreFdKHR(d.handle, &info))
	}
	info := vk.ImportSemaphoreWin32HandleInfoKHR{
		SType:      vk.StructureTypeImportSemaphoreWin32HandleInfoKHR,
		Semaphore:  s.handle,
		HandleType: PlatformExternalSemaphoreHandleType,
		Handle:     handle,
	}
	return resultErr("vkImportSemaphoreWin32HandleKHR", d.cmds.ImportSemaphoreWin32HandleKHR(d.handle, &info))
}

func (s *Semaphore) export() error {
	d := s.dev
	if PlatformExternalSemaphoreHandleType == vk.ExternalSemaphoreHandleTypeOpaqueFdBit {
		var fd int32
		info := vk.SemaphoreGetFdInfoKHR{
			SType:      vk.StructureTypeSemaphoreGetFdInfoKHR,
			Semaphore:  s.handle,
			HandleType: PlatformExternalSemaphoreHandleType,
		}
		if err := resultErr("vkGetSemaphoreFdKHR", d.cmds.GetSemaphoreFdKHR(d.handle, &info, &fd)); err != nil {
			return err
		}
		s.osHandle = OSHandle(fd)
		return nil
	}
	var handle OSHandle
	info := vk.SemaphoreGetWin32HandleInfoKHR{
		SType:      vk.StructureTypeSemaphoreGetWin32HandleInfoKHR,
		Semaphore:  s.handle,
		HandleType: PlatformExternalSemaphoreHandleType,
	}
	if err := resultErr("vkGetSemaphoreWin32HandleKHR", d.cmds.GetSemaphoreWin32HandleKHR(d.handle, &info, &handle)); err != nil {
		return err
	}
	s.osHandle = handle
	return nil
}

// Handle returns the VkSemaphore handle.
func (s *Semaphore) Handle() vk.Semaphore { return s.handle }

// OSHandle returns the exported shareable handle.
func (s *Semaphore) OSHandle() OSHandle { return s.osHandle }

// Signal sets the timeline to value from the host.
func (s *Semaphore) Signal(value uint64) error {
	info := vk.SemaphoreSignalInfo{
		SType:     vk.StructureTypeSemaphoreSignalInfo,
		Semaphore: s.handle,
		Value:     value,
	}
	return resultErr("vkSignalSemaphore", s.dev.cmds.SignalSemaphore(s.dev.handle, &info))
}

// Wait blocks until the timeline reaches value or the timeout elapses.
// Returns ErrTimeout on expiry.
func (s *Semaphore) Wait(value uint64, timeoutNs uint64) error {
	info := vk.SemaphoreWaitInfo{
		SType:          vk.StructureTypeSemaphoreWaitInfo,
		SemaphoreCount: 1,
		PSemaphores:    &s.handle,
		PValues:        &value,
	}
	return resultErr("vkWaitSemaphores", s.dev.cmds.WaitSemaphores(s.dev.handle, &info, timeoutNs))
}

// Value reads the current timeline value.
func (s *Semaphore) Value() (uint64, error) {
	var v uint64
	if err := resultErr("vkGetSemaphoreCounterValue", s.dev.cmds.GetSemaphoreCounterValue(s.dev.handle, s.handle, &v)); err != nil {
		return 0, err
	}
	return v, nil
}

// Destroy closes the exported handle and destroys the semaphore.
func (s *Semaphore) Destroy() {
	if s.osHandle != 0 {
		if err := platformCloseHandle(s.osHandle); err != nil {
			Logger().Warn("vkcore: closing semaphore handle", "error", err)
		}
		s.osHandle = 0
	}
	if s.handle != 0 {
		s.dev.cmds.DestroySemaphore(s.dev.handle, s.handle)
		s.handle = 0
	}
}
