// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides pure Go Vulkan bindings using goffi for FFI calls.
//
// The binding surface is hand-maintained and deliberately narrow: it covers
// exactly the entry points the vkcore framework uses, including the
// external-memory, external-semaphore, timeline-semaphore, synchronization2
// and dynamic-rendering families.
//
// # goffi Calling Convention
//
// goffi expects args[] to contain pointers to WHERE argument values are
// stored, NOT the values themselves. This applies to ALL argument types,
// including pointers.
//
// For scalar types (uint32, uint64, etc.):
//
//	var value uint64 = 42
//	args[i] = unsafe.Pointer(&value)  // pointer to value storage
//
// For pointer types (const char*, void*, etc.):
//
//	ptr := unsafe.Pointer(&data[0])   // this IS the pointer value
//	args[i] = unsafe.Pointer(&ptr)    // pointer TO the pointer
//
// This pattern is required because goffi uses ffi_call() internally, which
// reads argument values FROM the addresses provided in the args array.
//
// # Function Loading Hierarchy
//
// Vulkan functions are loaded in three stages:
//
//  1. LoadGlobal() — functions callable without an instance
//  2. LoadInstance(instance) — instance-level functions
//  3. LoadDevice(device) — device-level functions, including the
//     KHR external handle entry points
package vk
