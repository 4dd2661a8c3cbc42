// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vkcore is a Vulkan resource and execution core: a thin but
// disciplined layer above the raw API that owns device memory, images,
// buffers, descriptor sets, pipelines, render and compute passes,
// timeline-synchronised command submission, cross-process resource sharing
// and a time-windowed resource pool. It is the substrate on which a
// node-graph media/compute engine composes GPU work.
//
// The main entry point is NewContext, which loads the Vulkan library,
// enumerates adapters and creates Devices. From a Device the caller
// creates Buffers and Images (optionally backed by OS-shareable memory),
// reflects SPIR-V shaders into pipelines, stages named bindings on render
// or compute passes, and submits work through per-thread command pools
// with timeline-semaphore wait/signal groups.
//
// Subpackages: vk holds the pure-Go Vulkan bindings, spirv the shader
// reflection.
package vkcore
