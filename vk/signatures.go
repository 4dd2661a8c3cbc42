// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// CallInterface signatures shared across Vulkan functions with identical
// parameter shapes. Vulkan has hundreds of entry points but only a few
// dozen unique signatures.

package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	// === Result-returning signatures ===

	// VkResult(ptr) - vkEnumerateInstanceVersion
	SigResultPtr types.CallInterface

	// VkResult(ptr, ptr) - vkEnumerateInstanceLayerProperties
	SigResultPtrPtr types.CallInterface

	// VkResult(ptr, ptr, ptr) - vkCreateInstance
	SigResultPtrPtrPtr types.CallInterface

	// VkResult(handle) - vkEndCommandBuffer, vkQueueWaitIdle
	SigResultHandle types.CallInterface

	// VkResult(handle, u32) - vkResetCommandBuffer
	SigResultHandleU32 types.CallInterface

	// VkResult(handle, handle) - vkGetFenceStatus
	SigResultHandleHandle types.CallInterface

	// VkResult(handle, ptr) - vkBeginCommandBuffer, vkSignalSemaphore
	SigResultHandlePtr types.CallInterface

	// VkResult(handle, ptr, ptr) - vkEnumeratePhysicalDevices, vkAllocateDescriptorSets
	SigResultHandlePtrPtr types.CallInterface

	// VkResult(handle, ptr, ptr, ptr) - vkCreateDevice, vkCreateBuffer, ...
	SigResultHandlePtrPtrPtr types.CallInterface

	// VkResult(handle, u32, ptr) - vkResetFences, vkFlushMappedMemoryRanges
	SigResultHandleU32Ptr types.CallInterface

	// VkResult(handle, u32, ptr, handle) - vkQueueSubmit
	SigResultHandleU32PtrHandle types.CallInterface

	// VkResult(handle, u32, ptr, u32, u64) - vkWaitForFences
	SigResultHandleU32PtrU32U64 types.CallInterface

	// VkResult(handle, ptr, u64) - vkWaitSemaphores
	SigResultHandlePtrU64 types.CallInterface

	// VkResult(handle, handle, ptr) - vkGetSemaphoreCounterValue
	SigResultHandleHandlePtr types.CallInterface

	// VkResult(handle, handle, u32, ptr) - vkFreeDescriptorSets
	SigResultHandleHandleU32Ptr types.CallInterface

	// VkResult(handle, handle, handle, u64) - vkBindBufferMemory, vkBindImageMemory
	SigResultHandleHandleHandleU64 types.CallInterface

	// VkResult(handle, handle, u64, u64, u32, ptr) - vkMapMemory
	SigResultHandleHandleU64U64U32Ptr types.CallInterface

	// VkResult(handle, handle, u32, ptr, ptr, ptr) - vkCreateGraphicsPipelines
	SigResultHandleHandleU32PtrPtrPtr types.CallInterface

	// VkResult(handle, u32, u64, ptr) - vkGetMemoryWin32HandlePropertiesKHR
	SigResultHandleU32U64Ptr types.CallInterface

	// VkResult(handle, u32, i32, ptr) - vkGetMemoryFdPropertiesKHR
	SigResultHandleU32I32Ptr types.CallInterface

	// VkResult(handle, handle, u32, u32, u64, ptr, u64, u32) - vkGetQueryPoolResults
	SigResultQueryPoolResults types.CallInterface

	// === Void-returning signatures ===

	// void(handle) - vkCmdEndRenderPass, vkCmdEndRendering
	SigVoidHandle types.CallInterface

	// void(handle, u32) - vkCmdSetDepthTestEnable
	SigVoidHandleU32 types.CallInterface

	// void(handle, ptr) - vkDestroyInstance, vkCmdBeginRendering, ...
	SigVoidHandlePtr types.CallInterface

	// void(handle, handle) - vkUnmapMemory
	SigVoidHandleHandle types.CallInterface

	// void(handle, handle, ptr) - vkDestroyBuffer, vkGetBufferMemoryRequirements, ...
	SigVoidHandleHandlePtr types.CallInterface

	// void(handle, ptr, ptr) - vkGetPhysicalDeviceQueueFamilyProperties
	SigVoidHandlePtrPtr types.CallInterface

	// void(handle, u32, ptr) - vkGetPhysicalDeviceFormatProperties
	SigVoidHandleU32Ptr types.CallInterface

	// void(handle, u32, u32, ptr) - vkGetDeviceQueue, vkCmdSetViewport
	SigVoidHandleU32U32Ptr types.CallInterface

	// void(handle, u32, handle) - vkCmdBindPipeline
	SigVoidHandleU32Handle types.CallInterface

	// void(handle, u32, u32, ptr, ptr) - vkCmdBindVertexBuffers
	SigVoidHandleU32U32PtrPtr types.CallInterface

	// void(handle, handle, u64, u32) - vkCmdBindIndexBuffer
	SigVoidHandleHandleU64U32 types.CallInterface

	// void(handle, u32, u32, u32) - vkCmdDispatch
	SigVoidHandleU32U32U32 types.CallInterface

	// void(handle, u32, u32, u32, u32) - vkCmdDraw
	SigVoidHandleU32x4 types.CallInterface

	// void(handle, u32, u32, u32, i32, u32) - vkCmdDrawIndexed
	SigVoidHandleU32U32U32I32U32 types.CallInterface

	// void(handle, handle, u32, u32) - vkCmdResetQueryPool
	SigVoidHandleHandleU32U32 types.CallInterface

	// void(handle, u32, handle, u32) - vkCmdWriteTimestamp
	SigVoidHandleU32HandleU32 types.CallInterface

	// void(handle, ptr, u32) - vkCmdBeginRenderPass
	SigVoidHandlePtrU32 types.CallInterface

	// void(handle, u32, ptr, u32, ptr) - vkUpdateDescriptorSets
	SigVoidHandleU32PtrU32Ptr types.CallInterface

	// void(handle, handle, u32, ptr) - vkFreeCommandBuffers
	SigVoidHandleHandleU32Ptr types.CallInterface

	// void(handle, u32, handle, u32, u32, ptr, u32, ptr) - vkCmdBindDescriptorSets
	SigVoidCmdBindDescriptorSets types.CallInterface

	// void(handle, handle, u32, u32, u32, ptr) - vkCmdPushConstants
	SigVoidCmdPushConstants types.CallInterface

	// void(handle, u32, u32, u32, u32, ptr, u32, ptr, u32, ptr) - vkCmdPipelineBarrier
	SigVoidCmdPipelineBarrier types.CallInterface

	// void(handle, handle, handle, u32, ptr) - vkCmdCopyBuffer
	SigVoidCmdCopyBuffer types.CallInterface

	// void(handle, handle, handle, u32, u32, ptr) - vkCmdCopyBufferToImage
	SigVoidCmdCopyBufferToImage types.CallInterface

	// void(handle, handle, u32, handle, u32, ptr) - vkCmdCopyImageToBuffer
	SigVoidCmdCopyImageToBuffer types.CallInterface

	// void(handle, handle, u32, handle, u32, u32, ptr) - vkCmdCopyImage
	SigVoidCmdCopyImage types.CallInterface

	// void(handle, handle, u32, handle, u32, u32, ptr, u32) - vkCmdBlitImage
	SigVoidCmdBlitImage types.CallInterface

	// void(handle, handle, u32, ptr, u32, ptr) - vkCmdClearColorImage
	SigVoidCmdClearColorImage types.CallInterface
)

// Shorthand descriptors.
var (
	tH   = types.UInt64TypeDescriptor  // Vulkan handle (64-bit)
	tU32 = types.UInt32TypeDescriptor  // uint32_t / enum / VkBool32
	tI32 = types.SInt32TypeDescriptor  // int32_t / int fd
	tU64 = types.UInt64TypeDescriptor  // uint64_t / VkDeviceSize
	tP   = types.PointerTypeDescriptor // any pointer
	tR   = types.SInt32TypeDescriptor  // VkResult return
	tV   = types.VoidTypeDescriptor    // void return
)

type sigSpec struct {
	cif  *types.CallInterface
	ret  *types.TypeDescriptor
	args []*types.TypeDescriptor
}

// initSignatures prepares every CallInterface template. Called once from Init.
func initSignatures() error {
	specs := []sigSpec{
		{&SigResultPtr, tR, []*types.TypeDescriptor{tP}},
		{&SigResultPtrPtr, tR, []*types.TypeDescriptor{tP, tP}},
		{&SigResultPtrPtrPtr, tR, []*types.TypeDescriptor{tP, tP, tP}},
		{&SigResultHandle, tR, []*types.TypeDescriptor{tH}},
		{&SigResultHandleU32, tR, []*types.TypeDescriptor{tH, tU32}},
		{&SigResultHandleHandle, tR, []*types.TypeDescriptor{tH, tH}},
		{&SigResultHandlePtr, tR, []*types.TypeDescriptor{tH, tP}},
		{&SigResultHandlePtrPtr, tR, []*types.TypeDescriptor{tH, tP, tP}},
		{&SigResultHandlePtrPtrPtr, tR, []*types.TypeDescriptor{tH, tP, tP, tP}},
		{&SigResultHandleU32Ptr, tR, []*types.TypeDescriptor{tH, tU32, tP}},
		{&SigResultHandleU32PtrHandle, tR, []*types.TypeDescriptor{tH, tU32, tP, tH}},
		{&SigResultHandleU32PtrU32U64, tR, []*types.TypeDescriptor{tH, tU32, tP, tU32, tU64}},
		{&SigResultHandlePtrU64, tR, []*types.TypeDescriptor{tH, tP, tU64}},
		{&SigResultHandleHandlePtr, tR, []*types.TypeDescriptor{tH, tH, tP}},
		{&SigResultHandleHandleU32Ptr, tR, []*types.TypeDescriptor{tH, tH, tU32, tP}},
		{&SigResultHandleHandleHandleU64, tR, []*types.TypeDescriptor{tH, tH, tH, tU64}},
		{&SigResultHandleHandleU64U64U32Ptr, tR, []*types.TypeDescriptor{tH, tH, tU64, tU64, tU32, tP}},
		{&SigResultHandleHandleU32PtrPtrPtr, tR, []*types.TypeDescriptor{tH, tH, tU32, tP, tP, tP}},
		{&SigResultHandleU32U64Ptr, tR, []*types.TypeDescriptor{tH, tU32, tU64, tP}},
		{&SigResultHandleU32I32Ptr, tR, []*types.TypeDescriptor{tH, tU32, tI32, tP}},
		{&SigResultQueryPoolResults, tR, []*types.TypeDescriptor{tH, tH, tU32, tU32, tU64, tP, tU64, tU32}},

		{&SigVoidHandle, tV, []*types.TypeDescriptor{tH}},
		{&SigVoidHandleU32, tV, []*types.TypeDescriptor{tH, tU32}},
		{&SigVoidHandlePtr, tV, []*types.TypeDescriptor{tH, tP}},
		{&SigVoidHandleHandle, tV, []*types.TypeDescriptor{tH, tH}},
		{&SigVoidHandleHandlePtr, tV, []*types.TypeDescriptor{tH, tH, tP}},
		{&SigVoidHandlePtrPtr, tV, []*types.TypeDescriptor{tH, tP, tP}},
		{&SigVoidHandleU32Ptr, tV, []*types.TypeDescriptor{tH, tU32, tP}},
		{&SigVoidHandleU32U32Ptr, tV, []*types.TypeDescriptor{tH, tU32, tU32, tP}},
		{&SigVoidHandleU32Handle, tV, []*types.TypeDescriptor{tH, tU32, tH}},
		{&SigVoidHandleU32U32PtrPtr, tV, []*types.TypeDescriptor{tH, tU32, tU32, tP, tP}},
		{&SigVoidHandleHandleU64U32, tV, []*types.TypeDescriptor{tH, tH, tU64, tU32}},
		{&SigVoidHandleU32U32U32, tV, []*types.TypeDescriptor{tH, tU32, tU32, tU32}},
		{&SigVoidHandleU32x4, tV, []*types.TypeDescriptor{tH, tU32, tU32, tU32, tU32}},
		{&SigVoidHandleU32U32U32I32U32, tV, []*types.TypeDescriptor{tH, tU32, tU32, tU32, tI32, tU32}},
		{&SigVoidHandleHandleU32U32, tV, []*types.TypeDescriptor{tH, tH, tU32, tU32}},
		{&SigVoidHandleU32HandleU32, tV, []*types.TypeDescriptor{tH, tU32, tH, tU32}},
		{&SigVoidHandlePtrU32, tV, []*types.TypeDescriptor{tH, tP, tU32}},
		{&SigVoidHandleU32PtrU32Ptr, tV, []*types.TypeDescriptor{tH, tU32, tP, tU32, tP}},
		{&SigVoidHandleHandleU32Ptr, tV, []*types.TypeDescriptor{tH, tH, tU32, tP}},
		{&SigVoidCmdBindDescriptorSets, tV, []*types.TypeDescriptor{tH, tU32, tH, tU32, tU32, tP, tU32, tP}},
		{&SigVoidCmdPushConstants, tV, []*types.TypeDescriptor{tH, tH, tU32, tU32, tU32, tP}},
		{&SigVoidCmdPipelineBarrier, tV, []*types.TypeDescriptor{tH, tU32, tU32, tU32, tU32, tP, tU32, tP, tU32, tP}},
		{&SigVoidCmdCopyBuffer, tV, []*types.TypeDescriptor{tH, tH, tH, tU32, tP}},
		{&SigVoidCmdCopyBufferToImage, tV, []*types.TypeDescriptor{tH, tH, tH, tU32, tU32, tP}},
		{&SigVoidCmdCopyImageToBuffer, tV, []*types.TypeDescriptor{tH, tH, tU32, tH, tU32, tP}},
		{&SigVoidCmdCopyImage, tV, []*types.TypeDescriptor{tH, tH, tU32, tH, tU32, tU32, tP}},
		{&SigVoidCmdBlitImage, tV, []*types.TypeDescriptor{tH, tH, tU32, tH, tU32, tU32, tP, tU32}},
		{&SigVoidCmdClearColorImage, tV, []*types.TypeDescriptor{tH, tH, tU32, tP, tU32, tP}},
	}

	for i := range specs {
		if err := ffi.PrepareCallInterface(specs[i].cif, types.DefaultCall, specs[i].ret, specs[i].args); err != nil {
			return err
		}
	}
	return nil
}
