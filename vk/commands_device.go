// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// Device-level wrappers: memory, objects, descriptors, pipelines, sync.

// DestroyDevice wraps vkDestroyDevice.
func (c *Commands) DestroyDevice(device Device) {
	callV(&SigVoidHandlePtr, c.destroyDevice, []unsafe.Pointer{unsafe.Pointer(&device), nilPtr()})
}

// GetDeviceQueue wraps vkGetDeviceQueue.
func (c *Commands) GetDeviceQueue(device Device, family, index uint32, queue *Queue) {
	callV(&SigVoidHandleU32U32Ptr, c.getDeviceQueue, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&family), unsafe.Pointer(&index), ptr(queue),
	})
}

// AllocateMemory wraps vkAllocateMemory.
func (c *Commands) AllocateMemory(device Device, info *MemoryAllocateInfo, memory *DeviceMemory) Result {
	return callR(&SigResultHandlePtrPtrPtr, c.allocateMemory, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(info), nilPtr(), ptr(memory),
	})
}

// FreeMemory wraps vkFreeMemory.
func (c *Commands) FreeMemory(device Device, memory DeviceMemory) {
	callV(&SigVoidHandleHandlePtr, c.freeMemory, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&memory), nilPtr(),
	})
}

// MapMemory wraps vkMapMemory.
func (c *Commands) MapMemory(device Device, memory DeviceMemory, offset, size DeviceSize, ppData *unsafe.Pointer) Result {
	var flags uint32
	return callR(&SigResultHandleHandleU64U64U32Ptr, c.mapMemory, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&memory),
		unsafe.Pointer(&offset), unsafe.Pointer(&size),
		unsafe.Pointer(&flags), ptr(ppData),
	})
}

// UnmapMemory wraps vkUnmapMemory.
func (c *Commands) UnmapMemory(device Device, memory DeviceMemory) {
	callV(&SigVoidHandleHandle, c.unmapMemory, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&memory),
	})
}

// FlushMappedMemoryRanges wraps vkFlushMappedMemoryRanges.
func (c *Commands) FlushMappedMemoryRanges(device Device, count uint32, ranges *MappedMemoryRange) Result {
	return callR(&SigResultHandleU32Ptr, c.flushMappedMemoryRanges, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&count), ptr(ranges),
	})
}

// GetBufferMemoryRequirements wraps vkGetBufferMemoryRequirements.
func (c *Commands) GetBufferMemoryRequirements(device Device, buffer Buffer, req *MemoryRequirements) {
	callV(&SigVoidHandleHandlePtr, c.getBufferMemoryRequirements, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&buffer), ptr(req),
	})
}

// GetImageMemoryRequirements wraps vkGetImageMemoryRequirements.
func (c *Commands) GetImageMemoryRequirements(device Device, image Image, req *MemoryRequirements) {
	callV(&SigVoidHandleHandlePtr, c.getImageMemoryRequirements, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&image), ptr(req),
	})
}

// BindBufferMemory wraps vkBindBufferMemory.
func (c *Commands) BindBufferMemory(device Device, buffer Buffer, memory DeviceMemory, offset DeviceSize) Result {
	return callR(&SigResultHandleHandleHandleU64, c.bindBufferMemory, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&buffer), unsafe.Pointer(&memory), unsafe.Pointer(&offset),
	})
}

// BindImageMemory wraps vkBindImageMemory.
func (c *Commands) BindImageMemory(device Device, image Image, memory DeviceMemory, offset DeviceSize) Result {
	return callR(&SigResultHandleHandleHandleU64, c.bindImageMemory, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&image), unsafe.Pointer(&memory), unsafe.Pointer(&offset),
	})
}

// createObject is the shared shape of vkCreate*(device, info, alloc, out).
func (c *Commands) createObject(fn unsafe.Pointer, device Device, info, out unsafe.Pointer) Result {
	return callR(&SigResultHandlePtrPtrPtr, fn, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&info), nilPtr(), unsafe.Pointer(&out),
	})
}

// destroyObject is the shared shape of vkDestroy*(device, handle, alloc).
func (c *Commands) destroyObject(fn unsafe.Pointer, device Device, handle uint64) {
	callV(&SigVoidHandleHandlePtr, fn, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&handle), nilPtr(),
	})
}

// CreateBuffer wraps vkCreateBuffer.
func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo, out *Buffer) Result {
	return c.createObject(c.createBuffer, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyBuffer wraps vkDestroyBuffer.
func (c *Commands) DestroyBuffer(device Device, buffer Buffer) {
	c.destroyObject(c.destroyBuffer, device, uint64(buffer))
}

// CreateImage wraps vkCreateImage.
func (c *Commands) CreateImage(device Device, info *ImageCreateInfo, out *Image) Result {
	return c.createObject(c.createImage, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyImage wraps vkDestroyImage.
func (c *Commands) DestroyImage(device Device, image Image) {
	c.destroyObject(c.destroyImage, device, uint64(image))
}

// CreateImageView wraps vkCreateImageView.
func (c *Commands) CreateImageView(device Device, info *ImageViewCreateInfo, out *ImageView) Result {
	return c.createObject(c.createImageView, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyImageView wraps vkDestroyImageView.
func (c *Commands) DestroyImageView(device Device, view ImageView) {
	c.destroyObject(c.destroyImageView, device, uint64(view))
}

// CreateSampler wraps vkCreateSampler.
func (c *Commands) CreateSampler(device Device, info *SamplerCreateInfo, out *Sampler) Result {
	return c.createObject(c.createSampler, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroySampler wraps vkDestroySampler.
func (c *Commands) DestroySampler(device Device, sampler Sampler) {
	c.destroyObject(c.destroySampler, device, uint64(sampler))
}

// CreateShaderModule wraps vkCreateShaderModule.
func (c *Commands) CreateShaderModule(device Device, info *ShaderModuleCreateInfo, out *ShaderModule) Result {
	return c.createObject(c.createShaderModule, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyShaderModule wraps vkDestroyShaderModule.
func (c *Commands) DestroyShaderModule(device Device, module ShaderModule) {
	c.destroyObject(c.destroyShaderModule, device, uint64(module))
}

// CreateDescriptorSetLayout wraps vkCreateDescriptorSetLayout.
func (c *Commands) CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo, out *DescriptorSetLayout) Result {
	return c.createObject(c.createDescriptorSetLayout, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyDescriptorSetLayout wraps vkDestroyDescriptorSetLayout.
func (c *Commands) DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout) {
	c.destroyObject(c.destroyDescriptorSetLayout, device, uint64(layout))
}

// CreatePipelineLayout wraps vkCreatePipelineLayout.
func (c *Commands) CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo, out *PipelineLayout) Result {
	return c.createObject(c.createPipelineLayout, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyPipelineLayout wraps vkDestroyPipelineLayout.
func (c *Commands) DestroyPipelineLayout(device Device, layout PipelineLayout) {
	c.destroyObject(c.destroyPipelineLayout, device, uint64(layout))
}

// CreateDescriptorPool wraps vkCreateDescriptorPool.
func (c *Commands) CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo, out *DescriptorPool) Result {
	return c.createObject(c.createDescriptorPool, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyDescriptorPool wraps vkDestroyDescriptorPool.
func (c *Commands) DestroyDescriptorPool(device Device, pool DescriptorPool) {
	c.destroyObject(c.destroyDescriptorPool, device, uint64(pool))
}

// AllocateDescriptorSets wraps vkAllocateDescriptorSets.
func (c *Commands) AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo, sets *DescriptorSet) Result {
	return callR(&SigResultHandlePtrPtr, c.allocateDescriptorSets, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(info), ptr(sets),
	})
}

// FreeDescriptorSets wraps vkFreeDescriptorSets.
func (c *Commands) FreeDescriptorSets(device Device, pool DescriptorPool, count uint32, sets *DescriptorSet) Result {
	return callR(&SigResultHandleHandleU32Ptr, c.freeDescriptorSets, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), ptr(sets),
	})
}

// UpdateDescriptorSets wraps vkUpdateDescriptorSets.
func (c *Commands) UpdateDescriptorSets(device Device, writeCount uint32, writes *WriteDescriptorSet, copyCount uint32, copies *CopyDescriptorSet) {
	callV(&SigVoidHandleU32PtrU32Ptr, c.updateDescriptorSets, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&writeCount), ptr(writes),
		unsafe.Pointer(&copyCount), ptr(copies),
	})
}

// CreateGraphicsPipelines wraps vkCreateGraphicsPipelines.
func (c *Commands) CreateGraphicsPipelines(device Device, cache PipelineCache, count uint32, infos *GraphicsPipelineCreateInfo, out *Pipeline) Result {
	return callR(&SigResultHandleHandleU32PtrPtrPtr, c.createGraphicsPipelines, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count),
		ptr(infos), nilPtr(), ptr(out),
	})
}

// CreateComputePipelines wraps vkCreateComputePipelines.
func (c *Commands) CreateComputePipelines(device Device, cache PipelineCache, count uint32, infos *ComputePipelineCreateInfo, out *Pipeline) Result {
	return callR(&SigResultHandleHandleU32PtrPtrPtr, c.createComputePipelines, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count),
		ptr(infos), nilPtr(), ptr(out),
	})
}

// DestroyPipeline wraps vkDestroyPipeline.
func (c *Commands) DestroyPipeline(device Device, pipeline Pipeline) {
	c.destroyObject(c.destroyPipeline, device, uint64(pipeline))
}

// CreatePipelineCache wraps vkCreatePipelineCache.
func (c *Commands) CreatePipelineCache(device Device, info *PipelineCacheCreateInfo, out *PipelineCache) Result {
	return c.createObject(c.createPipelineCache, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyPipelineCache wraps vkDestroyPipelineCache.
func (c *Commands) DestroyPipelineCache(device Device, cache PipelineCache) {
	c.destroyObject(c.destroyPipelineCache, device, uint64(cache))
}

// CreateRenderPass wraps vkCreateRenderPass.
func (c *Commands) CreateRenderPass(device Device, info *RenderPassCreateInfo, out *RenderPass) Result {
	return c.createObject(c.createRenderPass, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyRenderPass wraps vkDestroyRenderPass.
func (c *Commands) DestroyRenderPass(device Device, rp RenderPass) {
	c.destroyObject(c.destroyRenderPass, device, uint64(rp))
}

// CreateFramebuffer wraps vkCreateFramebuffer.
func (c *Commands) CreateFramebuffer(device Device, info *FramebufferCreateInfo, out *Framebuffer) Result {
	return c.createObject(c.createFramebuffer, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyFramebuffer wraps vkDestroyFramebuffer.
func (c *Commands) DestroyFramebuffer(device Device, fb Framebuffer) {
	c.destroyObject(c.destroyFramebuffer, device, uint64(fb))
}

// CreateQueryPool wraps vkCreateQueryPool.
func (c *Commands) CreateQueryPool(device Device, info *QueryPoolCreateInfo, out *QueryPool) Result {
	return c.createObject(c.createQueryPool, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyQueryPool wraps vkDestroyQueryPool.
func (c *Commands) DestroyQueryPool(device Device, qp QueryPool) {
	c.destroyObject(c.destroyQueryPool, device, uint64(qp))
}

// GetQueryPoolResults wraps vkGetQueryPoolResults.
func (c *Commands) GetQueryPoolResults(device Device, qp QueryPool, firstQuery, queryCount uint32, dataSize uintptr, data unsafe.Pointer, stride DeviceSize, flags QueryResultFlags) Result {
	size := uint64(dataSize)
	return callR(&SigResultQueryPoolResults, c.getQueryPoolResults, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&qp),
		unsafe.Pointer(&firstQuery), unsafe.Pointer(&queryCount),
		unsafe.Pointer(&size), unsafe.Pointer(&data),
		unsafe.Pointer(&stride), unsafe.Pointer(&flags),
	})
}

// CreateFence wraps vkCreateFence.
func (c *Commands) CreateFence(device Device, info *FenceCreateInfo, out *Fence) Result {
	return c.createObject(c.createFence, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyFence wraps vkDestroyFence.
func (c *Commands) DestroyFence(device Device, fence Fence) {
	c.destroyObject(c.destroyFence, device, uint64(fence))
}

// ResetFences wraps vkResetFences.
func (c *Commands) ResetFences(device Device, count uint32, fences *Fence) Result {
	return callR(&SigResultHandleU32Ptr, c.resetFences, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&count), ptr(fences),
	})
}

// GetFenceStatus wraps vkGetFenceStatus.
func (c *Commands) GetFenceStatus(device Device, fence Fence) Result {
	return callR(&SigResultHandleHandle, c.getFenceStatus, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&fence),
	})
}

// WaitForFences wraps vkWaitForFences.
func (c *Commands) WaitForFences(device Device, count uint32, fences *Fence, waitAll bool, timeoutNs uint64) Result {
	var all uint32
	if waitAll {
		all = 1
	}
	return callR(&SigResultHandleU32PtrU32U64, c.waitForFences, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&count), ptr(fences),
		unsafe.Pointer(&all), unsafe.Pointer(&timeoutNs),
	})
}

// CreateSemaphore wraps vkCreateSemaphore.
func (c *Commands) CreateSemaphore(device Device, info *SemaphoreCreateInfo, out *Semaphore) Result {
	return c.createObject(c.createSemaphore, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroySemaphore wraps vkDestroySemaphore.
func (c *Commands) DestroySemaphore(device Device, sem Semaphore) {
	c.destroyObject(c.destroySemaphore, device, uint64(sem))
}

// WaitSemaphores wraps vkWaitSemaphores (Vulkan 1.2 timeline semaphores).
func (c *Commands) WaitSemaphores(device Device, waitInfo *SemaphoreWaitInfo, timeoutNs uint64) Result {
	return callR(&SigResultHandlePtrU64, c.waitSemaphores, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(waitInfo), unsafe.Pointer(&timeoutNs),
	})
}

// SignalSemaphore wraps vkSignalSemaphore.
func (c *Commands) SignalSemaphore(device Device, signalInfo *SemaphoreSignalInfo) Result {
	return callR(&SigResultHandlePtr, c.signalSemaphore, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(signalInfo),
	})
}

// GetSemaphoreCounterValue wraps vkGetSemaphoreCounterValue.
func (c *Commands) GetSemaphoreCounterValue(device Device, sem Semaphore, value *uint64) Result {
	return callR(&SigResultHandleHandlePtr, c.getSemaphoreCounterValue, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&sem), ptr(value),
	})
}

// CreateCommandPool wraps vkCreateCommandPool.
func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo, out *CommandPool) Result {
	return c.createObject(c.createCommandPool, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyCommandPool wraps vkDestroyCommandPool.
func (c *Commands) DestroyCommandPool(device Device, pool CommandPool) {
	c.destroyObject(c.destroyCommandPool, device, uint64(pool))
}

// AllocateCommandBuffers wraps vkAllocateCommandBuffers.
func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo, buffers *CommandBuffer) Result {
	return callR(&SigResultHandlePtrPtr, c.allocateCommandBuffers, []unsafe.Pointer{
		unsafe.Pointer(&device), ptr(info), ptr(buffers),
	})
}

// FreeCommandBuffers wraps vkFreeCommandBuffers.
func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, count uint32, buffers *CommandBuffer) {
	callV(&SigVoidHandleHandleU32Ptr, c.freeCommandBuffers, []unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), ptr(buffers),
	})
}

// QueueSubmit wraps vkQueueSubmit.
func (c *Commands) QueueSubmit(queue Queue, count uint32, submits *SubmitInfo, fence Fence) Result {
	return callR(&SigResultHandleU32PtrHandle, c.queueSubmit, []unsafe.Pointer{
		unsafe.Pointer(&queue), unsafe.Pointer(&count), ptr(submits), unsafe.Pointer(&fence),
	})
}

// QueueWaitIdle wraps vkQueueWaitIdle.
func (c *Commands) QueueWaitIdle(queue Queue) Result {
	return callR(&SigResultHandle, c.queueWaitIdle, []unsafe.Pointer{unsafe.Pointer(&queue)})
}
