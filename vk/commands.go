// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Commands holds loaded Vulkan function pointers.
//
// Function pointers are loaded in three stages: LoadGlobal for pre-instance
// functions, LoadInstance after vkCreateInstance, LoadDevice after
// vkCreateDevice. Extension entry points that are absent stay nil and their
// wrappers report ErrorExtensionNotPresent or no-op.
type Commands struct {
	// Global.
	createInstance                   unsafe.Pointer
	enumerateInstanceVersion         unsafe.Pointer
	enumerateInstanceLayerProperties unsafe.Pointer

	// Instance level.
	destroyInstance                         unsafe.Pointer
	enumeratePhysicalDevices                unsafe.Pointer
	getPhysicalDeviceProperties2            unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties  unsafe.Pointer
	getPhysicalDeviceMemoryProperties       unsafe.Pointer
	getPhysicalDeviceFormatProperties       unsafe.Pointer
	getPhysicalDeviceFeatures2              unsafe.Pointer
	getPhysicalDeviceImageFormatProperties2 unsafe.Pointer
	enumerateDeviceExtensionProperties      unsafe.Pointer
	createDevice                            unsafe.Pointer

	// Device level: core.
	destroyDevice               unsafe.Pointer
	getDeviceQueue              unsafe.Pointer
	allocateMemory              unsafe.Pointer
	freeMemory                  unsafe.Pointer
	mapMemory                   unsafe.Pointer
	unmapMemory                 unsafe.Pointer
	flushMappedMemoryRanges     unsafe.Pointer
	getBufferMemoryRequirements unsafe.Pointer
	getImageMemoryRequirements  unsafe.Pointer
	bindBufferMemory            unsafe.Pointer
	bindImageMemory             unsafe.Pointer

	createBuffer               unsafe.Pointer
	destroyBuffer              unsafe.Pointer
	createImage                unsafe.Pointer
	destroyImage               unsafe.Pointer
	createImageView            unsafe.Pointer
	destroyImageView           unsafe.Pointer
	createSampler              unsafe.Pointer
	destroySampler             unsafe.Pointer
	createShaderModule         unsafe.Pointer
	destroyShaderModule        unsafe.Pointer
	createDescriptorSetLayout  unsafe.Pointer
	destroyDescriptorSetLayout unsafe.Pointer
	createPipelineLayout       unsafe.Pointer
	destroyPipelineLayout      unsafe.Pointer
	createDescriptorPool       unsafe.Pointer
	destroyDescriptorPool      unsafe.Pointer
	allocateDescriptorSets     unsafe.Pointer
	freeDescriptorSets         unsafe.Pointer
	updateDescriptorSets       unsafe.Pointer
	createGraphicsPipelines    unsafe.Pointer
	createComputePipelines     unsafe.Pointer
	destroyPipeline            unsafe.Pointer
	createPipelineCache        unsafe.Pointer
	destroyPipelineCache       unsafe.Pointer
	createRenderPass           unsafe.Pointer
	destroyRenderPass          unsafe.Pointer
	createFramebuffer          unsafe.Pointer
	destroyFramebuffer         unsafe.Pointer
	createQueryPool            unsafe.Pointer
	destroyQueryPool           unsafe.Pointer
	getQueryPoolResults        unsafe.Pointer

	createFence    unsafe.Pointer
	destroyFence   unsafe.Pointer
	resetFences    unsafe.Pointer
	getFenceStatus unsafe.Pointer
	waitForFences  unsafe.Pointer

	createSemaphore          unsafe.Pointer
	destroySemaphore         unsafe.Pointer
	waitSemaphores           unsafe.Pointer
	signalSemaphore          unsafe.Pointer
	getSemaphoreCounterValue unsafe.Pointer

	createCommandPool      unsafe.Pointer
	destroyCommandPool     unsafe.Pointer
	allocateCommandBuffers unsafe.Pointer
	freeCommandBuffers     unsafe.Pointer

	queueSubmit   unsafe.Pointer
	queueWaitIdle unsafe.Pointer

	// Device level: command recording.
	beginCommandBuffer     unsafe.Pointer
	endCommandBuffer       unsafe.Pointer
	resetCommandBuffer     unsafe.Pointer
	cmdPipelineBarrier     unsafe.Pointer
	cmdPipelineBarrier2    unsafe.Pointer
	cmdCopyBuffer          unsafe.Pointer
	cmdCopyBufferToImage   unsafe.Pointer
	cmdCopyImageToBuffer   unsafe.Pointer
	cmdCopyImage           unsafe.Pointer
	cmdBlitImage           unsafe.Pointer
	cmdBlitImage2          unsafe.Pointer
	cmdResolveImage2       unsafe.Pointer
	cmdClearColorImage     unsafe.Pointer
	cmdBeginRenderPass     unsafe.Pointer
	cmdEndRenderPass       unsafe.Pointer
	cmdBeginRendering      unsafe.Pointer
	cmdEndRendering        unsafe.Pointer
	cmdBindPipeline        unsafe.Pointer
	cmdBindDescriptorSets  unsafe.Pointer
	cmdBindVertexBuffers   unsafe.Pointer
	cmdBindIndexBuffer     unsafe.Pointer
	cmdDraw                unsafe.Pointer
	cmdDrawIndexed         unsafe.Pointer
	cmdDispatch            unsafe.Pointer
	cmdPushConstants       unsafe.Pointer
	cmdSetViewport         unsafe.Pointer
	cmdSetScissor          unsafe.Pointer
	cmdSetDepthTestEnable  unsafe.Pointer
	cmdSetDepthWriteEnable unsafe.Pointer
	cmdSetDepthCompareOp   unsafe.Pointer
	cmdResetQueryPool      unsafe.Pointer
	cmdWriteTimestamp      unsafe.Pointer

	// Device level: external handles.
	getMemoryWin32HandleKHR           unsafe.Pointer
	getMemoryWin32HandlePropertiesKHR unsafe.Pointer
	getMemoryFdKHR                    unsafe.Pointer
	getMemoryFdPropertiesKHR          unsafe.Pointer
	getSemaphoreWin32HandleKHR        unsafe.Pointer
	importSemaphoreWin32HandleKHR     unsafe.Pointer
	getSemaphoreFdKHR                 unsafe.Pointer
	importSemaphoreFdKHR              unsafe.Pointer
}

// NewCommands creates a new Commands instance. Function pointers must be
// loaded via LoadGlobal, LoadInstance and LoadDevice before use.
func NewCommands() *Commands {
	return &Commands{}
}

// callR invokes a VkResult-returning entry point.
func callR(cif *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) Result {
	if fn == nil {
		return ErrorExtensionNotPresent
	}
	var result int32
	if err := ffi.CallFunction(cif, fn, unsafe.Pointer(&result), args); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// callV invokes a void entry point.
func callV(cif *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) {
	if fn == nil {
		return
	}
	_ = ffi.CallFunction(cif, fn, nil, args)
}

// ptr wraps a Go pointer value for the goffi args array: the returned
// unsafe.Pointer addresses a slot CONTAINING the pointer value.
func ptr[T any](p *T) unsafe.Pointer {
	v := unsafe.Pointer(p)
	return unsafe.Pointer(&v)
}

// LoadGlobal loads pre-instance function pointers.
func (c *Commands) LoadGlobal() error {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
	if c.createInstance == nil {
		return fmt.Errorf("failed to load vkCreateInstance")
	}
	c.enumerateInstanceVersion = GetInstanceProcAddr(0, "vkEnumerateInstanceVersion")
	c.enumerateInstanceLayerProperties = GetInstanceProcAddr(0, "vkEnumerateInstanceLayerProperties")
	return nil
}

// LoadInstance loads instance-level function pointers.
// Must be called after vkCreateInstance succeeds.
func (c *Commands) LoadInstance(instance Instance) error {
	if instance == 0 {
		return fmt.Errorf("invalid instance handle")
	}

	c.destroyInstance = GetInstanceProcAddr(instance, "vkDestroyInstance")
	c.enumeratePhysicalDevices = GetInstanceProcAddr(instance, "vkEnumeratePhysicalDevices")
	c.getPhysicalDeviceProperties2 = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceProperties2")
	c.getPhysicalDeviceQueueFamilyProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceQueueFamilyProperties")
	c.getPhysicalDeviceMemoryProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceMemoryProperties")
	c.getPhysicalDeviceFormatProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceFormatProperties")
	c.getPhysicalDeviceFeatures2 = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceFeatures2")
	c.getPhysicalDeviceImageFormatProperties2 = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceImageFormatProperties2")
	c.enumerateDeviceExtensionProperties = GetInstanceProcAddr(instance, "vkEnumerateDeviceExtensionProperties")
	c.createDevice = GetInstanceProcAddr(instance, "vkCreateDevice")

	// Intel drivers refuse vkGetDeviceProcAddr lookups with instance=0.
	SetDeviceProcAddr(instance)
	return nil
}

// LoadDevice loads device-level function pointers.
// Must be called after vkCreateDevice succeeds.
func (c *Commands) LoadDevice(device Device) error {
	if device == 0 {
		return fmt.Errorf("invalid device handle")
	}

	load := func(name string) unsafe.Pointer { return GetDeviceProcAddr(device, name) }

	c.destroyDevice = load("vkDestroyDevice")
	c.getDeviceQueue = load("vkGetDeviceQueue")
	c.allocateMemory = load("vkAllocateMemory")
	c.freeMemory = load("vkFreeMemory")
	c.mapMemory = load("vkMapMemory")
	c.unmapMemory = load("vkUnmapMemory")
	c.flushMappedMemoryRanges = load("vkFlushMappedMemoryRanges")
	c.getBufferMemoryRequirements = load("vkGetBufferMemoryRequirements")
	c.getImageMemoryRequirements = load("vkGetImageMemoryRequirements")
	c.bindBufferMemory = load("vkBindBufferMemory")
	c.bindImageMemory = load("vkBindImageMemory")

	c.createBuffer = load("vkCreateBuffer")
	c.destroyBuffer = load("vkDestroyBuffer")
	c.createImage = load("vkCreateImage")
	c.destroyImage = load("vkDestroyImage")
	c.createImageView = load("vkCreateImageView")
	c.destroyImageView = load("vkDestroyImageView")
	c.createSampler = load("vkCreateSampler")
	c.destroySampler = load("vkDestroySampler")
	c.createShaderModule = load("vkCreateShaderModule")
	c.destroyShaderModule = load("vkDestroyShaderModule")
	c.createDescriptorSetLayout = load("vkCreateDescriptorSetLayout")
	c.destroyDescriptorSetLayout = load("vkDestroyDescriptorSetLayout")
	c.createPipelineLayout = load("vkCreatePipelineLayout")
	c.destroyPipelineLayout = load("vkDestroyPipelineLayout")
	c.createDescriptorPool = load("vkCreateDescriptorPool")
	c.destroyDescriptorPool = load("vkDestroyDescriptorPool")
	c.allocateDescriptorSets = load("vkAllocateDescriptorSets")
	c.freeDescriptorSets = load("vkFreeDescriptorSets")
	c.updateDescriptorSets = load("vkUpdateDescriptorSets")
	c.createGraphicsPipelines = load("vkCreateGraphicsPipelines")
	c.createComputePipelines = load("vkCreateComputePipelines")
	c.destroyPipeline = load("vkDestroyPipeline")
	c.createPipelineCache = load("vkCreatePipelineCache")
	c.destroyPipelineCache = load("vkDestroyPipelineCache")
	c.createRenderPass = load("vkCreateRenderPass")
	c.destroyRenderPass = load("vkDestroyRenderPass")
	c.createFramebuffer = load("vkCreateFramebuffer")
	c.destroyFramebuffer = load("vkDestroyFramebuffer")
	c.createQueryPool = load("vkCreateQueryPool")
	c.destroyQueryPool = load("vkDestroyQueryPool")
	c.getQueryPoolResults = load("vkGetQueryPoolResults")

	c.createFence = load("vkCreateFence")
	c.destroyFence = load("vkDestroyFence")
	c.resetFences = load("vkResetFences")
	c.getFenceStatus = load("vkGetFenceStatus")
	c.waitForFences = load("vkWaitForFences")

	c.createSemaphore = load("vkCreateSemaphore")
	c.destroySemaphore = load("vkDestroySemaphore")
	c.waitSemaphores = load("vkWaitSemaphores")
	c.signalSemaphore = load("vkSignalSemaphore")
	c.getSemaphoreCounterValue = load("vkGetSemaphoreCounterValue")

	c.createCommandPool = load("vkCreateCommandPool")
	c.destroyCommandPool = load("vkDestroyCommandPool")
	c.allocateCommandBuffers = load("vkAllocateCommandBuffers")
	c.freeCommandBuffers = load("vkFreeCommandBuffers")

	c.queueSubmit = load("vkQueueSubmit")
	c.queueWaitIdle = load("vkQueueWaitIdle")

	c.beginCommandBuffer = load("vkBeginCommandBuffer")
	c.endCommandBuffer = load("vkEndCommandBuffer")
	c.resetCommandBuffer = load("vkResetCommandBuffer")
	c.cmdPipelineBarrier = load("vkCmdPipelineBarrier")
	c.cmdPipelineBarrier2 = load("vkCmdPipelineBarrier2")
	c.cmdCopyBuffer = load("vkCmdCopyBuffer")
	c.cmdCopyBufferToImage = load("vkCmdCopyBufferToImage")
	c.cmdCopyImageToBuffer = load("vkCmdCopyImageToBuffer")
	c.cmdCopyImage = load("vkCmdCopyImage")
	c.cmdBlitImage = load("vkCmdBlitImage")
	c.cmdBlitImage2 = load("vkCmdBlitImage2")
	c.cmdResolveImage2 = load("vkCmdResolveImage2")
	c.cmdClearColorImage = load("vkCmdClearColorImage")
	c.cmdBeginRenderPass = load("vkCmdBeginRenderPass")
	c.cmdEndRenderPass = load("vkCmdEndRenderPass")
	c.cmdBeginRendering = load("vkCmdBeginRendering")
	c.cmdEndRendering = load("vkCmdEndRendering")
	c.cmdBindPipeline = load("vkCmdBindPipeline")
	c.cmdBindDescriptorSets = load("vkCmdBindDescriptorSets")
	c.cmdBindVertexBuffers = load("vkCmdBindVertexBuffers")
	c.cmdBindIndexBuffer = load("vkCmdBindIndexBuffer")
	c.cmdDraw = load("vkCmdDraw")
	c.cmdDrawIndexed = load("vkCmdDrawIndexed")
	c.cmdDispatch = load("vkCmdDispatch")
	c.cmdPushConstants = load("vkCmdPushConstants")
	c.cmdSetViewport = load("vkCmdSetViewport")
	c.cmdSetScissor = load("vkCmdSetScissor")
	c.cmdSetDepthTestEnable = load("vkCmdSetDepthTestEnable")
	c.cmdSetDepthWriteEnable = load("vkCmdSetDepthWriteEnable")
	c.cmdSetDepthCompareOp = load("vkCmdSetDepthCompareOp")
	c.cmdResetQueryPool = load("vkCmdResetQueryPool")
	c.cmdWriteTimestamp = load("vkCmdWriteTimestamp")

	c.getMemoryWin32HandleKHR = load("vkGetMemoryWin32HandleKHR")
	c.getMemoryWin32HandlePropertiesKHR = load("vkGetMemoryWin32HandlePropertiesKHR")
	c.getMemoryFdKHR = load("vkGetMemoryFdKHR")
	c.getMemoryFdPropertiesKHR = load("vkGetMemoryFdPropertiesKHR")
	c.getSemaphoreWin32HandleKHR = load("vkGetSemaphoreWin32HandleKHR")
	c.importSemaphoreWin32HandleKHR = load("vkImportSemaphoreWin32HandleKHR")
	c.getSemaphoreFdKHR = load("vkGetSemaphoreFdKHR")
	c.importSemaphoreFdKHR = load("vkImportSemaphoreFdKHR")

	return nil
}

// HasTimelineSemaphore reports whether timeline semaphore entry points
// were resolved (Vulkan 1.2 core).
func (c *Commands) HasTimelineSemaphore() bool {
	return c.waitSemaphores != nil && c.signalSemaphore != nil && c.getSemaphoreCounterValue != nil
}

// HasSynchronization2 reports whether vkCmdPipelineBarrier2 resolved.
func (c *Commands) HasSynchronization2() bool { return c.cmdPipelineBarrier2 != nil }

// HasDynamicRendering reports whether vkCmdBeginRendering resolved.
func (c *Commands) HasDynamicRendering() bool { return c.cmdBeginRendering != nil }

// === Global & instance wrappers ===

// CreateInstance wraps vkCreateInstance.
func (c *Commands) CreateInstance(createInfo *InstanceCreateInfo, instance *Instance) Result {
	return callR(&SigResultPtrPtrPtr, c.createInstance, []unsafe.Pointer{
		ptr(createInfo), nilPtr(), ptr(instance),
	})
}

// EnumerateInstanceVersion wraps vkEnumerateInstanceVersion.
func (c *Commands) EnumerateInstanceVersion(version *uint32) Result {
	if c.enumerateInstanceVersion == nil {
		*version = 1 << 22 // Vulkan 1.0 loader
		return Success
	}
	return callR(&SigResultPtr, c.enumerateInstanceVersion, []unsafe.Pointer{ptr(version)})
}

// EnumerateInstanceLayerProperties wraps vkEnumerateInstanceLayerProperties.
func (c *Commands) EnumerateInstanceLayerProperties(count *uint32, props *LayerProperties) Result {
	return callR(&SigResultPtrPtr, c.enumerateInstanceLayerProperties, []unsafe.Pointer{
		ptr(count), ptr(props),
	})
}

// DestroyInstance wraps vkDestroyInstance.
func (c *Commands) DestroyInstance(instance Instance) {
	callV(&SigVoidHandlePtr, c.destroyInstance, []unsafe.Pointer{
		unsafe.Pointer(&instance), nilPtr(),
	})
}

// EnumeratePhysicalDevices wraps vkEnumeratePhysicalDevices.
func (c *Commands) EnumeratePhysicalDevices(instance Instance, count *uint32, devices *PhysicalDevice) Result {
	return callR(&SigResultHandlePtrPtr, c.enumeratePhysicalDevices, []unsafe.Pointer{
		unsafe.Pointer(&instance), ptr(count), ptr(devices),
	})
}

// GetPhysicalDeviceProperties2 wraps vkGetPhysicalDeviceProperties2.
func (c *Commands) GetPhysicalDeviceProperties2(pd PhysicalDevice, props *PhysicalDeviceProperties2) {
	callV(&SigVoidHandlePtr, c.getPhysicalDeviceProperties2, []unsafe.Pointer{
		unsafe.Pointer(&pd), ptr(props),
	})
}

// GetPhysicalDeviceQueueFamilyProperties wraps vkGetPhysicalDeviceQueueFamilyProperties.
func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice, count *uint32, props *QueueFamilyProperties) {
	callV(&SigVoidHandlePtrPtr, c.getPhysicalDeviceQueueFamilyProperties, []unsafe.Pointer{
		unsafe.Pointer(&pd), ptr(count), ptr(props),
	})
}

// GetPhysicalDeviceMemoryProperties wraps vkGetPhysicalDeviceMemoryProperties.
func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice, props *PhysicalDeviceMemoryProperties) {
	callV(&SigVoidHandlePtr, c.getPhysicalDeviceMemoryProperties, []unsafe.Pointer{
		unsafe.Pointer(&pd), ptr(props),
	})
}

// GetPhysicalDeviceFormatProperties wraps vkGetPhysicalDeviceFormatProperties.
func (c *Commands) GetPhysicalDeviceFormatProperties(pd PhysicalDevice, format Format, props *FormatProperties) {
	callV(&SigVoidHandleU32Ptr, c.getPhysicalDeviceFormatProperties, []unsafe.Pointer{
		unsafe.Pointer(&pd), unsafe.Pointer(&format), ptr(props),
	})
}

// GetPhysicalDeviceFeatures2 wraps vkGetPhysicalDeviceFeatures2.
func (c *Commands) GetPhysicalDeviceFeatures2(pd PhysicalDevice, features *PhysicalDeviceFeatures2) {
	callV(&SigVoidHandlePtr, c.getPhysicalDeviceFeatures2, []unsafe.Pointer{
		unsafe.Pointer(&pd), ptr(features),
	})
}

// GetPhysicalDeviceImageFormatProperties2 wraps vkGetPhysicalDeviceImageFormatProperties2.
func (c *Commands) GetPhysicalDeviceImageFormatProperties2(pd PhysicalDevice, info *PhysicalDeviceImageFormatInfo2, props *ImageFormatProperties2) Result {
	return callR(&SigResultHandlePtrPtr, c.getPhysicalDeviceImageFormatProperties2, []unsafe.Pointer{
		unsafe.Pointer(&pd), ptr(info), ptr(props),
	})
}

// EnumerateDeviceExtensionProperties wraps vkEnumerateDeviceExtensionProperties.
func (c *Commands) EnumerateDeviceExtensionProperties(pd PhysicalDevice, count *uint32, props *ExtensionProperties) Result {
	return callR(&SigResultHandlePtrPtrPtr, c.enumerateDeviceExtensionProperties, []unsafe.Pointer{
		unsafe.Pointer(&pd), nilPtr(), ptr(count), ptr(props),
	})
}

// CreateDevice wraps vkCreateDevice.
func (c *Commands) CreateDevice(pd PhysicalDevice, info *DeviceCreateInfo, device *Device) Result {
	return callR(&SigResultHandlePtrPtrPtr, c.createDevice, []unsafe.Pointer{
		unsafe.Pointer(&pd), ptr(info), nilPtr(), ptr(device),
	})
}

// nilPtr wraps a NULL pointer argument for the goffi args array.
func nilPtr() unsafe.Pointer {
	var p unsafe.Pointer
	return unsafe.Pointer(&p)
}
