// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// Command-buffer recording wrappers.

// BeginCommandBuffer wraps vkBeginCommandBuffer.
func (c *Commands) BeginCommandBuffer(cb CommandBuffer, info *CommandBufferBeginInfo) Result {
	return callR(&SigResultHandlePtr, c.beginCommandBuffer, []unsafe.Pointer{
		unsafe.Pointer(&cb), ptr(info),
	})
}

// EndCommandBuffer wraps vkEndCommandBuffer.
func (c *Commands) EndCommandBuffer(cb CommandBuffer) Result {
	return callR(&SigResultHandle, c.endCommandBuffer, []unsafe.Pointer{unsafe.Pointer(&cb)})
}

// ResetCommandBuffer wraps vkResetCommandBuffer.
func (c *Commands) ResetCommandBuffer(cb CommandBuffer, flags CommandBufferResetFlags) Result {
	return callR(&SigResultHandleU32, c.resetCommandBuffer, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&flags),
	})
}

// CmdPipelineBarrier wraps vkCmdPipelineBarrier.
func (c *Commands) CmdPipelineBarrier(cb CommandBuffer, srcStage, dstStage PipelineStageFlags, deps DependencyFlags,
	memCount uint32, mem *MemoryBarrier,
	bufCount uint32, buf *BufferMemoryBarrier,
	imgCount uint32, img *ImageMemoryBarrier,
) {
	callV(&SigVoidCmdPipelineBarrier, c.cmdPipelineBarrier, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&srcStage), unsafe.Pointer(&dstStage), unsafe.Pointer(&deps),
		unsafe.Pointer(&memCount), ptr(mem),
		unsafe.Pointer(&bufCount), ptr(buf),
		unsafe.Pointer(&imgCount), ptr(img),
	})
}

// CmdPipelineBarrier2 wraps vkCmdPipelineBarrier2 (synchronization2).
func (c *Commands) CmdPipelineBarrier2(cb CommandBuffer, info *DependencyInfo) {
	callV(&SigVoidHandlePtr, c.cmdPipelineBarrier2, []unsafe.Pointer{
		unsafe.Pointer(&cb), ptr(info),
	})
}

// CmdCopyBuffer wraps vkCmdCopyBuffer.
func (c *Commands) CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, count uint32, regions *BufferCopy) {
	callV(&SigVoidCmdCopyBuffer, c.cmdCopyBuffer, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&dst),
		unsafe.Pointer(&count), ptr(regions),
	})
}

// CmdCopyBufferToImage wraps vkCmdCopyBufferToImage.
func (c *Commands) CmdCopyBufferToImage(cb CommandBuffer, src Buffer, dst Image, layout ImageLayout, count uint32, regions *BufferImageCopy) {
	callV(&SigVoidCmdCopyBufferToImage, c.cmdCopyBufferToImage, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&dst),
		unsafe.Pointer(&layout), unsafe.Pointer(&count), ptr(regions),
	})
}

// CmdCopyImageToBuffer wraps vkCmdCopyImageToBuffer.
func (c *Commands) CmdCopyImageToBuffer(cb CommandBuffer, src Image, layout ImageLayout, dst Buffer, count uint32, regions *BufferImageCopy) {
	callV(&SigVoidCmdCopyImageToBuffer, c.cmdCopyImageToBuffer, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&layout),
		unsafe.Pointer(&dst), unsafe.Pointer(&count), ptr(regions),
	})
}

// CmdCopyImage wraps vkCmdCopyImage.
func (c *Commands) CmdCopyImage(cb CommandBuffer, src Image, srcLayout ImageLayout, dst Image, dstLayout ImageLayout, count uint32, regions *ImageCopy) {
	callV(&SigVoidCmdCopyImage, c.cmdCopyImage, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&srcLayout),
		unsafe.Pointer(&dst), unsafe.Pointer(&dstLayout),
		unsafe.Pointer(&count), ptr(regions),
	})
}

// CmdBlitImage wraps vkCmdBlitImage.
func (c *Commands) CmdBlitImage(cb CommandBuffer, src Image, srcLayout ImageLayout, dst Image, dstLayout ImageLayout, count uint32, regions *ImageBlit, filter Filter) {
	callV(&SigVoidCmdBlitImage, c.cmdBlitImage, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&srcLayout),
		unsafe.Pointer(&dst), unsafe.Pointer(&dstLayout),
		unsafe.Pointer(&count), ptr(regions), unsafe.Pointer(&filter),
	})
}

// CmdBlitImage2 wraps vkCmdBlitImage2 (copy_commands2).
func (c *Commands) CmdBlitImage2(cb CommandBuffer, info *BlitImageInfo2) {
	callV(&SigVoidHandlePtr, c.cmdBlitImage2, []unsafe.Pointer{
		unsafe.Pointer(&cb), ptr(info),
	})
}

// HasCopyCommands2 reports whether vkCmdBlitImage2 resolved.
func (c *Commands) HasCopyCommands2() bool { return c.cmdBlitImage2 != nil }

// CmdResolveImage2 wraps vkCmdResolveImage2.
func (c *Commands) CmdResolveImage2(cb CommandBuffer, info *ResolveImageInfo2) {
	callV(&SigVoidHandlePtr, c.cmdResolveImage2, []unsafe.Pointer{
		unsafe.Pointer(&cb), ptr(info),
	})
}

// CmdClearColorImage wraps vkCmdClearColorImage.
func (c *Commands) CmdClearColorImage(cb CommandBuffer, image Image, layout ImageLayout, color *ClearColorValue, count uint32, ranges *ImageSubresourceRange) {
	callV(&SigVoidCmdClearColorImage, c.cmdClearColorImage, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&image), unsafe.Pointer(&layout),
		ptr(color), unsafe.Pointer(&count), ptr(ranges),
	})
}

// CmdBeginRenderPass wraps vkCmdBeginRenderPass.
func (c *Commands) CmdBeginRenderPass(cb CommandBuffer, info *RenderPassBeginInfo, contents SubpassContents) {
	callV(&SigVoidHandlePtrU32, c.cmdBeginRenderPass, []unsafe.Pointer{
		unsafe.Pointer(&cb), ptr(info), unsafe.Pointer(&contents),
	})
}

// CmdEndRenderPass wraps vkCmdEndRenderPass.
func (c *Commands) CmdEndRenderPass(cb CommandBuffer) {
	callV(&SigVoidHandle, c.cmdEndRenderPass, []unsafe.Pointer{unsafe.Pointer(&cb)})
}

// CmdBeginRendering wraps vkCmdBeginRendering (dynamic rendering).
func (c *Commands) CmdBeginRendering(cb CommandBuffer, info *RenderingInfo) {
	callV(&SigVoidHandlePtr, c.cmdBeginRendering, []unsafe.Pointer{
		unsafe.Pointer(&cb), ptr(info),
	})
}

// CmdEndRendering wraps vkCmdEndRendering.
func (c *Commands) CmdEndRendering(cb CommandBuffer) {
	callV(&SigVoidHandle, c.cmdEndRendering, []unsafe.Pointer{unsafe.Pointer(&cb)})
}

// CmdBindPipeline wraps vkCmdBindPipeline.
func (c *Commands) CmdBindPipeline(cb CommandBuffer, bindPoint PipelineBindPoint, pipeline Pipeline) {
	callV(&SigVoidHandleU32Handle, c.cmdBindPipeline, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&pipeline),
	})
}

// CmdBindDescriptorSets wraps vkCmdBindDescriptorSets.
func (c *Commands) CmdBindDescriptorSets(cb CommandBuffer, bindPoint PipelineBindPoint, layout PipelineLayout, firstSet, count uint32, sets *DescriptorSet, dynamicOffsetCount uint32, dynamicOffsets *uint32) {
	callV(&SigVoidCmdBindDescriptorSets, c.cmdBindDescriptorSets, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&layout),
		unsafe.Pointer(&firstSet), unsafe.Pointer(&count), ptr(sets),
		unsafe.Pointer(&dynamicOffsetCount), ptr(dynamicOffsets),
	})
}

// CmdBindVertexBuffers wraps vkCmdBindVertexBuffers.
func (c *Commands) CmdBindVertexBuffers(cb CommandBuffer, first, count uint32, buffers *Buffer, offsets *DeviceSize) {
	callV(&SigVoidHandleU32U32PtrPtr, c.cmdBindVertexBuffers, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&first), unsafe.Pointer(&count),
		ptr(buffers), ptr(offsets),
	})
}

// CmdBindIndexBuffer wraps vkCmdBindIndexBuffer.
func (c *Commands) CmdBindIndexBuffer(cb CommandBuffer, buffer Buffer, offset DeviceSize, indexType IndexType) {
	callV(&SigVoidHandleHandleU64U32, c.cmdBindIndexBuffer, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&buffer), unsafe.Pointer(&offset), unsafe.Pointer(&indexType),
	})
}

// CmdDraw wraps vkCmdDraw.
func (c *Commands) CmdDraw(cb CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	callV(&SigVoidHandleU32x4, c.cmdDraw, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&vertexCount), unsafe.Pointer(&instanceCount),
		unsafe.Pointer(&firstVertex), unsafe.Pointer(&firstInstance),
	})
}

// CmdDrawIndexed wraps vkCmdDrawIndexed.
func (c *Commands) CmdDrawIndexed(cb CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	callV(&SigVoidHandleU32U32U32I32U32, c.cmdDrawIndexed, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&indexCount), unsafe.Pointer(&instanceCount),
		unsafe.Pointer(&firstIndex), unsafe.Pointer(&vertexOffset), unsafe.Pointer(&firstInstance),
	})
}

// CmdDispatch wraps vkCmdDispatch.
func (c *Commands) CmdDispatch(cb CommandBuffer, x, y, z uint32) {
	callV(&SigVoidHandleU32U32U32, c.cmdDispatch, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&x), unsafe.Pointer(&y), unsafe.Pointer(&z),
	})
}

// CmdPushConstants wraps vkCmdPushConstants.
func (c *Commands) CmdPushConstants(cb CommandBuffer, layout PipelineLayout, stages ShaderStageFlags, offset, size uint32, values unsafe.Pointer) {
	callV(&SigVoidCmdPushConstants, c.cmdPushConstants, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&layout), unsafe.Pointer(&stages),
		unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&values),
	})
}

// CmdSetViewport wraps vkCmdSetViewport.
func (c *Commands) CmdSetViewport(cb CommandBuffer, first, count uint32, viewports *Viewport) {
	callV(&SigVoidHandleU32U32Ptr, c.cmdSetViewport, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&first), unsafe.Pointer(&count), ptr(viewports),
	})
}

// CmdSetScissor wraps vkCmdSetScissor.
func (c *Commands) CmdSetScissor(cb CommandBuffer, first, count uint32, scissors *Rect2D) {
	callV(&SigVoidHandleU32U32Ptr, c.cmdSetScissor, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&first), unsafe.Pointer(&count), ptr(scissors),
	})
}

// CmdSetDepthTestEnable wraps vkCmdSetDepthTestEnable.
func (c *Commands) CmdSetDepthTestEnable(cb CommandBuffer, enable bool) {
	v := boolToBool32(enable)
	callV(&SigVoidHandleU32, c.cmdSetDepthTestEnable, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&v),
	})
}

// CmdSetDepthWriteEnable wraps vkCmdSetDepthWriteEnable.
func (c *Commands) CmdSetDepthWriteEnable(cb CommandBuffer, enable bool) {
	v := boolToBool32(enable)
	callV(&SigVoidHandleU32, c.cmdSetDepthWriteEnable, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&v),
	})
}

// CmdSetDepthCompareOp wraps vkCmdSetDepthCompareOp.
func (c *Commands) CmdSetDepthCompareOp(cb CommandBuffer, op CompareOp) {
	callV(&SigVoidHandleU32, c.cmdSetDepthCompareOp, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&op),
	})
}

// CmdResetQueryPool wraps vkCmdResetQueryPool.
func (c *Commands) CmdResetQueryPool(cb CommandBuffer, pool QueryPool, first, count uint32) {
	callV(&SigVoidHandleHandleU32U32, c.cmdResetQueryPool, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&pool), unsafe.Pointer(&first), unsafe.Pointer(&count),
	})
}

// CmdWriteTimestamp wraps vkCmdWriteTimestamp.
func (c *Commands) CmdWriteTimestamp(cb CommandBuffer, stage PipelineStageFlags, pool QueryPool, query uint32) {
	callV(&SigVoidHandleU32HandleU32, c.cmdWriteTimestamp, []unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&stage), unsafe.Pointer(&pool), unsafe.Pointer(&query),
	})
}

// Bool32Of converts a Go bool to a VkBool32.
func Bool32Of(b bool) Bool32 { return boolToBool32(b) }

func boolToBool32(b bool) Bool32 {
	if b {
		return 1
	}
	return 0
}
