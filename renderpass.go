// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"fmt"

	"github.com/gogpu/vkcore/vk"
)

// DepthAttachment configures the optional depth buffer of a render pass.
type DepthAttachment struct {
	DepthBuffer *Image
	Clear       bool
	ClearValue  float32
}

// BeginPassInfo parameterises Renderpass.Begin.
type BeginPassInfo struct {
	OutImage     *Image
	Wireframe    bool
	Clear        bool
	ClearColor   [4]float32
	FrameNumber  uint64
	DeltaSeconds float32
	Depth        *DepthAttachment
}

// VertexData describes an interleaved vertex/index buffer for Draw.
type VertexData struct {
	Buffer       *Buffer
	VertexOffset uint64
	IndexOffset  uint64
	NumIndices   uint32
	DepthWrite   bool
	DepthTest    bool
	DepthFunc    vk.CompareOp
}

// frameConstants is the push-constant block every render pass receives.
type frameConstants struct {
	Extent       vk.Extent2D
	FrameNumber  uint64
	DeltaSeconds float32
	_            [4]byte
}

// Renderpass executes a graphics pipeline against one color output,
// resolving multisampled rendering through a pool-borrowed intermediate.
type Renderpass struct {
	Basepass
	gp *GraphicsPipeline

	// Framebuffer state for the non-dynamic-rendering fallback.
	frameBuffer vk.Framebuffer
	boundView   *ImageView
}

// NewRenderpass wraps a graphics pipeline in a pass.
func NewRenderpass(gp *GraphicsPipeline) (*Renderpass, error) {
	bp, err := newBasepass(&gp.Pipeline)
	if err != nil {
		return nil, err
	}
	return &Renderpass{Basepass: *bp, gp: gp}, nil
}

// NewRenderpassFromSPIRV reflects a fragment binary and builds its pass.
func NewRenderpassFromSPIRV(dev *Device, src []byte) (*Renderpass, error) {
	gp, err := NewGraphicsPipelineFromSPIRV(dev, src, BlendMode{ColorMask: vk.ColorComponentAll}, 1)
	if err != nil {
		return nil, err
	}
	return NewRenderpass(gp)
}

// Begin resolves the output view, materialises the pipeline variant for
// its format, transitions the attachments and opens rendering with
// dynamic viewport/scissor and frame push constants.
func (rp *Renderpass) Begin(cmd *CommandBuffer, info BeginPassInfo) error {
	if info.OutImage == nil {
		return fmt.Errorf("vkcore: render pass needs an output image")
	}

	outView, err := info.OutImage.GetView(0, vk.ImageUsageColorAttachmentBit)
	if err != nil {
		return err
	}

	colorView := outView.Handle()
	resolveMode := vk.ResolveModeNone
	var resolveView vk.ImageView
	resolveLayout := vk.ImageLayoutUndefined

	// Multisampled passes render into a pool-borrowed intermediate and
	// average-resolve into the real output.
	var msImage *Image
	if rp.gp.MS > 1 {
		msImage, err = rp.dev.Pools.Image.Get(ImageCreateInfo{
			Extent:  info.OutImage.EffectiveExtent(),
			Format:  info.OutImage.EffectiveFormat(),
			Usage:   vk.ImageUsageColorAttachmentBit | vk.ImageUsageSampledBit,
			Samples: vk.SampleCountFlagBits(rp.gp.MS),
		}, "multisample intermediate")
		if err != nil {
			return err
		}
		msImage.Transition(cmd, ImageState{
			StageMask:  vk.PipelineStageFlags2(vk.PipelineStageColorAttachmentOutputBit),
			AccessMask: vk.AccessFlags2(vk.AccessColorAttachmentWriteBit),
			Layout:     vk.ImageLayoutColorAttachmentOptimal,
		})
		resolveLayout = vk.ImageLayoutColorAttachmentOptimal
		resolveView = colorView
		resolveMode = vk.ResolveModeAverageBit
		msView, err := msImage.GetView(0, vk.ImageUsageColorAttachmentBit)
		if err != nil {
			return err
		}
		colorView = msView.Handle()
	}

	if err := rp.gp.Recreate(outView.EffectiveFormat()); err != nil {
		return err
	}

	info.OutImage.Transition(cmd, ImageState{
		StageMask:  vk.PipelineStageFlags2(vk.PipelineStageColorAttachmentOutputBit),
		AccessMask: vk.AccessFlags2(vk.AccessColorAttachmentWriteBit),
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	})

	extent := info.OutImage.EffectiveExtent()

	depthClear := true
	depthClearValue := float32(1)
	var depthImage *Image
	if info.Depth != nil && info.Depth.DepthBuffer != nil {
		depthImage = info.Depth.DepthBuffer
		depthClear = info.Depth.Clear
		depthClearValue = info.Depth.ClearValue
		depthImage.Transition(cmd, ImageState{
			StageMask:  vk.PipelineStageFlags2(vk.PipelineStageEarlyFragmentTestsBit),
			AccessMask: vk.AccessFlags2(vk.AccessDepthStencilAttachmentWriteBit),
			Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
		})
	}

	d := rp.dev
	viewport := vk.Viewport{
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MaxDepth: 1,
	}
	scissor := vk.Rect2D{Extent: extent}
	d.cmds.CmdSetViewport(cmd.handle, 0, 1, &viewport)
	d.cmds.CmdSetScissor(cmd.handle, 0, 1, &scissor)
	d.cmds.CmdSetDepthTestEnable(cmd.handle, false)
	d.cmds.CmdSetDepthWriteEnable(cmd.handle, false)
	d.cmds.CmdSetDepthCompareOp(cmd.handle, vk.CompareOpNever)

	variant, _ := rp.gp.Variant(outView.EffectiveFormat())

	if !d.Features.DynamicRendering {
		if err := rp.beginStatic(cmd, outView, variant.renderPass, extent); err != nil {
			return err
		}
	} else {
		rp.beginDynamic(cmd, info, colorView, resolveMode, resolveView, resolveLayout, depthImage, depthClear, depthClearValue, extent)
	}

	pipeline := variant.fill
	if info.Wireframe {
		pipeline = variant.wireframe
	}
	d.cmds.CmdBindPipeline(cmd.handle, vk.PipelineBindPointGraphics, pipeline)
	cmd.AddDependency(rp)

	constants := frameConstants{
		Extent:       info.OutImage.Extent(),
		FrameNumber:  info.FrameNumber,
		DeltaSeconds: info.DeltaSeconds,
	}
	data, size := pushConstantBytes(&constants)
	rp.gp.PushConstants(cmd, data, size)

	if msImage != nil {
		rp.dev.Pools.Image.Release(uint64(msImage.Handle()))
	}
	return nil
}

// beginStatic opens the fallback renderpass with a lazily (re)created
// framebuffer keyed on the output view.
func (rp *Renderpass) beginStatic(cmd *CommandBuffer, view *ImageView, pass vk.RenderPass, extent vk.Extent2D) error {
	d := rp.dev

	if rp.boundView != view {
		rp.boundView = view
		if rp.frameBuffer != 0 {
			d.cmds.DestroyFramebuffer(d.handle, rp.frameBuffer)
			rp.frameBuffer = 0
		}
		handle := view.Handle()
		fbInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      pass,
			AttachmentCount: 1,
			PAttachments:    &handle,
			Width:           extent.Width,
			Height:          extent.Height,
			Layers:          1,
		}
		if r := d.cmds.CreateFramebuffer(d.handle, &fbInfo, &rp.frameBuffer); r != vk.Success {
			return resultErr("vkCreateFramebuffer", r)
		}
	}

	clearValue := vk.ClearColor(0, 0, 0, 0)
	beginInfo := vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      pass,
		Framebuffer:     rp.frameBuffer,
		RenderArea:      vk.Rect2D{Extent: extent},
		ClearValueCount: 1,
		PClearValues:    &clearValue,
	}
	d.cmds.CmdBeginRenderPass(cmd.handle, &beginInfo, vk.SubpassContentsInline)
	return nil
}

// beginDynamic opens dynamic rendering with optional resolve and depth
// attachments.
func (rp *Renderpass) beginDynamic(cmd *CommandBuffer, info BeginPassInfo, colorView vk.ImageView,
	resolveMode vk.ResolveModeFlagBits, resolveView vk.ImageView, resolveLayout vk.ImageLayout,
	depthImage *Image, depthClear bool, depthClearValue float32, extent vk.Extent2D,
) {
	loadOp := vk.AttachmentLoadOpLoad
	if info.Clear {
		loadOp = vk.AttachmentLoadOpClear
	}
	color := vk.RenderingAttachmentInfo{
		SType:              vk.StructureTypeRenderingAttachmentInfo,
		ImageView:          colorView,
		ImageLayout:        vk.ImageLayoutColorAttachmentOptimal,
		ResolveMode:        resolveMode,
		ResolveImageView:   resolveView,
		ResolveImageLayout: resolveLayout,
		LoadOp:             loadOp,
		StoreOp:            vk.AttachmentStoreOpStore,
		ClearValue:         vk.ClearColor(info.ClearColor[0], info.ClearColor[1], info.ClearColor[2], info.ClearColor[3]),
	}

	rendering := vk.RenderingInfo{
		SType:                vk.StructureTypeRenderingInfo,
		RenderArea:           vk.Rect2D{Extent: extent},
		LayerCount:           1,
		ColorAttachmentCount: 1,
		PColorAttachments:    &color,
	}

	var depth vk.RenderingAttachmentInfo
	if depthImage != nil {
		depthLoadOp := vk.AttachmentLoadOpLoad
		if depthClear {
			depthLoadOp = vk.AttachmentLoadOpClear
		}
		depthView, err := depthImage.GetView(0, 0)
		if err == nil {
			depth = vk.RenderingAttachmentInfo{
				SType:       vk.StructureTypeRenderingAttachmentInfo,
				ImageView:   depthView.Handle(),
				ImageLayout: vk.ImageLayoutDepthStencilAttachmentOptimal,
				LoadOp:      depthLoadOp,
				StoreOp:     vk.AttachmentStoreOpStore,
				ClearValue:  vk.ClearDepth(depthClearValue),
			}
			rendering.PDepthAttachment = &depth
		}
	}

	rp.dev.cmds.CmdBeginRendering(cmd.handle, &rendering)
}

// Draw issues the pass geometry: with vertex data an indexed draw with
// per-data depth state, otherwise the six-vertex fullscreen pair.
func (rp *Renderpass) Draw(cmd *CommandBuffer, verts *VertexData) {
	d := rp.dev
	if verts != nil {
		d.cmds.CmdSetDepthWriteEnable(cmd.handle, verts.DepthWrite)
		d.cmds.CmdSetDepthTestEnable(cmd.handle, verts.DepthTest)
		d.cmds.CmdSetDepthCompareOp(cmd.handle, verts.DepthFunc)
		handle := verts.Buffer.Handle()
		offset := vk.DeviceSize(verts.VertexOffset)
		d.cmds.CmdBindVertexBuffers(cmd.handle, 0, 1, &handle, &offset)
		d.cmds.CmdBindIndexBuffer(cmd.handle, handle, vk.DeviceSize(verts.IndexOffset), vk.IndexTypeUint32)
		d.cmds.CmdDrawIndexed(cmd.handle, verts.NumIndices, 1, 0, 0, 0)
		cmd.AddDependency(verts.Buffer)
		return
	}
	d.cmds.CmdDraw(cmd.handle, 6, 1, 0, 0)
}

// End closes rendering and drops the staged bindings.
func (rp *Renderpass) End(cmd *CommandBuffer) {
	if rp.dev.Features.DynamicRendering {
		rp.dev.cmds.CmdEndRendering(cmd.handle)
	} else {
		rp.dev.cmds.CmdEndRenderPass(cmd.handle)
	}
	clear(rp.bindings)
}

// Exec runs the whole pass: bind staged resources, begin, draw, end.
func (rp *Renderpass) Exec(cmd *CommandBuffer, info BeginPassInfo, verts *VertexData) error {
	if err := rp.BindResources(cmd); err != nil {
		return err
	}
	if err := rp.Begin(cmd, info); err != nil {
		return err
	}
	rp.Draw(cmd, verts)
	rp.End(cmd)
	return nil
}

// Destroy releases the framebuffer and the base pass resources.
func (rp *Renderpass) Destroy() {
	if rp.frameBuffer != 0 {
		rp.dev.cmds.DestroyFramebuffer(rp.dev.handle, rp.frameBuffer)
		rp.frameBuffer = 0
	}
	rp.Basepass.Destroy()
}
