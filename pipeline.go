// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

const shaderEntryPoint = "main"

// BlendMode configures one color attachment's blending. The zero value
// disables blending and writes all channels.
type BlendMode struct {
	Enable         bool
	SrcColorFactor vk.BlendFactor
	DstColorFactor vk.BlendFactor
	ColorOp        vk.BlendOp
	SrcAlphaFactor vk.BlendFactor
	DstAlphaFactor vk.BlendFactor
	AlphaOp        vk.BlendOp
	ColorMask      vk.ColorComponentFlags
}

// AlphaBlend is conventional src-over blending.
var AlphaBlend = BlendMode{
	Enable:         true,
	SrcColorFactor: vk.BlendFactorSrcAlpha,
	DstColorFactor: vk.BlendFactorOneMinusSrcAlpha,
	ColorOp:        vk.BlendOpAdd,
	SrcAlphaFactor: vk.BlendFactorOne,
	DstAlphaFactor: vk.BlendFactorOneMinusSrcAlpha,
	AlphaOp:        vk.BlendOpAdd,
	ColorMask:      vk.ColorComponentAll,
}

// Pipeline holds a main shader and the pipeline layout assembled from its
// (merged) reflection.
type Pipeline struct {
	dev        *Device
	MainShader *Shader
	Layout     *PipelineLayout
}

func newPipeline(dev *Device, main *Shader, merged *PipelineLayout) Pipeline {
	return Pipeline{dev: dev, MainShader: main, Layout: merged}
}

// Device returns the owning device.
func (p *Pipeline) Device() *Device { return p.dev }

// BindPoint returns graphics for fragment mains, compute otherwise.
func (p *Pipeline) BindPoint() vk.PipelineBindPoint {
	if p.MainShader.Stage() == vk.ShaderStageFragmentBit {
		return vk.PipelineBindPointGraphics
	}
	return vk.PipelineBindPointCompute
}

// pipelineVariant caches the per-output-format pipelines: fill and
// wireframe, plus the render pass used on the non-dynamic-rendering path.
type pipelineVariant struct {
	fill       vk.Pipeline
	wireframe  vk.Pipeline
	renderPass vk.RenderPass
}

// GraphicsPipeline materialises fill and wireframe pipeline variants per
// output format, lazily on first use of each format.
type GraphicsPipeline struct {
	Pipeline

	vs    *Shader
	Blend BlendMode
	MS    uint32

	handles map[vk.Format]*pipelineVariant
}

// NewGraphicsPipeline builds a graphics pipeline around a fragment shader.
// vs may be nil: the device's shared fullscreen-triangle vertex shader is
// used. ms is clamped to at least one sample.
func NewGraphicsPipeline(dev *Device, ps *Shader, vs *Shader, blend BlendMode, ms uint32) (*GraphicsPipeline, error) {
	g := &GraphicsPipeline{
		vs:      vs,
		Blend:   blend,
		MS:      max(ms, 1),
		handles: make(map[vk.Format]*pipelineVariant),
	}

	vsl, err := g.vertexShader(dev)
	if err != nil {
		return nil, err
	}
	layout, err := NewPipelineLayout(dev, ps.Layout.Merge(vsl.Layout))
	if err != nil {
		return nil, err
	}
	g.Pipeline = newPipeline(dev, ps, layout)
	return g, nil
}

// NewGraphicsPipelineFromSPIRV reflects a fragment binary and builds the
// pipeline with the shared fullscreen vertex shader.
func NewGraphicsPipelineFromSPIRV(dev *Device, src []byte, blend BlendMode, ms uint32) (*GraphicsPipeline, error) {
	ps, err := NewShader(dev, src)
	if err != nil {
		return nil, err
	}
	return NewGraphicsPipeline(dev, ps, nil, blend, ms)
}

// vertexShader returns the pipeline's vertex shader, loading the shared
// fullscreen triangle shader into the device globals on first use.
func (g *GraphicsPipeline) vertexShader(dev *Device) (*Shader, error) {
	if g.vs != nil {
		return g.vs, nil
	}
	vs, err := dev.fullscreenVertexShader()
	if err != nil {
		return nil, err
	}
	g.vs = vs
	return vs, nil
}

// Variant returns the cached pipelines for an output format, if present.
func (g *GraphicsPipeline) Variant(format vk.Format) (*pipelineVariant, bool) {
	v, ok := g.handles[format]
	return v, ok
}

// Recreate materialises the fill and wireframe pipelines for an output
// format. Cached: repeated calls for the same format are free.
func (g *GraphicsPipeline) Recreate(format vk.Format) error {
	if v, ok := g.handles[format]; ok && v.fill != 0 {
		return nil
	}
	d := g.dev
	variant := &pipelineVariant{}

	renderInfo := vk.PipelineRenderingCreateInfo{
		SType:                   vk.StructureTypePipelineRenderingCreateInfo,
		ColorAttachmentCount:    g.Layout.RTCount,
		PColorAttachmentFormats: &format,
		DepthAttachmentFormat:   vk.FormatD32Sfloat,
	}

	var inputLayout vk.PipelineVertexInputStateCreateInfo
	g.vs.InputLayout(&inputLayout)

	entry := append([]byte(shaderEntryPoint), 0)
	stages := [2]vk.PipelineShaderStageCreateInfo{
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: g.vs.Module(),
			PName:  uintptr(unsafe.Pointer(&entry[0])),
		},
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: g.MainShader.Module(),
			PName:  uintptr(unsafe.Pointer(&entry[0])),
		},
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: vk.PrimitiveTopologyTriangleList,
	}
	rasterization := vk.PipelineRasterizationStateCreateInfo{
		SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: vk.PolygonModeFill,
		CullMode:    vk.CullModeBackBit,
		FrontFace:   vk.FrontFaceCounterClockwise,
		LineWidth:   1,
	}
	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCountFlagBits(g.MS),
	}
	attachment := vk.PipelineColorBlendAttachmentState{
		BlendEnable:         vk.Bool32Of(g.Blend.Enable),
		SrcColorBlendFactor: g.Blend.SrcColorFactor,
		DstColorBlendFactor: g.Blend.DstColorFactor,
		ColorBlendOp:        g.Blend.ColorOp,
		SrcAlphaBlendFactor: g.Blend.SrcAlphaFactor,
		DstAlphaBlendFactor: g.Blend.DstAlphaFactor,
		AlphaBlendOp:        g.Blend.AlphaOp,
		ColorWriteMask:      g.Blend.ColorMask,
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: g.Layout.RTCount,
		PAttachments:    &attachment,
	}

	if !d.Features.DynamicRendering {
		if err := g.createStaticRenderPass(format, variant); err != nil {
			return err
		}
	}

	dynStates := [5]vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
		vk.DynamicStateDepthTestEnable,
		vk.DynamicStateDepthWriteEnable,
		vk.DynamicStateDepthCompareOp,
	}
	dynamic := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynStates)),
		PDynamicStates:    &dynStates[0],
	}
	viewport := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}
	depth := vk.PipelineDepthStencilStateCreateInfo{
		SType:          vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthCompareOp: vk.CompareOpNever,
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          2,
		PStages:             &stages[0],
		PVertexInputState:   &inputLayout,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewport,
		PRasterizationState: &rasterization,
		PMultisampleState:   &multisample,
		PDepthStencilState:  &depth,
		PColorBlendState:    &colorBlend,
		PDynamicState:       &dynamic,
		Layout:              g.Layout.Handle(),
	}
	if d.Features.DynamicRendering {
		info.PNext = unsafe.Pointer(&renderInfo)
	} else {
		info.RenderPass = variant.renderPass
	}

	if r := d.cmds.CreateGraphicsPipelines(d.handle, d.pipelineCache, 1, &info, &variant.fill); r != vk.Success {
		return resultErr("vkCreateGraphicsPipelines", r)
	}
	rasterization.PolygonMode = vk.PolygonModeLine
	if r := d.cmds.CreateGraphicsPipelines(d.handle, d.pipelineCache, 1, &info, &variant.wireframe); r != vk.Success {
		return resultErr("vkCreateGraphicsPipelines (wireframe)", r)
	}

	g.handles[format] = variant
	return nil
}

// createStaticRenderPass builds the fallback VkRenderPass used when
// dynamic rendering is unavailable.
func (g *GraphicsPipeline) createStaticRenderPass(format vk.Format, variant *pipelineVariant) error {
	colorAttachment := vk.AttachmentDescription{
		Format:        format,
		Samples:       vk.SampleCount1Bit,
		LoadOp:        vk.AttachmentLoadOpDontCare,
		StoreOp:       vk.AttachmentStoreOpStore,
		InitialLayout: vk.ImageLayoutUndefined,
		FinalLayout:   vk.ImageLayoutPresentSrcKHR,
	}
	colorRef := vk.AttachmentReference{Attachment: 0, Layout: vk.ImageLayoutColorAttachmentOptimal}
	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    &colorRef,
	}
	info := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    &colorAttachment,
		SubpassCount:    1,
		PSubpasses:      &subpass,
	}
	d := g.dev
	if r := d.cmds.CreateRenderPass(d.handle, &info, &variant.renderPass); r != vk.Success {
		return resultErr("vkCreateRenderPass", r)
	}
	return nil
}

// PushConstants records push constants covering the layout's range.
func (g *GraphicsPipeline) PushConstants(cmd *CommandBuffer, data unsafe.Pointer, size uint32) {
	if g.Layout.PushConstantSize == 0 {
		return
	}
	if size > g.Layout.PushConstantSize {
		size = g.Layout.PushConstantSize
	}
	g.dev.cmds.CmdPushConstants(cmd.handle, g.Layout.Handle(), g.Layout.PushStages, 0, size, data)
}

// Destroy releases every cached variant and the layout; the shaders are
// left to their owners.
func (g *GraphicsPipeline) Destroy() {
	d := g.dev
	for _, v := range g.handles {
		if v.fill != 0 {
			d.cmds.DestroyPipeline(d.handle, v.fill)
		}
		if v.wireframe != 0 {
			d.cmds.DestroyPipeline(d.handle, v.wireframe)
		}
		if v.renderPass != 0 {
			d.cmds.DestroyRenderPass(d.handle, v.renderPass)
		}
	}
	g.handles = nil
	g.Layout.Destroy()
}

// ComputePipeline is a single pipeline object built from one compute
// shader.
type ComputePipeline struct {
	Pipeline
	handle vk.Pipeline
}

// NewComputePipeline builds the compute pipeline for a compute shader.
func NewComputePipeline(dev *Device, cs *Shader) (*ComputePipeline, error) {
	layout, err := NewPipelineLayout(dev, cs.Layout)
	if err != nil {
		return nil, err
	}

	entry := append([]byte(shaderEntryPoint), 0)
	info := vk.ComputePipelineCreateInfo{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageComputeBit,
			Module: cs.Module(),
			PName:  uintptr(unsafe.Pointer(&entry[0])),
		},
		Layout: layout.Handle(),
	}

	c := &ComputePipeline{Pipeline: newPipeline(dev, cs, layout)}
	if r := dev.cmds.CreateComputePipelines(dev.handle, dev.pipelineCache, 1, &info, &c.handle); r != vk.Success {
		layout.Destroy()
		return nil, resultErr("vkCreateComputePipelines", r)
	}
	return c, nil
}

// NewComputePipelineFromSPIRV reflects a compute binary and builds its
// pipeline.
func NewComputePipelineFromSPIRV(dev *Device, src []byte) (*ComputePipeline, error) {
	cs, err := NewShader(dev, src)
	if err != nil {
		return nil, err
	}
	return NewComputePipeline(dev, cs)
}

// Handle returns the VkPipeline handle.
func (c *ComputePipeline) Handle() vk.Pipeline { return c.handle }

// Destroy releases the pipeline and its layout.
func (c *ComputePipeline) Destroy() {
	if c.handle != 0 {
		c.dev.cmds.DestroyPipeline(c.dev.handle, c.handle)
		c.handle = 0
	}
	c.Layout.Destroy()
}
