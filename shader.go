// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/vkcore/spirv"
	"github.com/gogpu/vkcore/vk"
)

// Shader wraps a VkShaderModule together with its reflected layout and,
// for vertex stages, the input binding derived from the stage inputs.
type Shader struct {
	dev    *Device
	module vk.ShaderModule

	// Layout is the reflected descriptor layout of the module.
	Layout spirv.Layout

	stage      vk.ShaderStageFlags
	binding    vk.VertexInputBindingDescription
	attributes []vk.VertexInputAttributeDescription
}

// NewShader reflects a SPIR-V binary and creates its shader module.
func NewShader(dev *Device, src []byte) (*Shader, error) {
	layout, err := spirv.Reflect(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShaderCompile, err)
	}
	if len(src)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V length not word-aligned", ErrShaderCompile)
	}

	words := unsafe.Slice((*uint32)(unsafe.Pointer(&src[0])), len(src)/4)
	info := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uintptr(len(src)),
		PCode:    &words[0],
	}

	s := &Shader{
		dev:    dev,
		Layout: layout,
		stage:  vk.ShaderStageFlags(layout.Stage),
	}
	if r := dev.cmds.CreateShaderModule(dev.handle, &info, &s.module); r != vk.Success {
		return nil, resultErr("vkCreateShaderModule", r)
	}

	if layout.Stage == spirv.StageVertex {
		s.binding = vk.VertexInputBindingDescription{
			Stride:    layout.InputStride,
			InputRate: vk.VertexInputRateVertex,
		}
		s.attributes = make([]vk.VertexInputAttributeDescription, 0, len(layout.Attributes))
		for i, attr := range layout.Attributes {
			s.attributes = append(s.attributes, vk.VertexInputAttributeDescription{
				Location: uint32(i),
				Binding:  0,
				Format:   attributeFormat(attr),
				Offset:   attr.Offset,
			})
		}
	}
	return s, nil
}

// Module returns the VkShaderModule handle.
func (s *Shader) Module() vk.ShaderModule { return s.module }

// Stage returns the shader stage mask.
func (s *Shader) Stage() vk.ShaderStageFlags { return s.stage }

// InputLayout fills a vertex-input state from the reflected attributes.
// Returns false for non-vertex shaders.
func (s *Shader) InputLayout(info *vk.PipelineVertexInputStateCreateInfo) bool {
	if s.stage&vk.ShaderStageVertexBit == 0 || info == nil {
		return false
	}
	*info = vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexAttributeDescriptionCount: uint32(len(s.attributes)),
	}
	if len(s.attributes) > 0 {
		info.PVertexAttributeDescriptions = &s.attributes[0]
		info.VertexBindingDescriptionCount = 1
		info.PVertexBindingDescriptions = &s.binding
	}
	return true
}

// Destroy releases the shader module.
func (s *Shader) Destroy() {
	if s.module != 0 {
		s.dev.cmds.DestroyShaderModule(s.dev.handle, s.module)
		s.module = 0
	}
}

// attributeFormat maps a reflected attribute (base type, width, vector
// size) to a VkFormat.
func attributeFormat(a spirv.Attribute) vk.Format {
	type key struct {
		tag     spirv.TypeTag
		width   uint32
		vecsize uint32
	}
	table := map[key]vk.Format{
		{spirv.TagFloat, 64, 2}: vk.FormatR64G64Sfloat,
		{spirv.TagFloat, 32, 2}: vk.FormatR32G32Sfloat,
		{spirv.TagFloat, 16, 2}: vk.FormatR16G16Sfloat,
		{spirv.TagSint, 64, 2}:  vk.FormatR64G64Sint,
		{spirv.TagSint, 32, 2}:  vk.FormatR32G32Sint,
		{spirv.TagSint, 16, 2}:  vk.FormatR16G16Sint,
		{spirv.TagSint, 8, 2}:   vk.FormatR8G8Sint,
		{spirv.TagUint, 64, 2}:  vk.FormatR64G64Uint,
		{spirv.TagUint, 32, 2}:  vk.FormatR32G32Uint,
		{spirv.TagUint, 16, 2}:  vk.FormatR16G16Uint,
		{spirv.TagUint, 8, 2}:   vk.FormatR8G8Uint,

		{spirv.TagFloat, 64, 3}: vk.FormatR64G64B64Sfloat,
		{spirv.TagFloat, 32, 3}: vk.FormatR32G32B32Sfloat,
		{spirv.TagSint, 64, 3}:  vk.FormatR64G64B64Sint,
		{spirv.TagSint, 32, 3}:  vk.FormatR32G32B32Sint,
		{spirv.TagSint, 16, 3}:  vk.FormatR16G16B16Sint,
		{spirv.TagSint, 8, 3}:   vk.FormatR8G8B8Sint,
		{spirv.TagUint, 64, 3}:  vk.FormatR64G64B64Uint,
		{spirv.TagUint, 32, 3}:  vk.FormatR32G32B32Uint,
		{spirv.TagUint, 16, 3}:  vk.FormatR16G16B16Uint,
		{spirv.TagUint, 8, 3}:   vk.FormatR8G8B8Uint,
		{spirv.TagFloat, 16, 3}: vk.FormatR16G16B16Sfloat,

		{spirv.TagFloat, 64, 4}: vk.FormatR64G64B64A64Sfloat,
		{spirv.TagFloat, 32, 4}: vk.FormatR32G32B32A32Sfloat,
		{spirv.TagFloat, 16, 4}: vk.FormatR16G16B16A16Sfloat,
		{spirv.TagSint, 64, 4}:  vk.FormatR64G64B64A64Sint,
		{spirv.TagSint, 32, 4}:  vk.FormatR32G32B32A32Sint,
		{spirv.TagSint, 16, 4}:  vk.FormatR16G16B16A16Sint,
		{spirv.TagSint, 8, 4}:   vk.FormatR8G8B8A8Sint,
		{spirv.TagUint, 64, 4}:  vk.FormatR64G64B64A64Uint,
		{spirv.TagUint, 32, 4}:  vk.FormatR32G32B32A32Uint,
		{spirv.TagUint, 16, 4}:  vk.FormatR16G16B16A16Uint,
		{spirv.TagUint, 8, 4}:   vk.FormatR8G8B8A8Uint,
	}
	return table[key{a.Tag, a.Width, a.VecSize}]
}

// kindToDescriptorType maps reflected binding kinds to Vulkan descriptor
// types.
func kindToDescriptorType(k spirv.DescriptorKind) vk.DescriptorType {
	switch k {
	case spirv.KindCombinedImageSampler:
		return vk.DescriptorTypeCombinedImageSampler
	case spirv.KindSampledImage:
		return vk.DescriptorTypeSampledImage
	case spirv.KindStorageImage:
		return vk.DescriptorTypeStorageImage
	case spirv.KindStorageBuffer:
		return vk.DescriptorTypeStorageBuffer
	case spirv.KindUniformBuffer:
		return vk.DescriptorTypeUniformBuffer
	case spirv.KindInputAttachment:
		return vk.DescriptorTypeInputAttachment
	default:
		return vk.DescriptorTypeUniformBuffer
	}
}
