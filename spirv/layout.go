// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"fmt"
	"sort"
)

// Stage is a shader stage mask. Bit positions match the SPIR-V execution
// model (and thus VkShaderStageFlagBits).
type Stage uint32

// Stages.
const (
	StageVertex   Stage = 1 << executionModelVertex
	StageFragment Stage = 1 << executionModelFragment
	StageCompute  Stage = 1 << executionModelGLCompute
)

// DescriptorKind classifies a reflected binding.
type DescriptorKind uint32

// Descriptor kinds.
const (
	KindCombinedImageSampler DescriptorKind = iota
	KindSampledImage
	KindStorageImage
	KindStorageBuffer
	KindUniformBuffer
	KindInputAttachment
)

// AccessFlags records NonWritable/NonReadable decorations on buffer blocks.
type AccessFlags int

// Access flag values.
const (
	AccessNone      AccessFlags = 0
	AccessWrite     AccessFlags = 1
	AccessRead      AccessFlags = 2
	AccessReadWrite AccessFlags = 3
)

// DefaultUnboundedCount is the descriptor count materialised for
// runtime-sized binding arrays.
const DefaultUnboundedCount = 16

// BindingIndex addresses a binding (and optionally a member within it) by
// set, binding and byte offset.
type BindingIndex struct {
	Set     uint32
	Binding uint32
	Offset  uint32
}

// NamedBinding is one reflected descriptor binding.
type NamedBinding struct {
	Binding uint32
	Kind    DescriptorKind
	Count   uint32
	Name    string
	Type    *Type
	Stages  Stage
	Access  AccessFlags
}

// SSBO reports whether the binding is a storage buffer.
func (b NamedBinding) SSBO() bool { return b.Kind == KindStorageBuffer }

// Attribute is one vertex input attribute. ByteSize is VecSize × Width / 8;
// Offset is the accumulated offset within the single input binding.
type Attribute struct {
	Location uint32
	Tag      TypeTag
	Width    uint32
	VecSize  uint32
	ByteSize uint32
	Offset   uint32
}

// Layout is the reflected shape of one shader module (or, after Merge, of
// a shader group sharing a pipeline layout).
type Layout struct {
	Stage            Stage
	RTCount          uint32
	PushConstantSize uint32

	// Sets maps set -> binding -> NamedBinding.
	Sets map[uint32]map[uint32]NamedBinding

	// BindingsByName maps a binding or struct member name to its index.
	BindingsByName map[string]BindingIndex

	// Attributes and InputStride describe the vertex input layout
	// (vertex stages only).
	Attributes  []Attribute
	InputStride uint32
}

// Reflect parses a SPIR-V binary and builds its Layout.
//
// Reflection is pure: the same binary always produces a structurally equal
// layout, and identical type trees are pointer-equal thanks to interning.
func Reflect(src []byte) (Layout, error) {
	m, err := parse(src)
	if err != nil {
		return Layout{}, err
	}
	if len(m.entries) == 0 {
		return Layout{}, fmt.Errorf("spirv: no entry point")
	}

	layout := Layout{
		Sets:           make(map[uint32]map[uint32]NamedBinding),
		BindingsByName: make(map[string]BindingIndex),
	}
	layout.Stage = Stage(1) << m.entries[0].executionModel

	for _, v := range m.variables {
		pointeeID, ok := m.pointee(v.pointerType)
		if !ok {
			continue
		}

		switch v.storageClass {
		case storageClassInput:
			if layout.Stage == StageVertex && !m.isBuiltin(v, pointeeID) {
				layout.addAttribute(m, v, pointeeID)
			}
		case storageClassOutput:
			if layout.Stage == StageFragment && !m.isBuiltin(v, pointeeID) {
				layout.RTCount++
			}
		case storageClassPushConstant:
			ty, err := m.buildType(pointeeID)
			if err != nil {
				return Layout{}, err
			}
			if ty.Size > layout.PushConstantSize {
				layout.PushConstantSize = ty.Size
			}
		case storageClassUniformConstant, storageClassUniform, storageClassStorageBuffer:
			if err := layout.addBinding(m, v, pointeeID); err != nil {
				return Layout{}, err
			}
		}
	}

	sort.Slice(layout.Attributes, func(i, j int) bool {
		return layout.Attributes[i].Location < layout.Attributes[j].Location
	})
	layout.finishAttributes()

	return layout, nil
}

// isBuiltin reports whether an interface variable carries (or wraps a block
// carrying) a BuiltIn decoration, e.g. gl_Position.
func (m *module) isBuiltin(v variable, pointeeID uint32) bool {
	if m.hasDecoration(v.id, decorationBuiltIn) {
		return true
	}
	elemID, _ := m.underlying(pointeeID)
	def, ok := m.typeDefs[elemID]
	if !ok || def.op != opTypeStruct {
		return false
	}
	for i := range def.operands {
		if m.hasMemberDecoration(elemID, uint32(i), decorationBuiltIn) {
			return true
		}
	}
	return false
}

// addAttribute appends a vertex input attribute and advances the stride.
func (l *Layout) addAttribute(m *module, v variable, pointeeID uint32) {
	ty, err := m.buildType(pointeeID)
	if err != nil {
		return
	}
	location, _ := m.decoration(v.id, decorationLocation)
	size := ty.VecSize * ty.Width / 8
	l.Attributes = append(l.Attributes, Attribute{
		Location: location,
		Tag:      ty.Tag,
		Width:    ty.Width,
		VecSize:  ty.VecSize,
		ByteSize: size,
	})
}

// finishAttributes assigns sequential offsets after sorting by location.
func (l *Layout) finishAttributes() {
	var stride uint32
	for i := range l.Attributes {
		l.Attributes[i].Offset = stride
		stride += l.Attributes[i].ByteSize
	}
	l.InputStride = stride
}

// addBinding classifies a resource variable and records its NamedBinding.
func (l *Layout) addBinding(m *module, v variable, pointeeID uint32) error {
	elemID, arrayLen := m.underlying(pointeeID)
	def, ok := m.typeDefs[elemID]
	if !ok {
		return fmt.Errorf("spirv: unresolved resource type for %%%d", v.id)
	}
	var kind DescriptorKind
	switch v.storageClass {
	case storageClassUniformConstant:
		switch def.op {
		case opTypeSampledImage:
			kind = KindCombinedImageSampler
			if imgDef, ok := m.typeDefs[def.operands[0]]; ok && imgDef.operands[1] == dimSubpassData {
				kind = KindInputAttachment
			}
		case opTypeImage:
			switch {
			case def.operands[1] == dimSubpassData:
				kind = KindInputAttachment
			case def.operands[5] == 2:
				kind = KindStorageImage
			default:
				kind = KindSampledImage
			}
		case opTypeSampler:
			// Separate samplers are not supported; matched to the source
			// implementation which binds them through combined samplers.
			return nil
		default:
			return nil
		}
	case storageClassStorageBuffer:
		kind = KindStorageBuffer
	case storageClassUniform:
		if m.hasDecoration(elemID, decorationBufferBlock) {
			kind = KindStorageBuffer
		} else {
			kind = KindUniformBuffer
		}
	}

	ty, err := m.buildType(pointeeID)
	if err != nil {
		return err
	}

	set, _ := m.decoration(v.id, decorationDescriptorSet)
	binding, _ := m.decoration(v.id, decorationBinding)
	name := m.names[v.id]

	count := arrayLen
	if count == 0 {
		count = DefaultUnboundedCount
	}

	nb := NamedBinding{
		Binding: binding,
		Kind:    kind,
		Count:   count,
		Name:    name,
		Type:    ty,
		Stages:  l.Stage,
	}

	l.BindingsByName[name] = BindingIndex{Set: set, Binding: binding}

	if ty.IsStruct() {
		nb.Access = m.blockAccess(elemID)
		for memberName, member := range ty.Members {
			l.BindingsByName[memberName] = BindingIndex{Set: set, Binding: binding, Offset: member.Offset}
		}
	}

	if l.Sets[set] == nil {
		l.Sets[set] = make(map[uint32]NamedBinding)
	}
	l.Sets[set][binding] = nb
	return nil
}

// blockAccess folds NonWritable/NonReadable decorations shared by every
// member of a buffer block into coarse access flags.
func (m *module) blockAccess(structID uint32) AccessFlags {
	def, ok := m.typeDefs[structID]
	if !ok || len(def.operands) == 0 {
		return AccessReadWrite
	}
	nonWritable, nonReadable := true, true
	for i := range def.operands {
		if !m.hasMemberDecoration(structID, uint32(i), decorationNonWritable) {
			nonWritable = false
		}
		if !m.hasMemberDecoration(structID, uint32(i), decorationNonReadable) {
			nonReadable = false
		}
	}
	access := AccessNone
	if !nonReadable {
		access |= AccessRead
	}
	if !nonWritable {
		access |= AccessWrite
	}
	return access
}

// Merge unions two layouts: bindings by (set, binding) with OR-combined
// stage masks, names unioned, RTCount and PushConstantSize taken as max.
func (l Layout) Merge(r Layout) Layout {
	re := Layout{
		Stage:            l.Stage | r.Stage,
		RTCount:          max(l.RTCount, r.RTCount),
		PushConstantSize: max(l.PushConstantSize, r.PushConstantSize),
		Sets:             make(map[uint32]map[uint32]NamedBinding),
		BindingsByName:   make(map[string]BindingIndex, len(l.BindingsByName)+len(r.BindingsByName)),
		Attributes:       l.Attributes,
		InputStride:      l.InputStride,
	}
	if len(re.Attributes) == 0 {
		re.Attributes = r.Attributes
		re.InputStride = r.InputStride
	}

	for set, bindings := range l.Sets {
		dst := make(map[uint32]NamedBinding, len(bindings))
		for b, nb := range bindings {
			dst[b] = nb
		}
		re.Sets[set] = dst
	}
	for set, bindings := range r.Sets {
		dst := re.Sets[set]
		if dst == nil {
			dst = make(map[uint32]NamedBinding, len(bindings))
			re.Sets[set] = dst
		}
		for b, nb := range bindings {
			if prev, ok := dst[b]; ok {
				nb.Stages |= prev.Stages
			}
			dst[b] = nb
		}
	}

	for name, idx := range l.BindingsByName {
		re.BindingsByName[name] = idx
	}
	for name, idx := range r.BindingsByName {
		re.BindingsByName[name] = idx
	}
	return re
}
