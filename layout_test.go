// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"testing"

	"github.com/gogpu/vkcore/spirv"
)

func uniformBinding(binding uint32, name string, ty *spirv.Type) spirv.NamedBinding {
	return spirv.NamedBinding{
		Binding: binding,
		Kind:    spirv.KindUniformBuffer,
		Count:   1,
		Name:    name,
		Type:    ty,
		Stages:  spirv.StageFragment,
	}
}

func TestBuildUniformPacking(t *testing.T) {
	mat4 := &spirv.Type{Tag: spirv.TagStruct, Size: 80, Alignment: 16}
	vec3Struct := &spirv.Type{Tag: spirv.TagStruct, Size: 12, Alignment: 16}
	ssbo := &spirv.Type{Tag: spirv.TagStruct, Size: 256, Alignment: 16}

	sets := map[uint32]map[uint32]spirv.NamedBinding{
		0: {
			0: uniformBinding(0, "params", vec3Struct),
			1: uniformBinding(1, "frame", mat4),
			2: {
				Binding: 2,
				Kind:    spirv.KindStorageBuffer,
				Count:   1,
				Name:    "particles",
				Type:    ssbo,
				Stages:  spirv.StageCompute,
			},
		},
		1: {
			0: uniformBinding(0, "extra", vec3Struct),
		},
	}

	offsets, uniformSize, ssboSizes := buildUniformPacking(sets)

	// Invariant: every offset is alignment-aligned and the binding fits
	// inside the coalesced buffer.
	check := func(set, binding uint32, ty *spirv.Type) {
		off, ok := offsets[bindingKey(set, binding)]
		if !ok {
			t.Fatalf("no offset for (%d,%d)", set, binding)
		}
		if off%ty.Alignment != 0 {
			t.Errorf("offset %d of (%d,%d) not %d-aligned", off, set, binding, ty.Alignment)
		}
		if off+ty.Size > uniformSize {
			t.Errorf("binding (%d,%d) [%d,%d) exceeds uniform size %d", set, binding, off, off+ty.Size, uniformSize)
		}
	}
	check(0, 0, vec3Struct)
	check(0, 1, mat4)
	check(1, 0, vec3Struct)

	// SSBOs never land in the uniform buffer; they get a size entry.
	if _, ok := offsets[bindingKey(0, 2)]; ok {
		t.Error("SSBO received a uniform offset")
	}
	if sz := ssboSizes[bindingKey(0, 2)]; sz != 256 {
		t.Errorf("SSBO size = %d, want 256", sz)
	}

	// Deterministic packing: (0,0) at 0, (0,1) aligned after 12 -> 16,
	// (1,0) after 16+80=96 -> 96.
	if off := offsets[bindingKey(0, 0)]; off != 0 {
		t.Errorf("offset (0,0) = %d, want 0", off)
	}
	if off := offsets[bindingKey(0, 1)]; off != 16 {
		t.Errorf("offset (0,1) = %d, want 16", off)
	}
	if off := offsets[bindingKey(1, 0)]; off != 96 {
		t.Errorf("offset (1,0) = %d, want 96", off)
	}
	if uniformSize != 108 {
		t.Errorf("uniform size = %d, want 108", uniformSize)
	}
}

func TestBuildUniformPackingEmpty(t *testing.T) {
	offsets, size, ssbos := buildUniformPacking(nil)
	if len(offsets) != 0 || size != 0 || len(ssbos) != 0 {
		t.Error("empty layout produced packing entries")
	}
}

func TestUpdateOrInsert(t *testing.T) {
	var list []Binding

	list = updateOrInsert(list, Binding{Index: 2})
	list = updateOrInsert(list, Binding{Index: 0})
	list = updateOrInsert(list, Binding{Index: 1, ArrayIndex: 1})
	list = updateOrInsert(list, Binding{Index: 1, ArrayIndex: 0})

	wantOrder := [][2]uint32{{0, 0}, {1, 0}, {1, 1}, {2, 0}}
	if len(list) != len(wantOrder) {
		t.Fatalf("len = %d, want %d", len(list), len(wantOrder))
	}
	for i, want := range wantOrder {
		if list[i].Index != want[0] || list[i].ArrayIndex != want[1] {
			t.Errorf("list[%d] = (%d,%d), want (%d,%d)", i, list[i].Index, list[i].ArrayIndex, want[0], want[1])
		}
	}

	// Re-staging the same (index, element) replaces in place.
	buf := &Buffer{}
	list = updateOrInsert(list, Binding{Index: 1, ArrayIndex: 1, Buffer: buf})
	if len(list) != 4 {
		t.Fatalf("replace grew the list to %d", len(list))
	}
	if list[2].Buffer != buf {
		t.Error("replace did not take effect")
	}
}
