// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"encoding/binary"
	"reflect"
	"testing"
)

// asm assembles SPIR-V instructions for tests.
type asm struct {
	words []uint32
}

func newAsm() *asm {
	return &asm{words: []uint32{MagicNumber, 0x00010300, 0, 200, 0}}
}

func (a *asm) op(opcode uint16, operands ...uint32) {
	a.words = append(a.words, uint32(len(operands)+1)<<16|uint32(opcode))
	a.words = append(a.words, operands...)
}

func (a *asm) opStr(opcode uint16, pre []uint32, s string, post ...uint32) {
	enc := encodeString(s)
	operands := append(append(append([]uint32{}, pre...), enc...), post...)
	a.op(opcode, operands...)
}

func (a *asm) bytes() []byte {
	out := make([]byte, len(a.words)*4)
	for i, w := range a.words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func encodeString(s string) []uint32 {
	buf := append([]byte(s), 0)
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	words := make([]uint32, len(buf)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return words
}

// fragmentFixture assembles a fragment shader declaring
//
//	layout(set=0, binding=0) uniform Params { mat4 M; vec3 tint; } p;
//	layout(set=0, binding=1) uniform sampler2D tex;
//	layout(set=0, binding=2) uniform sampler2D texArr[];
//	layout(location=0) out vec4 outColor;
func fragmentFixture() []byte {
	const (
		idMain    = 100
		idF32     = 2
		idV3      = 3
		idV4      = 4
		idM4      = 5
		idParams  = 6
		idPtrUni  = 7
		idVarP    = 8
		idImg     = 9
		idSImg    = 10
		idPtrUC   = 11
		idVarTex  = 12
		idPtrOut  = 13
		idVarOut  = 14
		idRTA     = 15
		idPtrUCA  = 16
		idVarTexA = 17
	)

	a := newAsm()
	a.opStr(opEntryPoint, []uint32{executionModelFragment, idMain}, "main")

	a.opStr(opName, []uint32{idParams}, "Params")
	a.opStr(opMemberName, []uint32{idParams, 0}, "M")
	a.opStr(opMemberName, []uint32{idParams, 1}, "tint")
	a.opStr(opName, []uint32{idVarP}, "p")
	a.opStr(opName, []uint32{idVarTex}, "tex")
	a.opStr(opName, []uint32{idVarTexA}, "texArr")

	a.op(opDecorate, idParams, decorationBlock)
	a.op(opMemberDecorate, idParams, 0, decorationOffset, 0)
	a.op(opMemberDecorate, idParams, 1, decorationOffset, 64)
	a.op(opDecorate, idVarP, decorationDescriptorSet, 0)
	a.op(opDecorate, idVarP, decorationBinding, 0)
	a.op(opDecorate, idVarTex, decorationDescriptorSet, 0)
	a.op(opDecorate, idVarTex, decorationBinding, 1)
	a.op(opDecorate, idVarTexA, decorationDescriptorSet, 0)
	a.op(opDecorate, idVarTexA, decorationBinding, 2)
	a.op(opDecorate, idVarOut, decorationLocation, 0)

	a.op(opTypeFloat, idF32, 32)
	a.op(opTypeVector, idV3, idF32, 3)
	a.op(opTypeVector, idV4, idF32, 4)
	a.op(opTypeMatrix, idM4, idV4, 4)
	a.op(opTypeStruct, idParams, idM4, idV3)
	a.op(opTypePointer, idPtrUni, storageClassUniform, idParams)
	a.op(opVariable, idPtrUni, idVarP, storageClassUniform)

	// OpTypeImage: sampled type, dim (2D=1), depth, arrayed, ms, sampled, format.
	a.op(opTypeImage, idImg, idF32, 1, 0, 0, 0, 1, 0)
	a.op(opTypeSampledImage, idSImg, idImg)
	a.op(opTypePointer, idPtrUC, storageClassUniformConstant, idSImg)
	a.op(opVariable, idPtrUC, idVarTex, storageClassUniformConstant)

	a.op(opTypeRuntimeArray, idRTA, idSImg)
	a.op(opTypePointer, idPtrUCA, storageClassUniformConstant, idRTA)
	a.op(opVariable, idPtrUCA, idVarTexA, storageClassUniformConstant)

	a.op(opTypePointer, idPtrOut, storageClassOutput, idV4)
	a.op(opVariable, idPtrOut, idVarOut, storageClassOutput)

	return a.bytes()
}

// vertexFixture assembles a vertex shader with two input attributes and a
// push constant block.
func vertexFixture() []byte {
	const (
		idMain   = 100
		idF32    = 2
		idV2     = 3
		idV4     = 4
		idPC     = 5
		idPtrPC  = 6
		idVarPC  = 7
		idPtrIn2 = 8
		idVarIn0 = 9
		idPtrIn4 = 10
		idVarIn1 = 11
	)

	a := newAsm()
	a.opStr(opEntryPoint, []uint32{executionModelVertex, idMain}, "main")
	a.opStr(opName, []uint32{idPC}, "Push")
	a.opStr(opMemberName, []uint32{idPC, 0}, "mvp")

	a.op(opMemberDecorate, idPC, 0, decorationOffset, 0)
	a.op(opDecorate, idVarIn0, decorationLocation, 0)
	a.op(opDecorate, idVarIn1, decorationLocation, 1)

	a.op(opTypeFloat, idF32, 32)
	a.op(opTypeVector, idV2, idF32, 2)
	a.op(opTypeVector, idV4, idF32, 4)
	a.op(opTypeStruct, idPC, idV4)
	a.op(opTypePointer, idPtrPC, storageClassPushConstant, idPC)
	a.op(opVariable, idPtrPC, idVarPC, storageClassPushConstant)

	a.op(opTypePointer, idPtrIn2, storageClassInput, idV2)
	a.op(opVariable, idPtrIn2, idVarIn0, storageClassInput)
	a.op(opTypePointer, idPtrIn4, storageClassInput, idV4)
	a.op(opVariable, idPtrIn4, idVarIn1, storageClassInput)

	return a.bytes()
}

func TestReflectFragment(t *testing.T) {
	layout, err := Reflect(fragmentFixture())
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}

	if layout.Stage != StageFragment {
		t.Errorf("stage = %#x, want fragment", layout.Stage)
	}
	if layout.RTCount != 1 {
		t.Errorf("RTCount = %d, want 1", layout.RTCount)
	}

	params, ok := layout.Sets[0][0]
	if !ok {
		t.Fatal("binding (0,0) missing")
	}
	if params.Kind != KindUniformBuffer {
		t.Errorf("binding (0,0) kind = %d, want uniform buffer", params.Kind)
	}
	if !params.Type.IsStruct() {
		t.Fatal("binding (0,0) type is not a struct")
	}
	if params.Type.Size != 80 {
		t.Errorf("Params size = %d, want 80", params.Type.Size)
	}
	if m := params.Type.Members["M"]; m.Offset != 0 || m.Size != 64 {
		t.Errorf("member M = {offset %d, size %d}, want {0, 64}", m.Offset, m.Size)
	}
	if m := params.Type.Members["tint"]; m.Offset != 64 || m.Size != 16 {
		t.Errorf("member tint = {offset %d, size %d}, want {64, 16}", m.Offset, m.Size)
	}

	tex, ok := layout.Sets[0][1]
	if !ok {
		t.Fatal("binding (0,1) missing")
	}
	if tex.Kind != KindCombinedImageSampler || tex.Count != 1 {
		t.Errorf("tex = kind %d count %d, want combined sampler count 1", tex.Kind, tex.Count)
	}

	texArr, ok := layout.Sets[0][2]
	if !ok {
		t.Fatal("binding (0,2) missing")
	}
	if texArr.Count != DefaultUnboundedCount {
		t.Errorf("texArr count = %d, want %d", texArr.Count, DefaultUnboundedCount)
	}
	if texArr.Type.ArraySize != UnboundedArray {
		t.Errorf("texArr ArraySize = %#x, want unbounded", texArr.Type.ArraySize)
	}

	wantNames := map[string]BindingIndex{
		"p":      {0, 0, 0},
		"M":      {0, 0, 0},
		"tint":   {0, 0, 64},
		"tex":    {0, 1, 0},
		"texArr": {0, 2, 0},
	}
	for name, want := range wantNames {
		if got, ok := layout.BindingsByName[name]; !ok || got != want {
			t.Errorf("BindingsByName[%q] = %+v (present %v), want %+v", name, got, ok, want)
		}
	}
}

func TestReflectVertexInputs(t *testing.T) {
	layout, err := Reflect(vertexFixture())
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}

	if layout.Stage != StageVertex {
		t.Errorf("stage = %#x, want vertex", layout.Stage)
	}
	if layout.PushConstantSize != 16 {
		t.Errorf("PushConstantSize = %d, want 16", layout.PushConstantSize)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("attributes = %d, want 2", len(layout.Attributes))
	}
	if a := layout.Attributes[0]; a.ByteSize != 8 || a.Offset != 0 {
		t.Errorf("attr 0 = %+v, want size 8 offset 0", a)
	}
	if a := layout.Attributes[1]; a.ByteSize != 16 || a.Offset != 8 {
		t.Errorf("attr 1 = %+v, want size 16 offset 8", a)
	}
	if layout.InputStride != 24 {
		t.Errorf("stride = %d, want 24", layout.InputStride)
	}
}

// Reflection must be a pure function, including hash-consed type identity
// across independent reflections.
func TestReflectPurity(t *testing.T) {
	src := fragmentFixture()

	a, err := Reflect(src)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	b, err := Reflect(src)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("two reflections of the same binary differ")
	}
	if a.Sets[0][0].Type != b.Sets[0][0].Type {
		t.Error("struct types from separate reflections are not pointer-equal")
	}
	if a.Sets[0][1].Type != b.Sets[0][1].Type {
		t.Error("image types from separate reflections are not pointer-equal")
	}
}

func TestMerge(t *testing.T) {
	frag, err := Reflect(fragmentFixture())
	if err != nil {
		t.Fatalf("Reflect fragment: %v", err)
	}
	vert, err := Reflect(vertexFixture())
	if err != nil {
		t.Fatalf("Reflect vertex: %v", err)
	}

	merged := frag.Merge(vert)

	if merged.Stage != StageFragment|StageVertex {
		t.Errorf("merged stage = %#x", merged.Stage)
	}
	if merged.RTCount != 1 {
		t.Errorf("merged RTCount = %d, want 1", merged.RTCount)
	}
	if merged.PushConstantSize != 16 {
		t.Errorf("merged PushConstantSize = %d, want 16", merged.PushConstantSize)
	}
	if _, ok := merged.Sets[0][0]; !ok {
		t.Error("merged layout lost binding (0,0)")
	}
	if _, ok := merged.BindingsByName["tint"]; !ok {
		t.Error("merged layout lost uniform member name")
	}
	if len(merged.Attributes) != 2 {
		t.Errorf("merged attributes = %d, want vertex inputs preserved", len(merged.Attributes))
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Reflect([]byte{1, 2, 3}); err == nil {
		t.Error("short input accepted")
	}
	bad := fragmentFixture()
	bad[0] = 0xFF
	if _, err := Reflect(bad); err == nil {
		t.Error("wrong magic accepted")
	}
}
