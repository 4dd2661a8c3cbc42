// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MagicNumber is the SPIR-V magic word.
const MagicNumber = 0x07230203

// Parse errors.
var (
	ErrNotSPIRV  = errors.New("spirv: not a SPIR-V binary")
	ErrTruncated = errors.New("spirv: truncated instruction stream")
)

// Opcodes handled by the reflector.
const (
	opName             = 5
	opMemberName       = 6
	opEntryPoint       = 15
	opTypeVoid         = 19
	opTypeBool         = 20
	opTypeInt          = 21
	opTypeFloat        = 22
	opTypeVector       = 23
	opTypeMatrix       = 24
	opTypeImage        = 25
	opTypeSampler      = 26
	opTypeSampledImage = 27
	opTypeArray        = 28
	opTypeRuntimeArray = 29
	opTypeStruct       = 30
	opTypePointer      = 32
	opConstant         = 43
	opFunction         = 54
	opVariable         = 59
	opDecorate         = 71
	opMemberDecorate   = 72
)

// Decorations.
const (
	decorationBlock         = 2
	decorationBufferBlock   = 3
	decorationBuiltIn       = 11
	decorationNonWritable   = 24
	decorationNonReadable   = 25
	decorationLocation      = 30
	decorationBinding       = 33
	decorationDescriptorSet = 34
	decorationOffset        = 35
)

// Storage classes.
const (
	storageClassUniformConstant = 0
	storageClassInput           = 1
	storageClassUniform         = 2
	storageClassOutput          = 3
	storageClassPushConstant    = 9
	storageClassStorageBuffer   = 12
)

// Execution models.
const (
	executionModelVertex    = 0
	executionModelFragment  = 4
	executionModelGLCompute = 5
)

// Image dims.
const dimSubpassData = 6

type typeDef struct {
	op       uint16
	operands []uint32
}

type variable struct {
	id           uint32
	pointerType  uint32
	storageClass uint32
}

type entryPoint struct {
	executionModel uint32
	id             uint32
	name           string
}

// module is the parsed instruction-level view of a SPIR-V binary.
type module struct {
	names       map[uint32]string
	memberNames map[uint32]map[uint32]string

	// decorations: target id -> decoration -> literals.
	decorations map[uint32]map[uint32][]uint32
	// memberDecorations: struct id -> member -> decoration -> literals.
	memberDecorations map[uint32]map[uint32]map[uint32][]uint32

	typeDefs  map[uint32]typeDef
	constants map[uint32]uint64
	variables []variable
	entries   []entryPoint

	// typeCache memoizes buildType per result id.
	typeCache map[uint32]*Type
}

// parse decodes the word stream. Function bodies are irrelevant to layout
// reflection, so everything from the first OpFunction on is skipped.
func parse(src []byte) (*module, error) {
	if len(src) < 20 || len(src)%4 != 0 {
		return nil, ErrNotSPIRV
	}

	words := make([]uint32, len(src)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(src[i*4:])
	}
	if words[0] != MagicNumber {
		return nil, ErrNotSPIRV
	}

	m := &module{
		names:             make(map[uint32]string),
		memberNames:       make(map[uint32]map[uint32]string),
		decorations:       make(map[uint32]map[uint32][]uint32),
		memberDecorations: make(map[uint32]map[uint32]map[uint32][]uint32),
		typeDefs:          make(map[uint32]typeDef),
		constants:         make(map[uint32]uint64),
		typeCache:         make(map[uint32]*Type),
	}

	for at := 5; at < len(words); {
		head := words[at]
		op := uint16(head & 0xFFFF)
		count := int(head >> 16)
		if count == 0 || at+count > len(words) {
			return nil, ErrTruncated
		}
		operands := words[at+1 : at+count]

		switch op {
		case opName:
			if len(operands) >= 2 {
				m.names[operands[0]] = decodeString(operands[1:])
			}
		case opMemberName:
			if len(operands) >= 3 {
				mm := m.memberNames[operands[0]]
				if mm == nil {
					mm = make(map[uint32]string)
					m.memberNames[operands[0]] = mm
				}
				mm[operands[1]] = decodeString(operands[2:])
			}
		case opEntryPoint:
			if len(operands) >= 3 {
				m.entries = append(m.entries, entryPoint{
					executionModel: operands[0],
					id:             operands[1],
					name:           decodeString(operands[2:]),
				})
			}
		case opDecorate:
			if len(operands) >= 2 {
				dm := m.decorations[operands[0]]
				if dm == nil {
					dm = make(map[uint32][]uint32)
					m.decorations[operands[0]] = dm
				}
				dm[operands[1]] = operands[2:]
			}
		case opMemberDecorate:
			if len(operands) >= 3 {
				sm := m.memberDecorations[operands[0]]
				if sm == nil {
					sm = make(map[uint32]map[uint32][]uint32)
					m.memberDecorations[operands[0]] = sm
				}
				dm := sm[operands[1]]
				if dm == nil {
					dm = make(map[uint32][]uint32)
					sm[operands[1]] = dm
				}
				dm[operands[2]] = operands[3:]
			}
		case opTypeVoid, opTypeBool, opTypeInt, opTypeFloat, opTypeVector, opTypeMatrix,
			opTypeImage, opTypeSampler, opTypeSampledImage, opTypeArray, opTypeRuntimeArray,
			opTypeStruct, opTypePointer:
			if len(operands) >= 1 {
				m.typeDefs[operands[0]] = typeDef{op: op, operands: operands[1:]}
			}
		case opConstant:
			// operands: result type, result id, value words.
			if len(operands) >= 3 {
				val := uint64(operands[2])
				if len(operands) >= 4 {
					val |= uint64(operands[3]) << 32
				}
				m.constants[operands[1]] = val
			}
		case opVariable:
			// operands: result type (pointer), result id, storage class, [initializer].
			if len(operands) >= 3 {
				m.variables = append(m.variables, variable{
					id:           operands[1],
					pointerType:  operands[0],
					storageClass: operands[2],
				})
			}
		case opFunction:
			// Layout information is complete before the first function body.
			return m, nil
		}

		at += count
	}

	return m, nil
}

// decodeString reads a nul-terminated literal string from operand words.
func decodeString(words []uint32) string {
	buf := make([]byte, 0, len(words)*4)
	for _, w := range words {
		for shift := 0; shift < 32; shift += 8 {
			c := byte(w >> shift)
			if c == 0 {
				return string(buf)
			}
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// decoration returns the first literal of a decoration on id, if present.
func (m *module) decoration(id, dec uint32) (uint32, bool) {
	dm, ok := m.decorations[id]
	if !ok {
		return 0, false
	}
	lits, ok := dm[dec]
	if !ok {
		return 0, false
	}
	if len(lits) == 0 {
		return 0, true
	}
	return lits[0], true
}

func (m *module) hasDecoration(id, dec uint32) bool {
	_, ok := m.decoration(id, dec)
	return ok
}

func (m *module) hasMemberDecoration(structID, member, dec uint32) bool {
	sm, ok := m.memberDecorations[structID]
	if !ok {
		return false
	}
	dm, ok := sm[member]
	if !ok {
		return false
	}
	_, ok = dm[dec]
	return ok
}

func (m *module) memberOffset(structID, member uint32) uint32 {
	sm, ok := m.memberDecorations[structID]
	if !ok {
		return 0
	}
	dm, ok := sm[member]
	if !ok {
		return 0
	}
	lits, ok := dm[decorationOffset]
	if !ok || len(lits) == 0 {
		return 0
	}
	return lits[0]
}

// pointee resolves a pointer type to its pointee id.
func (m *module) pointee(id uint32) (uint32, bool) {
	def, ok := m.typeDefs[id]
	if !ok || def.op != opTypePointer || len(def.operands) < 2 {
		return 0, false
	}
	return def.operands[1], true
}

// underlying unwraps arrays to the element type id, reporting the literal
// array length (0 for a runtime array, 1 when not an array).
func (m *module) underlying(id uint32) (uint32, uint32) {
	for {
		def, ok := m.typeDefs[id]
		if !ok {
			return id, 1
		}
		switch def.op {
		case opTypeArray:
			length := uint32(1)
			if len(def.operands) >= 2 {
				length = uint32(m.constants[def.operands[1]])
			}
			return def.operands[0], length
		case opTypeRuntimeArray:
			return def.operands[0], 0
		default:
			return id, 1
		}
	}
}

// buildType builds the interned Type for a type id.
func (m *module) buildType(id uint32) (*Type, error) {
	if t, ok := m.typeCache[id]; ok {
		return t, nil
	}

	def, ok := m.typeDefs[id]
	if !ok {
		return nil, fmt.Errorf("spirv: unknown type id %%%d", id)
	}

	t := &Type{Width: 32, VecSize: 1, Columns: 1}

	switch def.op {
	case opTypePointer:
		pointee, err := m.buildType(def.operands[1])
		if err != nil {
			return nil, err
		}
		m.typeCache[id] = pointee
		return pointee, nil

	case opTypeArray, opTypeRuntimeArray:
		elem, err := m.buildType(def.operands[0])
		if err != nil {
			return nil, err
		}
		clone := *elem
		if def.op == opTypeRuntimeArray {
			clone.ArraySize = UnboundedArray
		} else {
			n := uint32(m.constants[def.operands[1]])
			if n == 0 {
				n = UnboundedArray
			}
			clone.ArraySize = n
		}
		if clone.Size != 0 && clone.ArraySize != 0 && clone.ArraySize != UnboundedArray {
			clone.Size *= clone.ArraySize
		}
		t = intern(&clone)
		m.typeCache[id] = t
		return t, nil

	case opTypeBool:
		t.Tag = TagUint

	case opTypeInt:
		t.Width = def.operands[0]
		if len(def.operands) >= 2 && def.operands[1] != 0 {
			t.Tag = TagSint
		} else {
			t.Tag = TagUint
		}

	case opTypeFloat:
		t.Tag = TagFloat
		t.Width = def.operands[0]

	case opTypeVector:
		comp, err := m.buildType(def.operands[0])
		if err != nil {
			return nil, err
		}
		clone := *comp
		clone.VecSize = def.operands[1]
		fillScalarLayout(&clone)
		t = intern(&clone)
		m.typeCache[id] = t
		return t, nil

	case opTypeMatrix:
		col, err := m.buildType(def.operands[0])
		if err != nil {
			return nil, err
		}
		clone := *col
		clone.Columns = def.operands[1]
		fillScalarLayout(&clone)
		t = intern(&clone)
		m.typeCache[id] = t
		return t, nil

	case opTypeSampler:
		t.Tag = TagSampler
		t.Size = 0

	case opTypeSampledImage:
		img, err := m.buildType(def.operands[0])
		if err != nil {
			return nil, err
		}
		m.typeCache[id] = img
		return img, nil

	case opTypeImage:
		// operands: sampled type, dim, depth, arrayed, ms, sampled, format, [access].
		t.Tag = TagImage
		t.Size = 0
		t.Img = ImageInfo{
			Depth:   def.operands[2] == 1,
			Arrayed: def.operands[3] != 0,
			MS:      def.operands[4] != 0,
			Sampled: def.operands[5],
			Format:  def.operands[6],
		}
		if len(def.operands) >= 8 {
			const (
				accessReadOnly  = 0
				accessWriteOnly = 1
				accessReadWrite = 2
			)
			t.Img.Read = def.operands[7] == accessReadOnly || def.operands[7] == accessReadWrite
			t.Img.Write = def.operands[7] == accessWriteOnly || def.operands[7] == accessReadWrite
		}
		t.Alignment = 1
		canon := intern(t)
		m.typeCache[id] = canon
		return canon, nil

	case opTypeStruct:
		t.Tag = TagStruct
		t.StructName = m.names[id]
		t.Members = make(map[string]Member, len(def.operands))
		var maxAlign, size uint32 = 1, 0
		for i, memberTypeID := range def.operands {
			idx := uint32(i)
			mt, err := m.buildType(memberTypeID)
			if err != nil {
				return nil, err
			}
			offset := m.memberOffset(id, idx)
			msize := mt.Size
			name := m.memberNames[id][idx]
			t.Members[name] = Member{Type: mt, Index: idx, Size: msize, Offset: offset}
			if end := offset + msize; end > size {
				size = end
			}
			if mt.Alignment > maxAlign {
				maxAlign = mt.Alignment
			}
		}
		t.Size = size
		t.Alignment = maxAlign
		canon := intern(t)
		m.typeCache[id] = canon
		return canon, nil

	case opTypeVoid:
		t.Tag = TagUint
		t.Width = 0

	default:
		return nil, fmt.Errorf("spirv: unexpected type opcode %d", def.op)
	}

	fillScalarLayout(t)
	canon := intern(t)
	m.typeCache[id] = canon
	return canon, nil
}

// fillScalarLayout computes std430-style size and alignment for numeric
// types: a vec3 aligns like a vec4, a matrix is Columns column vectors.
func fillScalarLayout(t *Type) {
	v := t.VecSize
	if v == 3 {
		v = 4
	}
	align := v * t.Width / 8
	t.Size = align * t.Columns
	if align < 1 {
		align = 1
	}
	t.Alignment = align
}
