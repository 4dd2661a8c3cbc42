// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// TypeTag discriminates the Type sum.
type TypeTag uint8

// Type tags.
const (
	TagUint TypeTag = iota
	TagSint
	TagFloat
	TagImage
	TagStruct
	TagSampler
)

// UnboundedArray marks a runtime-sized array in Type.ArraySize.
const UnboundedArray = ^uint32(0)

// ImageInfo describes an image type's qualifiers.
type ImageInfo struct {
	Depth   bool
	Arrayed bool
	MS      bool
	Read    bool
	Write   bool
	Sampled uint32
	// Format is the raw SPIR-V ImageFormat operand (0 = Unknown).
	Format uint32
}

// Member is a named struct member.
type Member struct {
	Type   *Type
	Index  uint32
	Size   uint32
	Offset uint32
}

// Type is a reflected shader value type. Instances are interned: two
// structurally identical trees, even from different reflections, are
// pointer-equal.
type Type struct {
	Tag TypeTag

	// Width is the component bit width, VecSize the vector size and
	// Columns the matrix column count (VecSize and Columns are 1 for
	// non-numeric types, whose Width stays at 32).
	Width   uint32
	VecSize uint32
	Columns uint32

	Img ImageInfo

	StructName string
	Members    map[string]Member

	Size      uint32
	Alignment uint32
	ArraySize uint32
}

// IsStruct reports whether the type is a struct.
func (t *Type) IsStruct() bool { return t.Tag == TagStruct }

// typeInterner deduplicates Type trees process-wide.
var typeInterner = struct {
	sync.Mutex
	m map[string]*Type
}{m: make(map[string]*Type)}

// intern returns the canonical instance for t. Children of t must already
// be interned.
func intern(t *Type) *Type {
	key := t.key()
	typeInterner.Lock()
	defer typeInterner.Unlock()
	if canon, ok := typeInterner.m[key]; ok {
		return canon
	}
	typeInterner.m[key] = t
	return t
}

// key builds a canonical structural key. Member types are already interned,
// so their pointer identity is stable and cheap to fold in.
func (t *Type) key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d.%d.%d:%d:%d:%d", t.Tag, t.Width, t.VecSize, t.Columns, t.Size, t.Alignment, t.ArraySize)
	if t.Tag == TagImage {
		fmt.Fprintf(&b, ":img%v,%v,%v,%v,%v,%d,%d",
			t.Img.Depth, t.Img.Arrayed, t.Img.MS, t.Img.Read, t.Img.Write, t.Img.Sampled, t.Img.Format)
	}
	if t.Tag == TagStruct {
		fmt.Fprintf(&b, ":%s{", t.StructName)
		names := make([]string, 0, len(t.Members))
		for name := range t.Members {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			m := t.Members[name]
			fmt.Fprintf(&b, "%s@%d+%d#%d=%p;", name, m.Offset, m.Size, m.Index, m.Type)
		}
		b.WriteByte('}')
	}
	return b.String()
}
