// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/gogpu/vkcore/vk"
)

// testBlock builds a detached block (no device, no allocator) so the
// free-list arithmetic can be exercised host-side.
func testBlock(size uint64) *MemoryBlock {
	return &MemoryBlock{
		size:   size,
		free:   []interval{{0, size}},
		chunks: make(map[uint64]uint64),
	}
}

func checkBlockInvariants(t *testing.T, b *MemoryBlock) {
	t.Helper()

	var free, used uint64
	for i, iv := range b.free {
		free += iv.size
		if i > 0 {
			prev := b.free[i-1]
			if prev.offset+prev.size > iv.offset {
				t.Fatalf("free intervals overlap: %+v then %+v", prev, iv)
			}
			if prev.offset+prev.size == iv.offset {
				t.Fatalf("adjacent free intervals not coalesced: %+v then %+v", prev, iv)
			}
		}
	}
	for off, sz := range b.chunks {
		used += sz
		if off+sz > b.size {
			t.Fatalf("chunk [%d,%d) exceeds block size %d", off, off+sz, b.size)
		}
	}
	if free+used != b.size {
		t.Fatalf("free %d + used %d != size %d", free, used, b.size)
	}
	if used != b.inUse {
		t.Fatalf("inUse %d != sum of chunks %d", b.inUse, used)
	}
}

func TestBlockCoalescing(t *testing.T) {
	b := testBlock(1024)

	a1 := b.allocate(256, 1)
	a2 := b.allocate(256, 1)
	a3 := b.allocate(256, 1)
	for i, a := range []Allocation{a1, a2, a3} {
		if !a.IsValid() {
			t.Fatalf("allocation %d failed", i)
		}
	}
	checkBlockInvariants(t, b)

	a2.Free()
	a1.Free()
	checkBlockInvariants(t, b)

	want := map[uint64]uint64{0: 512, 768: 256}
	if got := b.freeIntervals(); !reflect.DeepEqual(got, want) {
		t.Errorf("free map after freeing B then A = %v, want %v", got, want)
	}

	a3.Free()
	want = map[uint64]uint64{0: 1024}
	if got := b.freeIntervals(); !reflect.DeepEqual(got, want) {
		t.Errorf("free map after freeing C = %v, want %v", got, want)
	}
	checkBlockInvariants(t, b)
}

func TestBlockAlignment(t *testing.T) {
	b := testBlock(1 << 20)

	a1 := b.allocate(10, 1)
	if !a1.IsValid() {
		t.Fatal("first allocation failed")
	}

	a2 := b.allocate(100, 256)
	if !a2.IsValid() {
		t.Fatal("aligned allocation failed")
	}
	if a2.LocalOffset()%256 != 0 {
		t.Errorf("offset %d not 256-aligned", a2.LocalOffset())
	}
	checkBlockInvariants(t, b)

	// The padding between the 10-byte chunk and the aligned one must have
	// returned to the free list.
	a3 := b.allocate(16, 1)
	if !a3.IsValid() {
		t.Fatal("padding reuse allocation failed")
	}
	if a3.LocalOffset() >= 256 {
		t.Errorf("expected leading padding reuse, got offset %d", a3.LocalOffset())
	}
	checkBlockInvariants(t, b)
}

func TestBlockExhaustion(t *testing.T) {
	b := testBlock(512)

	a1 := b.allocate(512, 1)
	if !a1.IsValid() {
		t.Fatal("full-block allocation failed")
	}
	if a := b.allocate(1, 1); a.IsValid() {
		t.Error("allocation from a full block succeeded")
	}

	// An aligned request that cannot fit after alignment must be skipped.
	a1.Free()
	b2 := testBlock(512)
	small := b2.allocate(1, 1)
	if a := b2.allocate(512, 512); a.IsValid() {
		t.Error("unaligned-tail allocation succeeded")
	}
	small.Free()
}

func TestBlockRandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := testBlock(1 << 16)
	live := make([]Allocation, 0, 128)

	// A sentinel chunk pins the block: freeing the last chunk marks the
	// block dead, which is lifecycle behavior, not what this test probes.
	if a := b.allocate(16, 1); !a.IsValid() {
		t.Fatal("sentinel allocation failed")
	}

	for i := 0; i < 2000; i++ {
		if rng.Intn(2) == 0 && len(live) > 0 {
			j := rng.Intn(len(live))
			live[j].Free()
			live = append(live[:j], live[j+1:]...)
		} else {
			size := uint64(rng.Intn(1024) + 1)
			align := uint64(1) << rng.Intn(8)
			if a := b.allocate(size, align); a.IsValid() {
				if a.LocalOffset()%align != 0 {
					t.Fatalf("offset %d not %d-aligned", a.LocalOffset(), align)
				}
				live = append(live, a)
			}
		}
		checkBlockInvariants(t, b)
	}
}

func TestMemoryTypeIndexPopcount(t *testing.T) {
	props := &vk.PhysicalDeviceMemoryProperties{MemoryTypeCount: 4}
	props.MemoryTypes[0] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyDeviceLocalBit}
	props.MemoryTypes[1] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit}
	props.MemoryTypes[2] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit | vk.MemoryPropertyHostCachedBit}
	props.MemoryTypes[3] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit | vk.MemoryPropertyHostCachedBit}

	req := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit | vk.MemoryPropertyHostCachedBit)

	idx, flags, err := memoryTypeIndex(props, 0b1111, req)
	if err != nil {
		t.Fatalf("memoryTypeIndex: %v", err)
	}
	if idx != 2 {
		t.Errorf("index = %d, want 2 (best popcount, lowest index wins ties)", idx)
	}
	if flags != props.MemoryTypes[2].PropertyFlags {
		t.Errorf("flags = %#x", flags)
	}

	// Restricting the mask forces a worse match.
	idx, _, err = memoryTypeIndex(props, 0b0001, req)
	if err != nil {
		t.Fatalf("memoryTypeIndex restricted: %v", err)
	}
	if idx != 0 {
		t.Errorf("restricted index = %d, want 0", idx)
	}

	if _, _, err := memoryTypeIndex(props, 0, req); err == nil {
		t.Error("empty mask accepted")
	}

	// No requested properties: lowest set bit.
	idx, _, err = memoryTypeIndex(props, 0b1100, 0)
	if err != nil {
		t.Fatalf("memoryTypeIndex zero props: %v", err)
	}
	if idx != 2 {
		t.Errorf("zero-props index = %d, want 2", idx)
	}
}

func TestDesiredProps(t *testing.T) {
	if p := desiredProps(MemoryProperties{VRAM: true}); p != vk.MemoryPropertyDeviceLocalBit {
		t.Errorf("VRAM props = %#x", p)
	}
	p := desiredProps(MemoryProperties{Mapped: true})
	want := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit | vk.MemoryPropertyHostCachedBit)
	if p != want {
		t.Errorf("mapped props = %#x, want %#x", p, want)
	}
	if p := desiredProps(MemoryProperties{}); p != vk.MemoryPropertyDeviceLocalBit {
		t.Errorf("default props = %#x", p)
	}
}
