// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"testing"
	"time"
)

type fakeResource struct {
	id   uint64
	size uint64
}

type fakeInfo struct {
	Kind string
	Size uint64
}

// fakePool builds a pool over host-only resources with a controllable
// clock.
func fakePool(maxUnused time.Duration) (*ResourcePool[fakeResource, fakeInfo, fakeInfo], *time.Time, *uint64) {
	now := time.Unix(1000, 0)
	var nextID uint64

	pool := NewResourcePool(
		func(i fakeInfo) fakeInfo { return i },
		func(i fakeInfo) (*fakeResource, error) {
			nextID++
			return &fakeResource{id: nextID, size: i.Size}, nil
		},
		func(r *fakeResource) uint64 { return r.id },
		func(r *fakeResource) uint64 { return r.size },
		maxUnused,
	)
	pool.now = func() time.Time { return now }
	return pool, &now, &nextID
}

func TestResourcePoolReuseWithinWindow(t *testing.T) {
	pool, now, _ := fakePool(10 * time.Millisecond)
	info := fakeInfo{Kind: "a", Size: 64}

	first, err := pool.Get(info, "t")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !pool.IsUsed(first.id) {
		t.Error("resource not registered in-use")
	}
	if !pool.Release(first.id) {
		t.Fatal("Release returned false")
	}
	if pool.IsUsed(first.id) {
		t.Error("released resource still in-use")
	}

	*now = now.Add(5 * time.Millisecond)
	second, err := pool.Get(info, "t")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if second.id != first.id {
		t.Errorf("expected recycled handle %d, got %d", first.id, second.id)
	}
}

func TestResourcePoolEviction(t *testing.T) {
	pool, now, _ := fakePool(10 * time.Millisecond)
	info := fakeInfo{Kind: "a", Size: 64}

	first, _ := pool.Get(info, "t")
	pool.Release(first.id)

	// Beyond maxUnusedTime the whole free list for the key is dropped;
	// the next Get must create a fresh resource.
	*now = now.Add(20 * time.Millisecond)
	second, err := pool.Get(info, "t")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if second.id == first.id {
		t.Error("stale resource survived eviction")
	}
	if n := pool.AvailableCount(); n != 0 {
		t.Errorf("free count after eviction = %d, want 0", n)
	}
}

func TestResourcePoolDistinctKeys(t *testing.T) {
	pool, _, _ := fakePool(time.Hour)

	a, _ := pool.Get(fakeInfo{Kind: "a", Size: 64}, "")
	b, _ := pool.Get(fakeInfo{Kind: "b", Size: 64}, "")
	pool.Release(a.id)

	got, _ := pool.Get(fakeInfo{Kind: "b", Size: 64}, "")
	if got.id == a.id {
		t.Error("pool recycled a resource across keys")
	}
	if got.id == b.id {
		t.Error("pool handed out an in-use resource")
	}
}

func TestResourcePoolAccounting(t *testing.T) {
	pool, _, _ := fakePool(time.Hour)
	info := fakeInfo{Kind: "a", Size: 100}

	r1, _ := pool.Get(info, "")
	r2, _ := pool.Get(info, "")
	if ready, used := pool.MemoryUsage(); ready != 0 || used != 200 {
		t.Errorf("usage = (%d, %d), want (0, 200)", ready, used)
	}
	if pool.UsedCount() != 2 {
		t.Errorf("used count = %d", pool.UsedCount())
	}

	pool.Release(r1.id)
	if ready, used := pool.MemoryUsage(); ready != 100 || used != 100 {
		t.Errorf("usage after release = (%d, %d), want (100, 100)", ready, used)
	}
	if res := pool.FindUsed(r2.id); res == nil || res.id != r2.id {
		t.Error("FindUsed lost the in-use resource")
	}
	if pool.FindUsed(r1.id) != nil {
		t.Error("FindUsed returned a released resource")
	}

	pool.GarbageCollect()
	if ready, _ := pool.MemoryUsage(); ready != 0 {
		t.Errorf("ready bytes after GC = %d", ready)
	}
	if pool.AvailableCount() != 0 {
		t.Error("free lists survived GC")
	}
}

func TestResourcePoolReleaseUnknown(t *testing.T) {
	pool, _, _ := fakePool(time.Hour)
	if pool.Release(12345) {
		t.Error("Release accepted an unknown handle")
	}
}
