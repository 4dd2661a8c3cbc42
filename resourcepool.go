// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"sync"
	"time"
)

// DefaultMaxUnusedTime is how long a free list may sit untouched before
// eviction drops it.
const DefaultMaxUnusedTime = 10 * time.Second

// usedResource records an in-use pool entry: its tag, the creation info it
// was built from and the resource itself.
type usedResource[R any, I any] struct {
	tag      string
	info     I
	resource *R
}

// ResourcePool recycles transient resources keyed by their creation info.
// Get pops a matching free resource or creates one; Release returns it to
// the free list and stamps the key. Free lists whose stamp ages past
// MaxUnusedTime are dropped wholesale on every Get/Release and on
// GarbageCollect.
//
// R is the resource, I its creation info, K the comparable key derived
// from the layout-affecting fields of I.
type ResourcePool[R any, I any, K comparable] struct {
	keyOf  func(I) K
	create func(I) (*R, error)
	handle func(*R) uint64
	size   func(*R) uint64

	// now is the pool clock; replaced in tests.
	now func() time.Time

	mu        sync.RWMutex
	maxUnused time.Duration
	used      map[uint64]usedResource[R, I]
	free      map[K][]*R
	released  map[K]time.Time

	usedBytes  uint64
	readyBytes uint64
}

// NewResourcePool builds a pool over the given accessors.
func NewResourcePool[R any, I any, K comparable](
	keyOf func(I) K,
	create func(I) (*R, error),
	handle func(*R) uint64,
	size func(*R) uint64,
	maxUnused time.Duration,
) *ResourcePool[R, I, K] {
	if maxUnused <= 0 {
		maxUnused = DefaultMaxUnusedTime
	}
	return &ResourcePool[R, I, K]{
		keyOf:     keyOf,
		create:    create,
		handle:    handle,
		size:      size,
		now:       time.Now,
		maxUnused: maxUnused,
		used:      make(map[uint64]usedResource[R, I]),
		free:      make(map[K][]*R),
		released:  make(map[K]time.Time),
	}
}

// SetMaxUnusedTime changes the eviction window.
func (p *ResourcePool[R, I, K]) SetMaxUnusedTime(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maxUnused = d
}

// Get returns a recycled resource matching info, or creates a new one.
// The resource is registered in-use under its handle.
func (p *ResourcePool[R, I, K]) Get(info I, tag string) (*R, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.evictStale()
	key := p.keyOf(info)
	freeList := p.free[key]
	if len(freeList) == 0 {
		res, err := p.create(info)
		if err != nil {
			return nil, err
		}
		p.used[p.handle(res)] = usedResource[R, I]{tag: tag, info: info, resource: res}
		p.usedBytes += p.size(res)
		p.evictStale()
		return res, nil
	}

	res := freeList[len(freeList)-1]
	freeList = freeList[:len(freeList)-1]
	if len(freeList) == 0 {
		delete(p.free, key)
	} else {
		p.free[key] = freeList
	}
	p.readyBytes -= p.size(res)

	p.used[p.handle(res)] = usedResource[R, I]{tag: tag, info: info, resource: res}
	p.usedBytes += p.size(res)
	p.evictStale()
	return res, nil
}

// Release moves an in-use resource back to its free list and stamps the
// key's release time. Returns false for unknown handles.
func (p *ResourcePool[R, I, K]) Release(handle uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.used[handle]
	if !ok {
		return false
	}
	delete(p.used, handle)
	sz := p.size(entry.resource)
	p.usedBytes -= sz

	key := p.keyOf(entry.info)
	p.free[key] = append(p.free[key], entry.resource)
	p.released[key] = p.now()
	p.readyBytes += sz

	p.evictStale()
	return true
}

// evictStale drops whole free lists whose release stamp aged out. Caller
// holds the write lock.
func (p *ResourcePool[R, I, K]) evictStale() {
	now := p.now()
	for key, released := range p.released {
		freeList, ok := p.free[key]
		if !ok {
			delete(p.released, key)
			continue
		}
		if now.Sub(released) <= p.maxUnused {
			continue
		}
		for _, res := range freeList {
			p.readyBytes -= p.size(res)
		}
		delete(p.free, key)
		delete(p.released, key)
	}
}

// GarbageCollect drops every free list immediately.
func (p *ResourcePool[R, I, K]) GarbageCollect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = make(map[K][]*R)
	p.released = make(map[K]time.Time)
	p.readyBytes = 0
}

// IsUsed reports whether a handle is currently checked out.
func (p *ResourcePool[R, I, K]) IsUsed(handle uint64) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.used[handle]
	return ok
}

// FindUsed returns the checked-out resource for a handle, or nil.
func (p *ResourcePool[R, I, K]) FindUsed(handle uint64) *R {
	p.mu.RLock()
	defer p.mu.RUnlock()
	entry, ok := p.used[handle]
	if !ok {
		return nil
	}
	return entry.resource
}

// AvailableCount totals the resources sitting in free lists.
func (p *ResourcePool[R, I, K]) AvailableCount() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var n uint64
	for _, freeList := range p.free {
		n += uint64(len(freeList))
	}
	return n
}

// UsedCount returns the number of checked-out resources.
func (p *ResourcePool[R, I, K]) UsedCount() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return uint64(len(p.used))
}

// MemoryUsage returns the (ready, used) byte totals.
func (p *ResourcePool[R, I, K]) MemoryUsage() (ready, used uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.readyBytes, p.usedBytes
}

// ImagePool recycles transient images keyed by their creation parameters.
type ImagePool = ResourcePool[Image, ImageCreateInfo, imagePoolKey]

// BufferPool recycles transient buffers keyed by their creation
// parameters.
type BufferPool = ResourcePool[Buffer, BufferCreateInfo, bufferPoolKey]

func newImagePool(dev *Device, maxUnused time.Duration) *ImagePool {
	return NewResourcePool(
		ImageCreateInfo.poolKey,
		func(info ImageCreateInfo) (*Image, error) { return NewImage(dev, info) },
		func(img *Image) uint64 { return uint64(img.Handle()) },
		func(img *Image) uint64 { return img.alloc.LocalSize() },
		maxUnused,
	)
}

func newBufferPool(dev *Device, maxUnused time.Duration) *BufferPool {
	return NewResourcePool(
		BufferCreateInfo.poolKey,
		func(info BufferCreateInfo) (*Buffer, error) { return NewBuffer(dev, info) },
		func(buf *Buffer) uint64 { return uint64(buf.Handle()) },
		func(buf *Buffer) uint64 { return buf.Size() },
		maxUnused,
	)
}
