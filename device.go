// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// FeatureSet is the device feature surface vkcore relies on.
type FeatureSet struct {
	SamplerYcbcrConversion bool
	TimelineSemaphore      bool
	Synchronization2       bool
	DynamicRendering       bool
	CopyCommands2          bool
	ScalarBlockLayout      bool
}

// FallbackOptions records which Vulkan 1.3 paths run through their 1.x
// fallbacks on this device.
type FallbackOptions struct {
	Sync2Fallback            bool
	DynamicRenderingFallback bool
	Copy2Fallback            bool
}

// threadPools is the per-thread command and query pool pair.
type threadPools struct {
	cmd   *CommandPool
	query *QueryPool
}

// devicePools groups the device's recycling resource pools.
type devicePools struct {
	Image  *ImagePool
	Buffer *BufferPool
}

// SetMaxUnusedTime changes the eviction window of both pools.
func (p *devicePools) SetMaxUnusedTime(d time.Duration) {
	p.Image.SetMaxUnusedTime(d)
	p.Buffer.SetMaxUnusedTime(d)
}

// GarbageCollect drops all free lists of both pools.
func (p *devicePools) GarbageCollect() {
	p.Image.GarbageCollect()
	p.Buffer.GarbageCollect()
}

// Device owns one logical device: its main queue, suballocator, pipeline
// cache, sampler cache, resource pools, globals registry and per-thread
// command/query pools.
type Device struct {
	handle   vk.Device
	physical vk.PhysicalDevice
	instance vk.Instance
	cmds     *vk.Commands

	properties vk.PhysicalDeviceProperties
	memProps   vk.PhysicalDeviceMemoryProperties
	luid       uint64

	Features FeatureSet
	Fallback FallbackOptions

	allocator *Allocator
	mainQueue *Queue
	interop   NativeInterop

	pipelineCache vk.PipelineCache

	// Pools recycles transient images and buffers keyed by create info.
	Pools devicePools

	// globals is the single-threaded (owner thread only) registry of
	// shared objects, e.g. the fullscreen vertex shader.
	globals map[string]any

	samplersMu sync.Mutex
	samplers   map[vk.SamplerCreateInfo]vk.Sampler

	// immPools hands each OS thread its own command and query pool.
	immPoolsMu sync.RWMutex
	immPools   map[uint64]*threadPools

	submitCount atomic.Uint64
}

// requiredDeviceExtensions lists extensions every device must offer;
// fallbackDeviceExtensions may be absent when the matching fallback is
// declared.
var requiredDeviceExtensions = append([]string{
	"VK_KHR_timeline_semaphore",
}, platformExternalExtensions...)

var fallbackDeviceExtensions = []string{
	"VK_KHR_synchronization2",
	"VK_KHR_dynamic_rendering",
	"VK_KHR_copy_commands2",
}

// queryFeatures reads the chained 1.1/1.2/1.3 feature structs.
func queryFeatures(cmds *vk.Commands, pd vk.PhysicalDevice) (FeatureSet, error) {
	var f11 vk.PhysicalDeviceVulkan11Features
	var f12 vk.PhysicalDeviceVulkan12Features
	var f13 vk.PhysicalDeviceVulkan13Features
	var features vk.PhysicalDeviceFeatures2

	f11.SType = vk.StructureTypePhysicalDeviceVulkan11Features
	f12.SType = vk.StructureTypePhysicalDeviceVulkan12Features
	f12.PNext = unsafe.Pointer(&f11)
	f13.SType = vk.StructureTypePhysicalDeviceVulkan13Features
	f13.PNext = unsafe.Pointer(&f12)
	features.SType = vk.StructureTypePhysicalDeviceFeatures2
	features.PNext = unsafe.Pointer(&f13)

	cmds.GetPhysicalDeviceFeatures2(pd, &features)

	return FeatureSet{
		SamplerYcbcrConversion: f11.SamplerYcbcrConversion != 0,
		TimelineSemaphore:      f12.TimelineSemaphore != 0,
		ScalarBlockLayout:      f12.ScalarBlockLayout != 0,
		Synchronization2:       f13.Synchronization2 != 0,
		DynamicRendering:       f13.DynamicRendering != 0,
		CopyCommands2:          f13.Synchronization2 != 0,
	}, nil
}

// deviceSupported decides whether a physical device can run vkcore, and
// which fallbacks it needs. samplerYcbcrConversion and timelineSemaphore
// are hard requirements; sync2 and dynamic rendering may fall back.
func deviceSupported(cmds *vk.Commands, pd vk.PhysicalDevice, name string) (FeatureSet, FallbackOptions, bool) {
	features, _ := queryFeatures(cmds, pd)

	if !features.SamplerYcbcrConversion {
		Logger().Info("vkcore: device lacks samplerYcbcrConversion", "device", name)
		return features, FallbackOptions{}, false
	}
	if !features.TimelineSemaphore {
		Logger().Info("vkcore: device lacks timelineSemaphore", "device", name)
		return features, FallbackOptions{}, false
	}

	fallback := FallbackOptions{
		Sync2Fallback:            !features.Synchronization2,
		DynamicRenderingFallback: !features.DynamicRendering,
		Copy2Fallback:            !features.CopyCommands2,
	}
	return features, fallback, true
}

// newDevice creates the logical device with the main graphics+compute+
// transfer queue and wires its subsystems.
func newDevice(instance vk.Instance, instCmds *vk.Commands, pd vk.PhysicalDevice, features FeatureSet, fallback FallbackOptions, interop NativeInterop) (*Device, error) {
	available, err := deviceExtensions(instCmds, pd)
	if err != nil {
		return nil, err
	}

	var extensions []string
	for _, ext := range requiredDeviceExtensions {
		if !available[ext] {
			return nil, fmt.Errorf("%w: %s", ErrExtensionMissing, ext)
		}
		extensions = append(extensions, ext)
	}
	for _, ext := range fallbackDeviceExtensions {
		if available[ext] {
			extensions = append(extensions, ext)
			continue
		}
		Logger().Info("vkcore: device extension unavailable, fallback in place", "extension", ext)
	}

	family, err := pickQueueFamily(instCmds, pd)
	if err != nil {
		return nil, err
	}

	priority := float32(1)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: family,
		QueueCount:       1,
		PQueuePriorities: &priority,
	}

	f11 := vk.PhysicalDeviceVulkan11Features{
		SType:                  vk.StructureTypePhysicalDeviceVulkan11Features,
		SamplerYcbcrConversion: 1,
	}
	f12 := vk.PhysicalDeviceVulkan12Features{
		SType:                       vk.StructureTypePhysicalDeviceVulkan12Features,
		PNext:                       unsafe.Pointer(&f11),
		ScalarBlockLayout:           vk.Bool32Of(features.ScalarBlockLayout),
		UniformBufferStandardLayout: 1,
		TimelineSemaphore:           1,
	}
	f13 := vk.PhysicalDeviceVulkan13Features{
		SType:            vk.StructureTypePhysicalDeviceVulkan13Features,
		PNext:            unsafe.Pointer(&f12),
		Synchronization2: vk.Bool32Of(features.Synchronization2),
		DynamicRendering: vk.Bool32Of(features.DynamicRendering),
	}
	enabled := vk.PhysicalDeviceFeatures2{
		SType: vk.StructureTypePhysicalDeviceFeatures2,
		PNext: unsafe.Pointer(&f13),
		Features: vk.PhysicalDeviceFeatures{
			FillModeNonSolid:  1,
			SamplerAnisotropy: 1,
		},
	}

	extPtrs, extKeep := cStringArray(extensions)
	defer keepAlive(extKeep)

	info := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		PNext:                   unsafe.Pointer(&enabled),
		QueueCreateInfoCount:    1,
		PQueueCreateInfos:       &queueInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extPtrs,
	}

	var handle vk.Device
	if r := instCmds.CreateDevice(pd, &info, &handle); r != vk.Success {
		return nil, resultErr("vkCreateDevice", r)
	}

	cmds := *instCmds
	if err := cmds.LoadDevice(handle); err != nil {
		cmds.DestroyDevice(handle)
		return nil, err
	}

	d := &Device{
		handle:   handle,
		physical: pd,
		instance: instance,
		cmds:     &cmds,
		Features: features,
		Fallback: fallback,
		interop:  interop,
		globals:  make(map[string]any),
		samplers: make(map[vk.SamplerCreateInfo]vk.Sampler),
		immPools: make(map[uint64]*threadPools),
	}

	d.queryProperties()
	d.allocator = NewAllocator(d, interop)
	d.mainQueue = newQueue(d, family, 0)
	d.Pools = devicePools{
		Image:  newImagePool(d, DefaultMaxUnusedTime),
		Buffer: newBufferPool(d, DefaultMaxUnusedTime),
	}

	cacheInfo := vk.PipelineCacheCreateInfo{SType: vk.StructureTypePipelineCacheCreateInfo}
	if r := cmds.CreatePipelineCache(handle, &cacheInfo, &d.pipelineCache); r != vk.Success {
		Logger().Warn("vkcore: pipeline cache creation failed", "result", r.String())
	}

	Logger().Info("vkcore: device ready", "name", d.Name(),
		"sync2", features.Synchronization2, "dynamicRendering", features.DynamicRendering)
	return d, nil
}

func (d *Device) queryProperties() {
	var idProps vk.PhysicalDeviceIDProperties
	idProps.SType = vk.StructureTypePhysicalDeviceIDProperties
	props := vk.PhysicalDeviceProperties2{
		SType: vk.StructureTypePhysicalDeviceProperties2,
		PNext: unsafe.Pointer(&idProps),
	}
	d.cmds.GetPhysicalDeviceProperties2(d.physical, &props)
	d.properties = props.Properties
	if idProps.DeviceLUIDValid != 0 {
		for i := vk.LUIDSize - 1; i >= 0; i-- {
			d.luid = d.luid<<8 | uint64(idProps.DeviceLUID[i])
		}
	}

	d.cmds.GetPhysicalDeviceMemoryProperties(d.physical, &d.memProps)
}

// Name returns the adapter name.
func (d *Device) Name() string {
	name := d.properties.DeviceName[:]
	for i, b := range name {
		if b == 0 {
			return string(name[:i])
		}
	}
	return string(name)
}

// LUID returns the adapter's locally unique identifier (zero when the
// driver does not report one).
func (d *Device) LUID() uint64 { return d.luid }

// Handle returns the VkDevice handle.
func (d *Device) Handle() vk.Device { return d.handle }

// Commands exposes the loaded device entry points.
func (d *Device) Commands() *vk.Commands { return d.cmds }

// Allocator returns the device suballocator.
func (d *Device) Allocator() *Allocator { return d.allocator }

// MainQueue returns the device's single main queue.
func (d *Device) MainQueue() *Queue { return d.mainQueue }

// SubmitCount returns the number of queue submissions so far.
func (d *Device) SubmitCount() uint64 { return d.submitCount.Load() }

// RegisterGlobal stores a shared object in the device globals registry.
// The registry is owner-thread only by contract.
func (d *Device) RegisterGlobal(name string, value any) {
	d.globals[name] = value
}

// Global fetches a shared object from the globals registry.
func (d *Device) Global(name string) (any, bool) {
	v, ok := d.globals[name]
	return v, ok
}

// GetSampler returns a cached sampler for the filter, creating it on
// first use.
func (d *Device) GetSampler(filter vk.Filter) vk.Sampler {
	info := vk.SamplerCreateInfo{
		SType:        vk.StructureTypeSamplerCreateInfo,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapMode:   vk.SamplerMipmapModeNearest,
		AddressModeU: vk.SamplerAddressModeClampToEdge,
		AddressModeV: vk.SamplerAddressModeClampToEdge,
		AddressModeW: vk.SamplerAddressModeClampToEdge,
		BorderColor:  vk.BorderColorFloatTransparentBlack,
	}

	d.samplersMu.Lock()
	defer d.samplersMu.Unlock()
	if s, ok := d.samplers[info]; ok {
		return s
	}
	var s vk.Sampler
	if r := d.cmds.CreateSampler(d.handle, &info, &s); r != vk.Success {
		Logger().Error("vkcore: sampler creation failed", "result", r.String())
		return 0
	}
	d.samplers[info] = s
	return s
}

// GetPool returns the calling thread's command pool, creating it on first
// access. Callers recording commands are expected to be locked to an OS
// thread.
func (d *Device) GetPool() (*CommandPool, error) {
	tid := platformThreadID()

	d.immPoolsMu.RLock()
	tp := d.immPools[tid]
	d.immPoolsMu.RUnlock()
	if tp != nil && tp.cmd != nil {
		return tp.cmd, nil
	}

	pool, err := NewCommandPool(d.mainQueue, DefaultCommandPoolSize)
	if err != nil {
		return nil, err
	}

	d.immPoolsMu.Lock()
	defer d.immPoolsMu.Unlock()
	if existing := d.immPools[tid]; existing != nil && existing.cmd != nil {
		pool.Destroy()
		return existing.cmd, nil
	}
	if d.immPools[tid] == nil {
		d.immPools[tid] = &threadPools{}
	}
	d.immPools[tid].cmd = pool
	return pool, nil
}

// GetQueryPool returns the calling thread's query pool, creating it on
// first access.
func (d *Device) GetQueryPool() (*QueryPool, error) {
	tid := platformThreadID()

	d.immPoolsMu.RLock()
	tp := d.immPools[tid]
	d.immPoolsMu.RUnlock()
	if tp != nil && tp.query != nil {
		return tp.query, nil
	}

	qp, err := NewQueryPool(d)
	if err != nil {
		return nil, err
	}

	d.immPoolsMu.Lock()
	defer d.immPoolsMu.Unlock()
	if existing := d.immPools[tid]; existing != nil && existing.query != nil {
		qp.Destroy()
		return existing.query, nil
	}
	if d.immPools[tid] == nil {
		d.immPools[tid] = &threadPools{}
	}
	d.immPools[tid].query = qp
	return qp, nil
}

// BeginCmd begins recording on the calling thread's command pool.
func (d *Device) BeginCmd() (*CommandBuffer, error) {
	pool, err := d.GetPool()
	if err != nil {
		return nil, err
	}
	return pool.BeginCmd()
}

// Destroy tears the device down: globals, per-thread pools, caches,
// samplers, and finally the logical device.
func (d *Device) Destroy() {
	for name, g := range d.globals {
		if s, ok := g.(*Shader); ok {
			s.Destroy()
		}
		delete(d.globals, name)
	}

	d.immPoolsMu.Lock()
	for tid, tp := range d.immPools {
		if tp.cmd != nil {
			tp.cmd.Destroy()
		}
		if tp.query != nil {
			tp.query.Destroy()
		}
		delete(d.immPools, tid)
	}
	d.immPoolsMu.Unlock()

	d.Pools.GarbageCollect()

	d.samplersMu.Lock()
	for info, s := range d.samplers {
		d.cmds.DestroySampler(d.handle, s)
		delete(d.samplers, info)
	}
	d.samplersMu.Unlock()

	if d.pipelineCache != 0 {
		d.cmds.DestroyPipelineCache(d.handle, d.pipelineCache)
		d.pipelineCache = 0
	}
	if d.handle != 0 {
		d.cmds.DestroyDevice(d.handle)
		d.handle = 0
	}
}

// pickQueueFamily selects the first family with graphics, compute and
// transfer capability.
func pickQueueFamily(cmds *vk.Commands, pd vk.PhysicalDevice) (uint32, error) {
	var count uint32
	cmds.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	if count == 0 {
		return 0, fmt.Errorf("%w: no queue families", ErrUnsupported)
	}
	props := make([]vk.QueueFamilyProperties, count)
	cmds.GetPhysicalDeviceQueueFamilyProperties(pd, &count, &props[0])

	const want = vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit
	for i, p := range props {
		if p.QueueFlags&want == want {
			return uint32(i), nil
		}
	}
	return 0, fmt.Errorf("%w: no graphics+compute+transfer queue family", ErrUnsupported)
}

// deviceExtensions enumerates the device's extension names.
func deviceExtensions(cmds *vk.Commands, pd vk.PhysicalDevice) (map[string]bool, error) {
	var count uint32
	if r := cmds.EnumerateDeviceExtensionProperties(pd, &count, nil); r != vk.Success {
		return nil, resultErr("vkEnumerateDeviceExtensionProperties", r)
	}
	available := make(map[string]bool, count)
	if count == 0 {
		return available, nil
	}
	props := make([]vk.ExtensionProperties, count)
	if r := cmds.EnumerateDeviceExtensionProperties(pd, &count, &props[0]); r != vk.Success {
		return nil, resultErr("vkEnumerateDeviceExtensionProperties", r)
	}
	for _, p := range props {
		available[cString(p.ExtensionName[:])] = true
	}
	return available, nil
}

// cString trims a fixed-size C string buffer.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// cStringArray builds a char** for the Vulkan API; the returned keepalive
// slices must outlive the call.
func cStringArray(strs []string) (uintptr, [][]byte) {
	if len(strs) == 0 {
		return 0, nil
	}
	keep := make([][]byte, 0, len(strs)+1)
	ptrs := make([]uintptr, len(strs))
	for i, s := range strs {
		buf := append([]byte(s), 0)
		keep = append(keep, buf)
		ptrs[i] = uintptr(unsafe.Pointer(&buf[0]))
	}
	ptrBytes := unsafe.Slice((*byte)(unsafe.Pointer(&ptrs[0])), len(ptrs)*8)
	keep = append(keep, ptrBytes)
	return uintptr(unsafe.Pointer(&ptrs[0])), keep
}

// keepAlive pins the C string buffers until the enclosing call returns.
func keepAlive(b [][]byte) { _ = b }
