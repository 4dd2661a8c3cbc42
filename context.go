// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// validationLayerName is the Khronos validation layer toggled by
// ContextOptions.EnableValidation before context construction.
const validationLayerName = "VK_LAYER_KHRONOS_validation"

// ContextOptions configures context construction.
type ContextOptions struct {
	// AppName is reported to the driver; empty is fine.
	AppName string

	// EnableValidation requests the Khronos validation layer. Missing
	// validation layers are a fatal initialisation error, matching the
	// propagation policy for layer problems.
	EnableValidation bool

	// Interop provides the injected foreign-API capability for D3D-backed
	// shared resources. May be nil.
	Interop NativeInterop
}

// Context owns the Vulkan instance and the supported devices, ordered
// with discrete GPUs first.
type Context struct {
	cmds     *vk.Commands
	instance vk.Instance

	// Devices lists every adapter that passed the feature check.
	Devices []*Device

	interop NativeInterop
}

// NewContext loads the Vulkan library, creates the instance and opens a
// Device on every supported adapter.
func NewContext(opts ContextOptions) (*Context, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vkcore: loading Vulkan: %w", err)
	}

	cmds := vk.NewCommands()
	if err := cmds.LoadGlobal(); err != nil {
		return nil, fmt.Errorf("vkcore: %w", err)
	}

	var layers []string
	if opts.EnableValidation {
		ok, err := instanceLayerPresent(cmds, validationLayerName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrLayerMissing, validationLayerName)
		}
		layers = append(layers, validationLayerName)
	}

	instanceExtensions := []string{
		"VK_KHR_external_memory_capabilities",
		"VK_KHR_external_semaphore_capabilities",
	}

	appName := append([]byte(opts.AppName), 0)
	app := vk.ApplicationInfo{
		SType:      vk.StructureTypeApplicationInfo,
		APIVersion: vk.APIVersion13,
	}
	if opts.AppName != "" {
		app.PApplicationName = uintptr(unsafe.Pointer(&appName[0]))
	}

	layerPtrs, layerKeep := cStringArray(layers)
	extPtrs, extKeep := cStringArray(instanceExtensions)
	defer keepAlive(layerKeep)
	defer keepAlive(extKeep)

	info := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &app,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layerPtrs,
		EnabledExtensionCount:   uint32(len(instanceExtensions)),
		PpEnabledExtensionNames: extPtrs,
	}

	var instance vk.Instance
	if r := cmds.CreateInstance(&info, &instance); r != vk.Success {
		return nil, resultErr("vkCreateInstance", r)
	}
	if err := cmds.LoadInstance(instance); err != nil {
		cmds.DestroyInstance(instance)
		return nil, fmt.Errorf("vkcore: %w", err)
	}

	ctx := &Context{cmds: cmds, instance: instance, interop: opts.Interop}
	if err := ctx.openDevices(); err != nil {
		ctx.Destroy()
		return nil, err
	}
	return ctx, nil
}

// openDevices enumerates adapters, filters by feature support and opens a
// Device per survivor, discrete GPUs first.
func (c *Context) openDevices() error {
	var count uint32
	if r := c.cmds.EnumeratePhysicalDevices(c.instance, &count, nil); r != vk.Success {
		return resultErr("vkEnumeratePhysicalDevices", r)
	}
	if count == 0 {
		return fmt.Errorf("%w: no Vulkan adapters", ErrUnsupported)
	}
	physical := make([]vk.PhysicalDevice, count)
	if r := c.cmds.EnumeratePhysicalDevices(c.instance, &count, &physical[0]); r != vk.Success {
		return resultErr("vkEnumeratePhysicalDevices", r)
	}

	for _, pd := range physical {
		name := adapterName(c.cmds, pd)
		features, fallback, ok := deviceSupported(c.cmds, pd, name)
		if !ok {
			continue
		}
		dev, err := newDevice(c.instance, c.cmds, pd, features, fallback, c.interop)
		if err != nil {
			Logger().Warn("vkcore: opening device failed", "device", name, "error", err)
			continue
		}
		c.Devices = append(c.Devices, dev)
	}
	if len(c.Devices) == 0 {
		return fmt.Errorf("%w: no adapter offers the required feature set", ErrFeatureMissing)
	}

	c.orderDevices()
	return nil
}

// orderDevices puts discrete GPUs first so Devices[0] is the best
// default.
func (c *Context) orderDevices() {
	sort.SliceStable(c.Devices, func(i, j int) bool {
		di := c.Devices[i].properties.DeviceType == vk.PhysicalDeviceTypeDiscreteGPU
		dj := c.Devices[j].properties.DeviceType == vk.PhysicalDeviceTypeDiscreteGPU
		return di && !dj
	})
}

// Device returns the best (first) device.
func (c *Context) Device() *Device {
	if len(c.Devices) == 0 {
		return nil
	}
	return c.Devices[0]
}

// DeviceByLUID opens a fresh Device on the adapter with the given LUID,
// or returns nil when no adapter matches.
func (c *Context) DeviceByLUID(luid uint64) (*Device, error) {
	for _, dev := range c.Devices {
		if dev.LUID() == luid {
			return newDevice(c.instance, c.cmds, dev.physical, dev.Features, dev.Fallback, c.interop)
		}
	}
	return nil, fmt.Errorf("%w: no adapter with LUID %#x", ErrUnsupported, luid)
}

// Destroy tears down all devices and the instance.
func (c *Context) Destroy() {
	for _, dev := range c.Devices {
		dev.Destroy()
	}
	c.Devices = nil
	if c.instance != 0 {
		c.cmds.DestroyInstance(c.instance)
		c.instance = 0
	}
}

func instanceLayerPresent(cmds *vk.Commands, name string) (bool, error) {
	var count uint32
	if r := cmds.EnumerateInstanceLayerProperties(&count, nil); r != vk.Success {
		return false, resultErr("vkEnumerateInstanceLayerProperties", r)
	}
	if count == 0 {
		return false, nil
	}
	props := make([]vk.LayerProperties, count)
	if r := cmds.EnumerateInstanceLayerProperties(&count, &props[0]); r != vk.Success {
		return false, resultErr("vkEnumerateInstanceLayerProperties", r)
	}
	for _, p := range props {
		if cString(p.LayerName[:]) == name {
			return true, nil
		}
	}
	return false, nil
}

func adapterName(cmds *vk.Commands, pd vk.PhysicalDevice) string {
	props := vk.PhysicalDeviceProperties2{SType: vk.StructureTypePhysicalDeviceProperties2}
	cmds.GetPhysicalDeviceProperties2(pd, &props)
	return cString(props.Properties.DeviceName[:])
}
