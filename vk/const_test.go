// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"math"
	"testing"
	"unsafe"
)

func TestResultString(t *testing.T) {
	cases := []struct {
		r    Result
		want string
	}{
		{Success, "SUCCESS"},
		{Timeout, "TIMEOUT"},
		{ErrorOutOfDeviceMemory, "ERROR_OUT_OF_DEVICE_MEMORY"},
		{ErrorInvalidExternalHandle, "ERROR_INVALID_EXTERNAL_HANDLE"},
		{Result(-9999), "ERROR_UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.r.String(); got != c.want {
			t.Errorf("Result(%d).String() = %q, want %q", c.r, got, c.want)
		}
	}
}

func TestClearValueLayout(t *testing.T) {
	// VkClearValue is a 16-byte union; the helpers must fill the float
	// arm bit-exactly.
	if unsafe.Sizeof(ClearValue{}) != 16 {
		t.Fatalf("ClearValue size = %d, want 16", unsafe.Sizeof(ClearValue{}))
	}
	cv := ClearColor(0.25, 0.5, 0.75, 1)
	want := [4]float32{0.25, 0.5, 0.75, 1}
	for i, w := range want {
		if got := math.Float32frombits(cv.Raw[i]); got != w {
			t.Errorf("component %d = %v, want %v", i, got, w)
		}
	}
	if d := math.Float32frombits(ClearDepth(1).Raw[0]); d != 1 {
		t.Errorf("depth = %v, want 1", d)
	}
}

func TestVersionMinor(t *testing.T) {
	if got := VersionMinor(APIVersion13); got != 3 {
		t.Errorf("minor of 1.3 = %d", got)
	}
	if got := VersionMinor(APIVersion11); got != 1 {
		t.Errorf("minor of 1.1 = %d", got)
	}
}

func TestBool32(t *testing.T) {
	if Bool32Of(true) != 1 || Bool32Of(false) != 0 {
		t.Error("Bool32Of conversion broken")
	}
}

// Struct layout spot checks against the C ABI: sType at offset 0, pNext
// at offset 8, and the whole-struct sizes Vulkan expects on 64-bit.
func TestStructLayouts(t *testing.T) {
	var submit SubmitInfo
	if off := unsafe.Offsetof(submit.PNext); off != 8 {
		t.Errorf("SubmitInfo.pNext offset = %d, want 8", off)
	}
	if sz := unsafe.Sizeof(MemoryRequirements{}); sz != 24 {
		t.Errorf("MemoryRequirements size = %d, want 24", sz)
	}
	if sz := unsafe.Sizeof(DescriptorImageInfo{}); sz != 24 {
		t.Errorf("DescriptorImageInfo size = %d, want 24", sz)
	}
	if sz := unsafe.Sizeof(BufferCopy{}); sz != 24 {
		t.Errorf("BufferCopy size = %d, want 24", sz)
	}
	if sz := unsafe.Sizeof(PhysicalDeviceLimits{}); sz != 504 {
		t.Errorf("PhysicalDeviceLimits size = %d, want 504", sz)
	}
}
