// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"errors"
	"fmt"

	"github.com/gogpu/vkcore/vk"
)

// Error kinds surfaced by the framework. Initialisation-time errors
// (ErrLayerMissing, ErrExtensionMissing, ErrFeatureMissing) are fatal and
// reach the embedder; submission-path errors are returned from Submit
// without state change; resource-creation failures return nil resources
// wrapping one of these.
var (
	ErrHostOOM               = errors.New("vkcore: out of host memory")
	ErrDeviceOOM             = errors.New("vkcore: out of device memory")
	ErrDeviceLost            = errors.New("vkcore: device lost")
	ErrLayerMissing          = errors.New("vkcore: required layer missing")
	ErrExtensionMissing      = errors.New("vkcore: required extension missing")
	ErrFeatureMissing        = errors.New("vkcore: required feature missing")
	ErrInvalidExternalHandle = errors.New("vkcore: invalid external handle")
	ErrUnsupportedFormat     = errors.New("vkcore: unsupported format")
	ErrUnsupported           = errors.New("vkcore: unsupported")
	ErrPoolExhausted         = errors.New("vkcore: pool exhausted")
	ErrTimeout               = errors.New("vkcore: timeout")
	ErrFenceNotSignalled     = errors.New("vkcore: fence not signalled")
	ErrShaderCompile         = errors.New("vkcore: shader compilation failed")
	ErrInvalidState          = errors.New("vkcore: invalid command buffer state")
)

// resultErr maps a VkResult to a framework error kind, or nil on success.
func resultErr(op string, r vk.Result) error {
	if r == vk.Success {
		return nil
	}

	var kind error
	switch r {
	case vk.ErrorOutOfHostMemory:
		kind = ErrHostOOM
	case vk.ErrorOutOfDeviceMemory:
		kind = ErrDeviceOOM
	case vk.ErrorDeviceLost:
		kind = ErrDeviceLost
	case vk.ErrorLayerNotPresent:
		kind = ErrLayerMissing
	case vk.ErrorExtensionNotPresent:
		kind = ErrExtensionMissing
	case vk.ErrorFeatureNotPresent:
		kind = ErrFeatureMissing
	case vk.ErrorInvalidExternalHandle:
		kind = ErrInvalidExternalHandle
	case vk.ErrorFormatNotSupported:
		kind = ErrUnsupportedFormat
	case vk.ErrorOutOfPoolMemory, vk.ErrorFragmentedPool:
		kind = ErrPoolExhausted
	case vk.Timeout:
		kind = ErrTimeout
	default:
		return fmt.Errorf("vkcore: %s: %s (%d)", op, r, int32(r))
	}
	return fmt.Errorf("%w: %s: %s", kind, op, r)
}
