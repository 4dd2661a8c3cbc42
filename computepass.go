// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import "github.com/gogpu/vkcore/vk"

// Computepass executes a compute pipeline against its staged bindings.
type Computepass struct {
	Basepass
	cp *ComputePipeline
}

// NewComputepass wraps a compute pipeline in a pass.
func NewComputepass(cp *ComputePipeline) (*Computepass, error) {
	bp, err := newBasepass(&cp.Pipeline)
	if err != nil {
		return nil, err
	}
	return &Computepass{Basepass: *bp, cp: cp}, nil
}

// NewComputepassFromSPIRV reflects a compute binary and builds its pass.
func NewComputepassFromSPIRV(dev *Device, src []byte) (*Computepass, error) {
	cp, err := NewComputePipelineFromSPIRV(dev, src)
	if err != nil {
		return nil, err
	}
	return NewComputepass(cp)
}

// Dispatch binds the compute pipeline and issues the dispatch.
func (cp *Computepass) Dispatch(cmd *CommandBuffer, x, y, z uint32) {
	d := cp.dev
	d.cmds.CmdBindPipeline(cmd.handle, vk.PipelineBindPointCompute, cp.cp.Handle())
	cmd.AddDependency(cp)
	d.cmds.CmdDispatch(cmd.handle, x, y, z)
}

// Exec binds staged resources and dispatches.
func (cp *Computepass) Exec(cmd *CommandBuffer, x, y, z uint32) error {
	if err := cp.BindResources(cmd); err != nil {
		return err
	}
	cp.Dispatch(cmd, x, y, z)
	return nil
}
