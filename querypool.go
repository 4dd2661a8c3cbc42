// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"time"
	"unsafe"

	"github.com/gogpu/vkcore/vk"
)

// queryPoolCapacity is the number of timestamp queries per pool.
const queryPoolCapacity = 1 << 16

// QueryResult is one completed GPU timing span in nanoseconds.
type QueryResult struct {
	Timestamp uint64
	Duration  time.Duration
}

// QueryPool measures GPU spans with paired timestamps. PerfBegin/PerfEnd
// bracket work inside a command buffer; results are read back host-side
// after the fence and accumulated per key for frame averaging.
type QueryPool struct {
	dev    *Device
	handle vk.QueryPool

	// period converts timestamp ticks to nanoseconds.
	period float64

	queries  uint32
	beginIdx map[uint64]uint32
	ready    map[uint64][]time.Duration
}

// NewQueryPool creates and resets a timestamp query pool.
func NewQueryPool(dev *Device) (*QueryPool, error) {
	info := vk.QueryPoolCreateInfo{
		SType:      vk.StructureTypeQueryPoolCreateInfo,
		QueryType:  vk.QueryTypeTimestamp,
		QueryCount: queryPoolCapacity,
	}
	qp := &QueryPool{
		dev:      dev,
		period:   float64(dev.properties.Limits.TimestampPeriod),
		beginIdx: make(map[uint64]uint32),
		ready:    make(map[uint64][]time.Duration),
	}
	if r := dev.cmds.CreateQueryPool(dev.handle, &info, &qp.handle); r != vk.Success {
		return nil, resultErr("vkCreateQueryPool", r)
	}
	return qp, nil
}

// PerfBegin writes the opening timestamp for key.
func (qp *QueryPool) PerfBegin(key uint64, cmd *CommandBuffer) {
	if _, exists := qp.beginIdx[key]; exists {
		Logger().Warn("vkcore: PerfBegin reused without PerfEnd", "key", key)
		return
	}
	idx := qp.queries
	qp.queries = (qp.queries + 1) % queryPoolCapacity
	qp.beginIdx[key] = idx
	qp.dev.cmds.CmdResetQueryPool(cmd.handle, qp.handle, idx, 1)
	qp.dev.cmds.CmdWriteTimestamp(cmd.handle, vk.PipelineStageTopOfPipeBit, qp.handle, idx)
}

// PerfEnd writes the closing timestamp, defers host readback to command
// buffer completion, and once frames samples accumulated for key returns
// their average.
func (qp *QueryPool) PerfEnd(key uint64, cmd *CommandBuffer, frames int) (time.Duration, bool) {
	beginQuery, ok := qp.beginIdx[key]
	if !ok {
		return 0, false
	}
	delete(qp.beginIdx, key)

	endQuery := qp.queries
	qp.queries = (qp.queries + 1) % queryPoolCapacity
	qp.dev.cmds.CmdResetQueryPool(cmd.handle, qp.handle, endQuery, 1)
	qp.dev.cmds.CmdWriteTimestamp(cmd.handle, vk.PipelineStageBottomOfPipeBit, qp.handle, endQuery)

	cmd.AddCallback(func() {
		start, okStart := qp.readTimestamp(beginQuery)
		end, okEnd := qp.readTimestamp(endQuery)
		if !okStart || !okEnd || end < start {
			return
		}
		qp.ready[key] = append(qp.ready[key], time.Duration(float64(end-start)*qp.period))
	})

	samples := qp.ready[key]
	if frames > 0 && len(samples) >= frames {
		var sum time.Duration
		for _, s := range samples {
			sum += s
		}
		avg := sum / time.Duration(len(samples))
		delete(qp.ready, key)
		return avg, true
	}
	return 0, false
}

// readTimestamp fetches one 64-bit query result from the device.
func (qp *QueryPool) readTimestamp(query uint32) (uint64, bool) {
	var value uint64
	r := qp.dev.cmds.GetQueryPoolResults(qp.dev.handle, qp.handle, query, 1,
		unsafe.Sizeof(value), unsafe.Pointer(&value), 8, vk.QueryResult64Bit|vk.QueryResultWaitBit)
	return value, r == vk.Success
}

// Destroy releases the query pool.
func (qp *QueryPool) Destroy() {
	if qp.handle != 0 {
		qp.dev.cmds.DestroyQueryPool(qp.dev.handle, qp.handle)
		qp.handle = 0
	}
}
