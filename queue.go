// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"sync"

	"github.com/gogpu/vkcore/vk"
)

// Queue serialises submissions to one device queue under its own mutex.
type Queue struct {
	dev    *Device
	handle vk.Queue
	family uint32
	index  uint32

	// mu orders Submit calls. WaitIdle also takes it: never call WaitIdle
	// while another goroutine may be submitting through a lock you hold,
	// it is a global barrier.
	mu sync.Mutex
}

func newQueue(dev *Device, family, index uint32) *Queue {
	q := &Queue{dev: dev, family: family, index: index}
	dev.cmds.GetDeviceQueue(dev.handle, family, index, &q.handle)
	return q
}

// Family returns the queue family index.
func (q *Queue) Family() uint32 { return q.family }

// Handle returns the VkQueue handle.
func (q *Queue) Handle() vk.Queue { return q.handle }

// Submit hands submission batches to the queue under the queue mutex.
func (q *Queue) Submit(count uint32, submits *vk.SubmitInfo, fence vk.Fence) vk.Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dev.submitCount.Add(uint64(count))
	return q.dev.cmds.QueueSubmit(q.handle, count, submits, fence)
}

// WaitIdle drains the queue. This is a global barrier; it must never run
// while another thread may be submitting on the same queue through a held
// lock.
func (q *Queue) WaitIdle() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return resultErr("vkQueueWaitIdle", q.dev.cmds.QueueWaitIdle(q.handle))
}
