package batcher

import (
	"sync/atomic"
	"time"
)

// Stats is a snapshot of a Batcher's counters.
type Stats struct {
	// SizeFlushes is the number of flushes triggered by the buffer
	// reaching the batch size.
	SizeFlushes uint64

	// TimerFlushes is the number of flushes triggered by the flush
	// interval elapsing.
	TimerFlushes uint64

	// ManualFlushes is the number of flushes triggered by Flush or Close.
	ManualFlushes uint64

	// ItemsProcessed is the total number of items handed to successful
	// ProcessFunc calls.
	ItemsProcessed uint64

	// ProcessErrors is the number of failed ProcessFunc calls.
	ProcessErrors uint64

	// TotalProcessingTime is the cumulative time spent inside successful
	// ProcessFunc calls.
	TotalProcessingTime time.Duration
}

// statsCounters holds the live atomic counters behind Stats.
type statsCounters struct {
	sizeFlushes    atomic.Uint64
	timerFlushes   atomic.Uint64
	manualFlushes  atomic.Uint64
	itemsProcessed atomic.Uint64
	processErrors  atomic.Uint64
	processingTime atomic.Int64
}

func (c *statsCounters) snapshot() Stats {
	return Stats{
		SizeFlushes:         c.sizeFlushes.Load(),
		TimerFlushes:        c.timerFlushes.Load(),
		ManualFlushes:       c.manualFlushes.Load(),
		ItemsProcessed:      c.itemsProcessed.Load(),
		ProcessErrors:       c.processErrors.Load(),
		TotalProcessingTime: time.Duration(c.processingTime.Load()),
	}
}
