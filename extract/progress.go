// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressFunc receives batch progress updates. It is called with the
// number of items handled so far and the total batch size.
type ProgressFunc func(current, total int)

// ProgressTracker renders batch progress to a writer. Its Func method
// adapts the tracker to the ProgressFunc signature expected by Extractor.
type ProgressTracker struct {
	writer       io.Writer
	startTime    time.Time
	started      bool
	lastReported int
	mu           sync.Mutex
}

// NewProgressTracker creates a progress tracker writing to writer,
// typically os.Stderr.
func NewProgressTracker(writer io.Writer) *ProgressTracker {
	return &ProgressTracker{writer: writer, lastReported: -1}
}

// Func returns a ProgressFunc that drives this tracker.
func (p *ProgressTracker) Func() ProgressFunc {
	return func(current, total int) {
		p.update(current, total)
	}
}

// Elapsed returns the time since the first progress update.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}
	return time.Since(p.startTime)
}

func (p *ProgressTracker) update(current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.startTime = time.Now()
		p.started = true
	}
	if current == p.lastReported && current != total {
		return
	}
	p.lastReported = current

	percentage := 100.0
	if total > 0 {
		percentage = float64(current) / float64(total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProgress: %d/%d (%.1f%%)", current, total, percentage)
	if current == total {
		fmt.Fprintln(p.writer)
	}
}
