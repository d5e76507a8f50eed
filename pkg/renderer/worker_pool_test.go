package renderer

import (
	"runtime"
	"sync"
	"testing"
)

// recordingRenderer remembers which pixels it was asked to render
type recordingRenderer struct {
	mu   sync.Mutex
	seen map[int]int
}

func (r *recordingRenderer) renderPixel(task PixelTask) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[task.Index]++
	return task.Index % 3
}

func TestWorkerPool_RendersEveryTaskOnce(t *testing.T) {
	renderer := &recordingRenderer{seen: make(map[int]int)}
	pool := NewWorkerPool(renderer, 4)
	pool.Start()

	const numTasks = 500
	go func() {
		for i := 0; i < numTasks; i++ {
			pool.SubmitTask(PixelTask{Index: i})
		}
		pool.Stop()
	}()

	results := 0
	samples := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		results++
		samples += result.Samples
	}

	if results != numTasks {
		t.Errorf("Expected %d results, got %d", numTasks, results)
	}
	expectedSamples := 0
	for i := 0; i < numTasks; i++ {
		expectedSamples += i % 3
	}
	if samples != expectedSamples {
		t.Errorf("Expected %d samples, got %d", expectedSamples, samples)
	}
	for i := 0; i < numTasks; i++ {
		if renderer.seen[i] != 1 {
			t.Fatalf("Task %d rendered %d times", i, renderer.seen[i])
		}
	}
}

func TestWorkerPool_DefaultWorkerCount(t *testing.T) {
	pool := NewWorkerPool(&recordingRenderer{seen: make(map[int]int)}, 0)
	if pool.GetNumWorkers() != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), pool.GetNumWorkers())
	}
}
