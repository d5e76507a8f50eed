package renderer

import (
	"runtime"
	"sync"
)

// PixelTask represents a single pixel rendering task for the worker pool
type PixelTask struct {
	Index int // Pixel id, row-major from the top-left corner
	Row   int
	Col   int
}

// PixelResult contains the result from rendering a pixel
type PixelResult struct {
	Index   int
	Samples int
}

// pixelRenderer renders one pixel into its slot of the output buffer
type pixelRenderer interface {
	renderPixel(task PixelTask) int
}

// WorkerPool manages parallel pixel rendering
type WorkerPool struct {
	taskQueue   chan PixelTask
	resultQueue chan PixelResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual pixel rendering tasks
type Worker struct {
	ID          int
	renderer    pixelRenderer
	taskQueue   chan PixelTask
	resultQueue chan PixelResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(renderer pixelRenderer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan PixelTask, numWorkers*64),
		resultQueue: make(chan PixelResult, numWorkers*64),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to drain and shuts down all workers.
// The result queue is closed once every worker has exited.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a pixel task to the worker pool
func (wp *WorkerPool) SubmitTask(task PixelTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed pixel result
func (wp *WorkerPool) GetResult() (PixelResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Each task writes only its own pixel, so the shared buffer needs no locking
		samples := w.renderer.renderPixel(task)
		w.resultQueue <- PixelResult{Index: task.Index, Samples: samples}
	}
}
