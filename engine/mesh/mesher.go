package mesh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
)

// Job describes one VertexArray to fill on the worker pool.
type Job struct {
	// Label names the job in errors and in the uploaded VertexBuffer.
	Label string
	// MaxVertexes is the capacity of the array handed to Build.
	MaxVertexes int
	// Format is the layout of the array handed to Build.
	Format vertex.VertexFormat
	// Build fills the array. It runs on a worker goroutine and must not touch a Driver.
	Build func(va vertex.VertexArray) error
}

// Result is the outcome of one Job.
type Result struct {
	Label string
	// Array is the filled array, nil if the job was skipped.
	Array vertex.VertexArray
	// Err is set when Build failed, panicked or the job was cancelled before it started.
	Err error
}

// Mesher fills many VertexArrays in parallel and uploads them on the graphics thread.
// Each Job owns its array exclusively until Mesh returns. A Mesher is driven from one goroutine.
type Mesher interface {
	// Mesh runs every job on the worker pool and blocks until all of them have finished.
	//
	// Parameters:
	//   - ctx: jobs not yet started when ctx is done are skipped with ctx.Err()
	//   - jobs: the jobs to run
	//
	// Returns:
	//   - []Result: one result per job, in job order
	//   - error: the joined errors of every failed job, nil if all succeeded
	Mesh(ctx context.Context, jobs []Job) ([]Result, error)

	// Upload creates one VertexBuffer per result on device. It must be called on the graphics thread.
	// Failed results and failed uploads yield Empty buffers.
	//
	// Parameters:
	//   - device: the device to allocate from
	//   - results: the results returned by Mesh
	//   - options: options applied to every buffer after its label
	//
	// Returns:
	//   - []vertex.VertexBuffer: one buffer per result, in result order
	//   - error: the joined upload errors, nil if every upload succeeded
	Upload(device *vertex.Device, results []Result, options ...vertex.VertexBufferBuilderOption) ([]vertex.VertexBuffer, error)

	// Close stops the worker pool. The Mesher must not be used afterwards.
	Close()
}

type mesher struct {
	logger    *slog.Logger
	workers   int
	queueSize int
	pool      worker.DynamicWorkerPool
	nextID    int
}

var _ Mesher = &mesher{}

// NewMesher creates a Mesher backed by a dynamic worker pool.
//
// Parameters:
//   - options: functional options to configure the mesher
//
// Returns:
//   - Mesher: the mesher, ready to accept jobs
func NewMesher(options ...MesherBuilderOption) Mesher {
	m := &mesher{
		logger:    slog.Default(),
		workers:   4,
		queueSize: 256,
	}
	for _, opt := range options {
		opt(m)
	}
	m.pool = worker.NewDynamicWorkerPool(m.workers, m.queueSize, 1*time.Second)
	return m
}

func (m *mesher) Mesh(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		results[i].Label = job.Label
		wg.Add(1)
		res := &results[i]
		jobCap := job
		id := m.nextID
		m.nextID++
		m.pool.SubmitTask(worker.Task{
			ID:      id,
			Payload: job.Label,
			Do: func() (any, error) {
				defer wg.Done()
				if err := ctx.Err(); err != nil {
					res.Err = fmt.Errorf("mesh %q skipped: %w", jobCap.Label, err)
					return nil, res.Err
				}
				res.Array, res.Err = runJob(jobCap)
				return nil, res.Err
			},
		})
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if len(errs) > 0 {
		m.logger.Error("meshing failed", "jobs", len(jobs), "failed", len(errs))
	}
	return results, errors.Join(errs...)
}

// runJob builds one array, converting a contract panic into an error.
func runJob(job Job) (va vertex.VertexArray, err error) {
	defer func() {
		if r := recover(); r != nil {
			va = nil
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("mesh %q: %w", job.Label, rerr)
				return
			}
			err = fmt.Errorf("mesh %q: panic: %v", job.Label, r)
		}
	}()

	va = vertex.NewVertexArray(job.MaxVertexes, job.Format)
	if job.Build == nil {
		return va, nil
	}
	if err := job.Build(va); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", job.Label, err)
	}
	return va, nil
}

func (m *mesher) Upload(device *vertex.Device, results []Result, options ...vertex.VertexBufferBuilderOption) ([]vertex.VertexBuffer, error) {
	buffers := make([]vertex.VertexBuffer, len(results))
	var errs []error
	for i, r := range results {
		opts := append([]vertex.VertexBufferBuilderOption{vertex.WithLabel(r.Label)}, options...)
		if r.Err != nil || r.Array == nil {
			buffers[i] = vertex.NewEmptyVertexBuffer(device, opts...)
			continue
		}
		vb, err := vertex.NewVertexBuffer(device, r.Array, opts...)
		if err != nil {
			errs = append(errs, err)
		}
		buffers[i] = vb
	}
	return buffers, errors.Join(errs...)
}

func (m *mesher) Close() {
	m.pool.Stop()
}
