package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Carmen-Shannon/oxy-vertex/engine/camera"
	"github.com/Carmen-Shannon/oxy-vertex/engine/mesh"
	"github.com/Carmen-Shannon/oxy-vertex/engine/vertex"
	"github.com/go-gl/mathgl/mgl32"
)

var facePalette = [6]mgl32.Vec4{
	mesh.FacePosX: {0.90, 0.30, 0.25, 1},
	mesh.FaceNegX: {0.55, 0.18, 0.15, 1},
	mesh.FacePosY: {0.35, 0.80, 0.40, 1},
	mesh.FaceNegY: {0.20, 0.45, 0.22, 1},
	mesh.FacePosZ: {0.30, 0.50, 0.90, 1},
	mesh.FaceNegZ: {0.18, 0.28, 0.55, 1},
}

var gridColor = mgl32.Vec4{0.45, 0.45, 0.5, 1}

// scene holds the uploaded demo geometry: one line grid and one triangle buffer per cube chunk.
type scene struct {
	grid   vertex.VertexBuffer
	chunks []vertex.VertexBuffer
	// extent is the radius of the geometry around the origin.
	extent float32
}

// cubeLayout places cubes on a square floor plan centered on the origin.
type cubeLayout struct {
	side    int
	spacing float32
	size    float32
}

func newCubeLayout(cubes int, size float32) cubeLayout {
	return cubeLayout{
		side:    int(math.Ceil(math.Sqrt(float64(cubes)))),
		spacing: size * 1.5,
		size:    size,
	}
}

func (l cubeLayout) center(i int) mgl32.Vec3 {
	offset := float32(l.side-1) / 2
	return mgl32.Vec3{
		(float32(i%l.side) - offset) * l.spacing,
		l.size / 2,
		(float32(i/l.side) - offset) * l.spacing,
	}
}

// buildScene meshes the grid and cube chunks on the mesher's workers and uploads them on the calling
// thread, which must own the graphics context.
func buildScene(ctx context.Context, cfg MeshConfig, format vertex.VertexFormat, device *vertex.Device, logger *slog.Logger) (*scene, error) {
	m := mesh.NewMesher(mesh.WithWorkers(cfg.Workers), mesh.WithLogger(logger))
	defer m.Close()

	layout := newCubeLayout(cfg.Cubes, cfg.CubeSize)
	gridSpacing := layout.spacing
	gridHalf := float32(cfg.GridCells) * gridSpacing / 2

	s := &scene{extent: max(float32(layout.side)*layout.spacing/2, gridHalf, cfg.CubeSize)}

	var gridJobs []mesh.Job
	if cfg.GridCells > 0 {
		gridJobs = append(gridJobs, mesh.Job{
			Label:       "grid",
			MaxVertexes: mesh.GridVertexCount(cfg.GridCells),
			Format:      format,
			Build: func(va vertex.VertexArray) error {
				if va.Format().NormalCount() > 0 {
					va.SetNormal(0, 1, 0)
				}
				mesh.AppendGrid(va, mgl32.Vec3{-gridHalf, 0, -gridHalf}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1},
					cfg.GridCells, gridSpacing, gridColor)
				return nil
			},
		})
	}

	var chunkJobs []mesh.Job
	for first := 0; first < cfg.Cubes; first += cfg.CubesPerChunk {
		last := min(first+cfg.CubesPerChunk, cfg.Cubes)
		chunkJobs = append(chunkJobs, mesh.Job{
			Label:       fmt.Sprintf("chunk-%d", first/cfg.CubesPerChunk),
			MaxVertexes: (last - first) * mesh.CubeVertexCount,
			Format:      format,
			Build: func(va vertex.VertexArray) error {
				for i := first; i < last; i++ {
					mesh.AppendCube(va, layout.center(i), cfg.CubeSize, facePalette)
				}
				return nil
			},
		})
	}

	results, err := m.Mesh(ctx, append(gridJobs, chunkJobs...))
	if err != nil {
		return nil, fmt.Errorf("failed to mesh scene: %w", err)
	}

	usage := vertex.WithStaticDraw(cfg.StaticDraw)
	var uploadErrs []error
	if len(gridJobs) > 0 {
		grid, err := m.Upload(device, results[:1], usage, vertex.WithTopology(vertex.TopologyLines))
		uploadErrs = append(uploadErrs, err)
		s.grid = grid[0]
	} else {
		s.grid = vertex.NewEmptyVertexBuffer(device, vertex.WithLabel("grid"))
	}
	s.chunks, err = m.Upload(device, results[len(gridJobs):], usage)
	uploadErrs = append(uploadErrs, err)

	if err := errors.Join(uploadErrs...); err != nil {
		s.destroy()
		return nil, fmt.Errorf("failed to upload scene: %w", err)
	}

	logger.Info("scene built", "format", format.String(), "chunks", len(s.chunks), "cubes", cfg.Cubes, "gridCells", cfg.GridCells)
	return s, nil
}

// renderLines draws the grid.
func (s *scene) renderLines() error {
	return s.grid.Render()
}

// renderTriangles draws every chunk, continuing past failures.
func (s *scene) renderTriangles() error {
	var errs []error
	for _, c := range s.chunks {
		if err := c.Render(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *scene) destroy() {
	if s.grid != nil {
		s.grid.Destroy()
	}
	for _, c := range s.chunks {
		c.Destroy()
	}
}

// newCamera returns a camera orbiting the scene from outside its extent.
func (s *scene) newCamera(clip camera.ClipSpace) camera.Camera {
	radius := s.extent*3 + 2
	ctrl := camera.NewCameraController(
		camera.WithRadiusLimits(1, radius*2),
		camera.WithRadius(radius),
		camera.WithElevation(math.Pi/6),
	)
	return camera.NewCamera(
		camera.WithController(ctrl),
		camera.WithFar(radius*4),
		camera.WithClipSpace(clip),
	)
}

// orbitMVP places cam at angle radians around the scene and returns its view-projection matrix.
func orbitMVP(cam camera.Camera, width, height int, angle float32) mgl32.Mat4 {
	cam.Controller().SetAzimuth(angle)
	cam.SetViewport(width, height)
	cam.Update()
	return cam.ViewProjectionMatrix()
}
