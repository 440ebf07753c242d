package kernels

import (
	"math"
	"time"
)

type vec3 struct{ x, y, z float64 }

func (v vec3) add(o vec3) vec3      { return vec3{v.x + o.x, v.y + o.y, v.z + o.z} }
func (v vec3) sub(o vec3) vec3      { return vec3{v.x - o.x, v.y - o.y, v.z - o.z} }
func (v vec3) scale(s float64) vec3 { return vec3{v.x * s, v.y * s, v.z * s} }
func (v vec3) mul(o vec3) vec3      { return vec3{v.x * o.x, v.y * o.y, v.z * o.z} }
func (v vec3) dot(o vec3) float64   { return v.x*o.x + v.y*o.y + v.z*o.z }

func (v vec3) normalize() vec3 {
	l := math.Sqrt(v.dot(v))
	if l == 0 {
		return v
	}
	return v.scale(1 / l)
}

type sphere struct {
	center       vec3
	radius       float64
	color        vec3
	reflectivity float64
}

// hit solves the ray-sphere quadratic and returns the nearest positive
// intersection distance, or false.
func (s sphere) hit(origin, dir vec3) (float64, bool) {
	oc := origin.sub(s.center)
	b := 2 * oc.dot(dir)
	c := oc.dot(oc) - s.radius*s.radius
	disc := b*b - 4*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := (-b - sq) / 2; t > 1e-4 {
		return t, true
	}
	if t := (-b + sq) / 2; t > 1e-4 {
		return t, true
	}
	return 0, false
}

var scene = []sphere{
	{center: vec3{0, -1, 3}, radius: 1, color: vec3{1, 0.2, 0.2}, reflectivity: 0.3},
	{center: vec3{2, 0, 4}, radius: 1, color: vec3{0.2, 0.2, 1}, reflectivity: 0.5},
	{center: vec3{-2, 0, 4}, radius: 1, color: vec3{0.2, 1, 0.2}, reflectivity: 0.4},
	{center: vec3{0, -5001, 0}, radius: 5000, color: vec3{0.9, 0.9, 0.2}, reflectivity: 0.1},
}

var lightDir = vec3{1, 1, -1}.normalize()

func traceRay(origin, dir vec3, depth int) vec3 {
	nearest := math.Inf(1)
	hitIdx := -1
	for i, s := range scene {
		if t, ok := s.hit(origin, dir); ok && t < nearest {
			nearest = t
			hitIdx = i
		}
	}
	if hitIdx < 0 {
		t := 0.5 * (dir.y + 1)
		return vec3{1, 1, 1}.scale(1 - t).add(vec3{0.5, 0.7, 1}.scale(t))
	}

	s := scene[hitIdx]
	point := origin.add(dir.scale(nearest))
	normal := point.sub(s.center).normalize()
	diffuse := math.Max(normal.dot(lightDir), 0)
	local := s.color.scale(0.1 + 0.9*diffuse)
	if depth <= 0 || s.reflectivity <= 0 {
		return local
	}
	reflected := dir.sub(normal.scale(2 * dir.dot(normal)))
	bounce := traceRay(point, reflected, depth-1)
	return local.scale(1 - s.reflectivity).add(bounce.mul(s.color).scale(s.reflectivity))
}

// runRayTrace renders a fixed scene, one primary ray per pixel, with
// bounded reflection depth. Every pixel's color folds into the checksum
// so no ray can be skipped. Ops counts primary rays.
func runRayTrace(w Workload) (Result, error) {
	width, height := w.RayWidth, w.RayHeight
	origin := vec3{0, 0, 0}

	start := time.Now()
	var sum uint64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dir := vec3{
				(float64(x) - float64(width)/2) / float64(width),
				-(float64(y) - float64(height)/2) / float64(height),
				1,
			}.normalize()
			color := traceRay(origin, dir, w.RayDepth)
			sum = sum*31 + uint64(color.x*255) + uint64(color.y*255) + uint64(color.z*255)
		}
	}
	elapsed := time.Since(start)

	return Result{
		Checksum: sum,
		Ops:      float64(width) * float64(height),
		Elapsed:  elapsed,
		Metrics: map[string]any{
			"width":  width,
			"height": height,
			"depth":  w.RayDepth,
		},
	}, nil
}
