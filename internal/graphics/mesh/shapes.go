package mesh

import "github.com/go-gl/mathgl/mgl32"

type face struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3 // counter-clockwise seen from outside
}

var unitBoxFaces = [6]face{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
}

// Cube returns an outward-facing cube of the given edge length centred on the origin.
func Cube(size float32, material Material) *Mesh {
	return Box(size, size, size, material, false)
}

// Box returns a box of width (x), height (y) and length (z) centred on the origin.
// With inward set the faces and normals point into the box, which is what a skybox
// seen from inside needs.
func Box(width, height, length float32, material Material, inward bool) *Mesh {
	half := mgl32.Vec3{width / 2, height / 2, length / 2}
	vertices := make([]float32, 0, 6*4*3)
	normals := make([]float32, 0, 6*4*3)
	indices := make([]uint32, 0, 6*6)

	for i, f := range unitBoxFaces {
		n := f.normal
		if inward {
			n = n.Mul(-1)
		}
		for _, c := range f.corners {
			vertices = append(vertices, c[0]*half[0], c[1]*half[1], c[2]*half[2])
			normals = append(normals, n[0], n[1], n[2])
		}
		base := uint32(i * 4)
		if inward {
			indices = append(indices, base, base+2, base+1, base, base+3, base+2)
		} else {
			indices = append(indices, base, base+1, base+2, base, base+2, base+3)
		}
	}
	return New(vertices, normals, indices, material)
}
