package models

import "github.com/processing/processing-sub019/pkg/pipeline"

// Sink is the subset of the shape API a mesh is streamed through.
// *pipeline.Graphics satisfies it.
type Sink interface {
	BeginShape(kind pipeline.ShapeKind) error
	EndShape(mode pipeline.EndMode) error
	Normal(x, y, z float64)
	VertexUV(x, y, z, u, v float64)
	Fill(c pipeline.Color)
	Specular(c pipeline.Color)
	Shininess(s float64)
	Texture(t pipeline.Texture)
	TextureMode(m pipeline.TextureMode)
}

// Draw emits the mesh as TRIANGLES shapes, one per run of faces sharing a
// material. Each vertex carries its own normal. Faces without a material
// use whatever fill and texture the sink already has.
func (m *Mesh) Draw(s Sink) error {
	s.TextureMode(pipeline.NormalSpace)
	for start := 0; start < len(m.Faces); {
		end := start + 1
		for end < len(m.Faces) && m.Faces[end].Material == m.Faces[start].Material {
			end++
		}
		if mat := m.GetMaterial(m.Faces[start].Material); mat != nil {
			m.applyMaterial(s, mat)
		}
		if err := m.drawFaces(s, m.Faces[start:end]); err != nil {
			return err
		}
		start = end
	}
	return nil
}

func (m *Mesh) applyMaterial(s Sink, mat *Material) {
	c := mat.BaseColor
	s.Fill(pipeline.RGBA(c[0], c[1], c[2], c[3]))
	s.Specular(pipeline.Gray(0.5 * (1 - mat.Roughness)))
	s.Shininess(mat.Shininess())
	s.Texture(mat.Texture)
}

func (m *Mesh) drawFaces(s Sink, faces []Face) error {
	if err := s.BeginShape(pipeline.Triangles); err != nil {
		return err
	}
	for _, f := range faces {
		for _, vi := range f.V {
			v := m.Vertices[vi]
			s.Normal(v.Normal.X, v.Normal.Y, v.Normal.Z)
			s.VertexUV(v.Position.X, v.Position.Y, v.Position.Z, v.UV.X, v.UV.Y)
		}
	}
	return s.EndShape(pipeline.Open)
}
