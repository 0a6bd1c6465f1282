package pipeline

// Line is a stroke segment between two vertex indices.
type Line struct {
	A, B   int
	PathID int
	Cap    StrokeCap
	Join   StrokeJoin
	Weight int
}

// CornerColor is the lit color of one triangle corner. A vertex shared by
// several triangles may be lit differently in each.
type CornerColor struct {
	Diffuse  Color
	Specular Color
}

// Triangle references three vertices by index.
type Triangle struct {
	V            [3]int
	TextureIndex int // -1 when untextured
	ShapeID      int
	Corners      [3]CornerColor
}
