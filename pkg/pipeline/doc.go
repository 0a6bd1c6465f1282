// Package pipeline implements a software 3D geometry pipeline.
//
// A Graphics value turns a stream of BeginShape / Vertex / EndShape calls
// into lit, near-plane-clipped, screen-space triangles and lines and hands
// them to a Rasterizer. Per shape the flow is:
//
//	BeginShape(kind)   reset (Immediate) or segment (DeferredSorted) the buffers
//	Vertex(x, y, z)    append a vertex record, emit stroke lines for kind
//	EndShape(mode)     camera transform, triangle emission, near-plane clip,
//	                   lighting, projection, render or retain
//
// Vertices, lines and triangles live in index-addressed arenas (Buffer) so
// clipping can insert interpolated vertices without per-vertex allocation.
//
// A Graphics is not safe for concurrent use.
package pipeline
