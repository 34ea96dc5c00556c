// Package gfx is a small, predictable software wireframe renderer.
//
// Pipeline (fixed):
//
//	Transform → Trivial rejection → Perspective divide → Viewport → Line rasterization.
//
// Vertices are transformed by one combined matrix (camera × world) into clip
// space. Segments lying entirely outside one frustum plane are dropped; every
// other segment is kept whole, so lines straddling the frustum are only
// clipped per pixel by the framebuffer bounds. Surviving vertices are divided
// by w and mapped to screen space, where an integer Bresenham walk writes
// depth-tested pixels into a Framebuffer.
//
// Depth is normalized device z in [0, 1] (zero-to-one projections) and is
// interpolated linearly along the stepping axis. Nothing in the package
// returns errors or logs: invalid geometry simply does not draw.
//
// Everything is single-threaded. A Framebuffer and a Pipeline belong to one
// render loop for the duration of a frame.
package gfx
