// Package imaging supplies the image-level collaborators of the region
// compositor: decoding and caching, the default geometry provider (convex
// hull, polygon fill, affine warp, Poisson seamless clone), landmark
// overlays, colour statistics and image comparison.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner,
// X increasing rightward and Y increasing downward. Rectangles follow
// image.Rectangle: Min is inclusive, Max is exclusive.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Geometry holds no mutable state.
// Functions never modify their input images; every result is a fresh
// allocation.
//
// # Error Handling
//
// Size mismatches wrap geom.ErrShapeMismatch and degenerate geometry (empty
// masks, singular transforms) wraps geom.ErrDegenerate, so callers can use
// errors.Is across package boundaries.
package imaging
