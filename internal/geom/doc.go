// Package geom defines the value types shared by the region swap core:
// real-valued 2-D points, ordered point sequences and the error taxonomy
// used by every geometric operation.
//
// # Coordinate System
//
// Coordinates follow the image convention used throughout this module:
//   - Origin (0, 0) at the top-left pixel
//   - X increases rightward
//   - Y increases downward
//
// A PointSequence is ordered. For contours the order encodes adjacency; for
// landmark sets it encodes correspondence, so index i of one set pairs with
// index i of another.
//
// # Errors
//
// Operations signal two kinds of failure, both usable with errors.Is:
//   - ErrDegenerate: empty or under-sized input, zero-length segments,
//     zero dispersion, zero value range
//   - ErrShapeMismatch: unequal sequence lengths or image/mask size mismatch
package geom
