// Package shape computes scalar and vector descriptors of point sets:
// centroid, area, circularity, orientation and discrete curvature.
//
// A region is represented by its member pixels, so Area is a point count and
// the second-moment quantities used by Circularity and Orientation are sums
// over member pixels about the centroid:
//
//	a = Σ dx²    b = 2·Σ dx·dy    c = Σ dy²
//
// # Sentinel Results
//
// Circularity and Orientation do not fail for isotropic configurations
// (b == 0 and a == c). They report documented sentinels instead:
//   - Circularity: -1 (see CircularityUndefined)
//   - Orientation: 0
//
// Callers that need to tell an isotropic shape from one whose principal axis
// is genuinely horizontal must check IsIsotropic.
//
// # Regions
//
// Foreground and Regions turn a binary mask into point sets: all foreground
// pixels, or one set per 8-connected component.
package shape
