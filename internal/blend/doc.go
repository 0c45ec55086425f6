// Package blend composites one image into another through Laplacian
// pyramids, so that the seam between them is blended per frequency band
// instead of cut hard.
//
// # Pyramids
//
// A Pyramid is a slice of Planes, level 0 being the finest. GaussianPyramid
// repeatedly blurs with the 5-tap binomial kernel [1 4 6 4 1]/16 and drops
// every other row and column. LaplacianPyramid stores, per level, the
// difference between a Gaussian level and the upsampled next-coarser level;
// its last level is the coarsest Gaussian level itself. Collapse inverts
// LaplacianPyramid.
//
// # Blending
//
// Composite mixes two Laplacian pyramids level by level under a mask
// pyramid. Because the mask pyramid is a Gaussian pyramid of a binary mask,
// its coarse levels hold fractional weights, and low frequencies are mixed
// over a wide band around the seam while fine detail switches sharply.
//
// # Clone Modes
//
// BlendedClone wraps the pyramid pipeline. HardClone copies masked pixels
// without blending, and SeamlessClone hands off to a PoissonCloner seeded
// with the mask centroid.
//
// # Borders
//
// Filtering reflects at the image edge without repeating the edge pixel
// (…, 2, 1 | 0, 1, 2, …).
package blend
