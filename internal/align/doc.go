// Package align estimates 2-D alignment transforms between corresponding
// point sets.
//
// Two strategies implement Estimator:
//
//   - SimilarityEstimator: closed-form least-squares fit of uniform scale,
//     rotation and translation over every correspondence.
//   - ThreePointAffineEstimator: the exact affine map through three chosen
//     correspondences, for when only a few landmark indices are trusted.
//
// Both return a Transform, a 2×3 affine matrix mapping source coordinates to
// target coordinates:
//
//	| x' |   | A  B  Tx |   | x |
//	| y' | = | C  D  Ty | · | y |
//	                        | 1 |
package align
