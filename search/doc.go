// Package search drives the engines of foliar over families of manifolds.
//
// The geometry (drilling, filling, randomizing triangulations, hyperbolic
// structures, census identification, holonomy) is supplied by the caller
// through the ClosedManifold, CuspedManifold, Census and
// TriangulationSource interfaces. The search itself is deterministic given
// those answers:
//
//   - IsCertifiedLSpace proves a rational homology sphere is an L-space by
//     drilling a Floer simple knot and recursing into two low-volume
//     fillings inside the L-space interval of the drilled manifold;
//   - FirstFoliation, HasTautFoliationWithEulerZero, DegeneracySlopes and
//     QuickNonOrderable walk the triangulations of a manifold through the
//     edge-orientation engine;
//   - CertifyNonOrderable and CertifyNonOrderableBatch run the Cayley-ball
//     certifier with growing radius, the batch one group per worker.
//
// Every call takes an explicit Config. A search that runs out of a bounded
// resource returns an *Exhausted error naming the bound and a Config to
// retry with; IsCertifiedLSpace retries on its own.
package search
