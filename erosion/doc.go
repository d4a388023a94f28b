// Package erosion implements the two eroders of spec §4.5: SPLEroder
// (implicit stream-power-law bedrock incision, valid on any grid) and
// DiffusionADIEroder (linear hillslope diffusion, raster-only). Both
// read a grid.Grid and/or a flowgraph.FlowGraphImpl read-only and
// return a freshly allocated erosion array; neither mutates the caller's
// elevation slice.
//
// DiffusionADIEroder's tridiagonal solver uses the Thomas algorithm, an
// O(n) band elimination specialized from general LU factorization's
// row-elimination structure down to the two-off-diagonal-neighbor case a
// tridiagonal system allows.
package erosion
