// SPDX-License-Identifier: MIT

package softimpute

// Test-Bridge (White-Box) for private solver kernels.
//
// Purpose:
//   - Expose the unexported SVD/shrinkage helpers to softimpute_test ONLY,
//     without widening the production API.
//   - Compiles only during `go test` (standard export_test.go mechanism).
var (
	// ExportedZeroFilled exposes zeroFilled for white-box tests.
	ExportedZeroFilled = zeroFilled
	// ExportedSoftThreshold exposes softThreshold for white-box tests.
	ExportedSoftThreshold = softThreshold
	// ExportedPositiveCount exposes positiveCount for white-box tests.
	ExportedPositiveCount = positiveCount
	// ExportedSpectrumDelta exposes spectrumDelta for white-box tests.
	ExportedSpectrumDelta = spectrumDelta
	// ExportedScanNonFinite exposes scanNonFinite for white-box tests.
	ExportedScanNonFinite = scanNonFinite
	// ExportedRebuild exposes rebuild for white-box tests.
	ExportedRebuild = rebuild
)
