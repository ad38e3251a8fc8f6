// Package rawcore is the deterministic imaging core of a raw-photograph
// editor: it turns a camera sensor's raw pixel array and a declarative
// adjustment document into a finished pixel buffer, and separately
// stitches overlapping photographs into a panorama or fills masked
// regions of an image by inpainting.
//
// The package speaks only in terms of in-memory buffers (RawFrame,
// AdjustmentDocument, image.Image) — file enumeration, sidecar
// persistence, thumbnail caching, AI model inference, and every other
// concern of the surrounding editor are treated as external
// collaborators whose only contract with this package is "bytes in,
// bytes out".
//
// Basic usage for developing a raw frame:
//
//	img, err := rawcore.Develop(frame, rawcore.AlgorithmMenon)
//
// Basic usage for compiling an adjustment document:
//
//	doc, vis, err := rawcore.ParseAdjustments(r)
//	uniform := rawcore.CompileAdjustments(doc, vis)
//
// Basic usage for stitching a panorama:
//
//	result, err := rawcore.Stitch(images)
package rawcore
