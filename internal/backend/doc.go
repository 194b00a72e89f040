// Package backend provides an HTTP client for the video analysis backend.
//
// # Overview
//
// All detection, inference and catalog search happen in an external service.
// This package is the only place that speaks its wire contract:
//
//   - GET  /health: arbitrary JSON liveness payload
//   - POST /analyze-video: multipart field "file" holding the video
//   - POST /find-similar: JSON body with one DetectedProduct (store catalog)
//   - POST /find-similar-gemini: same body, answered by AI web search
//
// Both similar-item endpoints reply with either "similar_items" or
// "products"; SimilarResponse.Items hides the difference.
//
// # Client Usage
//
//	client, err := backend.NewClient("http://127.0.0.1:8000")
//	if err != nil {
//		return err
//	}
//	resp, err := client.AnalyzeVideo(ctx, backend.Upload{
//		Filename:    "clip.mp4",
//		ContentType: "video/mp4",
//		Body:        file,
//	})
//
// # Request Handling
//
// Requests carry Accept: application/json and User-Agent: shopper/0.1. There is
// no retry and no client-side timeout; analysis of a long video can take
// minutes, so the only bound is the caller's context. Uploads are streamed
// through an io.Pipe rather than buffered.
//
// # Error Handling
//
//   - Initialization errors: unparsable base URL or missing host
//   - Transport errors: wrapped as "execute request: ..."
//   - HTTP errors: *StatusError with the path and status code
//   - Decode errors: wrapped as "decode response: ..."
//
// Callers are expected to surface every error to the user; nothing here is
// retried.
package backend
