// Package transport sends lens parameters to the rendering service.
//
// The service answers a successful request with a zip archive of images and a failed one with a JSON
// error body. Client.Generate returns the body in both cases so the caller can decode it.
package transport
