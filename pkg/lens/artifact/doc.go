// Package artifact turns the raw response of the rendering service into addressable resources.
//
// On success the response is a zip archive. Decoder.OnSuccess reads every image entry concurrently,
// joins the reads, and registers each image plus the whole archive in a Registry, which hands back
// opaque handles. Handles stay valid until they are revoked; nothing is released implicitly.
//
// On failure ErrorMessage extracts a human readable message from the response body, falling back to
// the transport error and then to GenericErrorMessage.
package artifact
