package download

// Package download implements the image source: it fetches a batch of random
// cat images concurrently, keeps each image locally as bytes, and absorbs
// per-item failures by falling back to the remote reference. Progress is
// propagated to the UI through an update callback.
