// Package bucket implements the image-bucket checkout discipline: the
// rendered image is the one mutable object shared across render
// threads, partitioned into non-overlapping rectangles so each thread
// owns exclusive write access to its own region at a time. Checking out
// a bucket that overlaps one already checked out is a programming error
// and fails fast rather than silently serializing or blocking.
//
// Concurrent dispatch across buckets uses
// golang.org/x/sync/errgroup's WithContext/Go/Wait fan-out pattern.
package bucket
