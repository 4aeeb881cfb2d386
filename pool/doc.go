// Package pool
// Author: momentics <momentics@gmail.com>
//
// Scratch buffer pooling for the hioload-h2 encode path.
// Control frames are small and fixed-size, so buffers are recycled
// through sync.Pool rather than sized dynamically.
// See framepool.go for implementation details.
package pool
