// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, configuration control, and debug introspection layer.
// Part of hioload-h2 wire processing core.
//
// Provides concurrent-safe state handling primitives including:
//   - Monotonic counter registry for frame and ping telemetry
//   - Immutable snapshot config reads and atomic updates
//   - Runtime observers for reload propagation
//   - Debug hooks and probe registration
package control
