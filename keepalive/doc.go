// Package keepalive
// Author: momentics <momentics@gmail.com>
//
// Connection-level ping correlation for hioload-h2.
//
// The protocol package keeps the PING codec stateless; this package owns
// the state around it: the outbound probe queue, the fixed two-slot table
// of outstanding user-correlated probes, and the once-only handling of
// the graceful-shutdown signal. One Manager per connection, guarded by a
// single mutex.
package keepalive
