// Package testing provides test utilities for the upkeep library.
//
// This package offers helpers for setting up test environments, particularly
// embedded NATS servers for exercising the JetStream-backed task store. It
// follows Go's convention of providing testing utilities in a dedicated
// package (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateJetStreamKV: Convenience wrapper for KV bucket creation
//   - NewTestLogger: types.Logger that writes to the test log
//
// Example usage:
//
//	import (
//	    "testing"
//	    upkeeptest "github.com/nik45114/upkeep/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    _, nc := upkeeptest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
