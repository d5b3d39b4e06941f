// Package schematic uploads schematic definition files to a remote
// schematic-generation endpoint and returns the identifier the service
// assigns to them.
//
// The protocol is a single blocking round-trip: POST the file bytes,
// expect a JSON response carrying an "id" field. There is no retry,
// batching, or session state.
package schematic
