// Package harness provides test support for value-graph scenarios.
//
// It offers must-style constructors that fail the test on error, golden
// snapshot comparison of graph dumps, and prebuilt scenario graphs such
// as the boolean multiplexer. Graph dumps are deterministic for a given
// construction order, so golden files are stable across runs.
package harness
