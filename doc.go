// Package ballista contains the core types of Ballista, a distributed, pull-based
// query execution engine. This root package defines the interfaces shared by execution
// plan nodes, columnar record batches and the cluster transport, and is an excellent
// overview of Ballista's key concepts.
package ballista
