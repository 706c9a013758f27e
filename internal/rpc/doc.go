// Package rpc contains the wire types and gRPC service bindings for the
// Ballista shuffle transport. The message and service definitions mirror
// ../rpc_proto/s_shuffle.proto, and are maintained by hand so the module
// builds without a protoc toolchain.
package rpc
