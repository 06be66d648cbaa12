// Package grpc exposes the standard gRPC health service for the relay.
package grpc
