package rpc

import (
	"net"

	"google.golang.org/grpc"

	"github.com/reflectrpteam/luau/internal/frontend"
)

// NewServer wires fe behind ServiceDesc and returns a ready-to-Serve
// *grpc.Server; the caller supplies the net.Listener (spec.md §9.5
// leaves the bind address to the host process).
func NewServer(fe *frontend.Frontend) *grpc.Server {
	srv := grpc.NewServer()
	srv.RegisterService(&ServiceDesc, &Service{Frontend: fe})
	return srv
}

// Serve is a convenience wrapper around NewServer for callers that
// don't need to customize grpc.ServerOption; it blocks until lis
// closes or the server stops, matching grpc.Server.Serve's own
// contract.
func Serve(lis net.Listener, fe *frontend.Frontend) error {
	return NewServer(fe).Serve(lis)
}
