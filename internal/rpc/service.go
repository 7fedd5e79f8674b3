package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/reflectrpteam/luau/internal/frontend"
)

// CheckRequest/CheckResponse, MarkDirtyRequest/MarkDirtyResponse are
// the JSON-over-gRPC wire shapes this service exchanges (see codec.go)
// — RequestID round-trips spec.md §9.5's correlation ID back to the
// caller even though the transport already assigns its own per-call
// identity, since a caller may fan out several Checks concurrently and
// needs to match each response to the Frontend request that produced
// it, not just the RPC call that carried it.
type CheckRequest struct {
	Module string `json:"module"`
	Strict bool   `json:"strict"`
}

type CheckResponse struct {
	RequestID string   `json:"request_id"`
	Errors    []string `json:"errors"`
}

type MarkDirtyRequest struct {
	Module string `json:"module"`
}

type MarkDirtyResponse struct{}

type CheckAllRequest struct {
	Strict bool `json:"strict"`
}

type CheckAllResponse struct {
	Results []CheckResponse `json:"results"`
}

// Service adapts a *frontend.Frontend to the hand-rolled ServiceDesc
// below; its methods are plain Go, called directly by the generated
// (here: hand-written, see codec.go) unary handlers.
type Service struct {
	Frontend *frontend.Frontend
}

func (s *Service) check(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	view := frontend.ViewNormal
	if req.Strict {
		view = frontend.ViewStrict
	}
	request := frontend.NewRequest(req.Module, view)
	if s.Frontend.Logger != nil {
		s.Frontend.Logger.Printf("rpc: Check %q (request %s)", req.Module, request.ID)
	}
	result, err := s.Frontend.Check(request)
	if err != nil {
		return nil, err
	}
	return &CheckResponse{RequestID: result.Request.ID, Errors: errorStrings(result)}, nil
}

func (s *Service) markDirty(ctx context.Context, req *MarkDirtyRequest) (*MarkDirtyResponse, error) {
	// Frontend.MarkDirty logs this itself; no separate rpc-layer line
	// needed here.
	s.Frontend.MarkDirty(req.Module)
	return &MarkDirtyResponse{}, nil
}

func (s *Service) checkAll(ctx context.Context, req *CheckAllRequest) (*CheckAllResponse, error) {
	view := frontend.ViewNormal
	if req.Strict {
		view = frontend.ViewStrict
	}
	if s.Frontend.Logger != nil {
		s.Frontend.Logger.Printf("rpc: CheckAll (strict=%v)", req.Strict)
	}
	results := s.Frontend.CheckAll(view)
	out := make([]CheckResponse, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		out = append(out, CheckResponse{RequestID: r.Request.ID, Errors: errorStrings(r)})
	}
	return &CheckAllResponse{Results: out}, nil
}

func errorStrings(r *frontend.Result) []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Error()
	}
	return out
}

// ServiceDesc is a hand-written grpc.ServiceDesc: there is no .proto
// file behind it (see package doc), so each MethodDesc's Handler does
// exactly what protoc-gen-go-grpc's generated code would, just
// written out directly — decode the request via dec, call the
// matching Service method, return its response for the codec (jsonCodec)
// to marshal.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "luaucheck.Frontend",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Check",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				req := new(CheckRequest)
				if err := dec(req); err != nil {
					return nil, err
				}
				svc := srv.(*Service)
				if interceptor == nil {
					return svc.check(ctx, req)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/luaucheck.Frontend/Check"}
				handler := func(ctx context.Context, req interface{}) (interface{}, error) {
					return svc.check(ctx, req.(*CheckRequest))
				}
				return interceptor(ctx, req, info, handler)
			},
		},
		{
			MethodName: "MarkDirty",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				req := new(MarkDirtyRequest)
				if err := dec(req); err != nil {
					return nil, err
				}
				svc := srv.(*Service)
				if interceptor == nil {
					return svc.markDirty(ctx, req)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/luaucheck.Frontend/MarkDirty"}
				handler := func(ctx context.Context, req interface{}) (interface{}, error) {
					return svc.markDirty(ctx, req.(*MarkDirtyRequest))
				}
				return interceptor(ctx, req, info, handler)
			},
		},
		{
			MethodName: "CheckAll",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				req := new(CheckAllRequest)
				if err := dec(req); err != nil {
					return nil, err
				}
				svc := srv.(*Service)
				if interceptor == nil {
					return svc.checkAll(ctx, req)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/luaucheck.Frontend/CheckAll"}
				handler := func(ctx context.Context, req interface{}) (interface{}, error) {
					return svc.checkAll(ctx, req.(*CheckAllRequest))
				}
				return interceptor(ctx, req, info, handler)
			},
		},
	},
	Metadata: "luaucheck.proto",
}
