package rpc

import (
	"context"
	"testing"

	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/config"
	"github.com/reflectrpteam/luau/internal/frontend"
)

func callHandler(t *testing.T, svc *Service, method string, req interface{}) interface{} {
	t.Helper()
	for _, m := range ServiceDesc.Methods {
		if m.MethodName != method {
			continue
		}
		resp, err := m.Handler(svc, context.Background(), func(v interface{}) error {
			switch dst := v.(type) {
			case *CheckRequest:
				*dst = *req.(*CheckRequest)
			case *MarkDirtyRequest:
				*dst = *req.(*MarkDirtyRequest)
			case *CheckAllRequest:
				*dst = *req.(*CheckAllRequest)
			}
			return nil
		}, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		return resp
	}
	t.Fatalf("no method %q in ServiceDesc", method)
	return nil
}

func TestServiceCheckCleanModuleHasNoErrors(t *testing.T) {
	fe := frontend.New(config.FeatureFlags{}, config.DefaultLimits())
	fe.AddSource("a", &ast.Program{Body: &ast.Block{}})
	svc := &Service{Frontend: fe}

	resp := callHandler(t, svc, "Check", &CheckRequest{Module: "a"}).(*CheckResponse)
	if resp.RequestID == "" {
		t.Fatalf("expected a non-empty request id")
	}
	if len(resp.Errors) != 0 {
		t.Fatalf("expected a clean empty module, got %+v", resp.Errors)
	}
}

func TestServiceCheckAfterMarkDirtyGetsFreshRequestID(t *testing.T) {
	fe := frontend.New(config.FeatureFlags{}, config.DefaultLimits())
	fe.AddSource("a", &ast.Program{Body: &ast.Block{}})
	svc := &Service{Frontend: fe}

	first := callHandler(t, svc, "Check", &CheckRequest{Module: "a"}).(*CheckResponse)
	callHandler(t, svc, "MarkDirty", &MarkDirtyRequest{Module: "a"})
	second := callHandler(t, svc, "Check", &CheckRequest{Module: "a"}).(*CheckResponse)

	if first.RequestID == second.RequestID {
		t.Fatalf("expected a fresh request id across two distinct Check calls")
	}
}

func TestServiceCheckAllCoversEveryModule(t *testing.T) {
	fe := frontend.New(config.FeatureFlags{}, config.DefaultLimits())
	fe.AddSource("a", &ast.Program{Body: &ast.Block{}})
	fe.AddSource("b", &ast.Program{Body: &ast.Block{}})
	svc := &Service{Frontend: fe}

	resp := callHandler(t, svc, "CheckAll", &CheckAllRequest{}).(*CheckAllResponse)
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
}

func TestServiceCheckUnknownModuleErrors(t *testing.T) {
	fe := frontend.New(config.FeatureFlags{}, config.DefaultLimits())
	svc := &Service{Frontend: fe}

	for _, m := range ServiceDesc.Methods {
		if m.MethodName != "Check" {
			continue
		}
		_, err := m.Handler(svc, context.Background(), func(v interface{}) error {
			*v.(*CheckRequest) = CheckRequest{Module: "missing"}
			return nil
		}, nil)
		if err == nil {
			t.Fatalf("expected an error for an unregistered module")
		}
	}
}
