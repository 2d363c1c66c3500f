package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubHandler struct {
	name  string
	resp  Response
	err   error
	panic bool
	calls int
}

func (s *stubHandler) Process(context.Context, string, map[string]any) (Response, error) {
	s.calls++
	if s.panic {
		panic("boom")
	}
	return s.resp, s.err
}

func newTestRouter() (*Router, *stubHandler, *stubHandler, *stubHandler) {
	dashboard := &stubHandler{name: "dashboard", resp: Response{ResponseMessage: "from dashboard"}}
	settings := &stubHandler{name: "settings", resp: Response{GeneralResponse: "from settings"}}
	extension := &stubHandler{name: "extension", resp: Response{ResponseMessage: "from extension"}}
	return NewRouter(dashboard, settings, extension, zap.NewNop()), dashboard, settings, extension
}

func TestDispatchSelectsByPage(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		want     string
	}{
		{name: "settings page", metadata: map[string]any{"page": "settings"}, want: "settings"},
		{name: "extension page", metadata: map[string]any{"page": "extension"}, want: "extension"},
		{name: "dashboard page", metadata: map[string]any{"page": "dashboard"}, want: "dashboard"},
		{name: "unknown page", metadata: map[string]any{"page": "checkout"}, want: "dashboard"},
		{name: "missing page", metadata: map[string]any{}, want: "dashboard"},
		{name: "nil metadata", metadata: nil, want: "dashboard"},
		{name: "page wrong type", metadata: map[string]any{"page": 3}, want: "dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, dashboard, settings, extension := newTestRouter()
			r.Dispatch(context.Background(), "hello", nil, tt.metadata)

			byName := map[string]*stubHandler{
				"dashboard": dashboard,
				"settings":  settings,
				"extension": extension,
			}
			for name, h := range byName {
				wantCalls := 0
				if name == tt.want {
					wantCalls = 1
				}
				assert.Equal(t, wantCalls, h.calls, "handler %s", name)
			}
		})
	}
}

func TestDispatchDegradesOnHandlerError(t *testing.T) {
	r, dashboard, _, _ := newTestRouter()
	dashboard.err = errors.New("engine exploded")

	got := r.Dispatch(context.Background(), "hello", nil, nil)
	assert.Equal(t, Response{ResponseMessage: ErrorResponseMessage}, got)
}

func TestDispatchDegradesOnPanic(t *testing.T) {
	r, dashboard, _, _ := newTestRouter()
	dashboard.panic = true

	got := r.Dispatch(context.Background(), "hello", nil, nil)
	assert.Equal(t, Response{ResponseMessage: ErrorResponseMessage}, got)
}
