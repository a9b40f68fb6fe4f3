package observability

import (
	"context"
	"testing"
	"time"
)

type recordingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	NoopHTTPHooks
	renders []string
	hits    int
	routes  []string
}

func (r *recordingHooks) OnRender(_ context.Context, output, format string, _ time.Duration, _ error) {
	r.renders = append(r.renders, output+"."+format)
}

func (r *recordingHooks) OnCacheHit(context.Context, string) { r.hits++ }

func (r *recordingHooks) OnResponse(_ context.Context, method, route string, _ int, _ time.Duration) {
	r.routes = append(r.routes, method+" "+route)
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, []string{"toc"})
	p.OnBuildComplete(ctx, []string{"toc"}, 42, time.Second, nil)
	p.OnRender(ctx, "graph", "svg", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "graph.svg")
	c.OnCacheMiss(ctx, "graph.svg")
	c.OnCacheSet(ctx, "graph.svg", 1024)

	NoopHTTPHooks{}.OnResponse(ctx, "POST", "/v1/toc", 200, time.Second)
}

func TestRegisteredHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)
	SetHTTPHooks(rec)

	ctx := context.Background()
	Pipeline().OnRender(ctx, "graph", "dot", time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "graph.dot")
	HTTP().OnResponse(ctx, "POST", "/v1/graph", 200, time.Millisecond)

	if len(rec.renders) != 1 || rec.renders[0] != "graph.dot" {
		t.Errorf("renders = %v, want [graph.dot]", rec.renders)
	}
	if rec.hits != 1 {
		t.Errorf("hits = %d, want 1", rec.hits)
	}
	if len(rec.routes) != 1 || rec.routes[0] != "POST /v1/graph" {
		t.Errorf("routes = %v, want [POST /v1/graph]", rec.routes)
	}
}

func TestResetRestoresNoop(t *testing.T) {
	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)
	SetHTTPHooks(rec)
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T after Reset, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T after Reset, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T after Reset, want NoopHTTPHooks", HTTP())
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)

	if Pipeline() != PipelineHooks(rec) {
		t.Errorf("Pipeline() = %T, want the hooks set before nil", Pipeline())
	}
}
