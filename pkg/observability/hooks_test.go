package observability

import (
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	p := NoopPlotHooks{}
	p.OnPlotStart("heatmap", 10)
	p.OnPlotComplete("heatmap", time.Second, nil)
	p.OnEncode("svg", 1024, time.Millisecond, nil)

	io := NoopIOHooks{}
	io.OnRead("adj.csv", "matrix", nil)
	io.OnWrite("out.svg", 1024, errors.New("disk full"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Plot().(NoopPlotHooks); !ok {
		t.Error("Plot() should return NoopPlotHooks by default")
	}
	if _, ok := IO().(NoopIOHooks); !ok {
		t.Error("IO() should return NoopIOHooks by default")
	}

	customPlot := &testPlotHooks{}
	SetPlotHooks(customPlot)
	if Plot() != customPlot {
		t.Error("SetPlotHooks should set custom hooks")
	}

	customIO := &testIOHooks{}
	SetIOHooks(customIO)
	if IO() != customIO {
		t.Error("SetIOHooks should set custom hooks")
	}

	Plot().OnPlotStart("scree", 4)
	if customPlot.started != "scree" {
		t.Errorf("started = %q, want scree", customPlot.started)
	}

	Reset()
	if _, ok := Plot().(NoopPlotHooks); !ok {
		t.Error("Reset() should restore NoopPlotHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPlotHooks{}
	SetPlotHooks(custom)

	// Setting nil should be ignored
	SetPlotHooks(nil)

	if Plot() != custom {
		t.Error("SetPlotHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPlotHooks struct {
	NoopPlotHooks
	started string
}

func (h *testPlotHooks) OnPlotStart(kind string, _ int) { h.started = kind }

type testIOHooks struct{ NoopIOHooks }
