package instrumented

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ebogdum/driftfs/backends"
	"github.com/ebogdum/driftfs/backends/memory"
	"github.com/ebogdum/driftfs/metrics"
	"github.com/ebogdum/driftfs/object"
)

func TestWrapRecordsOperations(t *testing.T) {
	a := Wrap(memory.New(), "memory-instrumented-test")
	ctx := context.Background()

	opsBefore := testutil.ToFloat64(metrics.AdapterOpsTotal.WithLabelValues("memory-instrumented-test", "write"))
	errsBefore := testutil.ToFloat64(metrics.AdapterOpErrorsTotal.WithLabelValues("memory-instrumented-test", "read"))

	if err := a.Write(ctx, "file.txt", []byte("x")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := a.Read(ctx, "absent.txt"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	opsAfter := testutil.ToFloat64(metrics.AdapterOpsTotal.WithLabelValues("memory-instrumented-test", "write"))
	if opsAfter != opsBefore+1 {
		t.Errorf("write op count = %v, want %v", opsAfter, opsBefore+1)
	}

	errsAfter := testutil.ToFloat64(metrics.AdapterOpErrorsTotal.WithLabelValues("memory-instrumented-test", "read"))
	if errsAfter != errsBefore+1 {
		t.Errorf("read error count = %v, want %v", errsAfter, errsBefore+1)
	}
}

func TestWrapPreservesSemantics(t *testing.T) {
	a := Wrap(memory.New(), "memory-semantics-test")
	ctx := context.Background()

	if err := a.Write(ctx, "notes/todo.txt", []byte("buy milk")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := a.Read(ctx, "notes/todo.txt")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if text, err := got.Text(); err != nil || text != "buy milk" {
		t.Errorf("read returned %q (err %v), want buy milk", text, err)
	}
}

func TestWrapWithoutURLCapabilities(t *testing.T) {
	// The memory backend implements neither URL capability.
	var a backends.Adapter = Wrap(memory.New(), "memory-url-test")
	ctx := context.Background()

	gen, ok := a.(backends.TemporaryURLGenerator)
	if !ok {
		t.Fatal("wrapper should satisfy the capability interface")
	}
	if _, err := gen.TemporaryURL(ctx, "file.txt", 0); !errors.Is(err, object.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from inner adapter without the capability, got %v", err)
	}

	pub, ok := a.(backends.PublicURLGenerator)
	if !ok {
		t.Fatal("wrapper should satisfy the capability interface")
	}
	if _, err := pub.PublicURL(ctx, "file.txt"); !errors.Is(err, object.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from inner adapter without the capability, got %v", err)
	}
}
