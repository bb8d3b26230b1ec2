// Package instrumented decorates any backends.Adapter with Prometheus
// instrumentation: per-operation counts, failure counts, and latency.
package instrumented

import (
	"context"
	"time"

	"github.com/ebogdum/driftfs/backends"
	"github.com/ebogdum/driftfs/metrics"
	"github.com/ebogdum/driftfs/object"
)

// Adapter wraps another adapter and records metrics for every call. It
// also satisfies both optional URL capabilities, delegating to the inner
// adapter when it supports them and failing with object.ErrUnsupported
// when it does not, so the wrapper is transparent to capability checks.
type Adapter struct {
	inner   backends.Adapter
	backend string
}

// Wrap decorates inner with metrics recorded under the given backend label.
func Wrap(inner backends.Adapter, backend string) *Adapter {
	return &Adapter{
		inner:   inner,
		backend: backend,
	}
}

// observe records one finished operation.
func (a *Adapter) observe(operation string, start time.Time, err error) {
	metrics.AdapterOpsTotal.WithLabelValues(a.backend, operation).Inc()
	metrics.AdapterOpDuration.WithLabelValues(a.backend, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AdapterOpErrorsTotal.WithLabelValues(a.backend, operation).Inc()
	}
}

func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	start := time.Now()
	exists, err := a.inner.FileExists(ctx, path)
	a.observe("file_exists", start, err)
	return exists, err
}

func (a *Adapter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	start := time.Now()
	exists, err := a.inner.DirectoryExists(ctx, path)
	a.observe("directory_exists", start, err)
	return exists, err
}

func (a *Adapter) Write(ctx context.Context, path string, content []byte) error {
	start := time.Now()
	err := a.inner.Write(ctx, path, content)
	a.observe("write", start, err)
	return err
}

func (a *Adapter) Read(ctx context.Context, path string) (object.Contents, error) {
	start := time.Now()
	contents, err := a.inner.Read(ctx, path)
	a.observe("read", start, err)
	return contents, err
}

func (a *Adapter) Delete(ctx context.Context, path string) error {
	start := time.Now()
	err := a.inner.Delete(ctx, path)
	a.observe("delete", start, err)
	return err
}

func (a *Adapter) DeleteDirectory(ctx context.Context, path string) error {
	start := time.Now()
	err := a.inner.DeleteDirectory(ctx, path)
	a.observe("delete_directory", start, err)
	return err
}

func (a *Adapter) CreateDirectory(ctx context.Context, path string) error {
	start := time.Now()
	err := a.inner.CreateDirectory(ctx, path)
	a.observe("create_directory", start, err)
	return err
}

func (a *Adapter) SetVisibility(ctx context.Context, path string, visibility object.Visibility) error {
	start := time.Now()
	err := a.inner.SetVisibility(ctx, path, visibility)
	a.observe("set_visibility", start, err)
	return err
}

func (a *Adapter) Visibility(ctx context.Context, path string) (object.Visibility, error) {
	start := time.Now()
	visibility, err := a.inner.Visibility(ctx, path)
	a.observe("visibility", start, err)
	return visibility, err
}

func (a *Adapter) MimeType(ctx context.Context, path string) (string, error) {
	start := time.Now()
	mimeType, err := a.inner.MimeType(ctx, path)
	a.observe("mime_type", start, err)
	return mimeType, err
}

func (a *Adapter) LastModified(ctx context.Context, path string) (time.Time, error) {
	start := time.Now()
	modified, err := a.inner.LastModified(ctx, path)
	a.observe("last_modified", start, err)
	return modified, err
}

func (a *Adapter) FileSize(ctx context.Context, path string) (int64, error) {
	start := time.Now()
	size, err := a.inner.FileSize(ctx, path)
	a.observe("file_size", start, err)
	return size, err
}

func (a *Adapter) ListContents(ctx context.Context, path string, deep bool) ([]string, error) {
	start := time.Now()
	paths, err := a.inner.ListContents(ctx, path, deep)
	a.observe("list_contents", start, err)
	return paths, err
}

func (a *Adapter) Move(ctx context.Context, source, destination string) error {
	start := time.Now()
	err := a.inner.Move(ctx, source, destination)
	a.observe("move", start, err)
	return err
}

func (a *Adapter) Copy(ctx context.Context, source, destination string) error {
	start := time.Now()
	err := a.inner.Copy(ctx, source, destination)
	a.observe("copy", start, err)
	return err
}

func (a *Adapter) Checksum(ctx context.Context, path string) (string, error) {
	start := time.Now()
	sum, err := a.inner.Checksum(ctx, path)
	a.observe("checksum", start, err)
	return sum, err
}

// PublicURL delegates to the inner adapter's capability when present.
func (a *Adapter) PublicURL(ctx context.Context, path string) (string, error) {
	gen, ok := a.inner.(backends.PublicURLGenerator)
	if !ok {
		return "", object.ErrUnsupported
	}

	start := time.Now()
	url, err := gen.PublicURL(ctx, path)
	a.observe("public_url", start, err)
	return url, err
}

// TemporaryURL delegates to the inner adapter's capability when present.
func (a *Adapter) TemporaryURL(ctx context.Context, path string, expiresIn time.Duration) (string, error) {
	gen, ok := a.inner.(backends.TemporaryURLGenerator)
	if !ok {
		return "", object.ErrUnsupported
	}

	start := time.Now()
	url, err := gen.TemporaryURL(ctx, path, expiresIn)
	a.observe("temporary_url", start, err)
	return url, err
}
