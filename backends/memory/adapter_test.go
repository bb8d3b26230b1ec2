package memory

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/ebogdum/driftfs/object"
)

func TestWriteReadRoundTrip(t *testing.T) {
	a := New()
	ctx := context.Background()

	content := []byte("Hello, world!")
	if err := a.Write(ctx, "test_write.txt", content); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := a.Read(ctx, "test_write.txt")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(got.Bytes(), content) {
		t.Errorf("read returned %q, want %q", got, content)
	}

	// Mutating the returned buffer must not affect the stored content.
	got[0] = 'X'
	again, err := a.Read(ctx, "test_write.txt")
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if !bytes.Equal(again.Bytes(), content) {
		t.Errorf("stored content changed after caller mutation: %q", again)
	}
}

func TestFileExists(t *testing.T) {
	a := New()
	ctx := context.Background()

	exists, err := a.FileExists(ctx, "test_file_exists.txt")
	if err != nil {
		t.Fatalf("file exists check failed: %v", err)
	}
	if exists {
		t.Error("file should not exist before write")
	}

	if err := a.Write(ctx, "test_file_exists.txt", []byte("Hello, world!")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	exists, err = a.FileExists(ctx, "test_file_exists.txt")
	if err != nil {
		t.Fatalf("file exists check failed: %v", err)
	}
	if !exists {
		t.Error("file should exist after write")
	}

	// A written path is a file, never a directory.
	isDir, err := a.DirectoryExists(ctx, "test_file_exists.txt")
	if err != nil {
		t.Fatalf("directory exists check failed: %v", err)
	}
	if isDir {
		t.Error("file path must not satisfy the directory predicate")
	}
}

func TestWriteCreatesAncestors(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "a/b/c/file.txt", []byte("x")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	for _, dir := range []string{"a", "a/b", "a/b/c"} {
		exists, err := a.DirectoryExists(ctx, dir)
		if err != nil {
			t.Fatalf("directory exists check failed for %q: %v", dir, err)
		}
		if !exists {
			t.Errorf("ancestor directory %q should exist after write", dir)
		}
	}
}

func TestDelete(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "test_delete.txt", []byte("Hello, world!")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := a.Delete(ctx, "test_delete.txt"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err := a.FileExists(ctx, "test_delete.txt")
	if err != nil {
		t.Fatalf("file exists check failed: %v", err)
	}
	if exists {
		t.Error("file should not exist after delete")
	}

	if err := a.Delete(ctx, "test_delete.txt"); !errors.Is(err, object.ErrNotFound) {
		t.Errorf("deleting an absent file should fail with ErrNotFound, got %v", err)
	}
}

func TestDeleteKeepsEmptiedParent(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "dir/only.txt", []byte("x")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := a.Delete(ctx, "dir/only.txt"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err := a.DirectoryExists(ctx, "dir")
	if err != nil {
		t.Fatalf("directory exists check failed: %v", err)
	}
	if !exists {
		t.Error("emptied parent directory should continue to exist")
	}

	listed, err := a.ListContents(ctx, "dir", false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("emptied directory should list no files, got %v", listed)
	}
}

func TestCreateDirectoryIdempotent(t *testing.T) {
	a := New()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := a.CreateDirectory(ctx, "test_create_directory"); err != nil {
			t.Fatalf("create directory call %d failed: %v", i+1, err)
		}

		exists, err := a.DirectoryExists(ctx, "test_create_directory")
		if err != nil {
			t.Fatalf("directory exists check failed: %v", err)
		}
		if !exists {
			t.Errorf("directory should exist after create call %d", i+1)
		}
	}
}

func TestCreateDirectoryWithParents(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.CreateDirectory(ctx, "parents/nested/dir"); err != nil {
		t.Fatalf("create directory failed: %v", err)
	}

	for _, dir := range []string{"parents", "parents/nested", "parents/nested/dir"} {
		exists, err := a.DirectoryExists(ctx, dir)
		if err != nil {
			t.Fatalf("directory exists check failed for %q: %v", dir, err)
		}
		if !exists {
			t.Errorf("directory %q should exist after deep create", dir)
		}
	}
}

func TestDeleteDirectoryCascades(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "tree/a.txt", []byte("a")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := a.Write(ctx, "tree/sub/b.txt", []byte("b")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := a.CreateDirectory(ctx, "tree/empty"); err != nil {
		t.Fatalf("create directory failed: %v", err)
	}

	if err := a.DeleteDirectory(ctx, "tree"); err != nil {
		t.Fatalf("delete directory failed: %v", err)
	}

	for _, dir := range []string{"tree", "tree/sub", "tree/empty"} {
		exists, err := a.DirectoryExists(ctx, dir)
		if err != nil {
			t.Fatalf("directory exists check failed for %q: %v", dir, err)
		}
		if exists {
			t.Errorf("directory %q should not survive a deleted ancestor", dir)
		}
	}

	for _, file := range []string{"tree/a.txt", "tree/sub/b.txt"} {
		exists, err := a.FileExists(ctx, file)
		if err != nil {
			t.Fatalf("file exists check failed for %q: %v", file, err)
		}
		if exists {
			t.Errorf("file %q should not survive a deleted ancestor", file)
		}
	}

	if err := a.DeleteDirectory(ctx, "tree"); !errors.Is(err, object.ErrNotFound) {
		t.Errorf("deleting an absent directory should fail with ErrNotFound, got %v", err)
	}
}

func TestVisibilityRoundTrip(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "test_visibility.txt", nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	vis, err := a.Visibility(ctx, "test_visibility.txt")
	if err != nil {
		t.Fatalf("visibility failed: %v", err)
	}
	if vis != object.Public {
		t.Errorf("default visibility = %v, want Public", vis)
	}

	if err := a.SetVisibility(ctx, "test_visibility.txt", object.Private); err != nil {
		t.Fatalf("set visibility failed: %v", err)
	}

	vis, err = a.Visibility(ctx, "test_visibility.txt")
	if err != nil {
		t.Fatalf("visibility failed: %v", err)
	}
	if vis != object.Private {
		t.Errorf("visibility after set = %v, want Private", vis)
	}

	if err := a.SetVisibility(ctx, "absent.txt", object.Private); !errors.Is(err, object.ErrNotFound) {
		t.Errorf("set visibility on absent file should fail with ErrNotFound, got %v", err)
	}
}

func TestMimeType(t *testing.T) {
	a := New()
	ctx := context.Background()

	mt, err := a.MimeType(ctx, "test_mime.txt")
	if err != nil {
		t.Fatalf("mime type failed: %v", err)
	}
	if mt != "text/plain" {
		t.Errorf("mime type = %q, want text/plain", mt)
	}
}

func TestLastModified(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "test_last_modified.txt", nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	mod, err := a.LastModified(ctx, "test_last_modified.txt")
	if err != nil {
		t.Fatalf("last modified failed: %v", err)
	}
	if time.Since(mod) > 5*time.Second {
		t.Errorf("last modified %v is not recent", mod)
	}

	if _, err := a.LastModified(ctx, "absent.txt"); !errors.Is(err, object.ErrNotFound) {
		t.Errorf("last modified on absent file should fail with ErrNotFound, got %v", err)
	}
}

func TestFileSize(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "notes/todo.txt", []byte("buy milk")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	size, err := a.FileSize(ctx, "notes/todo.txt")
	if err != nil {
		t.Fatalf("file size failed: %v", err)
	}
	if size != 8 {
		t.Errorf("file size = %d, want 8", size)
	}
}

func TestListContents(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "d/a.txt", []byte("Hello, world!")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := a.Write(ctx, "d/sub/b.txt", []byte("Hello, world!")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	shallow, err := a.ListContents(ctx, "d", false)
	if err != nil {
		t.Fatalf("shallow list failed: %v", err)
	}
	if !reflect.DeepEqual(shallow, []string{"d/a.txt"}) {
		t.Errorf("shallow list = %v, want [d/a.txt]", shallow)
	}

	deep, err := a.ListContents(ctx, "d", true)
	if err != nil {
		t.Fatalf("deep list failed: %v", err)
	}
	if !reflect.DeepEqual(deep, []string{"d/a.txt", "d/sub/b.txt"}) {
		t.Errorf("deep list = %v, want [d/a.txt d/sub/b.txt]", deep)
	}

	// Repeated calls with no intervening mutation return the same order.
	again, err := a.ListContents(ctx, "d", true)
	if err != nil {
		t.Fatalf("repeated deep list failed: %v", err)
	}
	if !reflect.DeepEqual(deep, again) {
		t.Errorf("deep list order changed across calls: %v then %v", deep, again)
	}

	if _, err := a.ListContents(ctx, "unknown", false); !errors.Is(err, object.ErrNotFound) {
		t.Errorf("listing an unknown directory should fail with ErrNotFound, got %v", err)
	}
}

func TestListContentsNoDuplicatesAfterRewrite(t *testing.T) {
	a := New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := a.Write(ctx, "dup/file.txt", []byte("v")); err != nil {
			t.Fatalf("write %d failed: %v", i+1, err)
		}
	}

	listed, err := a.ListContents(ctx, "dup", false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !reflect.DeepEqual(listed, []string{"dup/file.txt"}) {
		t.Errorf("rewrites must not duplicate child entries, got %v", listed)
	}
}

func TestMove(t *testing.T) {
	a := New()
	ctx := context.Background()

	content := []byte("Hello, world!")
	if err := a.Write(ctx, "test_move.txt", content); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := a.Move(ctx, "test_move.txt", "moved/test_move_destination.txt"); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	srcExists, err := a.FileExists(ctx, "test_move.txt")
	if err != nil {
		t.Fatalf("file exists check failed: %v", err)
	}
	if srcExists {
		t.Error("source should not exist after move")
	}

	got, err := a.Read(ctx, "moved/test_move_destination.txt")
	if err != nil {
		t.Fatalf("read of destination failed: %v", err)
	}
	if !bytes.Equal(got.Bytes(), content) {
		t.Errorf("destination content = %q, want %q", got, content)
	}

	// The copy half failing must leave the destination untouched.
	if err := a.Move(ctx, "absent.txt", "anywhere.txt"); !errors.Is(err, object.ErrNotFound) {
		t.Errorf("moving an absent file should fail with ErrNotFound, got %v", err)
	}
	exists, err := a.FileExists(ctx, "anywhere.txt")
	if err != nil {
		t.Fatalf("file exists check failed: %v", err)
	}
	if exists {
		t.Error("failed move must not create the destination")
	}
}

func TestCopyIndependence(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "test_copy.txt", []byte("Hello, world!")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := a.SetVisibility(ctx, "test_copy.txt", object.Private); err != nil {
		t.Fatalf("set visibility failed: %v", err)
	}

	if err := a.Copy(ctx, "test_copy.txt", "test_copy_destination.txt"); err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	for _, p := range []string{"test_copy.txt", "test_copy_destination.txt"} {
		exists, err := a.FileExists(ctx, p)
		if err != nil {
			t.Fatalf("file exists check failed for %q: %v", p, err)
		}
		if !exists {
			t.Errorf("%q should exist after copy", p)
		}
	}

	// Visibility is duplicated at copy time.
	vis, err := a.Visibility(ctx, "test_copy_destination.txt")
	if err != nil {
		t.Fatalf("visibility failed: %v", err)
	}
	if vis != object.Private {
		t.Errorf("copied visibility = %v, want Private", vis)
	}

	// Mutating the destination afterwards must not touch the source.
	if err := a.SetVisibility(ctx, "test_copy_destination.txt", object.Public); err != nil {
		t.Fatalf("set visibility failed: %v", err)
	}
	vis, err = a.Visibility(ctx, "test_copy.txt")
	if err != nil {
		t.Fatalf("visibility failed: %v", err)
	}
	if vis != object.Private {
		t.Errorf("source visibility changed by destination mutation: %v", vis)
	}
}

func TestChecksum(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "test_checksum.txt", []byte("Hello, world!")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	first, err := a.Checksum(ctx, "test_checksum.txt")
	if err != nil {
		t.Fatalf("checksum failed: %v", err)
	}
	if first != "315f5bdb76d078c43b8ac0064e4a0164612b1fce77c869345bfc94c75894edd3" {
		t.Errorf("unexpected checksum %q", first)
	}

	second, err := a.Checksum(ctx, "test_checksum.txt")
	if err != nil {
		t.Fatalf("checksum failed: %v", err)
	}
	if first != second {
		t.Errorf("checksum unstable without intervening writes: %q then %q", first, second)
	}

	if err := a.Write(ctx, "test_checksum.txt", []byte("Goodbye, world!")); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	changed, err := a.Checksum(ctx, "test_checksum.txt")
	if err != nil {
		t.Fatalf("checksum failed: %v", err)
	}
	if changed == first {
		t.Error("checksum did not change after rewriting different content")
	}
}

func TestInvalidPaths(t *testing.T) {
	a := New()
	ctx := context.Background()

	for _, p := range []string{"../escape.txt", "/abs.txt", "bad\x00name"} {
		if err := a.Write(ctx, p, []byte("x")); !errors.Is(err, object.ErrInvalidPath) {
			t.Errorf("write to %q should fail with ErrInvalidPath, got %v", p, err)
		}
		if _, err := a.Read(ctx, p); !errors.Is(err, object.ErrInvalidPath) {
			t.Errorf("read of %q should fail with ErrInvalidPath, got %v", p, err)
		}
	}
}

func TestConcreteScenario(t *testing.T) {
	a := New()
	ctx := context.Background()

	if err := a.Write(ctx, "notes/todo.txt", []byte("buy milk")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	size, err := a.FileSize(ctx, "notes/todo.txt")
	if err != nil {
		t.Fatalf("file size failed: %v", err)
	}
	if size != 8 {
		t.Errorf("file size = %d, want 8", size)
	}

	mt, err := a.MimeType(ctx, "notes/todo.txt")
	if err != nil {
		t.Fatalf("mime type failed: %v", err)
	}
	if mt != "text/plain" {
		t.Errorf("mime type = %q, want text/plain", mt)
	}

	listed, err := a.ListContents(ctx, "notes", false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !reflect.DeepEqual(listed, []string{"notes/todo.txt"}) {
		t.Errorf("list = %v, want [notes/todo.txt]", listed)
	}

	if err := a.Delete(ctx, "notes/todo.txt"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err := a.FileExists(ctx, "notes/todo.txt")
	if err != nil {
		t.Fatalf("file exists check failed: %v", err)
	}
	if exists {
		t.Error("file should not exist after delete")
	}
}

func TestConcurrentWrites(t *testing.T) {
	a := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			path := "concurrent/file" + string(rune('a'+n)) + ".txt"
			if err := a.Write(ctx, path, []byte("x")); err != nil {
				t.Errorf("concurrent write failed: %v", err)
			}
			if _, err := a.ListContents(ctx, "concurrent", true); err != nil {
				t.Errorf("concurrent list failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	listed, err := a.ListContents(ctx, "concurrent", false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 16 {
		t.Errorf("expected 16 files after concurrent writes, got %d", len(listed))
	}
}
