package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/graphplot/pkg/errors"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = (%v, %v, %v), want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKey(t *testing.T) {
	k1 := NewKey("heatmap").Add("cmap", "RdBu_r").String()
	if k1 != NewKey("heatmap").Add("cmap", "RdBu_r").String() {
		t.Error("keys should be deterministic")
	}
	if !strings.HasPrefix(k1, "heatmap:") || len(k1) != len("heatmap:")+64 {
		t.Errorf("unexpected key shape %q", k1)
	}

	tests := []struct {
		name string
		key  string
	}{
		{"Kind", NewKey("gridplot").Add("cmap", "RdBu_r").String()},
		{"Value", NewKey("heatmap").Add("cmap", "coolwarm").String()},
		{"Boundary", NewKey("heatmap").Add("cma", "pRdBu_r").String()},
		{"Extra", NewKey("heatmap").Add("cmap", "RdBu_r").Add("dpi", "").String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == k1 {
				t.Errorf("key %q should differ from %q", tt.key, k1)
			}
		})
	}
}

func TestKeyAddFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.csv")
	keyOf := func() string {
		t.Helper()
		k := NewKey("heatmap")
		if err := k.AddFile("input", path); err != nil {
			t.Fatalf("AddFile: %v", err)
		}
		return k.String()
	}

	if err := os.WriteFile(path, []byte("0,1\n1,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	before := keyOf()
	if err := os.WriteFile(path, []byte("0,2\n2,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if keyOf() == before {
		t.Error("changing file contents should change the key")
	}

	err := NewKey("heatmap").AddFile("input", filepath.Join(t.TempDir(), "missing.csv"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "artifacts"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "heatmap:a"); hit || err != nil {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "heatmap:a", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "heatmap:a")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get = (%q, %v, %v), want hit", data, hit, err)
	}

	if err := c.Delete(ctx, "heatmap:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "heatmap:a"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "heatmap:a"); err != nil {
		t.Errorf("deleting a missing entry: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("old"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}

	if err := c.Set(ctx, "k", []byte("forever"), 0); err != nil {
		t.Fatal(err)
	}
	if data, hit, _ := c.Get(ctx, "k"); !hit || string(data) != "forever" {
		t.Error("entries without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want silent miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestDefaultDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	t.Setenv("HOME", base)

	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir: %v", err)
	}
	if !strings.HasPrefix(dir, base) || !strings.HasSuffix(dir, filepath.Join("graphplot", "artifacts")) {
		t.Errorf("DefaultDir = %q, want graphplot/artifacts below %q", dir, base)
	}
}
