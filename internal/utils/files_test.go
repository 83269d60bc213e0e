package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileReplaces(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.md")
	if err := SafeWriteFile(p, []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := SafeWriteFile(p, []byte("two")); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "two" {
		t.Fatalf("content = %q", b)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"mice": 248})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"mice\": 248\n}\n" {
		t.Fatalf("got %q", b)
	}
	if _, err := PrettyJSON(func() {}); err == nil {
		t.Fatalf("expected error for unmarshalable value")
	}
}

func TestFindBundleRoot(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "figures", "png")
	if err := EnsureDir(deep); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, BundleManifest), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(deep, "bar.png")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	for _, start := range []string{root, deep, file} {
		got, err := FindBundleRoot(start)
		if err != nil {
			t.Fatalf("FindBundleRoot(%s): %v", start, err)
		}
		if got != root {
			t.Fatalf("FindBundleRoot(%s) = %s, want %s", start, got, root)
		}
	}
}

func TestFindBundleRootMissing(t *testing.T) {
	_, err := FindBundleRoot(t.TempDir())
	if !errors.Is(err, ErrNoBundle) {
		t.Fatalf("err = %v, want ErrNoBundle", err)
	}
}
