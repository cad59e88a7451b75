package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o770); err != nil {
		t.Fatal(err)
	}

	// without a .git entry the start directory is the root
	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != nested {
		t.Errorf("got %s, want %s", got, nested)
	}

	if err = os.Mkdir(filepath.Join(root, ".git"), 0o770); err != nil {
		t.Fatal(err)
	}
	got, err = FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != root {
		t.Errorf("got %s, want %s", got, root)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "librpc_example.so")
	dest := filepath.Join(dir, "out.so")

	if err := os.WriteFile(src, []byte("native"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dest, []byte("previous content that is longer"), 0o640); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dest); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "native" {
		t.Errorf("dest = %q", data)
	}

	if err := CopyFile(filepath.Join(dir, "missing"), dest); err == nil {
		t.Error("expected an error for a missing source")
	}
	if err := CopyFile(dir, dest); err == nil {
		t.Error("expected an error when copying a directory")
	}
}

func TestRemovePath(t *testing.T) {
	dir := t.TempDir()
	tree := filepath.Join(dir, "uniffi")
	if err := os.MkdirAll(filepath.Join(tree, "rpc_example"), 0o770); err != nil {
		t.Fatal(err)
	}

	if err := RemovePath(tree); err != nil {
		t.Fatal(err)
	}
	if ok, _ := FileExists(tree); ok {
		t.Error("tree still exists")
	}
	if err := RemovePath(tree); err != nil {
		t.Errorf("removing a missing path failed: %v", err)
	}
}

func TestPrintTaskHonoursNoColor(t *testing.T) {
	buf := new(bytes.Buffer)
	output = buf
	defer func() { output = os.Stdout }()

	t.Setenv("NO_COLOR", "1")
	PrintTask("Building library")
	PrintError("Building library failed")

	want := "==> Building library\n  -> Building library failed\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	t.Setenv("NO_COLOR", "")
	PrintSubtask("cargo")
	if !bytes.Contains(buf.Bytes(), []byte("\033[")) {
		t.Errorf("expected color codes without NO_COLOR, got %q", buf.String())
	}
}
