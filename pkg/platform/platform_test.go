package platform

import (
	"testing"

	"github.com/rotisserie/eris"
)

func TestLibExtension(t *testing.T) {
	cases := []struct {
		goos string
		want string
	}{
		{"darwin", "dylib"},
		{"linux", "so"},
		{"windows", "dll"},
		{"Windows", "dll"},
		{"LINUX", "so"},
	}
	for _, c := range cases {
		got, err := LibExtension(c.goos)
		if err != nil {
			t.Fatalf("LibExtension(%q) error: %v", c.goos, err)
		}
		if got != c.want {
			t.Errorf("LibExtension(%q) = %q, want %q", c.goos, got, c.want)
		}
	}
}

func TestLibExtensionUnsupported(t *testing.T) {
	for _, goos := range []string{"freebsd", "plan9", "", "js"} {
		got, err := LibExtension(goos)
		if err == nil {
			t.Fatalf("LibExtension(%q) = %q, expected an error", goos, got)
		}
		if got != "" {
			t.Errorf("LibExtension(%q) returned a value alongside the error: %q", goos, got)
		}
		if !eris.Is(err, ErrUnsupportedOS) {
			t.Errorf("LibExtension(%q) error %v is not ErrUnsupportedOS", goos, err)
		}
	}
}

func TestLibFileName(t *testing.T) {
	cases := []struct {
		goos string
		want string
	}{
		{"darwin", "librpc_example.dylib"},
		{"linux", "librpc_example.so"},
		{"windows", "rpc_example.dll"},
	}
	for _, c := range cases {
		p, err := Resolve(c.goos)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.LibFileName("rpc_example"); got != c.want {
			t.Errorf("%s: LibFileName = %q, want %q", c.goos, got, c.want)
		}
	}
}

func TestJoinList(t *testing.T) {
	win, _ := Resolve("windows")
	if got := win.JoinList("a.jar", "", "b.jar"); got != "a.jar;b.jar" {
		t.Errorf("windows JoinList = %q", got)
	}

	linux, _ := Resolve("linux")
	if got := linux.JoinList("a.jar", "b.jar", "dir"); got != "a.jar:b.jar:dir" {
		t.Errorf("linux JoinList = %q", got)
	}
	if linux.Kotlinc != "kotlinc" || win.Kotlinc != "kotlinc.bat" {
		t.Errorf("unexpected compiler names %q / %q", linux.Kotlinc, win.Kotlinc)
	}
}
