package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/ngld/ktbind/pkg/platform"
)

func TestLayoutPaths(t *testing.T) {
	m, _ := DefaultManifest()
	root := filepath.FromSlash("/work/project")

	cases := []struct {
		goos      string
		lib       string
		classpath string
	}{
		{platform.OSLinux, "librpc_example.so", "/work/project/rpc_example/kotlin/vendor/jna.jar:/work/project/rpc_example/kotlin/vendor/kotlinx-coroutines.jar"},
		{platform.OSDarwin, "librpc_example.dylib", "/work/project/rpc_example/kotlin/vendor/jna.jar:/work/project/rpc_example/kotlin/vendor/kotlinx-coroutines.jar"},
		{platform.OSWindows, "rpc_example.dll", "/work/project/rpc_example/kotlin/vendor/jna.jar;/work/project/rpc_example/kotlin/vendor/kotlinx-coroutines.jar"},
	}

	for _, c := range cases {
		t.Run(c.goos, func(t *testing.T) {
			p, err := platform.Resolve(c.goos)
			if err != nil {
				t.Fatal(err)
			}
			l := NewLayout(root, p, m, "")

			if l.BuiltLib != filepath.Join(root, "target", "release", c.lib) {
				t.Errorf("BuiltLib = %s", l.BuiltLib)
			}
			if l.CopiedLib != filepath.Join(root, "rpc_example", "kotlin", c.lib) {
				t.Errorf("CopiedLib = %s", l.CopiedLib)
			}
			if filepath.ToSlash(l.Classpath) != c.classpath {
				t.Errorf("Classpath = %s, want %s", l.Classpath, c.classpath)
			}
		})
	}
}

func TestLayoutFixedPaths(t *testing.T) {
	m, _ := DefaultManifest()
	p, _ := platform.Resolve(platform.OSLinux)
	l := NewLayout("/src", p, m, "")

	want := map[string]string{
		"BindingSource": "/src/rpc_example/kotlin/uniffi/rpc_example/rpc_example.kt",
		"Jar":           "/src/rpc_example/kotlin/rpc_example.jar",
		"TestScript":    "/src/rpc_example/tests/blocking_test.kts",
		"GeneratedDir":  "/src/rpc_example/kotlin/uniffi",
		"LegacyDir":     "/src/rpc_example/kotlin/rpc_example",
	}
	got := map[string]string{
		"BindingSource": l.BindingSource,
		"Jar":           l.Jar,
		"TestScript":    l.TestScript("blocking"),
		"GeneratedDir":  l.GeneratedDir,
		"LegacyDir":     l.LegacyDir,
	}
	for key, value := range want {
		if filepath.ToSlash(got[key]) != value {
			t.Errorf("%s = %s, want %s", key, got[key], value)
		}
	}

	tcp := l.TestClasspath()
	if tcp != l.Classpath+":"+l.Jar+":"+l.OutDir {
		t.Errorf("TestClasspath = %s", tcp)
	}
}
