package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// unsetEnv removes the variables for the duration of the test
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "CLASSPATH", "KTBIND_LOG_LEVEL", "KTBIND_LOG_JSON", "KTBIND_DOWNLOADER")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Classpath != "" {
		t.Errorf("Classpath = %q, want empty", cfg.Classpath)
	}
	if cfg.LogLevel != "info" || cfg.ZerologLevel() != zerolog.InfoLevel {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Downloader != DownloaderCurl {
		t.Errorf("Downloader = %q, want curl", cfg.Downloader)
	}
}

func TestLoadClasspathFromEnv(t *testing.T) {
	unsetEnv(t, "KTBIND_LOG_LEVEL", "KTBIND_LOG_JSON", "KTBIND_DOWNLOADER")
	t.Setenv("CLASSPATH", "/opt/jna.jar:/opt/coroutines.jar")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Classpath != "/opt/jna.jar:/opt/coroutines.jar" {
		t.Errorf("Classpath = %q", cfg.Classpath)
	}
}

func TestLoadFromFile(t *testing.T) {
	unsetEnv(t, "CLASSPATH", "KTBIND_LOG_LEVEL", "KTBIND_LOG_JSON", "KTBIND_DOWNLOADER")

	path := filepath.Join(t.TempDir(), "ktbind.toml")
	content := "log_level = \"debug\"\ndownloader = \"http\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.ZerologLevel() != zerolog.DebugLevel {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Downloader != DownloaderHTTP {
		t.Errorf("Downloader = %q, want http", cfg.Downloader)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{LogLevel: "info", Downloader: "curl"}, false},
		{"http", Config{LogLevel: "warning", Downloader: "http"}, false},
		{"bad level", Config{LogLevel: "loud", Downloader: "curl"}, true},
		{"bad downloader", Config{LogLevel: "info", Downloader: "wget"}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}
