package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/ngld/ktbind/pkg"
)

// ConsoleWriter renders zerolog's JSON events as colored lines for humans
type ConsoleWriter struct {
	buffer strings.Builder
	lock   sync.Mutex
	out    io.Writer
	color  *colorstring.Colorize
	debug  bool
	wd     string
}

func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	wd, _ := os.Getwd()
	return &ConsoleWriter{
		out:   out,
		wd:    wd,
		color: pkg.NewColorize(),
		debug: os.Getenv("KTBIND_DEBUG") != "",
	}
}

func (w *ConsoleWriter) Write(p []byte) (n int, err error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	var evt map[string]interface{}
	d := json.NewDecoder(bytes.NewReader(p))
	d.UseNumber()
	err = d.Decode(&evt)
	if err != nil {
		return n, eris.Wrapf(err, "cannot decode event: %s", p)
	}

	w.buffer.Reset()
	switch evt["level"] {
	case "fatal":
		fallthrough
	case "error":
		w.buffer.WriteString("[red]")
	case "warn":
		w.buffer.WriteString("[yellow]")
	case "debug":
		fallthrough
	case "trace":
		w.buffer.WriteString("[blue]")
	default:
		w.buffer.WriteString("[green]")
	}

	task, ok := evt["task"].(string)
	if ok {
		w.buffer.WriteString(task + ": ")
	}

	if evt["level"] == "error" {
		w.buffer.WriteString("Error: ")
	}

	msg, _ := evt["message"].(string)

	path, ok := evt["path"].(string)
	if ok {
		// simplify the path
		base := "."
		if filepath.IsAbs(path) {
			base = w.wd
		}
		relPath, err := filepath.Rel(base, path)
		if err == nil && !strings.HasPrefix(relPath, "..") {
			msg = strings.ReplaceAll(msg, path, relPath)
		}
	}

	if evt["command"] == true {
		w.buffer.WriteString("[reset][bold]" + msg + "[reset]")
	} else {
		w.buffer.WriteString(msg)
	}

	errorDetails, ok := evt["error"]
	if ok {
		w.buffer.WriteString("\n")
		w.buffer.WriteString(fmt.Sprint(errorDetails))
	}

	if w.debug {
		w.buffer.WriteString("\n")
		for name, value := range evt {
			w.buffer.WriteString(fmt.Sprintf("  %s: %+v\n", name, value))
		}
	}

	w.buffer.WriteString("[reset]\n")
	_, err = io.WriteString(w.out, w.color.Color(w.buffer.String()))
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func init() {
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		return eris.ToString(err, os.Getenv("KTBIND_DEBUG") != "")
	}
}
