package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iw2rmb/plume"
	"github.com/iw2rmb/plume/internal/store"
)

// setupEnv points the store and log at a temp dir and returns the -config
// argument for a missing config file.
func setupEnv(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PLUME_DB", filepath.Join(dir, "docs", "plume.db"))
	t.Setenv("PLUME_LOG_FILE", filepath.Join(dir, "plume.log"))
	t.Setenv("PLUME_LOG_LEVEL", "debug")
	return []string{"-config", filepath.Join(dir, "missing.toml")}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(args, &out, &errOut)
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if want := "plume " + plume.VersionTag() + "\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestNewListRenderFork(t *testing.T) {
	global := setupEnv(t)

	out, err := runCLI(t, append(global, "new", "-title", "notes", "-detach")...)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	id := strings.TrimSpace(out)
	if id == "" {
		t.Fatal("new printed no id")
	}

	var opened store.Document
	openEditor = func(_ context.Context, doc store.Document) error {
		opened = doc
		return nil
	}
	t.Cleanup(func() { openEditor = nil })

	if _, err := runCLI(t, append(global, "edit", id)...); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if opened.ID != id || opened.Title != "notes" {
		t.Fatalf("opened %+v, want id %s", opened, id)
	}

	out, err = runCLI(t, append(global, "fork", id, "-title", "copy", "-detach")...)
	if err != nil {
		t.Fatalf("fork: %v", err)
	}
	forkID := strings.TrimSpace(out)
	if forkID == "" || forkID == id {
		t.Fatalf("fork id=%q", forkID)
	}

	out, err = runCLI(t, append(global, "list")...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"ID", "notes", "copy", id, forkID} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, append(global, "render", forkID)...)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("render=%q, want empty document", out)
	}
}

func TestErrors(t *testing.T) {
	global := setupEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no command", args: nil, want: "missing command"},
		{name: "unknown", args: []string{"frobnicate"}, want: "unknown command"},
		{name: "edit without id", args: []string{"edit"}, want: "expected exactly one document id"},
		{name: "render missing", args: []string{"render", "nope"}, want: "document not found"},
		{name: "fork missing", args: []string{"fork", "nope", "-detach"}, want: "document not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, append(append([]string{}, global...), tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err=%v, want %q", err, tt.want)
			}
		})
	}
}
