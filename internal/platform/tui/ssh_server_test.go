package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestHostKeyPathDefaultsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := hostKeyPath("")
	if err != nil {
		t.Fatalf("hostKeyPath() error = %v", err)
	}
	if want := filepath.Join(home, ".blast", "host_key"); got != want {
		t.Errorf("hostKeyPath() = %q, want %q", got, want)
	}
	if fi, err := os.Stat(filepath.Dir(got)); err != nil || !fi.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}
}

func TestNewSSHServer(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.MaxSessions = 2

	srv, err := NewSSHServer(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	if srv.store == nil {
		t.Error("scores database not opened")
	}
	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, want %q", srv.Addr(), cfg.Address)
	}
	if srv.ActiveSessions() != 0 {
		t.Errorf("ActiveSessions() = %d before serving", srv.ActiveSessions())
	}
	if _, err := os.Stat(cfg.HostKeyPath); err != nil {
		t.Errorf("host key not generated: %v", err)
	}

	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if srv.store != nil {
		t.Error("store still open after Shutdown")
	}
}

func TestNewSSHServerWithoutScores(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the database directory should be.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(blocker, "scores.db")

	srv, err := NewSSHServer(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	defer srv.Shutdown()

	if srv.store != nil {
		t.Error("expected the server to run without a store")
	}
}
