// CLASSIFICATION: COMMUNITY
// Filename: cli_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-16
package tooling

import (
	"bytes"
	"net"
	"strconv"
	"strings"
	"testing"
)

func TestFlagDefaults(t *testing.T) {
	cmd := NewRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	fs := cmd.Flags()
	if err := fs.Parse([]string{}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	port, err := fs.GetInt("port")
	if err != nil || port != 8080 {
		t.Fatalf("expected default 8080, got %d (%v)", port, err)
	}
	root, err := fs.GetString("root")
	if err != nil || root != ".." {
		t.Fatalf("expected default root .., got %q (%v)", root, err)
	}
	bind, _ := fs.GetString("bind")
	if bind != "" {
		t.Fatalf("expected all interfaces, got %q", bind)
	}
	if v, _ := fs.GetString("verbosity"); v != "warning" {
		t.Fatalf("expected warning verbosity, got %q", v)
	}
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCmd(&out, &bytes.Buffer{})
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := out.String(); got != "devserve v"+Version+"\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRejectsArguments(t *testing.T) {
	cmd := NewRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	cmd.SetArgs([]string{"somewhere"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}

func TestBadVerbosity(t *testing.T) {
	cmd := NewRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	cmd.SetArgs([]string{"--verbosity", "loud", "--root", t.TempDir()})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "verbosity") {
		t.Fatalf("expected verbosity error, got %v", err)
	}
}

func TestPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	var out, errOut bytes.Buffer
	cmd := NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--bind", "127.0.0.1", "--port", strconv.Itoa(port), "--root", t.TempDir()})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected bind failure")
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected stdout %q", out.String())
	}
}
