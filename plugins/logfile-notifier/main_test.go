package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pluginrpc "jadwal/internal/modules/reminder/adapter/out/rpc"
)

func TestNotifyAppendsLine(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "notify.log")
	fixed := time.Date(2026, 3, 2, 6, 45, 0, 0, time.UTC)
	s := &server{path: path, now: func() time.Time { return fixed }}

	for i := 0; i < 2; i++ {
		resp, err := s.Notify(context.Background(), &pluginrpc.NotifyRequest{
			Title:    "Kelas Basis Data akan dimulai",
			Body:     "Kelas akan dimulai dalam 15 menit\nRuang: B-201",
			DedupKey: "class-Basis Data-07:00-09:30",
		})
		if err != nil {
			t.Fatalf("notify: %v", err)
		}
		if !resp.Delivered {
			t.Fatalf("expected delivery, got %+v", resp)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "2026-03-02T06:45:00Z") || !strings.Contains(lines[0], "Ruang: B-201") {
		t.Fatalf("unexpected line %q", lines[0])
	}
}

func TestNotifyRejectsEmptyTitle(t *testing.T) {
	t.Parallel()
	s := &server{path: filepath.Join(t.TempDir(), "n.log"), now: time.Now}
	resp, err := s.Notify(context.Background(), &pluginrpc.NotifyRequest{})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if resp.Delivered {
		t.Fatalf("expected no delivery for empty title")
	}
}

func TestMetadata(t *testing.T) {
	t.Parallel()
	md, err := (&server{}).GetMetadata(context.Background(), &pluginrpc.Empty{})
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if md.Name != "logfile-notifier" || md.Version != version {
		t.Fatalf("unexpected metadata %+v", md)
	}
}
