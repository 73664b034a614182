package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pluginrpc "jadwal/internal/modules/reminder/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

const version = "1.0.0"

// server appends each reminder as one line to a log file.
type server struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{Name: "logfile-notifier", Version: version}, nil
}

func (s *server) Notify(_ context.Context, in *pluginrpc.NotifyRequest) (*pluginrpc.NotifyResponse, error) {
	if strings.TrimSpace(in.Title) == "" {
		return &pluginrpc.NotifyResponse{Delivered: false, Detail: "empty title"}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open notify log: %w", err)
	}
	defer f.Close()

	body := strings.ReplaceAll(in.Body, "\n", " | ")
	line := fmt.Sprintf("%s\t%s\t%s\t%s\n", s.now().Format(time.RFC3339), in.DedupKey, in.Title, body)
	if _, err := f.WriteString(line); err != nil {
		return nil, fmt.Errorf("write notify log: %w", err)
	}
	return &pluginrpc.NotifyResponse{Delivered: true, Detail: s.path}, nil
}

func logPath() string {
	if p := strings.TrimSpace(os.Getenv("JADWAL_NOTIFY_LOG")); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "jadwal-notify.log")
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{path: logPath(), now: time.Now}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
