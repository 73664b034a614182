package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	pluginrpc "jadwal/internal/modules/reminder/adapter/out/rpc"
	"jadwal/internal/modules/reminder/domain"
	reminderout "jadwal/internal/modules/reminder/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost launches a notifier plugin per call and talks to it over
// go-plugin's gRPC transport.
type GRPCHost struct {
	startTimeout time.Duration
	callTimeout  time.Duration
}

func NewGRPCHost() reminderout.PluginHost {
	return &GRPCHost{startTimeout: defaultStartTimeout, callTimeout: defaultCallTimeout}
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.PluginMetadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.PluginMetadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.PluginMetadata{}, fmt.Errorf("%w: %s metadata", domain.ErrPluginTimeout, manifest.Name)
		}
		return domain.PluginMetadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.PluginMetadata{Name: meta.Name, Version: meta.Version}, nil
}

func (h *GRPCHost) Notify(ctx context.Context, manifest domain.Manifest, notification domain.Notification) error {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	response, err := client.Notify(callCtx, &pluginrpc.NotifyRequest{
		Title:    notification.Title,
		Body:     notification.Body,
		DedupKey: notification.DedupKey,
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s notify", domain.ErrPluginTimeout, manifest.Name)
		}
		return fmt.Errorf("notify: %w", err)
	}
	if !response.Delivered {
		return fmt.Errorf("plugin %s did not deliver: %s", manifest.Name, response.Detail)
	}
	return nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (pluginrpc.NotifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     h.startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.NotifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.callTimeout)
}
