package cmd

import (
	"context"
	"errors"
	"testing"

	coreconfig "github.com/m3rciful/rosterbot/core/config"
	coretelegram "github.com/m3rciful/rosterbot/core/telegram"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type fakeApp struct {
	closed bool
}

func (a *fakeApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{}, nil
}

func (a *fakeApp) Close() error {
	a.closed = true
	return nil
}

func TestRunWiresLifecycle(t *testing.T) {
	t.Setenv("ROSTERBOT_TEST_CONFIG", "")
	app := &fakeApp{}
	var loadedPath string
	var hooks coretelegram.RunOptions
	err := Run(Options{
		ConfigEnvVar:      "ROSTERBOT_TEST_CONFIG",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			loadedPath = path
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return app, nil
		},
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			hooks = opts
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if loadedPath != "config.yaml" {
		t.Fatalf("path = %q", loadedPath)
	}
	if hooks.OnStart == nil || hooks.OnStop == nil {
		t.Fatalf("lifecycle hooks not installed")
	}
	if !app.closed {
		t.Fatalf("app not closed")
	}
}

func TestRunPrefersEnvPath(t *testing.T) {
	t.Setenv("ROSTERBOT_TEST_CONFIG", "/etc/rosterbot.yaml")
	var loadedPath string
	boom := errors.New("missing")
	err := Run(Options{
		ConfigEnvVar:      "ROSTERBOT_TEST_CONFIG",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			loadedPath = path
			return nil, boom
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) { return nil, nil },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if loadedPath != "/etc/rosterbot.yaml" {
		t.Fatalf("path = %q", loadedPath)
	}
}

func TestRunRequiresHooks(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Fatalf("expected error")
	}
}
