// Command ledmap loads an LED group config, validates it and prints the
// resulting group map.
//
// With no config path it discovers one the way the LED manager does: the
// override directory first, then a directory per compatible system name,
// then the default directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"led-layout/internal/cli"
	"led-layout/internal/ctxlog"
	"led-layout/internal/diagnostic"
	"led-layout/internal/discovery"
	"led-layout/internal/ledconfig"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run is main without the process exit, so it can be tested.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, shouldExit, err := cli.Parse(args, stderr)
	if err != nil {
		return err
	}

	if shouldExit {
		return nil
	}

	ctx = ctxlog.WithLogger(ctx, ctxlog.New(cfg.LogLevel, cfg.LogFormat, stderr))

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	resolver := ledconfig.NewResolver(newDiscoverer(cfg))
	resolver.Options = cfg.BuildOptions()

	if cfg.Lint {
		return lint(ctx, resolver, cfg, stdout)
	}

	ledMap, err := resolver.Resolve(ctx, cfg.ConfigPath)
	if err != nil {
		return &cli.ExitError{Code: cli.ExitFailure, Message: err.Error()}
	}

	return render(stdout, cfg.Output, ledMap)
}

func lint(ctx context.Context, resolver *ledconfig.Resolver, cfg *cli.Config, stdout io.Writer) error {
	res := &diagnostic.Diagnostics{}

	doc, err := resolver.Load(ctx, cfg.ConfigPath)
	if err != nil {
		res.Add(ledconfig.ErrorDiagnostic(err))
	} else {
		res.Merge(*ledconfig.Lint(ctx, doc.Bytes(), cfg.BuildOptions()))
	}

	if err := render(stdout, cfg.Output, res); err != nil {
		return err
	}

	if !res.IsValid() {
		return &cli.ExitError{
			Code:    cli.ExitFailure,
			Message: fmt.Sprintf("LED config has %d error(s): %v", len(res.Errors), res.Error()),
		}
	}

	return nil
}

// newDiscoverer connects to D-Bus only when a config actually has to be
// discovered and no compatible names were given.
func newDiscoverer(cfg *cli.Config) ledconfig.Discoverer {
	return ledconfig.DiscovererFunc(func(ctx context.Context) (string, error) {
		var source discovery.CompatibleSource

		if cfg.Compatible != nil {
			source = discovery.StaticSource(cfg.Compatible)
		} else {
			dbusSource, err := discovery.NewDBusSource()
			if err != nil {
				ctxlog.FromContext(ctx).Warn("D-Bus unavailable, skipping compatible names", "error", err)
			} else {
				defer dbusSource.Close()

				source = dbusSource
			}
		}

		finder := discovery.NewFinder(source)
		finder.Wait = cfg.Wait

		return finder.Discover(ctx)
	})
}
