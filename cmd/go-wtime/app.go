package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tartampluch/go-wtime/internal/config"
	"github.com/tartampluch/go-wtime/internal/engine"
	"github.com/tartampluch/go-wtime/internal/report"
	"github.com/tartampluch/go-wtime/internal/server"
	"golang.org/x/sync/errgroup"
)

// app wires the facade to the output surfaces.
type app struct {
	facade   *engine.Facade
	reporter *report.Reporter
	settings *config.Settings
}

func newApp(clock engine.Clock, settings *config.Settings) (*app, error) {
	facade, err := engine.NewForMode(clock, settings.Mode, settings.Offset)
	if err != nil {
		return nil, err
	}
	return &app{
		facade:   facade,
		reporter: report.NewReporter(),
		settings: settings,
	}, nil
}

func knownCommand(cmd string) bool {
	switch cmd {
	case config.CmdNow, config.CmdInfo, config.CmdICS, config.CmdServe:
		return true
	}
	return false
}

// run executes a single command, writing one-shot output to out.
func (a *app) run(ctx context.Context, cmd string, out io.Writer) error {
	if cmd == config.CmdServe {
		return a.serve(ctx)
	}

	s, err := a.facade.Snapshot()
	if err != nil {
		return err
	}

	switch cmd {
	case config.CmdNow:
		_, err = fmt.Fprintln(out, s.Format())
	case config.CmdInfo:
		_, err = out.Write(a.reporter.Render(s, a.settings.Language))
	case config.CmdICS:
		var data []byte
		if data, err = engine.RenderICS(s); err == nil {
			_, err = out.Write(data)
		}
	default:
		err = fmt.Errorf("%s: %q", config.ErrUnknownCommand, cmd)
	}
	return err
}

// serve runs the HTTP server and its refresh worker until ctx is cancelled
// or either of them fails.
func (a *app) serve(ctx context.Context) error {
	srv := server.NewTimeServer(a.settings.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		return srv.RunRefresher(gctx, a.settings.Refresh, a.render)
	})
	return g.Wait()
}

// render produces every served representation from one snapshot.
func (a *app) render() (server.Content, error) {
	s, err := a.facade.Snapshot()
	if err != nil {
		return server.Content{}, err
	}

	ics, err := engine.RenderICS(s)
	if err != nil {
		return server.Content{}, err
	}

	return server.Content{
		Timestamp: []byte(s.Format() + "\n"),
		ICS:       ics,
		Report:    a.reporter.Render(s, a.settings.Language),
	}, nil
}
