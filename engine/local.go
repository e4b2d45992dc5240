package engine

import (
	"context"
	"fmt"
	"io"

	"punter/communication"
	"punter/player"
	"punter/searcher"

	"golang.org/x/sync/errgroup"
)

// Local plays a punter in-process over pipes. Like a punter process in offline mode, every
// request is served by a fresh player.
type Local struct {
	name    string
	options []searcher.Option
}

func NewLocal(name string, options ...searcher.Option) *Local {
	return &Local{name: name, options: options}
}

func (l *Local) Name() string {
	return l.name
}

func (l *Local) Exchange(ctx context.Context, request communication.ServerMessage, reply any) error {
	playerIn, runnerOut := io.Pipe()
	runnerIn, playerOut := io.Pipe()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer playerIn.Close()
		defer playerOut.Close()
		p := player.NewPlayer(l.name, communication.NewConn("runner", playerIn, playerOut), searcher.NewDecider(l.options...))
		if err := p.Play(ctx); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPunterFailed, l.name, err)
		}
		return nil
	})
	g.Go(func() error {
		defer runnerIn.Close()
		defer runnerOut.Close()
		return exchange(communication.NewConn(l.name, runnerIn, runnerOut), runnerOut.Close, request, reply)
	})
	return g.Wait()
}
