package store

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/logging"
)

// LoadAll loads the sessions for ids concurrently, bounded by NumCPU.
// Files that fail to load are logged and skipped so one corrupt session
// does not hide the rest. Results are sorted by event name, then ID.
// A cancelled ctx returns its error and no sessions.
func (s *FileStore) LoadAll(ctx context.Context, ids []string) ([]*engine.Session, error) {
	log := logging.FromContext(ctx)

	var mu sync.Mutex
	sessions := make([]*engine.Session, 0, len(ids))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, id := range ids {
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}
			session, err := s.Load(id)
			if err != nil {
				log.Warn().Ctx(ctx).
					Str("component", "store").
					Str("event_id", id).
					Err(err).
					Msg("skipping session that failed to load")
				return nil
			}
			mu.Lock()
			sessions = append(sessions, session)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Event.Name != sessions[j].Event.Name {
			return sessions[i].Event.Name < sessions[j].Event.Name
		}
		return sessions[i].Event.ID < sessions[j].Event.ID
	})
	return sessions, nil
}
