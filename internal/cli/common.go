package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/config"
	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
	"github.com/rshade/eventcarbon/internal/logging"
	"github.com/rshade/eventcarbon/internal/store"
)

// outputFormat returns the --output flag when set, else the configured default.
func outputFormat(cmd *cobra.Command) (engine.OutputFormat, error) {
	value, _ := cmd.Flags().GetString("output")
	if value == "" {
		value = config.GetDefaultOutputFormat()
	}
	return engine.ParseOutputFormat(value)
}

// openStore opens the session store under the configured data directory.
func openStore() (*store.FileStore, error) {
	cfg := config.GetGlobalConfig()
	if err := config.EnsureDataDirs(cfg); err != nil {
		return nil, err
	}
	return store.NewFileStore(cfg.SessionsDir())
}

// loadSession loads an event session, turning a missing file into a
// user-facing error.
func loadSession(st *store.FileStore, eventID string) (*engine.Session, error) {
	session, err := st.Load(eventID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, fmt.Errorf("event %q not found (see 'eventcarbon event list')", eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading event %s: %w", eventID, err)
	}
	return session, nil
}

// requireEvent reads and checks the --event flag.
func requireEvent(cmd *cobra.Command) (string, error) {
	id, _ := cmd.Flags().GetString("event")
	if id == "" {
		return "", errors.New("--event is required")
	}
	return id, nil
}

// warnUnknownSubtype logs items whose subtype has no factor row. They are
// kept and contribute 0.
func warnUnknownSubtype(ctx context.Context, item estimate.Item) {
	if !item.UnknownSubtype() {
		return
	}
	logging.FromContext(ctx).Warn().Ctx(ctx).
		Str("kind", string(item.Kind)).
		Str("subtype", item.Subtype()).
		Msg("unknown subtype, item contributes 0 kg CO2e")
}

// renderItems writes rows in the requested format.
func renderItems(
	w io.Writer,
	format engine.OutputFormat,
	meta engine.ItemsMetadata,
	rows []engine.ItemRow,
	summary engine.Result,
) error {
	switch format {
	case engine.OutputJSON:
		return engine.RenderItemsAsJSON(w, meta, rows, summary)
	case engine.OutputNDJSON:
		return engine.RenderItemsAsNDJSON(w, rows)
	default:
		return engine.RenderItemsAsTable(w, rows, config.GetOutputPrecision())
	}
}

// renderSummaries writes event summaries in the requested format.
func renderSummaries(w io.Writer, format engine.OutputFormat, summaries []engine.EventSummary) error {
	switch format {
	case engine.OutputJSON:
		return engine.RenderSummaryAsJSON(w, summaries)
	case engine.OutputNDJSON:
		return engine.RenderSummaryAsNDJSON(w, summaries)
	default:
		return engine.RenderSummaryAsTable(w, summaries, config.GetOutputPrecision())
	}
}
