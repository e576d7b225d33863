package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/sessionprobe/pkg/inspect"
)

// profileReader is a read-only, context-bound view of one profile.
type profileReader struct {
	ctx     context.Context
	st      Store
	profile string
	logger  *slog.Logger
}

// Reader adapts one profile of st to inspect.Storage. Reads are total: a
// missing key and a failed read both come back as absent, the latter logged.
func Reader(ctx context.Context, st Store, profile string, logger *slog.Logger) inspect.Storage {
	return &profileReader{ctx: ctx, st: st, profile: profile, logger: logger}
}

func (r *profileReader) GetItem(key string) (string, bool) {
	item, err := r.st.GetItem(r.ctx, r.profile, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.logger.Warn("client storage read failed, treating as absent",
				"profile", r.profile,
				"key", key,
				"err", err,
			)
		}
		return "", false
	}
	return item.Value, true
}
