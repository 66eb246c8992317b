package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time logs the duration of an operation when the returned func runs.
// Usage: defer obs.Time(ctx, "resolver.ResolveMany")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Warn().
				Str("req_id", reqID).
				Str("op", name).
				Dur("dur", dur).
				Err(*errp).
				Msg("operation failed")
			return
		}

		log.Debug().
			Str("req_id", reqID).
			Str("op", name).
			Dur("dur", dur).
			Msg("operation complete")
	}
}
