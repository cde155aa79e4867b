// Package obs carries the request id through contexts and times the
// operations hanging off a request, solver runs included.
package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time logs the duration of op when the returned func runs, usually via
// defer. Solver runs take seconds where handlers take milliseconds, so the
// duration is rounded rather than truncated.
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start).Round(time.Millisecond)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%s err=%v", reqID, op, dur, *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%s", reqID, op, dur)
	}
}
