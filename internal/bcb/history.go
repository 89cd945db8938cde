package bcb

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Window is a date range requested in a single call.
type Window struct {
	Start time.Time
	End   time.Time
}

// Windows returns the request ranges covering a series' history up to today.
// Monthly series are read from January 1st twenty years back in one call.
// Daily series are capped at ten years per call by the API, so two nine-year
// windows are used that share their boundary day.
func Windows(p Periodicity, today time.Time) []Window {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if p == Monthly {
		start := time.Date(today.Year()-20, time.January, 1, 0, 0, 0, 0, time.UTC)
		return []Window{{Start: start, End: today}}
	}
	mid := today.AddDate(-9, 0, 0)
	return []Window{
		{Start: today.AddDate(-18, 0, 0), End: mid},
		{Start: mid, End: today},
	}
}

// FetchHistory loads the full history of s, querying all windows concurrently and
// joining them in chronological order. An observation repeated on a window
// boundary is kept once.
func FetchHistory(ctx context.Context, c Client, s Series, today time.Time) ([]Observation, error) {
	windows := Windows(s.Periodicity, today)
	parts := make([][]Observation, len(windows))

	g, ctx := errgroup.WithContext(ctx)
	for i, w := range windows {
		g.Go(func() error {
			obs, err := c.QuerySeries(ctx, s.Code, w.Start, w.End)
			if err != nil {
				return fmt.Errorf("failed to fetch %s from %s to %s: %w",
					s.Name, w.Start.Format(DateLayout), w.End.Format(DateLayout), err)
			}
			parts[i] = obs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Observation
	for _, part := range parts {
		for _, o := range part {
			if n := len(out); n > 0 && out[n-1].Date == o.Date {
				continue
			}
			out = append(out, o)
		}
	}
	if out == nil {
		out = []Observation{}
	}
	return out, nil
}
