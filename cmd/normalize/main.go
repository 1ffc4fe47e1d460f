// Command normalize converts a saved Open-Meteo response into the rows the
// ETL would publish. It runs the same transformer as the service, so it is
// handy for checking a payload or regenerating fixtures.
//
// Usage:
//
//	go run ./cmd/normalize -cadence hourly -location berlin \
//	  -processed-at 2024-06-01T06:00:00Z internal/pipeline/testdata/hourly_berlin.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/forecast-etl/internal/domain"
	"github.com/couchcryptid/forecast-etl/internal/pipeline"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	cadence := fs.String("cadence", "hourly", "forecast cadence: hourly or daily")
	locationID := fs.String("location", "local", "location ID stamped on each row")
	runID := fs.String("run-id", "manual", "run ID stamped on each row")
	processedAt := fs.String("processed-at", "", "fixed RFC 3339 processing time (default now)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one response file")
	}

	c, err := domain.ParseCadence(*cadence)
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	if *processedAt != "" {
		at, err := time.Parse(time.RFC3339, *processedAt)
		if err != nil {
			return fmt.Errorf("parse -processed-at: %w", err)
		}
		clock = clockwork.NewFakeClockAt(at)
	}

	body, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	t := pipeline.NewTransformer(domain.Parser{}, nil, clock, nil)
	loc := domain.Location{ID: *locationID}

	var rows any
	switch c {
	case domain.CadenceHourly:
		rows, err = t.HourlyRows(*runID, loc, body)
	case domain.CadenceDaily:
		rows, err = t.DailyRows(*runID, loc, body)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
