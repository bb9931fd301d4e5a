package report

import (
	"fmt"
	"strings"

	"github.com/starford/dagaz/internal/index"
)

// Querier is the read-only slice of the note index the dashboard consumes.
type Querier interface {
	Select(query string, args ...any) ([]index.Row, error)
}

// Verify the concrete index satisfies Querier at compile time.
var _ Querier = (*index.DB)(nil)

// Gateway shields section producers from index failures. The index schema
// evolves independently of the dashboard, so a single incompatible query
// must degrade to an empty section instead of aborting the whole report.
type Gateway struct {
	q   Querier
	log *Log
}

// NewGateway wraps a querier with failure isolation backed by log.
func NewGateway(q Querier, log *Log) *Gateway {
	return &Gateway{q: q, log: log}
}

// Query runs a read query on behalf of the named section. On failure it
// records a Diagnostic carrying the query text and parameters and reports
// false; callers that must distinguish an empty result from a failed one
// (a failed count would otherwise render as zero) check the flag.
func (g *Gateway) Query(section, query string, args ...any) ([]index.Row, bool) {
	rows, err := g.q.Select(query, args...)
	if err != nil {
		g.log.Append(section, fmt.Sprintf("query failed: %v (query: %s, params: %v)",
			err, strings.Join(strings.Fields(query), " "), args))
		return nil, false
	}
	return rows, true
}

// Select is Query without the success flag, for sections where an empty
// result and a failed one both degrade to "no data".
func (g *Gateway) Select(section, query string, args ...any) []index.Row {
	rows, _ := g.Query(section, query, args...)
	return rows
}
