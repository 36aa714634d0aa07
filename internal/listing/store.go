package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"

	apperrors "github.com/tradeops/tradesearch/pkg/errors"
	"github.com/tradeops/tradesearch/pkg/postgres"
	"github.com/tradeops/tradesearch/pkg/resilience"

	"github.com/tradeops/tradesearch/internal/query"
	"github.com/tradeops/tradesearch/internal/query/lexicon"
)

// sortExprs whitelists the sort columns the parser can emit and maps them to
// SQL expressions. price_per_ton is derived, not stored.
var sortExprs = map[string]string{
	lexicon.ColPricePerTon: "total_value / NULLIF(weight_tons, 0)",
	lexicon.ColTotalValue:  "total_value",
	lexicon.ColWeight:      "weight_tons",
	lexicon.ColContainers:  "containers",
	lexicon.ColBalance:     "balance",
	lexicon.ColETA:         "eta",
}

// numericExprs maps parser numeric dimensions to their columns.
var numericExprs = map[string]string{
	lexicon.ColTotalValue: "total_value",
	lexicon.ColContainers: "containers",
	lexicon.ColWeight:     "weight_tons",
	lexicon.ColBalance:    "balance",
}

// validOperators whitelists comparison operators before they are spliced into
// SQL. Values themselves are always bound as parameters.
var validOperators = map[query.Operator]string{
	query.OpLess:      "<",
	query.OpGreater:   ">",
	query.OpLessEq:    "<=",
	query.OpGreaterEq: ">=",
	query.OpEqual:     "=",
}

// Store executes listing queries against PostgreSQL. All access goes through
// a circuit breaker so a struggling database sheds load instead of queueing.
type Store struct {
	db      *postgres.Client
	breaker *resilience.CircuitBreaker
	timeout time.Duration
	logger  *slog.Logger
}

// StoreConfig bounds query execution and breaker behaviour.
type StoreConfig struct {
	QueryTimeout    time.Duration
	BreakerFailures int
	BreakerReset    time.Duration
}

func NewStore(db *postgres.Client, cfg StoreConfig) *Store {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 5 * time.Second
	}
	return &Store{
		db: db,
		breaker: resilience.NewCircuitBreaker("listing-db", resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.BreakerFailures,
			ResetTimeout:     cfg.BreakerReset,
		}),
		timeout: cfg.QueryTimeout,
		logger:  slog.Default().With("component", "listing-store"),
	}
}

// BreakerState exposes the breaker state for health checks and metrics.
func (s *Store) BreakerState() resilience.State {
	return s.breaker.State()
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Search runs the merged filters and returns one page of shipments with the
// total match count.
func (s *Store) Search(ctx context.Context, req *Request) (*Result, error) {
	eff := req.Effective()
	sqlText, args := buildQuery(eff, req.Limit, req.Offset)

	var result *Result
	err := s.breaker.Execute(func() error {
		qctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		rows, err := s.db.DB.QueryContext(qctx, sqlText, args...)
		if err != nil {
			return fmt.Errorf("listing query: %w", err)
		}
		defer rows.Close()

		page := &Result{
			Shipments: []Shipment{},
			Limit:     req.Limit,
			Offset:    req.Offset,
		}
		for rows.Next() {
			var sh Shipment
			var total int
			if err := rows.Scan(
				&sh.ID, &sh.Reference, &sh.Product, &sh.Origin, &sh.Destination,
				&sh.ShippedAt, &sh.ETA, &sh.TotalValue, &sh.Containers,
				&sh.WeightTons, &sh.Balance, &total,
			); err != nil {
				return fmt.Errorf("scanning shipment row: %w", err)
			}
			page.TotalHits = total
			page.Shipments = append(page.Shipments, sh)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating shipment rows: %w", err)
		}
		result = page
		return nil
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return nil, apperrors.ErrStoreUnavailable
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.ErrTimeout
		}
		return nil, err
	}
	return result, nil
}

// buildQuery translates the effective filters into a parameterised SELECT.
// Every user-supplied value is bound; only whitelisted column expressions and
// operators reach the SQL text.
func buildQuery(eff *query.ParsedQuery, limit, offset int) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if eff.GeneralTerm != "" {
		p := arg("%" + eff.GeneralTerm + "%")
		conds = append(conds, fmt.Sprintf(
			"(product ILIKE %s OR origin ILIKE %s OR destination ILIKE %s)", p, p, p))
	}
	if len(eff.Products) > 0 {
		conds = append(conds, fmt.Sprintf("product ILIKE ANY(%s)", arg(pq.Array(likePatterns(eff.Products)))))
	}
	if len(eff.ExcludedProducts) > 0 {
		conds = append(conds, fmt.Sprintf("NOT (product ILIKE ANY(%s))", arg(pq.Array(likePatterns(eff.ExcludedProducts)))))
	}
	if len(eff.Origins) > 0 {
		conds = append(conds, fmt.Sprintf("origin = ANY(%s)", arg(pq.Array(eff.Origins))))
	}
	if len(eff.Destinations) > 0 {
		conds = append(conds, fmt.Sprintf("destination = ANY(%s)", arg(pq.Array(eff.Destinations))))
	}
	if eff.DateFrom != "" {
		conds = append(conds, fmt.Sprintf("shipped_at >= %s", arg(eff.DateFrom)))
	}
	if eff.DateTo != "" {
		conds = append(conds, fmt.Sprintf("shipped_at <= %s", arg(eff.DateTo)))
	}
	if eff.Month != 0 {
		conds = append(conds, fmt.Sprintf("EXTRACT(MONTH FROM shipped_at) = %s", arg(eff.Month)))
	}
	if eff.Year != 0 {
		conds = append(conds, fmt.Sprintf("EXTRACT(YEAR FROM shipped_at) = %s", arg(eff.Year)))
	}
	numeric := []struct {
		dim string
		c   *query.NumericConstraint
	}{
		{lexicon.ColTotalValue, eff.TotalValue},
		{lexicon.ColContainers, eff.Containers},
		{lexicon.ColWeight, eff.Weight},
		{lexicon.ColBalance, eff.Balance},
	}
	for _, nc := range numeric {
		dim, c := nc.dim, nc.c
		if c == nil {
			continue
		}
		op, ok := validOperators[c.Operator]
		if !ok {
			continue
		}
		conds = append(conds, fmt.Sprintf("%s %s %s", numericExprs[dim], op, arg(c.Value)))
	}

	var b strings.Builder
	b.WriteString("SELECT id, reference, product, origin, destination, shipped_at, eta, ")
	b.WriteString("total_value, containers, weight_tons, balance, COUNT(*) OVER() AS total_count ")
	b.WriteString("FROM shipments")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY ")
	if expr, ok := sortExprs[eff.SortColumn]; ok {
		b.WriteString(expr)
		if eff.SortDirection == query.SortDesc {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
		b.WriteString(" NULLS LAST, ")
	}
	b.WriteString("shipped_at DESC, id DESC")
	b.WriteString(fmt.Sprintf(" LIMIT %s OFFSET %s", arg(limit), arg(offset)))
	return b.String(), args
}

func likePatterns(terms []string) []string {
	patterns := make([]string, len(terms))
	for i, t := range terms {
		patterns[i] = "%" + t + "%"
	}
	return patterns
}
