package listing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tradeops/tradesearch/pkg/errors"
	"github.com/tradeops/tradesearch/pkg/postgres"

	"github.com/tradeops/tradesearch/internal/query"
)

var shipmentColumns = []string{
	"id", "reference", "product", "origin", "destination", "shipped_at", "eta",
	"total_value", "containers", "weight_tons", "balance", "total_count",
}

func newMockStore(t *testing.T, cfg StoreConfig) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(&postgres.Client{DB: db}, cfg), mock
}

func TestBuildQueryGeneralTerm(t *testing.T) {
	eff := &query.ParsedQuery{GeneralTerm: "أرز"}
	sqlText, args := buildQuery(eff, 25, 0)

	assert.Contains(t, sqlText, "(product ILIKE $1 OR origin ILIKE $1 OR destination ILIKE $1)")
	assert.Contains(t, sqlText, "ORDER BY shipped_at DESC, id DESC")
	assert.Equal(t, []any{"%أرز%", 25, 0}, args)
}

func TestBuildQueryDateAndNumeric(t *testing.T) {
	eff := &query.ParsedQuery{
		DateFrom:   "2026-08-01",
		DateTo:     "2026-08-31",
		TotalValue: &query.NumericConstraint{Operator: query.OpLess, Value: 50000},
	}
	sqlText, args := buildQuery(eff, 10, 20)

	assert.Contains(t, sqlText, "shipped_at >= $1")
	assert.Contains(t, sqlText, "shipped_at <= $2")
	assert.Contains(t, sqlText, "total_value < $3")
	assert.Contains(t, sqlText, "LIMIT $4 OFFSET $5")
	assert.Equal(t, []any{"2026-08-01", "2026-08-31", float64(50000), 10, 20}, args)
}

func TestBuildQueryMonthYear(t *testing.T) {
	eff := &query.ParsedQuery{Month: 3, Year: 2025}
	sqlText, args := buildQuery(eff, 25, 0)

	assert.Contains(t, sqlText, "EXTRACT(MONTH FROM shipped_at) = $1")
	assert.Contains(t, sqlText, "EXTRACT(YEAR FROM shipped_at) = $2")
	assert.Equal(t, []any{3, 2025, 25, 0}, args)
}

func TestBuildQuerySortIsWhitelisted(t *testing.T) {
	eff := &query.ParsedQuery{
		SortColumn:    "price_per_ton",
		SortDirection: query.SortAsc,
	}
	sqlText, _ := buildQuery(eff, 25, 0)
	assert.Contains(t, sqlText, "ORDER BY total_value / NULLIF(weight_tons, 0) ASC NULLS LAST")

	// An unknown column never reaches the SQL text.
	eff.SortColumn = "id; DROP TABLE shipments"
	sqlText, _ = buildQuery(eff, 25, 0)
	assert.NotContains(t, sqlText, "DROP TABLE")
	assert.Contains(t, sqlText, "ORDER BY shipped_at DESC, id DESC")
}

func TestBuildQueryNoFiltersHasNoWhere(t *testing.T) {
	sqlText, args := buildQuery(&query.ParsedQuery{}, 25, 0)
	assert.NotContains(t, sqlText, "WHERE")
	assert.Equal(t, []any{25, 0}, args)
}

func TestStoreSearch(t *testing.T) {
	store, mock := newMockStore(t, StoreConfig{})
	shipped := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, reference, product").
		WillReturnRows(sqlmock.NewRows(shipmentColumns).
			AddRow(1, "SH-1001", "أرز", "مصر", "العراق", shipped, nil, 50000.0, 4, 120.5, 0.0, 2).
			AddRow(2, "SH-1002", "فلفل", "الهند", "مصر", shipped, nil, 12000.0, 1, 8.0, 4000.0, 2))

	req := &Request{
		Parsed: query.ParseAt("rice from egypt", time.Now()),
		Limit:  25,
	}
	result, err := store.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalHits)
	require.Len(t, result.Shipments, 2)
	assert.Equal(t, "SH-1001", result.Shipments[0].Reference)
	assert.Equal(t, "أرز", result.Shipments[0].Product)
	assert.Nil(t, result.Shipments[0].ETA)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSearchEmptyPage(t *testing.T) {
	store, mock := newMockStore(t, StoreConfig{})

	mock.ExpectQuery("SELECT id, reference, product").
		WillReturnRows(sqlmock.NewRows(shipmentColumns))

	result, err := store.Search(context.Background(), &Request{
		Parsed: &query.ParsedQuery{},
		Limit:  25,
	})
	require.NoError(t, err)
	assert.Zero(t, result.TotalHits)
	assert.Empty(t, result.Shipments)
}

func TestStoreBreakerOpensAfterFailures(t *testing.T) {
	store, mock := newMockStore(t, StoreConfig{
		BreakerFailures: 2,
		BreakerReset:    time.Minute,
	})

	dbErr := errors.New("connection refused")
	mock.ExpectQuery("SELECT id, reference, product").WillReturnError(dbErr)
	mock.ExpectQuery("SELECT id, reference, product").WillReturnError(dbErr)

	req := &Request{Parsed: &query.ParsedQuery{}, Limit: 25}
	for i := 0; i < 2; i++ {
		_, err := store.Search(context.Background(), req)
		require.Error(t, err)
	}

	// The third call is rejected by the breaker without touching the database.
	_, err := store.Search(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}
