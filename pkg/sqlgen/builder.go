package sqlgen

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/metricwise/bqgen/pkg/metadata"
)

// dateLayout is the wire format for all date range boundaries.
const dateLayout = "2006-01-02"

// Generator compiles query configurations against a loaded platform
// registry. It holds no state between calls; concurrent use is safe.
type Generator struct {
	reg *metadata.Registry
}

// NewGenerator creates a Generator backed by the given registry.
func NewGenerator(reg *metadata.Registry) *Generator {
	return &Generator{reg: reg}
}

// Build compiles a single-platform aggregation query: dimensions selected
// unaggregated and aliased to their ids, metrics wrapped in their declared
// aggregation, tenant and date-range predicates first in the WHERE list,
// GROUP BY over the dimension ids (omitted for pure aggregates).
func (g *Generator) Build(cfg QueryConfig) (string, error) {
	p, err := g.reg.Platform(cfg.Platform)
	if err != nil {
		return "", err
	}
	if len(cfg.Metrics) == 0 && len(cfg.Dimensions) == 0 {
		return "", fmt.Errorf("%w (platform %q)", ErrNoFields, cfg.Platform)
	}

	cols := make([]string, 0, len(cfg.Dimensions)+len(cfg.Metrics))
	for _, id := range cfg.Dimensions {
		d, err := g.reg.Dimension(cfg.Platform, id)
		if err != nil {
			return "", err
		}
		cols = append(cols, fmt.Sprintf("%s AS %s", d.SQL, d.ID))
	}
	for _, id := range cfg.Metrics {
		m, err := g.reg.Metric(cfg.Platform, id)
		if err != nil {
			return "", err
		}
		cols = append(cols, fmt.Sprintf("%s(%s) AS %s", m.Aggregation, m.SQL, m.ID))
	}

	b := sq.Select(cols...).From(p.Table)

	conds, err := whereConditions(cfg.ClientID, cfg.DateRange, cfg.Filters)
	if err != nil {
		return "", err
	}
	for _, c := range conds {
		b = b.Where(c)
	}

	if len(cfg.Dimensions) > 0 {
		b = b.GroupBy(cfg.Dimensions...)
	}

	if cfg.OrderBy != nil {
		clause, err := orderClause(cfg.OrderBy)
		if err != nil {
			return "", err
		}
		b = b.OrderBy(clause)
	}

	if cfg.Limit > 0 {
		b = b.Limit(uint64(cfg.Limit))
	}

	sqlText, _, err := b.ToSql()
	if err != nil {
		return "", fmt.Errorf("assembling query for platform %q: %w", cfg.Platform, err)
	}
	return sqlText, nil
}

// whereConditions renders the shared predicate list: tenant isolation
// first, then the inclusive date range, then one clause per filter.
func whereConditions(clientID string, dr *DateRange, filters []Filter) ([]string, error) {
	var conds []string
	if clientID != "" {
		conds = append(conds, "client_id = "+quoteString(clientID))
	}
	if dr != nil {
		clause, err := dateRangeCondition(*dr)
		if err != nil {
			return nil, err
		}
		conds = append(conds, clause)
	}
	for _, f := range filters {
		c, err := f.Condition()
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, nil
}

// dateRangeCondition validates and renders the inclusive BETWEEN clause
// on the partition column.
func dateRangeCondition(r DateRange) (string, error) {
	start, err := time.Parse(dateLayout, r.Start)
	if err != nil {
		return "", fmt.Errorf("%w: start %q", ErrInvalidDateRange, r.Start)
	}
	end, err := time.Parse(dateLayout, r.End)
	if err != nil {
		return "", fmt.Errorf("%w: end %q", ErrInvalidDateRange, r.End)
	}
	if end.Before(start) {
		return "", fmt.Errorf("%w: end %q precedes start %q", ErrInvalidDateRange, r.End, r.Start)
	}
	return fmt.Sprintf("date BETWEEN '%s' AND '%s'", r.Start, r.End), nil
}

// orderClause validates the ORDER BY field and direction. The field is
// not required to be one of the selected ids, but it must be a safe
// identifier.
func orderClause(o *OrderBy) (string, error) {
	if err := checkIdentifier(o.Field); err != nil {
		return "", err
	}
	dir := strings.ToUpper(strings.TrimSpace(o.Direction))
	switch dir {
	case "":
		dir = "ASC"
	case "ASC", "DESC":
	default:
		return "", fmt.Errorf("order by %q: direction must be ASC or DESC, got %q", o.Field, o.Direction)
	}
	return o.Field + " " + dir, nil
}
