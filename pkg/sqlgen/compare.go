package sqlgen

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// PreviousPeriod derives the comparison window for a date range: it ends
// the day before r starts and spans the same number of days, measured as
// the difference in calendar days between start and end (an exclusive
// count — Oct 1..Oct 31 measures 30). The result is contiguous with and
// never overlaps r.
func PreviousPeriod(r DateRange) (DateRange, error) {
	start, err := time.Parse(dateLayout, r.Start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidDateRange, r.Start)
	}
	end, err := time.Parse(dateLayout, r.End)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidDateRange, r.End)
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("%w: end %q precedes start %q", ErrInvalidDateRange, r.End, r.Start)
	}

	days := int(end.Sub(start).Hours() / 24)
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -days)

	return DateRange{
		Start: prevStart.Format(dateLayout),
		End:   prevEnd.Format(dateLayout),
	}, nil
}

// BuildComparison compiles a period-over-period query for one metric: two
// single-row CTEs aggregating the metric over each period, cross-joined,
// with percent change computed against a NULLIF-guarded divisor so a zero
// previous value yields NULL instead of a division error.
func (g *Generator) BuildComparison(platformID, metricID string, current, previous DateRange) (string, error) {
	p, err := g.reg.Platform(platformID)
	if err != nil {
		return "", err
	}
	m, err := g.reg.Metric(platformID, metricID)
	if err != nil {
		return "", err
	}

	currentCTE, err := periodCTE(p.Table, string(m.Aggregation), m.SQL, current)
	if err != nil {
		return "", err
	}
	previousCTE, err := periodCTE(p.Table, string(m.Aggregation), m.SQL, previous)
	if err != nil {
		return "", err
	}

	b := sq.Select(
		"current_period.value AS current_value",
		"previous_period.value AS previous_value",
		"((current_period.value - previous_period.value) / NULLIF(previous_period.value, 0)) * 100 AS percent_change",
	).
		From("current_period").
		CrossJoin("previous_period").
		Prefix(fmt.Sprintf("WITH current_period AS (%s), previous_period AS (%s)", currentCTE, previousCTE))

	sqlText, _, err := b.ToSql()
	if err != nil {
		return "", fmt.Errorf("assembling comparison query for %s.%s: %w", platformID, metricID, err)
	}
	return sqlText, nil
}

// periodCTE renders one single-row aggregation over a date range.
func periodCTE(table, agg, metricSQL string, r DateRange) (string, error) {
	cond, err := dateRangeCondition(r)
	if err != nil {
		return "", err
	}
	body, _, err := sq.Select(fmt.Sprintf("%s(%s) AS value", agg, metricSQL)).
		From(table).
		Where(cond).
		ToSql()
	if err != nil {
		return "", err
	}
	return body, nil
}
