package sqlgen

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// BuildBlend compiles a multi-platform blend query. Each platform gets a
// CTE named "<platform>_data" aggregating its metrics over the blend
// keys; the CTEs are combined with FULL OUTER JOINs anchored on the first
// platform (a star join, not a pairwise chain), and the final SELECT
// COALESCEs each key across all participants so rows present in only one
// source are kept.
func (g *Generator) BuildBlend(cfg BlendConfig) (string, error) {
	if len(cfg.Platforms) < 2 {
		return "", fmt.Errorf("%w: blending requires at least 2 platforms, got %d", ErrIncompatibleBlend, len(cfg.Platforms))
	}
	if len(cfg.BlendOn) == 0 {
		return "", fmt.Errorf("%w: no blend keys given", ErrIncompatibleBlend)
	}

	anchor := cfg.Platforms[0]

	// Every blend key must be a join-key dimension on every participant,
	// and shared between the anchor and each non-anchor platform.
	for _, pid := range cfg.Platforms {
		for _, key := range cfg.BlendOn {
			d, err := g.reg.Dimension(pid, key)
			if err != nil {
				return "", err
			}
			if !d.JoinKey {
				return "", fmt.Errorf("%w: %q is not a join key on platform %q", ErrIncompatibleBlend, key, pid)
			}
		}
	}
	for _, pid := range cfg.Platforms[1:] {
		shared := g.reg.JoinKeys(anchor, pid)
		for _, key := range cfg.BlendOn {
			if !contains(shared, key) {
				return "", fmt.Errorf("%w: platforms %q and %q do not share join key %q", ErrIncompatibleBlend, anchor, pid, key)
			}
		}
	}

	conds, err := whereConditions(cfg.ClientID, cfg.DateRange, cfg.Filters)
	if err != nil {
		return "", err
	}

	ctes := make([]string, 0, len(cfg.Platforms))
	for _, pid := range cfg.Platforms {
		cte, err := g.blendCTE(pid, cfg.BlendOn, cfg.Metrics[pid], conds)
		if err != nil {
			return "", err
		}
		ctes = append(ctes, cte)
	}

	cols := make([]string, 0, len(cfg.BlendOn)+len(cfg.Calculated))
	for _, key := range cfg.BlendOn {
		refs := make([]string, len(cfg.Platforms))
		for i, pid := range cfg.Platforms {
			refs[i] = cteName(pid) + "." + key
		}
		cols = append(cols, fmt.Sprintf("COALESCE(%s) AS %s", strings.Join(refs, ", "), key))
	}
	for _, pid := range cfg.Platforms {
		p, err := g.reg.Platform(pid)
		if err != nil {
			return "", err
		}
		for _, mid := range cfg.Metrics[pid] {
			cols = append(cols, fmt.Sprintf("%s.%s_%s", cteName(pid), pid, p.MetricAlias(mid)))
		}
	}
	cols = append(cols, cfg.Calculated...)

	b := sq.Select(cols...).From(cteName(anchor))
	for _, pid := range cfg.Platforms[1:] {
		on := make([]string, len(cfg.BlendOn))
		for i, key := range cfg.BlendOn {
			on[i] = fmt.Sprintf("%s.%s = %s.%s", cteName(anchor), key, cteName(pid), key)
		}
		b = b.JoinClause(fmt.Sprintf("FULL OUTER JOIN %s ON %s", cteName(pid), strings.Join(on, " AND ")))
	}
	b = b.Prefix("WITH " + strings.Join(ctes, ", "))

	if cfg.Limit > 0 {
		b = b.Limit(uint64(cfg.Limit))
	}

	sqlText, _, err := b.ToSql()
	if err != nil {
		return "", fmt.Errorf("assembling blend query: %w", err)
	}
	return sqlText, nil
}

// blendCTE renders one platform's CTE: blend keys aliased to their shared
// ids plus the platform's metrics aggregated and aliased
// "<platform>_<metric>", grouped by the blend keys.
func (g *Generator) blendCTE(platformID string, blendOn, metricIDs []string, conds []string) (string, error) {
	p, err := g.reg.Platform(platformID)
	if err != nil {
		return "", err
	}

	cols := make([]string, 0, len(blendOn)+len(metricIDs))
	for _, key := range blendOn {
		d, err := g.reg.Dimension(platformID, key)
		if err != nil {
			return "", err
		}
		cols = append(cols, fmt.Sprintf("%s AS %s", d.SQL, key))
	}
	for _, mid := range metricIDs {
		m, err := g.reg.Metric(platformID, mid)
		if err != nil {
			return "", err
		}
		cols = append(cols, fmt.Sprintf("%s(%s) AS %s_%s", m.Aggregation, m.SQL, platformID, p.MetricAlias(mid)))
	}

	b := sq.Select(cols...).From(p.Table)
	for _, c := range conds {
		b = b.Where(c)
	}
	b = b.GroupBy(blendOn...)

	body, _, err := b.ToSql()
	if err != nil {
		return "", fmt.Errorf("assembling CTE for platform %q: %w", platformID, err)
	}
	return fmt.Sprintf("%s AS (%s)", cteName(platformID), body), nil
}

func cteName(platformID string) string {
	return platformID + "_data"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
