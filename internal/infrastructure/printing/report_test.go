package printing

import (
	"strings"
	"testing"
	"time"

	"github.com/realtyadmin/backend/internal/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderActivityReport(t *testing.T) {
	at := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	report := ActivityReport{
		CompanyName: "Acme Realty",
		GeneratedAt: at,
		GeneratedBy: "hr.head",
		Criteria:    []string{"Action: update", "From: 2026-05-01"},
		Entries: []audit.ActivityLog{
			{ActorName: "maria", Role: "super_accountant", Action: audit.ActionStatus, EntityType: "VoucherSeries",
				Description: "Deactivated series <OR>", IP: "10.0.0.5", Timestamp: at},
			{ActorName: "system", Role: "", Action: audit.ActionCreate, Timestamp: at.Add(-time.Hour)},
		},
		Total: 5,
	}

	html, err := RenderActivityReport(report)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Activity Log Report</title>")
	assert.Contains(t, html, "Acme Realty")
	assert.Contains(t, html, "Generated 2026-05-04 09:30 by hr.head")
	assert.Contains(t, html, "showing 2 of 5 entries")
	assert.Contains(t, html, "<span>Action: update</span>")
	assert.Contains(t, html, "<td>Super Accountant</td><td>Status Change</td>")
	assert.Contains(t, html, "Deactivated series &lt;OR&gt;")
	assert.Contains(t, html, "<td>-</td>")
	assert.Equal(t, 2, strings.Count(html, "<tr><td>"))
}

func TestRenderActivityReport_Empty(t *testing.T) {
	html, err := RenderActivityReport(ActivityReport{Title: "Logins"})
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Logins</h1>")
	assert.Contains(t, html, "No activity matches the selected filters.")
	assert.Contains(t, html, "0 entries")
}

func TestRenderActivityReport_Location(t *testing.T) {
	manila := time.FixedZone("PHT", 8*3600)
	at := time.Date(2026, 5, 4, 23, 0, 0, 0, time.UTC)
	html, err := RenderActivityReport(ActivityReport{
		GeneratedAt: at,
		Location:    manila,
		Entries:     []audit.ActivityLog{{ActorName: "a", Action: audit.ActionLogin, Timestamp: at}},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "<td>2026-05-05 07:00</td>")
	assert.Contains(t, html, "1 entry")
}
