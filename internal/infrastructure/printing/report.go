package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/realtyadmin/backend/internal/domain/audit"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ActivityReport is the data of an activity log PDF
type ActivityReport struct {
	Title       string
	CompanyName string
	GeneratedAt time.Time
	GeneratedBy string
	// Criteria lists the applied filters as "label: value"
	Criteria []string
	Entries  []audit.ActivityLog
	// Total is the number of matching entries, which may exceed len(Entries)
	Total    int64
	Location *time.Location
}

var titleCaser = cases.Title(language.English)

var reportFuncs = template.FuncMap{
	"title": func(s string) string {
		return titleCaser.String(strings.ReplaceAll(s, "_", " "))
	},
	"dash": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "-"
		}
		return s
	},
}

var activityReportTemplate = template.Must(template.New("activity_report").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 10px; color: #222; }
h1 { font-size: 16px; margin: 0 0 4px 0; }
.meta { color: #666; margin-bottom: 10px; }
.criteria span { display: inline-block; margin-right: 12px; }
table { width: 100%; border-collapse: collapse; }
th { background: #1f4e79; color: #fff; text-align: left; padding: 4px; }
td { border-bottom: 1px solid #ddd; padding: 4px; vertical-align: top; }
tr:nth-child(even) td { background: #f5f7fa; }
.empty { text-align: center; color: #888; padding: 20px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">{{if .CompanyName}}{{.CompanyName}} &middot; {{end}}Generated {{.Generated}}{{if .GeneratedBy}} by {{.GeneratedBy}}{{end}} &middot; {{.Summary}}</div>
{{if .Criteria}}<div class="criteria meta">{{range .Criteria}}<span>{{.}}</span>{{end}}</div>{{end}}
<table>
<thead><tr><th>Date / Time</th><th>User</th><th>Role</th><th>Action</th><th>Entity</th><th>Description</th><th>IP</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Time}}</td><td>{{.Actor}}</td><td>{{title .Role}}</td><td>{{title .Action}}</td><td>{{dash .Entity}}</td><td>{{dash .Description}}</td><td>{{dash .IP}}</td></tr>
{{else}}<tr><td colspan="7" class="empty">No activity matches the selected filters.</td></tr>
{{end}}</tbody>
</table>
</body>
</html>`))

type reportRow struct {
	Time        string
	Actor       string
	Role        string
	Action      string
	Entity      string
	Description string
	IP          string
}

type reportView struct {
	Title       string
	CompanyName string
	Generated   string
	GeneratedBy string
	Summary     string
	Criteria    []string
	Rows        []reportRow
}

const reportTimeLayout = "2006-01-02 15:04"

// RenderActivityReport renders the report as a standalone HTML document
func RenderActivityReport(r ActivityReport) (string, error) {
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now()
	}
	if r.Title == "" {
		r.Title = "Activity Log Report"
	}

	view := reportView{
		Title:       r.Title,
		CompanyName: r.CompanyName,
		Generated:   r.GeneratedAt.In(loc).Format(reportTimeLayout),
		GeneratedBy: r.GeneratedBy,
		Summary:     summaryLine(len(r.Entries), r.Total),
		Criteria:    r.Criteria,
		Rows:        make([]reportRow, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		view.Rows = append(view.Rows, reportRow{
			Time:        e.Timestamp.In(loc).Format(reportTimeLayout),
			Actor:       e.ActorName,
			Role:        e.Role,
			Action:      string(e.Action),
			Entity:      e.EntityType,
			Description: e.Description,
			IP:          e.IP,
		})
	}

	var buf bytes.Buffer
	if err := activityReportTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render activity report: %w", err)
	}
	return buf.String(), nil
}

// ReportFooter renders a page counter footer
func ReportFooter() string {
	return `<div style="font-size:8px;width:100%;text-align:center;color:#888;">Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
}

func summaryLine(shown int, total int64) string {
	if total > int64(shown) {
		return fmt.Sprintf("showing %d of %d entries", shown, total)
	}
	if shown == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", shown)
}
