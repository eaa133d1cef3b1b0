package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStorage(t *testing.T) {
	m := NewMemoryObjectStorage("")
	ctx := context.Background()

	require.NoError(t, m.Upload(ctx, "exports/a.pdf", []byte("%PDF"), "application/pdf"))

	obj, ok := m.Get("exports/a.pdf")
	require.True(t, ok)
	assert.Equal(t, "application/pdf", obj.ContentType)

	exists, err := m.Exists(ctx, "exports/a.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	link, _, err := m.DownloadURL(ctx, "exports/a.pdf", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "memory://exports/exports/a.pdf?expires="))

	require.NoError(t, m.Delete(ctx, "exports/a.pdf"))
	exists, err = m.Exists(ctx, "exports/a.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, m.Upload(ctx, "", nil, ""), ErrEmptyKey)
}

func TestExportKey(t *testing.T) {
	at := time.Date(2026, 3, 9, 14, 5, 6, 0, time.UTC)

	assert.Equal(t, "exports/activity_log/2026/03/20260309-140506-activity_log.pdf",
		ExportKey("activity_log", "activity_log.pdf", at))
	assert.Equal(t, "exports/leave/2026/03/20260309-140506-leave_summary_March_.xlsx",
		ExportKey("leave", "leave summary (March).xlsx", at))
	assert.Equal(t, "exports/x/2026/03/20260309-140506-export", ExportKey("x", "  ", at))
}
