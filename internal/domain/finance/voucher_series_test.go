package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVoucherSeries(t *testing.T) {
	t.Run("creates series with defaults", func(t *testing.T) {
		s, err := NewVoucherSeries("cv", "Check vouchers", 1, 100, 0)
		require.NoError(t, err)
		assert.Equal(t, "CV", s.Prefix)
		assert.Equal(t, 6, s.PadWidth)
		assert.Equal(t, int64(100), s.Remaining())
	})

	t.Run("validates prefix and range", func(t *testing.T) {
		_, err := NewVoucherSeries("C1", "", 1, 10, 0)
		assert.Error(t, err)
		_, err = NewVoucherSeries("CV", "", 0, 10, 0)
		assert.Error(t, err)
		_, err = NewVoucherSeries("CV", "", 10, 9, 0)
		assert.Error(t, err)
		_, err = NewVoucherSeries("CV", "", 1, 9, 20)
		assert.Error(t, err)
	})
}

func TestVoucherSeries_IssueNext(t *testing.T) {
	s, err := NewVoucherSeries("JV", "", 9, 10, 4)
	require.NoError(t, err)

	n, err := s.IssueNext()
	require.NoError(t, err)
	assert.Equal(t, "JV-0009", n)

	n, err = s.IssueNext()
	require.NoError(t, err)
	assert.Equal(t, "JV-0010", n)
	assert.Equal(t, VoucherSeriesStatusExhausted, s.Status)

	_, err = s.IssueNext()
	assert.Error(t, err)

	t.Run("extending an exhausted series reactivates it", func(t *testing.T) {
		require.NoError(t, s.Update("more", 20))
		assert.Equal(t, VoucherSeriesStatusActive, s.Status)
		n, err := s.IssueNext()
		require.NoError(t, err)
		assert.Equal(t, "JV-0011", n)
	})

	t.Run("range cannot shrink below issued numbers", func(t *testing.T) {
		assert.Error(t, s.Update("", 10))
	})

	t.Run("inactive series does not issue", func(t *testing.T) {
		require.NoError(t, s.Deactivate())
		_, err := s.IssueNext()
		assert.Error(t, err)
		require.NoError(t, s.Activate())
		assert.Equal(t, VoucherSeriesStatusActive, s.Status)
	})
}

func TestFundReference(t *testing.T) {
	f, err := NewFundReference(" gen-01 ", "General Fund", "")
	require.NoError(t, err)
	assert.Equal(t, "GEN-01", f.Code)
	assert.True(t, f.IsActive())

	require.NoError(t, f.Deactivate())
	assert.Error(t, f.Deactivate())
	require.NoError(t, f.Activate())

	_, err = NewFundReference("", "x", "")
	assert.Error(t, err)
	_, err = NewFundReference("OK", "  ", "")
	assert.Error(t, err)
}
