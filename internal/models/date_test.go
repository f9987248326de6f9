package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, Date("2025-08-15"), NormalizeDate("2025-08-15T10:30:00Z"))
	assert.Equal(t, Date("2025-08-15"), NormalizeDate("2025-08-15"))
	assert.Equal(t, Date("2025-08-15"), NormalizeDate("2025-08-15T23:59:59-05:00"))
	assert.Equal(t, Date(""), NormalizeDate(""))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan([]byte("2025-01-02")))
	assert.Equal(t, Date("2025-01-02"), d)

	require.NoError(t, d.Scan(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Date("2025-03-04"), d)

	require.NoError(t, d.Scan(nil))
	assert.Equal(t, Date(""), d)

	require.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := Date("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = Date("2025-08-15").Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-08-15", v)
}
