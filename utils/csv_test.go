package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHeaderIndex(t *testing.T) {
	index := HeaderIndex([]string{"order_id", " order_date", "item_name "})
	assert.Equal(t, 0, index["order_id"])
	assert.Equal(t, 1, index["order_date"])
	assert.Equal(t, 2, index["item_name"])
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("order_date", "2023-06-15")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("order_date", "15/06/2023")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "order_date")
}

func TestParseDateTime(t *testing.T) {
	parsed, err := ParseDateTime("order_datetime", "2023-06-15 18:42:00")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2023, 6, 15, 18, 42, 0, 0, time.UTC), parsed)

	_, err = ParseDateTime("order_datetime", "2023-06-15T18:42:00Z")
	assert.Error(t, err)
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
		wantErr  bool
	}{
		{"True", true, false},
		{"False", false, false},
		{"true", true, false},
		{"FALSE", false, false},
		{"1", true, false},
		{"0", false, false},
		{"", false, false},
		{"yes", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			parsed, err := ParseBool("is_waste", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

func TestParseFloat(t *testing.T) {
	parsed, err := ParseFloat("actual_price", "14.99")
	assert.NoError(t, err)
	assert.Equal(t, 14.99, parsed)

	parsed, err = ParseFloat("actual_price", "")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, parsed)

	_, err = ParseFloat("actual_price", "$14.99")
	assert.Error(t, err)
}

func TestParseInt(t *testing.T) {
	parsed, err := ParseInt("hour", "18")
	assert.NoError(t, err)
	assert.Equal(t, 18, parsed)

	// Generator writes some integer columns in float form
	parsed, err = ParseInt("table_number", "13.0")
	assert.NoError(t, err)
	assert.Equal(t, 13, parsed)

	_, err = ParseInt("hour", "18.5")
	assert.Error(t, err)
}

func TestParseOptionalInt(t *testing.T) {
	parsed, err := ParseOptionalInt("table_number", "")
	assert.NoError(t, err)
	assert.Nil(t, parsed)

	parsed, err = ParseOptionalInt("table_number", "7")
	assert.NoError(t, err)
	if assert.NotNil(t, parsed) {
		assert.Equal(t, 7, *parsed)
	}
}

func TestParseOptionalString(t *testing.T) {
	assert.Nil(t, ParseOptionalString(""))
	assert.Nil(t, ParseOptionalString("  "))

	parsed := ParseOptionalString("Kitchen Error")
	if assert.NotNil(t, parsed) {
		assert.Equal(t, "Kitchen Error", *parsed)
	}
}
