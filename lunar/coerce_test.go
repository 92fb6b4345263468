package lunar_test

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/lunar-calendar/lunar"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   int
		wantOK bool
	}{
		{name: "int", input: 12, want: 12, wantOK: true},
		{name: "int64", input: int64(-3), want: -3, wantOK: true},
		{name: "uint8", input: uint8(7), want: 7, wantOK: true},
		{name: "float_truncates", input: 10.9, want: 10, wantOK: true},
		{name: "negative_float_truncates", input: -3.7, want: -3, wantOK: true},
		{name: "numeric_text", input: "1993", want: 1993, wantOK: true},
		{name: "padded_text", input: "  -3 ", want: -3, wantOK: true},
		{name: "decimal_text", input: "10.0", want: 10, wantOK: true},
		{name: "exponent_text", input: "1e3", want: 1000, wantOK: true},
		{name: "hex_text", input: "0x10", want: 16, wantOK: true},
		{name: "leading_zero_is_decimal", input: "010", want: 10, wantOK: true},
		{name: "json_number", input: json.Number("42"), want: 42, wantOK: true},
		{name: "big_int", input: big.NewInt(2000), want: 2000, wantOK: true},
		{name: "big_float", input: big.NewFloat(5.5), want: 5, wantOK: true},
		{name: "huge_big_int_saturates", input: new(big.Int).Lsh(big.NewInt(1), 80), want: math.MaxInt, wantOK: true},
		{name: "huge_negative_big_int_saturates", input: new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 80)), want: math.MinInt, wantOK: true},
		{name: "huge_uint64_saturates", input: uint64(math.MaxUint64), want: math.MaxInt, wantOK: true},
		{name: "nil", input: nil, wantOK: false},
		{name: "empty_text", input: "", wantOK: false},
		{name: "garbage_text", input: "abc", wantOK: false},
		{name: "bool", input: true, wantOK: false},
		{name: "nan", input: math.NaN(), wantOK: false},
		{name: "inf", input: math.Inf(1), wantOK: false},
		{name: "struct", input: struct{}{}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lunar.ToNumber(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCoerce_DefaultsAbsentFields(t *testing.T) {
	f, err := lunar.Coerce(1993)
	require.NoError(t, err)
	assert.Equal(t, lunar.Fields{Year: 1993, Month: 1, Day: 1}, f)

	f, err = lunar.Coerce("1993", -3.0, json.Number("10"), nil, "abc", 7)
	require.NoError(t, err)
	assert.Equal(t, lunar.Fields{Year: 1993, Month: -3, Day: 10, Hour: 0, Minute: 0, Second: 7}, f)

	f, err = lunar.Coerce(2024, nil, 15)
	require.NoError(t, err)
	assert.Equal(t, lunar.Fields{Year: 2024, Month: 1, Day: 15}, f)
}

func TestCoerce_IgnoresExtraArguments(t *testing.T) {
	f, err := lunar.Coerce(2024, 2, 3, 4, 5, 6, 7, 8)
	require.NoError(t, err)
	assert.Equal(t, lunar.Fields{Year: 2024, Month: 2, Day: 3, Hour: 4, Minute: 5, Second: 6}, f)
}

func TestCoerce_RequiresYear(t *testing.T) {
	for _, args := range [][]any{{nil}, {"not a year", 1, 1}, {}} {
		_, err := lunar.Coerce(args...)
		require.Error(t, err)
		assert.True(t, lunar.IsOutOfRange(err))
		assert.Equal(t, "Invalid lunar year: missing. Valid range is from -1 to 9999.", err.Error())
	}
}

func TestCoerce_HugeBigIntNamesValue(t *testing.T) {
	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	_, err := lunar.Coerce(huge)
	require.Error(t, err)
	assert.True(t, lunar.IsOutOfRange(err))
	assert.Equal(t, "Invalid lunar year: 123456789012345678901234567890. Valid range is from -1 to 9999.", err.Error())

	_, err = lunar.Coerce(2024, new(big.Int).Neg(huge))
	require.Error(t, err)
	var fe *lunar.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "month", fe.Field)
	assert.Equal(t, "-123456789012345678901234567890", fe.Text)

	_, err = newCalendar().Lunar(huge)
	assert.True(t, lunar.IsOutOfRange(err))
}

func TestCoerce_DoesNotRangeCheck(t *testing.T) {
	f, err := lunar.Coerce(2024, 0, 99)
	require.NoError(t, err)
	assert.Error(t, f.Validate())
}
