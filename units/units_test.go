package units

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 NEAR", "1000000000000000000000000"},
		{"10.5 NEAR", "10500000000000000000000000"},
		{"0.000001 near", "1000000000000000000"},
		{"1 yocto", "1"},
		{"250 yocto", "250"},
		{"0 NEAR", "0"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, mustBig(t, tt.want), got, tt.input)
	}
}

func TestParseAmountRejectsBareNumbers(t *testing.T) {
	for _, input := range []interface{}{"10", 10, int64(10), uint64(10), big.NewInt(10)} {
		_, err := ParseAmount(input)
		require.Error(t, err, "%v", input)
		var ambiguous *ErrAmbiguousAmount
		assert.ErrorAs(t, err, &ambiguous, "%v", input)
		assert.Contains(t, err.Error(), "did you mean")
	}
}

func TestParseAmountRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "-1 NEAR", "1 ETH", "1  NEAR", "1 NEAR extra", "x NEAR"} {
		_, err := ParseAmount(input)
		assert.Error(t, err, input)
	}
	// more fractional digits than yoctoNEAR can represent
	_, err := ParseAmount("0.0000000000000000000000001 NEAR")
	assert.Error(t, err)
}

func TestParseGas(t *testing.T) {
	got, err := ParseGas("30 Tgas")
	require.NoError(t, err)
	assert.Equal(t, uint64(30_000_000_000_000), got)

	got, err = ParseGas("0.5 tgas")
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000_000_000), got)

	got, err = ParseGas("100 gas")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got)

	//  bare integers are unambiguous for gas
	got, err = ParseGas(uint64(300))
	require.NoError(t, err)
	assert.Equal(t, uint64(300), got)

	got, err = ParseGas("300")
	require.NoError(t, err)
	assert.Equal(t, uint64(300), got)
}

func TestParseGasRejectsBadInput(t *testing.T) {
	_, err := ParseGas(-1)
	assert.Error(t, err)
	_, err = ParseGas("30 NEAR")
	assert.Error(t, err)
	_, err = ParseGas("99999999999999999999999999 Tgas")
	assert.Error(t, err)
}

func TestFormatRoundTrip(t *testing.T) {
	for _, input := range []string{"10.5 NEAR", "1 NEAR", "0.000001 NEAR"} {
		parsed, err := ParseAmount(input)
		require.NoError(t, err)
		reparsed, err := ParseAmount(FormatNear(parsed))
		require.NoError(t, err)
		assert.Equal(t, parsed, reparsed, input)
	}

	gas, err := ParseGas("30 Tgas")
	require.NoError(t, err)
	assert.Equal(t, "30 Tgas", FormatGas(gas))
}
