// Package units converts human readable NEAR amount and gas strings
// into exact integer base units (yoctoNEAR and gas).
package units

import (
	"fmt"
	"math/big"
	"strings"
)

// scaling factors of the supported display units
const (
	NearDecimals = 24 // 1 NEAR = 10^24 yoctoNEAR
	TgasDecimals = 12 // 1 Tgas = 10^12 gas
)

var (
	yoctoPerNear = new(big.Int).Exp(big.NewInt(10), big.NewInt(NearDecimals), nil)
	gasPerTgas   = new(big.Int).Exp(big.NewInt(10), big.NewInt(TgasDecimals), nil)

	maxUint64 = new(big.Int).SetUint64(^uint64(0))
)

// ErrAmbiguousAmount is wrapped into the error returned for a bare
// numeric amount. There is no safe default interpretation between
// NEAR and yoctoNEAR, so the caller must disambiguate.
type ErrAmbiguousAmount struct {
	Input string
}

func (e *ErrAmbiguousAmount) Error() string {
	return fmt.Sprintf("ambiguous amount %q: did you mean \"%s NEAR\" or \"%s yocto\"?", e.Input, e.Input, e.Input)
}

// ParseAmount parse an amount into yoctoNEAR base units.
//
// Accepted inputs are strings of the form "<decimal> NEAR" or
// "<integer> yocto" (unit is case insensitive, single space separator).
// Bare numbers of any type are rejected with ErrAmbiguousAmount.
func ParseAmount(input interface{}) (*big.Int, error) {
	str, ok := input.(string)
	if !ok {
		switch input.(type) {
		case int, int64, uint64, *big.Int:
			return nil, &ErrAmbiguousAmount{Input: fmt.Sprintf("%v", input)}
		default:
			return nil, fmt.Errorf("unsupported amount type %T", input)
		}
	}
	number, unit, err := splitUnit(str)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(unit) {
	case "near":
		return parseDecimal(number, NearDecimals)
	case "yocto", "yoctonear":
		return parseDecimal(number, 0)
	case "":
		return nil, &ErrAmbiguousAmount{Input: number}
	default:
		return nil, fmt.Errorf("unknown amount unit %q in %q", unit, str)
	}
}

// ParseGas parse a gas value into base gas units.
//
// Accepted inputs are strings of the form "<decimal> Tgas" or
// "<integer> gas", or a bare unsigned integer which is treated as
// already being base unit gas.
func ParseGas(input interface{}) (uint64, error) {
	var str string
	switch v := input.(type) {
	case string:
		str = v
	case uint64:
		return v, nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("negative gas value %v", v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("negative gas value %v", v)
		}
		return uint64(v), nil
	case *big.Int:
		if v.Sign() < 0 || v.Cmp(maxUint64) > 0 {
			return 0, fmt.Errorf("gas value %v out of range", v)
		}
		return v.Uint64(), nil
	default:
		return 0, fmt.Errorf("unsupported gas type %T", input)
	}

	number, unit, err := splitUnit(str)
	if err != nil {
		return 0, err
	}
	var result *big.Int
	switch strings.ToLower(unit) {
	case "tgas":
		result, err = parseDecimal(number, TgasDecimals)
	case "gas", "":
		result, err = parseDecimal(number, 0)
	default:
		return 0, fmt.Errorf("unknown gas unit %q in %q", unit, str)
	}
	if err != nil {
		return 0, err
	}
	if result.Cmp(maxUint64) > 0 {
		return 0, fmt.Errorf("gas value %q out of range", str)
	}
	return result.Uint64(), nil
}

// FormatNear format yoctoNEAR base units as a "<decimal> NEAR" string,
// trimming trailing fractional zeros.
func FormatNear(yocto *big.Int) string {
	return formatScaled(yocto, yoctoPerNear, NearDecimals) + " NEAR"
}

// FormatGas format base unit gas as a "<decimal> Tgas" string.
func FormatGas(gas uint64) string {
	return formatScaled(new(big.Int).SetUint64(gas), gasPerTgas, TgasDecimals) + " Tgas"
}

func splitUnit(str string) (number, unit string, err error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return "", "", fmt.Errorf("empty value")
	}
	parts := strings.Split(str, " ")
	switch len(parts) {
	case 1:
		return parts[0], "", nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", fmt.Errorf("malformed value %q, want \"<number> <unit>\"", str)
	}
}

// parseDecimal convert a decimal string to an integer scaled by
// 10^decimals, using big integer arithmetic only. Floating point would
// lose precision at yoctoNEAR scale.
func parseDecimal(number string, decimals int) (*big.Int, error) {
	if number == "" {
		return nil, fmt.Errorf("empty number")
	}
	if strings.HasPrefix(number, "-") {
		return nil, fmt.Errorf("negative value %q", number)
	}
	intPart := number
	fracPart := ""
	if idx := strings.Index(number, "."); idx >= 0 {
		intPart = number[:idx]
		fracPart = number[idx+1:]
		if strings.Contains(fracPart, ".") {
			return nil, fmt.Errorf("malformed number %q", number)
		}
	}
	if len(fracPart) > decimals {
		fracPart = strings.TrimRight(fracPart, "0")
		if len(fracPart) > decimals {
			return nil, fmt.Errorf("number %q has more than %v fractional digits", number, decimals)
		}
	}
	if intPart == "" {
		intPart = "0"
	}
	// pad the fraction out to the full scale
	digits := intPart + fracPart + strings.Repeat("0", decimals-len(fracPart))
	result, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", number)
	}
	return result, nil
}

func formatScaled(value, scale *big.Int, decimals int) string {
	quo, rem := new(big.Int).QuoRem(value, scale, new(big.Int))
	if rem.Sign() == 0 {
		return quo.String()
	}
	frac := rem.String()
	if len(frac) < decimals {
		frac = strings.Repeat("0", decimals-len(frac)) + frac
	}
	return quo.String() + "." + strings.TrimRight(frac, "0")
}
