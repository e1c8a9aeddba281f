package pricing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is an amount of money in integer minor currency units.
//
// Order payloads cross a serialization boundary and may carry prices as
// numbers, numeric strings, null, or garbage. Anything that does not parse
// as a finite number decodes to zero instead of failing the whole order.
type Cents int64

func (c *Cents) UnmarshalJSON(data []byte) error {
	*c = Cents(looseNumber(data))
	return nil
}

// Count is an item quantity with the same lenient decoding as Cents.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count(looseNumber(data))
	return nil
}

func looseNumber(data []byte) int64 {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return 0
	}

	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return 0
		}
		s = strings.TrimSpace(str)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	// ParseFloat accepts NaN, infinities and values beyond int64; the
	// conversion below would turn those into MinInt64, not zero.
	if math.IsNaN(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

// Format renders the amount as {symbol}{units}.{hundredths} using integer
// arithmetic only, e.g. Format(Cents(3799), "$") == "$37.99".
func Format(c Cents, symbol string) string {
	if c < 0 {
		return fmt.Sprintf("%s-%d.%02d", symbol, -c/100, -c%100)
	}
	return fmt.Sprintf("%s%d.%02d", symbol, c/100, c%100)
}
