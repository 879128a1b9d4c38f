package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/scan-diagrams/internal/errors"
)

// Comparator symbols understood by rules.
const (
	SymbolEqualFold = "~~"
	SymbolIs        = "is"
	SymbolBetween   = "between"
)

// Symbols describes each comparator symbol.
var Symbols = map[string]string{
	SymbolEqualFold: "case insensitive equals",
	SymbolIs:        "is of type",
	SymbolBetween:   "integer range between",
}

// Types are the value types accepted by the "is" comparator.
var Types = []string{"int", "roman", "str"}

// Rule labels a page: when the text found in SourceField satisfies the
// comparator, DestField is set to RuleResult.
//
//	center is int -> chapter "bar"
//	left_corner between 6 10 -> chapter "bar"
type Rule struct {
	SourceField      string   `json:"source_field" toml:"source_field"`
	ComparatorSymbol string   `json:"comparator_symbol" toml:"comparator_symbol"`
	ComparatorParams []string `json:"comparator_params" toml:"comparator_params"`
	DestField        string   `json:"dest_field" toml:"dest_field"`
	RuleResult       string   `json:"rule_result" toml:"rule_result"`
	RoughAmount      int      `json:"rough_amount" toml:"rough_amount"`
}

// Quote wraps s in double quotes unless it already has them. An empty
// string becomes "".
func Quote(s string) string {
	if s == "" {
		return `""`
	}
	if !strings.HasPrefix(s, `"`) {
		s = `"` + s
	}
	if !strings.HasSuffix(s, `"`) {
		s += `"`
	}
	return s
}

// RuleResultString returns the quoted rule result.
func (r Rule) RuleResultString() string {
	return Quote(r.RuleResult)
}

// ComparatorParamsString joins the parameters with spaces, quoting the first
// one for the case-insensitive comparator.
func (r Rule) ComparatorParamsString() string {
	params := append([]string(nil), r.ComparatorParams...)
	if r.ComparatorSymbol == SymbolEqualFold && len(params) > 0 {
		params[0] = Quote(params[0])
	}
	return strings.Join(params, " ")
}

// Param returns the i-th comparator parameter, or "" when absent.
func (r Rule) Param(i int) string {
	if i < 0 || i >= len(r.ComparatorParams) {
		return ""
	}
	return r.ComparatorParams[i]
}

// String renders the rule in its textual form.
func (r Rule) String() string {
	return fmt.Sprintf("%s %s %s -> %s %s",
		r.SourceField, r.ComparatorSymbol, r.ComparatorParamsString(), r.DestField, r.RuleResultString())
}

// Validate checks the comparator symbol and its parameters.
func (r Rule) Validate() error {
	if r.SourceField == "" {
		return errors.New(errors.ErrCodeInvalidInput, "rule has no source field")
	}

	switch r.ComparatorSymbol {
	case SymbolEqualFold:
		if len(r.ComparatorParams) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "%s takes 1 parameter, got %d", r.ComparatorSymbol, len(r.ComparatorParams))
		}
	case SymbolIs:
		if len(r.ComparatorParams) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "%s takes 1 parameter, got %d", r.ComparatorSymbol, len(r.ComparatorParams))
		}
		if !isKnownType(r.ComparatorParams[0]) {
			return errors.New(errors.ErrCodeInvalidInput, "unknown type %q, want one of %v", r.ComparatorParams[0], Types)
		}
	case SymbolBetween:
		if len(r.ComparatorParams) != 2 {
			return errors.New(errors.ErrCodeInvalidInput, "%s takes 2 parameters, got %d", r.ComparatorSymbol, len(r.ComparatorParams))
		}
		lo, hi, err := r.bounds()
		if err != nil {
			return err
		}
		if lo > hi {
			return errors.New(errors.ErrCodeInvalidInput, "range %d..%d is empty", lo, hi)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown comparator %q", r.ComparatorSymbol)
	}
	return nil
}

// Match reports whether value satisfies the rule's comparator.
//
// "between" is inclusive on both ends and accepts arabic or roman numerals.
// "is str" matches any non-empty value.
func (r Rule) Match(value string) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	value = strings.TrimSpace(value)

	switch r.ComparatorSymbol {
	case SymbolEqualFold:
		return strings.EqualFold(value, strings.Trim(r.ComparatorParams[0], `"`)), nil
	case SymbolIs:
		switch r.ComparatorParams[0] {
		case "int":
			_, err := strconv.Atoi(value)
			return err == nil, nil
		case "roman":
			_, ok := ParseRoman(value)
			return ok, nil
		default:
			return value != "", nil
		}
	default:
		lo, hi, _ := r.bounds()
		n, ok := parseNumber(value)
		if !ok {
			return false, nil
		}
		return lo <= n && n <= hi, nil
	}
}

func (r Rule) bounds() (int, int, error) {
	lo, err := strconv.Atoi(r.ComparatorParams[0])
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "range start %q is not an integer", r.ComparatorParams[0])
	}
	hi, err := strconv.Atoi(r.ComparatorParams[1])
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "range end %q is not an integer", r.ComparatorParams[1])
	}
	return lo, hi, nil
}

func isKnownType(t string) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

func parseNumber(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	return ParseRoman(s)
}

var romanValues = map[byte]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
}

// ParseRoman parses a canonical roman numeral, case-insensitively.
func ParseRoman(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	total := 0
	for i := 0; i < len(s); i++ {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0, false
		}
		if i+1 < len(s) && romanValues[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	if total <= 0 || FormatRoman(total) != s {
		return 0, false
	}
	return total, true
}

// FormatRoman formats n (1..3999) as a lowercase roman numeral.
func FormatRoman(n int) string {
	if n <= 0 || n >= 4000 {
		return ""
	}
	numerals := []struct {
		value  int
		symbol string
	}{
		{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
		{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
		{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
	}
	var b strings.Builder
	for _, num := range numerals {
		for n >= num.value {
			b.WriteString(num.symbol)
			n -= num.value
		}
	}
	return b.String()
}

// RuleSet is the set of rules and groups drawn or evaluated together.
type RuleSet struct {
	Rules  []Rule  `json:"rules" toml:"rules"`
	Groups []Group `json:"groups" toml:"groups"`
}

// Group returns the group called name.
func (rs *RuleSet) Group(name string) (*Group, bool) {
	for i := range rs.Groups {
		if rs.Groups[i].Name == name {
			return &rs.Groups[i], true
		}
	}
	return nil, false
}
