package staterules

import (
	"sort"
	"strings"
)

// stateNames maps full state names (lower-case) to 2-letter codes.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "district of columbia": "DC", "florida": "FL",
	"georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY",
	"louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT",
	"nebraska": "NE", "nevada": "NV", "new hampshire": "NH",
	"new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA",
	"rhode island": "RI", "south carolina": "SC", "south dakota": "SD",
	"tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

// namesByLength holds state names longest-first so that substring matching
// never resolves "west virginia" to Virginia.
var namesByLength = func() []string {
	names := make([]string, 0, len(stateNames))
	for name := range stateNames {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}()

// validCodes is the set of known 2-letter codes.
var validCodes = func() map[string]struct{} {
	codes := make(map[string]struct{}, len(stateNames))
	for _, code := range stateNames {
		codes[code] = struct{}{}
	}
	return codes
}()

// ExtractStateCode normalizes free-form state input to a 2-letter code.
// It accepts codes in any case, full state names, and strings containing a
// state name. Returns ("", false) when nothing recognizable is found.
func ExtractStateCode(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	if len(trimmed) == 2 {
		code := strings.ToUpper(trimmed)
		if _, ok := validCodes[code]; ok {
			return code, true
		}
		return "", false
	}

	lowered := strings.ToLower(trimmed)
	if code, ok := stateNames[lowered]; ok {
		return code, true
	}

	// Substring fallback, longest names first.
	for _, name := range namesByLength {
		if strings.Contains(lowered, name) {
			return stateNames[name], true
		}
	}

	return "", false
}
