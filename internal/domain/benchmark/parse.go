package benchmark

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenPolicy decides what happens to malformed tokens in benchmark id text.
type TokenPolicy string

// Token policies.
const (
	// PolicyDrop silently discards malformed tokens.
	PolicyDrop TokenPolicy = "drop"
	// PolicyReject fails on the first malformed token.
	PolicyReject TokenPolicy = "reject"
)

// ParseTokenPolicy maps configuration text to a TokenPolicy. Empty means drop.
func ParseTokenPolicy(s string) (TokenPolicy, error) {
	switch TokenPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyDrop:
		return PolicyDrop, nil
	case PolicyReject:
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown benchmark token policy %q", s)
	}
}

// ParseIDs splits comma-separated text into positive integer ids, keeping
// their order. Blank tokens are always ignored. Duplicates are kept so that
// NewSet can report them.
func ParseIDs(raw string, policy TokenPolicy) ([]int64, error) {
	var ids []int64
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, ok := parsePositive(tok)
		if !ok {
			if policy == PolicyReject {
				return nil, &InvalidBenchmarkError{Reason: ReasonMalformed, Token: tok}
			}
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parsePositive accepts only ASCII digits, so signs and spaces are malformed.
func parsePositive(tok string) (int64, bool) {
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(tok, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
