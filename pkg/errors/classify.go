package errors

import (
	"strings"
	"time"
)

// Category buckets a delivery failure for retry decisions and logging.
type Category string

const (
	CategoryAuthentication Category = "authentication"
	CategoryNetwork        Category = "network"
	CategoryRateLimit      Category = "rate_limit"
	CategoryValidation     Category = "validation"
	CategoryPermission     Category = "permission"
	CategoryQuota          Category = "quota"
	CategoryServer         Category = "server"
	CategoryUnknown        Category = "unknown"
)

// Keyword table checked in order; the first category whose keyword matches
// wins. Matching is case-insensitive substring over the error text, so both
// Google API error messages ("googleapi: Error 403: ...") and transport
// errors ("dial tcp ...: i/o timeout") land in the right bucket.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryAuthentication, []string{"unauthorized", "invalid_grant", "invalid credentials", "401", "token expired", "could not authenticate"}},
	{CategoryRateLimit, []string{"429", "too many requests", "rate limit"}},
	{CategoryQuota, []string{"quota exceeded", "quotaexceeded", "usage limit"}},
	{CategoryPermission, []string{"403", "forbidden", "permission denied", "insufficient permission"}},
	{CategoryValidation, []string{"invalid value", "invalid range", "unable to parse range", "400", "bad request"}},
	{CategoryServer, []string{"500", "501", "502", "503", "504", "internal error", "backend error", "service unavailable"}},
	{CategoryNetwork, []string{"timeout", "timed out", "econnreset", "econnrefused", "connection reset", "connection refused", "no such host", "broken pipe", "eof", "network is unreachable"}},
}

// Classify buckets err into the fixed taxonomy. A nil error is unknown.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	msg := strings.ToLower(err.Error())
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(msg, kw) {
				return entry.category
			}
		}
	}
	return CategoryUnknown
}

// IsRetryable reports whether retrying a failure of this category can
// plausibly succeed. Authentication, validation and permission failures need
// human intervention; retrying them only burns quota.
func IsRetryable(category Category) bool {
	switch category {
	case CategoryNetwork, CategoryRateLimit, CategoryServer, CategoryQuota:
		return true
	default:
		return false
	}
}

// NextDelay returns the backoff before the given retry attempt (1-based).
// Exponential with a 1s base; rate limit windows are coarser than transient
// network blips, so that category starts at 5s.
func NextDelay(attempt int, category Category) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := time.Second
	if category == CategoryRateLimit {
		base = 5 * time.Second
	}
	return base << uint(attempt-1)
}
