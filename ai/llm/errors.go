package llm

import "strings"

// Humanize maps a provider failure to a message fit for end users. Quota
// and balance failures get specific wording; anything else keeps a generic
// note so raw API errors never leak into the answer stream.
func Humanize(err error, provider string) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "insufficient balance"), strings.Contains(lower, "insufficient_quota"):
		return "The " + provider + " account has insufficient balance. Please add credits and try again."
	case strings.Contains(lower, "429"), strings.Contains(lower, "rate limit"), strings.Contains(lower, "quota"):
		return "The " + provider + " model is rate limited right now. Please try again in a moment."
	case strings.Contains(lower, "401"), strings.Contains(lower, "unauthorized"), strings.Contains(lower, "invalid api key"):
		return "The " + provider + " credentials were rejected. Please check the configured API key."
	case strings.Contains(lower, "context deadline exceeded"), strings.Contains(lower, "timeout"):
		return "The " + provider + " model took too long to respond."
	default:
		return "The " + provider + " model could not generate a response."
	}
}
