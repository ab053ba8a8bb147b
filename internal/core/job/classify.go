package job

import "strings"

// classifyError rewrites known transient failure text from the extraction
// tool into a retry-oriented message. This is best-effort string matching:
// yt-dlp only exposes free-text errors, so anything unrecognized passes
// through verbatim.
func classifyError(msg string) string {
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "sign in to confirm"),
		strings.Contains(lower, "not a bot"),
		strings.Contains(lower, "captcha"),
		strings.Contains(lower, "http error 403"):
		return "The platform blocked this request as automated traffic. Wait a moment and retry, or configure a cookie file."
	case strings.Contains(lower, "timed out"),
		strings.Contains(lower, "timeout"),
		strings.Contains(lower, "connection reset"):
		return "The download timed out. Check connectivity and retry."
	default:
		return msg
	}
}
