package llm

import (
	"errors"
	"strings"
)

// ErrVisionUnsupported is returned by providers without image analysis support.
var ErrVisionUnsupported = errors.New("vision analysis is not supported by this provider")

// FailureKind buckets provider call failures for user-facing messaging.
// Classification affects only the message shown, never retry behavior:
// failed calls are not retried automatically.
type FailureKind string

const (
	// FailureQuota covers rate limiting and exhausted quotas
	FailureQuota FailureKind = "quota"
	// FailureNetwork covers connectivity and timeout errors
	FailureNetwork FailureKind = "network"
	// FailurePermission covers invalid or unauthorized credentials
	FailurePermission FailureKind = "permission"
	// FailureGeneric covers everything else
	FailureGeneric FailureKind = "generic"
)

// quota-related fragments checked before permission: "429" style errors
// often also mention the API key.
var (
	quotaFragments      = []string{"quota", "resource exhausted", "resource_exhausted", "rate limit", "ratelimit", "429", "too many requests"}
	permissionFragments = []string{"api key", "api_key", "unauthorized", "unauthenticated", "permission", "forbidden", "401", "403", "invalid authentication"}
	networkFragments    = []string{"network", "connection", "dial tcp", "timeout", "deadline exceeded", "no such host", "unreachable", "连接", "tls"}
)

// ClassifyFailure maps a provider error onto a FailureKind by message
// content. Provider SDKs do not expose stable error types across
// transports, so string matching is the common denominator.
func ClassifyFailure(err error) FailureKind {
	if err == nil {
		return FailureGeneric
	}

	msg := strings.ToLower(err.Error())

	for _, fragment := range quotaFragments {
		if strings.Contains(msg, fragment) {
			return FailureQuota
		}
	}
	for _, fragment := range permissionFragments {
		if strings.Contains(msg, fragment) {
			return FailurePermission
		}
	}
	for _, fragment := range networkFragments {
		if strings.Contains(msg, fragment) {
			return FailureNetwork
		}
	}

	return FailureGeneric
}

// FailureMessage returns the user-facing message for a failure bucket.
func FailureMessage(kind FailureKind) string {
	switch kind {
	case FailureQuota:
		return "The AI provider quota is exhausted. Wait a moment and run the optimization again."
	case FailureNetwork:
		return "Could not reach the AI provider. Check connectivity and run the optimization again."
	case FailurePermission:
		return "The AI provider rejected the configured credentials. Check the API key in settings."
	default:
		return "The AI provider returned an error. Run the optimization again."
	}
}
