package module

import (
	"time"
)

// PrivateExecutionMetrics collects metrics of private function execution.
type PrivateExecutionMetrics interface {
	// TransactionSimulated reports a finished transaction simulation and
	// whether it failed.
	TransactionSimulated(duration time.Duration, failed bool)

	// FunctionExecuted reports a private function call that ran to completion
	// at the given depth of the call tree.
	FunctionExecuted(depth int, duration time.Duration)

	// OracleCalled reports a resolved oracle call.
	OracleCalled(oracle string, duration time.Duration)

	// OracleFailed reports an oracle call that returned an error.
	OracleFailed(oracle string)

	// PublicCallsEnqueued reports the public calls enqueued by one private call.
	PublicCallsEnqueued(count int)

	// LogsEmitted reports the serialized log bytes emitted by one private call.
	LogsEmitted(encryptedBytes int, unencryptedBytes int)

	// FunctionArtifactCacheHit tracks artifact lookups served from the cache.
	FunctionArtifactCacheHit()

	// FunctionArtifactCacheMiss tracks artifact lookups that went to the
	// contract database.
	FunctionArtifactCacheMiss()
}
