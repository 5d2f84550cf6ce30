package metrics

import (
	"time"

	"github.com/zkrollup/pxe/module"
)

type NoopCollector struct{}

var _ module.PrivateExecutionMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) TransactionSimulated(duration time.Duration, failed bool) {}
func (nc *NoopCollector) FunctionExecuted(depth int, duration time.Duration)       {}
func (nc *NoopCollector) OracleCalled(oracle string, duration time.Duration)       {}
func (nc *NoopCollector) OracleFailed(oracle string)                               {}
func (nc *NoopCollector) PublicCallsEnqueued(count int)                            {}
func (nc *NoopCollector) LogsEmitted(encryptedBytes int, unencryptedBytes int)     {}
func (nc *NoopCollector) FunctionArtifactCacheHit()                                {}
func (nc *NoopCollector) FunctionArtifactCacheMiss()                               {}
