package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zkrollup/pxe/module"
)

// PrivateExecutionCollector implements metric collection for private
// function execution.
type PrivateExecutionCollector struct {
	transactionsSimulated *prometheus.CounterVec
	simulationDuration    prometheus.Histogram
	functionsExecuted     *prometheus.CounterVec
	functionDuration      *prometheus.HistogramVec
	oracleCalls           *prometheus.CounterVec
	oracleFailures        *prometheus.CounterVec
	oracleDuration        *prometheus.HistogramVec
	publicCallsEnqueued   prometheus.Counter
	logBytesEmitted       *prometheus.CounterVec
	artifactCacheHits     prometheus.Counter
	artifactCacheMisses   prometheus.Counter
}

var _ module.PrivateExecutionMetrics = (*PrivateExecutionCollector)(nil)

func NewPrivateExecutionCollector(registerer prometheus.Registerer) *PrivateExecutionCollector {
	r := NewRegisterer(registerer, namespacePXE)

	return &PrivateExecutionCollector{
		transactionsSimulated: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystemSimulator,
			Name:      "transactions_simulated_total",
			Help:      "the number of simulated transactions, by result",
		}, []string{LabelResult}),
		simulationDuration: r.RegisterNewHistogram(prometheus.HistogramOpts{
			Subsystem: subsystemSimulator,
			Name:      "transaction_simulation_seconds",
			Help:      "the duration of simulating the private part of a transaction",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		functionsExecuted: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystemSimulator,
			Name:      "functions_executed_total",
			Help:      "the number of private function calls executed, by call depth",
		}, []string{LabelDepth}),
		functionDuration: r.RegisterNewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystemSimulator,
			Name:      "function_execution_seconds",
			Help:      "the duration of executing one private function call including its nested calls",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{LabelDepth}),
		oracleCalls: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystemOracle,
			Name:      "calls_total",
			Help:      "the number of resolved oracle calls, by oracle",
		}, []string{LabelOracle}),
		oracleFailures: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystemOracle,
			Name:      "failures_total",
			Help:      "the number of oracle calls that returned an error, by oracle",
		}, []string{LabelOracle}),
		oracleDuration: r.RegisterNewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystemOracle,
			Name:      "call_seconds",
			Help:      "the duration of resolving an oracle call, by oracle",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{LabelOracle}),
		publicCallsEnqueued: r.RegisterNewCounter(prometheus.CounterOpts{
			Subsystem: subsystemSimulator,
			Name:      "public_calls_enqueued_total",
			Help:      "the number of public function calls enqueued by private functions",
		}),
		logBytesEmitted: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystemSimulator,
			Name:      "log_bytes_emitted_total",
			Help:      "the serialized size of the logs emitted by private functions, by log type",
		}, []string{LabelLog}),
		artifactCacheHits: r.RegisterNewCounter(prometheus.CounterOpts{
			Subsystem: subsystemArtifacts,
			Name:      "cache_hits_total",
			Help:      "the number of function artifact lookups served from the cache",
		}),
		artifactCacheMisses: r.RegisterNewCounter(prometheus.CounterOpts{
			Subsystem: subsystemArtifacts,
			Name:      "cache_misses_total",
			Help:      "the number of function artifact lookups that hit the contract database",
		}),
	}
}

func (c *PrivateExecutionCollector) TransactionSimulated(duration time.Duration, failed bool) {
	result := ResultSuccess
	if failed {
		result = ResultFailure
	}
	c.transactionsSimulated.WithLabelValues(result).Inc()
	c.simulationDuration.Observe(duration.Seconds())
}

func (c *PrivateExecutionCollector) FunctionExecuted(depth int, duration time.Duration) {
	d := strconv.Itoa(depth)
	c.functionsExecuted.WithLabelValues(d).Inc()
	c.functionDuration.WithLabelValues(d).Observe(duration.Seconds())
}

func (c *PrivateExecutionCollector) OracleCalled(oracle string, duration time.Duration) {
	c.oracleCalls.WithLabelValues(oracle).Inc()
	c.oracleDuration.WithLabelValues(oracle).Observe(duration.Seconds())
}

func (c *PrivateExecutionCollector) OracleFailed(oracle string) {
	c.oracleFailures.WithLabelValues(oracle).Inc()
}

func (c *PrivateExecutionCollector) PublicCallsEnqueued(count int) {
	c.publicCallsEnqueued.Add(float64(count))
}

func (c *PrivateExecutionCollector) LogsEmitted(encryptedBytes int, unencryptedBytes int) {
	c.logBytesEmitted.WithLabelValues(LogEncrypted).Add(float64(encryptedBytes))
	c.logBytesEmitted.WithLabelValues(LogUnencrypted).Add(float64(unencryptedBytes))
}

func (c *PrivateExecutionCollector) FunctionArtifactCacheHit() {
	c.artifactCacheHits.Inc()
}

func (c *PrivateExecutionCollector) FunctionArtifactCacheMiss() {
	c.artifactCacheMisses.Inc()
}
