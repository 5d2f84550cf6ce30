package metrics

const (
	LabelOracle = "oracle"
	LabelDepth  = "depth"
	LabelResult = "result"
	LabelLog    = "log"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

const (
	LogEncrypted   = "encrypted"
	LogUnencrypted = "unencrypted"
)
