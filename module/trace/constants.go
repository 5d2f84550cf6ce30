package trace

// SpanName is the name of a span started by the execution engine.
type SpanName string

func (s SpanName) Child(subOp string) SpanName {
	return SpanName(string(s) + "." + subOp)
}

const (
	PXEBaseSpanName SpanName = "pxe"

	PXERunTransaction          SpanName = "pxe.runTransaction"
	PXERunUnconstrained        SpanName = "pxe.runUnconstrained"
	PXEExecutePrivateFunction  SpanName = "pxe.executePrivateFunction"
	PXESolveCircuit            SpanName = "pxe.solveCircuit"
	PXEOracleCall              SpanName = "pxe.oracleCall"
	PXEResolveFunctionArtifact SpanName = "pxe.resolveFunctionArtifact"
	PXEAssemblePublicInputs    SpanName = "pxe.assemblePublicInputs"
)
