package metrics

const (
	namespacePXE = "pxe"
)

const (
	subsystemSimulator = "simulator"
	subsystemOracle    = "oracle"
	subsystemArtifacts = "artifacts"
)
