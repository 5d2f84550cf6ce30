// Package oracle maps the foreign calls a private function circuit makes onto
// a typed host interface. Every oracle is one Kind; Table decodes the solver's
// field vectors for that kind, calls the matching TypedOracle method and
// encodes the result back.
package oracle

// Kind enumerates the oracles available to private functions.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPackArguments
	KindUnpackArguments
	KindGetSecretKey
	KindGetPublicKey
	KindGetNotes
	KindGetRandomField
	KindNotifyCreatedNote
	KindNotifyNullifiedNote
	KindCallPrivateFunction
	KindGetL1ToL2Message
	KindGetCommitment
	KindDebugLog
	KindEnqueuePublicFunctionCall
	KindEmitUnencryptedLog
	KindEmitEncryptedLog
	KindGetContractAddress
	KindGetChainID
	KindGetVersion
	KindGetPortalContractAddress
)

var wireNames = map[Kind]string{
	KindPackArguments:             "packArguments",
	KindUnpackArguments:           "getArgs",
	KindGetSecretKey:              "getSecretKey",
	KindGetPublicKey:              "getPublicKey",
	KindGetNotes:                  "getNotes",
	KindGetRandomField:            "getRandomField",
	KindNotifyCreatedNote:         "notifyCreatedNote",
	KindNotifyNullifiedNote:       "notifyNullifiedNote",
	KindCallPrivateFunction:       "callPrivateFunction",
	KindGetL1ToL2Message:          "getL1ToL2Message",
	KindGetCommitment:             "getCommitment",
	KindDebugLog:                  "debugLog",
	KindEnqueuePublicFunctionCall: "enqueuePublicFunctionCall",
	KindEmitUnencryptedLog:        "emitUnencryptedLog",
	KindEmitEncryptedLog:          "emitEncryptedLog",
	KindGetContractAddress:        "getContractAddress",
	KindGetChainID:                "getChainId",
	KindGetVersion:                "getVersion",
	KindGetPortalContractAddress:  "getPortalContractAddress",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(wireNames))
	for k, name := range wireNames {
		m[name] = k
	}
	return m
}()

// KindFromName resolves a foreign call function name.
func KindFromName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Kinds lists every known oracle kind.
func Kinds() []Kind {
	ks := make([]Kind, 0, len(wireNames))
	for k := KindPackArguments; k <= KindGetPortalContractAddress; k++ {
		ks = append(ks, k)
	}
	return ks
}

// WireName is the foreign call function name circuits use for k.
func (k Kind) WireName() string {
	if name, ok := wireNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) String() string {
	return k.WireName()
}
