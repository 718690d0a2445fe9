package metrics

// Outcome label values shared by recorders.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeNotFound = "not_found"
)

// Error kind label values for RecordClientError.
const (
	KindTransport = "transport"
	KindStatus    = "status"
	KindEncode    = "encode"
)
