package common

// RequestIDHeaderName is the gRPC metadata key carrying a per-call request id.
const RequestIDHeaderName = "x-request-id"

// DeviceHeaderName is the gRPC metadata key carrying the caller's device
// fingerprint. It is informational only and never used for authorization.
const DeviceHeaderName = "x-device-fingerprint"
