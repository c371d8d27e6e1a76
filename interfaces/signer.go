package interfaces

// Signer produces the payload signature attached to outbound invocation bodies.
//
//go:generate moq -stub -out mock/signer.go -pkg mock . Signer
type Signer interface {
	Sign(payload []byte) string
}
