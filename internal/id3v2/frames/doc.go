// Package frames holds the concrete ID3v2 frame variants and their payload
// interpreters.
//
// Every interpreter has the shape
//
//	func(h header.Header, payload []byte, policy EncodingPolicy) (Frame, error)
//
// and reports a malformed payload with an error wrapping ErrMalformed. The
// caller is expected to fall back to an UnknownFrame in that case.
package frames
