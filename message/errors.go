package message

// Error is the error type returned by this package, mirroring the
// taxonomy of github.com/coap-toolkit/coapmsg's teacher (see top-level
// Error string type in the retrieved plgd-dev/go-coap source).
type Error string

func (e Error) Error() string { return string(e) }

// ErrInvalidArgument is returned when a caller-supplied scalar is outside
// the domain the setter accepts (wrong version on parse, unknown Type,
// code field overflow, oversized token, message-id overflow).
const ErrInvalidArgument = Error("invalid argument")

// ErrBadMessage is returned when the wire bytes do not form a conforming
// CoAP message, or a Message value fails the cross-field Validator.
const ErrBadMessage = Error("bad message")

// ErrNoSpace is returned when the output buffer supplied to Encode is too
// small at some stage of formatting.
const ErrNoSpace = Error("insufficient buffer space")

// ErrOutOfMemory is returned when an internal allocation fails. Go rarely
// surfaces allocation failure as an error rather than a panic, but the
// signature is kept so callers porting from the original C API have a
// faithful mapping. No function in this module returns it: an allocation
// failure in make()/append() (AcquireMessage included) surfaces as a
// runtime panic, which is not recovered here.
const ErrOutOfMemory = Error("out of memory")
