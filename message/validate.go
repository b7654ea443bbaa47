package message

import "fmt"

// Validate applies the cross-field rules from spec.md §3, grounded
// directly on the original coap_msg_check: an empty message (code 0.00)
// must be Confirmable-or-Acknowledgement-or-Reset with no token, no
// options, and no payload, and conversely a Reset message must be empty.
// It is run at the end of Decode and the start of Encode, and is
// idempotent: running it again on a Message it already accepted is a
// no-op.
func Validate(m *Message) error {
	if m.Code.IsEmpty() {
		if m.Type == NonConfirmable || len(m.Token) != 0 || len(m.Options) != 0 || len(m.Payload) != 0 {
			return fmt.Errorf("%w: empty message must be non-NON, tokenless, optionless and payloadless", ErrBadMessage)
		}
		return nil
	}
	if m.Type == Reset {
		return fmt.Errorf("%w: reset message must be empty", ErrBadMessage)
	}
	return nil
}
