package estimate

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for structurally invalid items. Unknown subtypes are
// never reported as errors.
var (
	// ErrUnknownKind indicates an item kind outside the supported set.
	ErrUnknownKind = constError("unknown activity kind")

	// ErrMissingPayload indicates the payload for the item's kind is nil.
	ErrMissingPayload = constError("missing activity payload")
)
