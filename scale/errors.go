package scale

import "fmt"

// Kind identifies a class of decode failure, per spec §7. It lives in the
// lowest-level package so every other component (B through J) can produce
// and compare errors without an import cycle back to the root package,
// which re-exports these names for callers.
type Kind int

const (
	// KindTruncated means the input ended before a required field.
	KindTruncated Kind = iota
	// KindTrailingBytes means more bytes remained than were consumed.
	KindTrailingBytes
	// KindInvalidCompact means a compact integer was malformed.
	KindInvalidCompact
	// KindUnknownVariant means a variant index was out of range.
	KindUnknownVariant
	// KindBadUtf8 means a string field was not valid UTF-8.
	KindBadUtf8
	// KindTypeNotFound means the resolver could not find a type id.
	KindTypeNotFound
	// KindPalletNotFound means no pallet with the given name exists.
	KindPalletNotFound
	// KindCallNotFound means no call with the given pallet/call index exists.
	KindCallNotFound
	// KindStorageEntryNotFound means no such storage entry exists.
	KindStorageEntryNotFound
	// KindWrongPrefix means a storage key did not match its pallet/entry prefix.
	KindWrongPrefix
	// KindUnsupportedMetadataVersion means the metadata dialect or
	// extrinsic version is outside what this implementation understands.
	KindUnsupportedMetadataVersion
	// KindVisitor means the visitor requested an abort.
	KindVisitor
)

func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindTrailingBytes:
		return "trailing bytes"
	case KindInvalidCompact:
		return "invalid compact integer"
	case KindUnknownVariant:
		return "unknown variant"
	case KindBadUtf8:
		return "bad utf8"
	case KindTypeNotFound:
		return "type not found"
	case KindPalletNotFound:
		return "pallet not found"
	case KindCallNotFound:
		return "call not found"
	case KindStorageEntryNotFound:
		return "storage entry not found"
	case KindWrongPrefix:
		return "wrong prefix"
	case KindUnsupportedMetadataVersion:
		return "unsupported metadata version"
	case KindVisitor:
		return "visitor error"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// Error is the taxonomy-tagged error every decode failure surfaces as. A
// failed decode leaves no partial result: callers that get an *Error back
// should discard any in-progress Info they were building (spec §7).
type Error struct {
	Kind    Kind
	Message string
	Cause   error

	// Path and Offset are populated only when the error-tracing visitor
	// (package errtrace) is in use; otherwise they are zero.
	Path   string
	Offset int
	traced bool
}

func (e *Error) Error() string {
	loc := ""
	if e.traced {
		loc = fmt.Sprintf(" (at %s, offset %d)", e.Path, e.Offset)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s%s: %v", e.Kind, e.Message, loc, e.Cause)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s%s", e.Kind, e.Message, loc)
	}
	return e.Kind.String() + loc
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, scale.ErrTruncated) match by kind alone, letting
// callers probe the taxonomy without caring about the message or trace.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError builds an Error of the given kind, optionally wrapping cause.
func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithTrace returns a copy of e annotated with a visitor field-path and
// byte offset, used by package errtrace.
func (e *Error) WithTrace(path string, offset int) *Error {
	cp := *e
	cp.Path = path
	cp.Offset = offset
	cp.traced = true
	return &cp
}

// Sentinel kinds for use with errors.Is.
var (
	ErrTruncated                  = &Error{Kind: KindTruncated}
	ErrTrailingBytes              = &Error{Kind: KindTrailingBytes}
	ErrInvalidCompact             = &Error{Kind: KindInvalidCompact}
	ErrUnknownVariant             = &Error{Kind: KindUnknownVariant}
	ErrBadUtf8                    = &Error{Kind: KindBadUtf8}
	ErrTypeNotFound               = &Error{Kind: KindTypeNotFound}
	ErrPalletNotFound             = &Error{Kind: KindPalletNotFound}
	ErrCallNotFound               = &Error{Kind: KindCallNotFound}
	ErrStorageEntryNotFound       = &Error{Kind: KindStorageEntryNotFound}
	ErrWrongPrefix                = &Error{Kind: KindWrongPrefix}
	ErrUnsupportedMetadataVersion = &Error{Kind: KindUnsupportedMetadataVersion}
	ErrVisitor                    = &Error{Kind: KindVisitor}
)
