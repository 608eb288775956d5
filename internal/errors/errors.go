// Package errors defines the error taxonomy shared by the configuration
// publisher and the host runtime it writes into.
//
// Every failure surfaced to the host is an *Error carrying one of three kinds:
//
//   - KindUnknown: nothing more is known about the failure
//   - KindHost: the host runtime rejected an operation; Host narrows it down
//   - KindMessage: a plain message produced by this plugin
//
// Errors are terminal for the operation that raised them. Nothing retries.
//
// Use errors.Is with the sentinels to test the kind:
//
//	if errors.Is(err, nverrors.ErrHost) {
//	    // host rejected a write
//	}
//	if errors.Is(err, nverrors.ErrConversion) {
//	    // value could not be turned into a host object
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Kind categorizes an Error.
type Kind uint8

const (
	// KindUnknown is a failure with no further information.
	KindUnknown Kind = iota
	// KindHost is a failure reported by the host runtime.
	KindHost
	// KindMessage is a message-carrying failure raised by the plugin itself.
	KindMessage
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindHost:
		return "host"
	case KindMessage:
		return "message"
	default:
		return "invalid"
	}
}

// HostKind narrows down a KindHost error to the host subsystem that failed.
type HostKind uint8

const (
	// HostAPI is a failed host API call (set or get of a variable).
	HostAPI HostKind = iota
	// HostRuntime is a failure of the host's core runtime.
	HostRuntime
	// HostConversion is a failed conversion between Go values and host objects.
	HostConversion
	// HostSerialize is a failure encoding data for the host.
	HostSerialize
	// HostDeserialize is a failure decoding data coming from the host.
	HostDeserialize
	// HostLoop is a failure of the host's I/O loop.
	HostLoop
)

// String returns a human-readable name for the host kind.
func (h HostKind) String() string {
	switch h {
	case HostAPI:
		return "api"
	case HostRuntime:
		return "runtime"
	case HostConversion:
		return "object conversion"
	case HostSerialize:
		return "serialization"
	case HostDeserialize:
		return "deserialization"
	case HostLoop:
		return "io loop"
	default:
		return "unknown"
	}
}

// Sentinels matched by (*Error).Is.
var (
	// ErrUnknown matches errors of KindUnknown.
	ErrUnknown = errors.New("unknown error occurred")

	// ErrHost matches every KindHost error regardless of its HostKind.
	ErrHost = errors.New("host runtime error")

	// ErrMessage matches errors of KindMessage.
	ErrMessage = errors.New("plugin error")

	// ErrAPI matches KindHost errors with HostAPI.
	ErrAPI = errors.New("host api error")

	// ErrRuntime matches KindHost errors with HostRuntime.
	ErrRuntime = errors.New("host core runtime error")

	// ErrConversion matches KindHost errors with HostConversion.
	ErrConversion = errors.New("object conversion error")

	// ErrSerialize matches KindHost errors with HostSerialize.
	ErrSerialize = errors.New("serialization error")

	// ErrDeserialize matches KindHost errors with HostDeserialize.
	ErrDeserialize = errors.New("deserialization error")

	// ErrLoop matches KindHost errors with HostLoop.
	ErrLoop = errors.New("io loop error")

	// ErrKeyNotFound is returned by host readers for unset variables.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStateClosed is returned when the host runtime has been shut down.
	ErrStateClosed = errors.New("host runtime is closed")
)

var hostSentinels = map[HostKind]error{
	HostAPI:         ErrAPI,
	HostRuntime:     ErrRuntime,
	HostConversion:  ErrConversion,
	HostSerialize:   ErrSerialize,
	HostDeserialize: ErrDeserialize,
	HostLoop:        ErrLoop,
}

// Error is the error type returned by host-facing operations.
type Error struct {
	Kind Kind
	// Host is only meaningful when Kind is KindHost.
	Host HostKind
	// Op names the operation that failed (e.g. "set_var", "get_var").
	Op string
	// Key is the host variable involved, if any.
	Key string
	// Message describes the failure.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	switch e.Kind {
	case KindUnknown:
		b.WriteString(ErrUnknown.Error())
	case KindHost:
		fmt.Fprintf(&b, "host runtime error occurred (%s)", e.Host)
	}

	detail := e.detail()
	if detail != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(detail)
	}
	if b.Len() == 0 {
		return ErrMessage.Error()
	}
	return b.String()
}

func (e *Error) detail() string {
	var parts []string
	if e.Op != "" && e.Key != "" {
		parts = append(parts, fmt.Sprintf("%s %s", e.Op, e.Key))
	} else if e.Op != "" {
		parts = append(parts, e.Op)
	} else if e.Key != "" {
		parts = append(parts, e.Key)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnknown:
		return e.Kind == KindUnknown
	case ErrHost:
		return e.Kind == KindHost
	case ErrMessage:
		return e.Kind == KindMessage
	}
	if e.Kind == KindHost {
		return hostSentinels[e.Host] == target
	}
	return false
}

// WithKey returns a copy of e with Op and Key set.
func (e *Error) WithKey(op, key string) *Error {
	cp := *e
	cp.Op = op
	cp.Key = key
	return &cp
}

// Unknown returns an error of KindUnknown.
func Unknown() *Error {
	return &Error{Kind: KindUnknown}
}

// Host wraps err as a host runtime failure of the given kind.
func Host(kind HostKind, err error) *Error {
	return &Error{Kind: KindHost, Host: kind, Err: err}
}

// Message returns a message-carrying error.
func Message(format string, args ...any) *Error {
	return &Error{Kind: KindMessage, Message: fmt.Sprintf(format, args...)}
}

// SetVar wraps a failed variable write for key.
//
// A failure that is already an *Error keeps its kind. Anything else is
// treated as a rejected host API call.
func SetVar(key string, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Key == key && e.Op == "set_var" {
			return e
		}
		return &Error{Kind: e.Kind, Host: e.Host, Op: "set_var", Key: key, Message: e.Message, Err: e.Err}
	}
	return &Error{Kind: KindHost, Host: HostAPI, Op: "set_var", Key: key, Message: "failed to set var", Err: err}
}

// FromLua classifies an error returned by the Lua host runtime.
//
// gopher-lua reports syntax errors, file errors, runtime errors, explicit
// error() calls and Go panics through *lua.ApiError. Syntax errors are
// deserialization failures and panics are runtime failures. Everything
// else, including a script file that cannot be read, is an API failure.
// A nil err returns nil.
func FromLua(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	if errors.Is(err, ErrStateClosed) {
		return Host(HostRuntime, err)
	}

	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) {
		return Host(HostAPI, err)
	}

	switch apiErr.Type {
	case lua.ApiErrorSyntax:
		return Host(HostDeserialize, err)
	case lua.ApiErrorPanic:
		return Host(HostRuntime, err)
	default:
		return Host(HostAPI, err)
	}
}
