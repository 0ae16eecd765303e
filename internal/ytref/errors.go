package ytref

import "errors"

// Kind classifies a Failure.
type Kind int

const (
	InvalidURL Kind = iota + 1
	LanguageUnavailable
	CatalogLookupFailed
)

func (k Kind) String() string {
	switch k {
	case InvalidURL:
		return "invalid_url"
	case LanguageUnavailable:
		return "language_unavailable"
	case CatalogLookupFailed:
		return "catalog_lookup_failed"
	}
	return "unknown"
}

// Sentinels for errors.Is; every *Failure matches the sentinel of its Kind.
var (
	ErrInvalidURL          = errors.New("invalid URL format")
	ErrLanguageUnavailable = errors.New("requested language not available")
	ErrCatalogLookup       = errors.New("language not in catalog")
)

// Failure is the structured, recoverable outcome of a failed resolution or negotiation.
type Failure struct {
	Kind  Kind
	Input string // the offending input, verbatim
	Err   error  // optional cause (e.g. a url.Parse error)
}

func (f *Failure) Error() string {
	msg := f.sentinel().Error()
	if f.Input != "" {
		msg += ": " + f.Input
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

// Reason is the short human-readable failure reason without the input echo.
func (f *Failure) Reason() string { return f.sentinel().Error() }

func (f *Failure) Is(target error) bool { return target == f.sentinel() }

func (f *Failure) Unwrap() error { return f.Err }

func (f *Failure) sentinel() error {
	switch f.Kind {
	case InvalidURL:
		return ErrInvalidURL
	case LanguageUnavailable:
		return ErrLanguageUnavailable
	case CatalogLookupFailed:
		return ErrCatalogLookup
	}
	return errors.New("unknown failure")
}

// KindOf reports the Kind of err, or 0 when err is not a *Failure.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}
