package core

// ErrorResponseFactory centralizes turning a pipeline error into the
// taxonomy fields a FinalResponse-shaped caller needs: an error_type string
// and a log level, without each stage re-deriving them ad hoc.
type ErrorResponseFactory struct {
	handlers map[string]func(err error) (content string, confidence float64)
}

// NewErrorResponseFactory builds a factory with the default taxonomy.
func NewErrorResponseFactory() *ErrorResponseFactory {
	return &ErrorResponseFactory{
		handlers: make(map[string]func(err error) (content string, confidence float64)),
	}
}

// RegisterHandler installs a custom content/confidence builder for a given
// taxonomy Kind, overriding the default empty-content/zero-confidence pair.
func (f *ErrorResponseFactory) RegisterHandler(kind string, handler func(err error) (content string, confidence float64)) {
	f.handlers[kind] = handler
}

// ErrorInfo is what the factory derives from an error: its taxonomy kind,
// the log level it should be reported at, and the content/confidence a
// FinalResponse built from it should carry.
type ErrorInfo struct {
	Kind       string
	LogLevel   string // "warn" or "error"
	Content    string
	Confidence float64
}

// Describe classifies err and returns the information needed to build a
// failed FinalResponse and to log it at the right level.
func (f *ErrorResponseFactory) Describe(err error) ErrorInfo {
	kind := KindOf(err)

	level := "error"
	if kind == KindValidation || kind == KindRateLimit {
		level = "warn"
	}

	content, confidence := "", 0.0
	if h, ok := f.handlers[kind]; ok {
		content, confidence = h(err)
	}

	return ErrorInfo{Kind: kind, LogLevel: level, Content: content, Confidence: confidence}
}
