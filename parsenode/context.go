package parsenode

import (
	"strings"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/logging"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/validation"
	"gopkg.in/yaml.v3"
)

// VersionService converts $ref strings into references using the conventions of one document version.
type VersionService interface {
	ConvertToReference(ref string, t model.ReferenceType) (*model.Reference, error)
}

type Option[T any] func(o *T)

// WithLogger sets the logger used while parsing.
func WithLogger(logger logging.Logger) Option[Context] {
	return func(c *Context) {
		c.logger = logging.OrNop(logger)
	}
}

// WithStopOnStructuralError makes structural errors abort the whole parse instead of only the offending field.
func WithStopOnStructuralError() Option[Context] {
	return func(c *Context) {
		c.stopOnStructuralError = true
	}
}

// WithDocumentLocation tags every diagnostic with the location of the document being parsed.
func WithDocumentLocation(location string) Option[Context] {
	return func(c *Context) {
		c.documentLocation = location
	}
}

// WithVersionService installs the reference conventions of the document version being read.
func WithVersionService(vs VersionService) Option[Context] {
	return func(c *Context) {
		c.versionService = vs
	}
}

// Context is the state of one top-level parse: diagnostics, the current location and
// the transient storage sibling field handlers use to exchange values.
// A Context must not be shared between parses.
type Context struct {
	diagnostic            *validation.Diagnostic
	logger                logging.Logger
	versionService        VersionService
	stopOnStructuralError bool
	documentLocation      string

	tempStorage map[any]map[string]any
	location    []string
}

// NewContext creates the context for a new parse.
func NewContext(opts ...Option[Context]) *Context {
	c := &Context{
		diagnostic:  &validation.Diagnostic{},
		logger:      logging.NopLogger{},
		tempStorage: map[any]map[string]any{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) Diagnostic() *validation.Diagnostic {
	return c.diagnostic
}

func (c *Context) Logger() logging.Logger {
	return c.logger
}

func (c *Context) DocumentLocation() string {
	return c.documentLocation
}

func (c *Context) VersionService() VersionService {
	return c.versionService
}

func (c *Context) SetVersionService(vs VersionService) {
	c.versionService = vs
}

func (c *Context) StopOnStructuralError() bool {
	return c.stopOnStructuralError
}

// StartObject pushes segment onto the current location.
func (c *Context) StartObject(segment string) {
	c.location = append(c.location, segment)
}

// EndObject pops the last segment pushed by StartObject.
func (c *Context) EndObject() {
	if len(c.location) > 0 {
		c.location = c.location[:len(c.location)-1]
	}
}

// Location returns the current location as a JSON pointer fragment, e.g. "#/paths/~1pets/get".
func (c *Context) Location() string {
	var sb strings.Builder
	sb.WriteString("#")
	for _, segment := range c.location {
		sb.WriteString("/")
		sb.WriteString(escape(segment))
	}
	return sb.String()
}

// SetTempStorage stores value under key within scope. A nil scope is the document scope;
// any other comparable value, typically the model object under construction, scopes the entry to that object.
func (c *Context) SetTempStorage(key string, value any, scope any) {
	s, ok := c.tempStorage[scope]
	if !ok {
		s = map[string]any{}
		c.tempStorage[scope] = s
	}
	s[key] = value
}

// ClearTempStorage drops every entry stored within scope.
func (c *Context) ClearTempStorage(scope any) {
	delete(c.tempStorage, scope)
}

// GetFromTempStorage returns the value stored under key within scope if it has type T.
func GetFromTempStorage[T any](c *Context, key string, scope any) (T, bool) {
	var zero T
	s, ok := c.tempStorage[scope]
	if !ok {
		return zero, false
	}
	v, ok := s[key].(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// AddError records a diagnostic at the current location.
func (c *Context) AddError(severity validation.Severity, rule string, err error, node *yaml.Node) {
	vErr := validation.NewNodeError(severity, rule, err, c.Location(), node)
	vErr.DocumentLocation = c.documentLocation
	c.diagnostic.Add(vErr)
}

// Report records err as a diagnostic positioned at node and returns nil, so the caller carries on with
// the next sibling. Structural errors are returned instead when the context stops on them.
func (c *Context) Report(err error, node *yaml.Node) error {
	if err == nil {
		return nil
	}

	var sErr *StructuralError
	if errors.As(err, &sErr) {
		if c.stopOnStructuralError {
			return err
		}
		c.logger.Debug("skipping malformed node", "location", c.Location(), "error", err)
		c.AddError(validation.SeverityError, validation.RuleValidationTypeMismatch, err, node)
		return nil
	}

	var vErr *validation.Error
	if errors.As(err, &vErr) {
		c.diagnostic.Add(vErr)
		return nil
	}

	c.AddError(validation.SeverityError, validation.RuleValidationInvalidFormat, err, node)
	return nil
}

func escape(segment string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(segment)
}
