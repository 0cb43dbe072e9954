package liquidsim

import (
	"context"
	"strings"

	"github.com/itsatony/go-liquidsim/internal"
	"go.uber.org/zap"
)

// CaptureTag implements `{% capture name %}...{% endcapture %}`. The body
// renders against the caller's own scope and its output is assigned to
// name there. The tag itself emits nothing.
type CaptureTag struct{}

// TagName returns "capture".
func (CaptureTag) TagName() string {
	return TagNameCapture
}

// IsBlock returns true.
func (CaptureTag) IsBlock() bool {
	return true
}

// ParseArguments accepts a single variable name, bare or quoted.
func (CaptureTag) ParseArguments(markup string) (Tag, error) {
	fields := strings.Fields(markup)
	if len(fields) != 1 {
		return nil, NewSyntaxError(ErrMsgCaptureArguments, TagNameCapture, nil)
	}

	name := unquote(fields[0])
	if !internal.IsIdentifier(name) {
		return nil, NewSyntaxError(ErrMsgCaptureName, TagNameCapture, nil)
	}
	return &captureInvocation{name: name}, nil
}

type captureInvocation struct {
	name string
}

func (c *captureInvocation) Execute(ctx context.Context, rc *RenderContext) (string, error) {
	out, err := rc.RenderBody(ctx)
	if err != nil {
		return StringValueEmpty, err
	}

	rc.Scope.Set(c.name, out)
	rc.Engine.Logger().Debug(LogMsgCaptureComplete,
		zap.String(LogFieldAlias, c.name),
		zap.Int(LogFieldOutputLen, len(out)))
	return StringValueEmpty, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
