package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedURL     = errors.New("dispatch: malformed url")
	ErrUnknownNamespace = errors.New("dispatch: unknown namespace")
	ErrUnknownAction    = errors.New("dispatch: unknown action")
	ErrSchemeMismatch   = errors.New("dispatch: unexpected url scheme")
)

// Namespace selects a group of related actions.
type Namespace string

const (
	NamespaceISSApp   Namespace = "iss-app"
	NamespaceSettings Namespace = "settings"
)

// Action names one operation within a namespace.
type Action string

const (
	ActionUninstall     Action = "uninstall"
	ActionDock          Action = "dock"
	ActionNotifications Action = "notifications"
	ActionPrivacy       Action = "privacy"
)

// Request is a parsed <scheme>://<namespace>.<action>[.<action>...] URL.
type Request struct {
	Raw       string
	Scheme    string
	Namespace Namespace
	Actions   []Action
}

// ParseRequest strips the scheme and trailing slashes and splits the rest
// on dots. The first token is the namespace; every following token is an
// action, run in order. Tokens are matched case-insensitively.
func ParseRequest(raw string) (Request, error) {
	trimmed := strings.TrimSpace(raw)
	req := Request{Raw: raw}

	rest := trimmed
	if scheme, remainder, ok := strings.Cut(trimmed, "://"); ok {
		req.Scheme = strings.ToLower(scheme)
		rest = remainder
	}
	rest = strings.TrimRight(rest, "/")
	if rest == "" {
		return Request{}, fmt.Errorf("%w: %q has no namespace", ErrMalformedURL, raw)
	}

	tokens := strings.Split(strings.ToLower(rest), ".")
	for _, token := range tokens {
		if token == "" {
			return Request{}, fmt.Errorf("%w: %q has an empty segment", ErrMalformedURL, raw)
		}
	}
	if len(tokens) < 2 {
		return Request{}, fmt.Errorf("%w: %q has no action", ErrMalformedURL, raw)
	}

	req.Namespace = Namespace(tokens[0])
	for _, token := range tokens[1:] {
		req.Actions = append(req.Actions, Action(token))
	}
	return req, nil
}

// String renders the request back into URL form.
func (r Request) String() string {
	parts := make([]string, 0, len(r.Actions)+1)
	parts = append(parts, string(r.Namespace))
	for _, action := range r.Actions {
		parts = append(parts, string(action))
	}
	body := strings.Join(parts, ".")
	if r.Scheme == "" {
		return body
	}
	return r.Scheme + "://" + body
}
