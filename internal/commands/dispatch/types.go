package dispatchcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-checklist/internal/dispatch"
)

const dispatchURLMessageType = "checklist.dispatch.url"

// ResultCallback receives the dispatch outcome when one is available.
type ResultCallback func(*dispatch.Result)

// DispatchURLCommand runs the actions encoded in a custom scheme URL.
type DispatchURLCommand struct {
	URL            string         `json:"url"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (DispatchURLCommand) Type() string { return dispatchURLMessageType }

// Validate ensures a URL with a namespace and action segment is present.
func (m DispatchURLCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.URL,
			validation.Required.Error("url is required"),
			validation.By(func(value any) error {
				raw, _ := value.(string)
				if !strings.Contains(raw, ".") {
					return validation.NewError("checklist.dispatch.url_invalid", "url must contain a namespace and an action")
				}
				return nil
			}),
		),
	)
}
