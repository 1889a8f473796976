package dispatch

import (
	"context"
	"fmt"
	"slices"
)

// Settings pane identifiers understood by x-apple.systempreferences URLs.
const (
	PaneDock          = "com.apple.preference.dock"
	PaneNotifications = "com.apple.preference.notifications"
	PanePrivacy       = "com.apple.preference.security?Privacy"
)

// operation performs one action and returns its steps. Step failures are
// warnings; an operation never aborts the invocation.
type operation func(ctx context.Context, d *Dispatcher) []StepResult

var routes = map[Namespace]map[Action]operation{
	NamespaceISSApp: {
		ActionUninstall: uninstallHelper,
	},
	NamespaceSettings: {
		ActionDock:          openPane(PaneDock),
		ActionNotifications: openPane(PaneNotifications),
		ActionPrivacy:       openPane(PanePrivacy),
	},
}

// Routes lists the supported namespace and action pairs.
func Routes() map[Namespace][]Action {
	out := make(map[Namespace][]Action, len(routes))
	for namespace, actions := range routes {
		for action := range actions {
			out[namespace] = append(out[namespace], action)
		}
		slices.Sort(out[namespace])
	}
	return out
}

func resolve(req Request) ([]operation, error) {
	actions, ok := routes[req.Namespace]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNamespace, req.Namespace)
	}
	ops := make([]operation, 0, len(req.Actions))
	for _, action := range req.Actions {
		op, ok := actions[action]
		if !ok {
			return nil, fmt.Errorf("%w: %q in namespace %q", ErrUnknownAction, action, req.Namespace)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// uninstallHelper stops the helper app and deletes its bundle. The bundle is
// removed even when the process was not running.
func uninstallHelper(ctx context.Context, d *Dispatcher) []StepResult {
	return []StepResult{
		d.step(ctx, "terminate_process", d.cfg.HelperProcess, func(ctx context.Context) error {
			return d.system.TerminateProcess(ctx, d.cfg.HelperProcess)
		}),
		d.step(ctx, "remove_bundle", d.cfg.HelperBundle, func(ctx context.Context) error {
			return d.system.RemoveBundle(ctx, d.cfg.HelperBundle)
		}),
	}
}

func openPane(pane string) operation {
	return func(ctx context.Context, d *Dispatcher) []StepResult {
		return []StepResult{
			d.step(ctx, "open_settings_pane", pane, func(ctx context.Context) error {
				return d.system.OpenSettingsPane(ctx, pane)
			}),
		}
	}
}
