package conflict

import (
	"fmt"
	"io"
	"log/slog"

	"mediasort/internal/console"
	"mediasort/internal/logging"
)

// Decision is a resolved action together with the scope it was given.
type Decision struct {
	Action OverwriteAction
	Scope  OverwriteScope
}

// Resolver walks the user through collisions one at a time. Once a sticky
// scope (all or following) is chosen, the stored action is reapplied to
// later conflicts without prompting.
type Resolver struct {
	printer *console.Printer
	logger  *slog.Logger
	sticky  *Decision
}

// NewResolver builds a resolver that prompts through the given printer.
func NewResolver(printer *console.Printer, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		printer: printer,
		logger:  logging.NewComponentLogger(logger, "conflict"),
	}
}

// Resolve returns the decision for the index-th of total conflicts. Invalid
// input re-prompts without consuming the conflict; exhausted input falls
// back to skipping the file.
func (r *Resolver) Resolve(c Conflict, index, total int) (Decision, error) {
	if r.sticky != nil {
		r.logger.Debug("applying sticky decision",
			logging.String("action", r.sticky.Action.String()),
			logging.String("scope", r.sticky.Scope.String()),
			logging.String("target", c.Target.Path))
		return *r.sticky, nil
	}

	r.present(c, index, total)

	for {
		input, err := r.printer.Prompt("\nEnter action:scope (or just action for current file only): ")
		if err != nil {
			if err == io.EOF {
				return Decision{Action: ActionNo, Scope: ScopeCurrent}, nil
			}
			return Decision{}, err
		}
		action, scope, parseErr := ParseChoice(input)
		if parseErr != nil {
			r.printer.Println(fmt.Sprintf("%v. Please try again.", parseErr))
			continue
		}

		decision := Decision{Action: action, Scope: scope}
		if scope == ScopeAll || scope == ScopeFollowing {
			r.sticky = &decision
		}
		return decision, nil
	}
}

// present renders the collision and the input menu.
func (r *Resolver) present(c Conflict, index, total int) {
	r.printer.Println()
	r.printer.Printf("Conflict %d of %d:\n", index+1, total)

	sizeFlag := "≠"
	if c.SameSize() {
		sizeFlag = "="
	}
	dateFlag := "≠"
	if c.SameCreation() {
		dateFlag = "="
	}

	const timeLayout = "2006-01-02 15:04"
	r.printer.Table(
		[]string{"", "Path", "Size", "Created"},
		[][]string{
			{"source", console.RelPath(c.Source.Path), fmt.Sprintf("%dB", c.Source.Size), c.Source.Creation.Format(timeLayout)},
			{"target", console.RelPath(c.Target.Path), fmt.Sprintf("%dB", c.Target.Size), c.Target.Creation.Format(timeLayout)},
		},
		[]console.Alignment{console.AlignLeft, console.AlignLeft, console.AlignRight, console.AlignLeft},
	)
	r.printer.Printf("Size: %s, Date: %s\n", sizeFlag, dateFlag)

	r.printer.Println("\nActions:")
	for _, info := range actionInfos {
		if info.shorthand != info.fullName {
			r.printer.Printf("  %s/%s - %s\n", info.shorthand, info.fullName, info.description)
		} else {
			r.printer.Printf("  %s - %s\n", info.fullName, info.description)
		}
	}

	r.printer.Println("\nScope:")
	for _, info := range scopeInfos {
		if info.shorthand == "" {
			r.printer.Printf("  (default) - %s\n", info.description)
		} else {
			r.printer.Printf("  %s/%s - %s\n", info.shorthand, info.fullName, info.description)
		}
	}

	r.printer.Println("\nExamples: 'y:all', 'larger:f', 'n' (action only)")
}
