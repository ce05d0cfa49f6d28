package conflict

import (
	"fmt"
	"strings"
)

// OverwriteAction is the user's answer to a single collision.
type OverwriteAction int

const (
	ActionYes OverwriteAction = iota
	ActionNo
	ActionLarger
	ActionOlder
	ActionNewer
)

// OverwriteScope controls how far an answer reaches.
type OverwriteScope int

const (
	// ScopeCurrent applies to this conflict only.
	ScopeCurrent OverwriteScope = iota
	// ScopeAll applies to every remaining conflict.
	ScopeAll
	// ScopeFollowing applies to this and all following conflicts.
	ScopeFollowing
)

type actionInfo struct {
	action      OverwriteAction
	shorthand   string
	fullName    string
	description string
}

type scopeInfo struct {
	scope       OverwriteScope
	shorthand   string
	fullName    string
	description string
}

var actionInfos = []actionInfo{
	{ActionYes, "y", "yes", "Overwrite this file"},
	{ActionNo, "n", "no", "Skip this file"},
	{ActionLarger, "larger", "larger", "Overwrite only if source is larger"},
	{ActionOlder, "older", "older", "Overwrite only if source is older"},
	{ActionNewer, "newer", "newer", "Overwrite only if source is newer"},
}

var scopeInfos = []scopeInfo{
	{ScopeCurrent, "", "", "Current file only"},
	{ScopeAll, "a", "all", "Apply to all remaining conflicts"},
	{ScopeFollowing, "f", "following", "Apply to this and all following conflicts"},
}

func parseAction(input string) (OverwriteAction, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, info := range actionInfos {
		if input == info.shorthand || input == info.fullName {
			return info.action, true
		}
	}
	return 0, false
}

func parseScope(input string) (OverwriteScope, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ScopeCurrent, true
	}
	for _, info := range scopeInfos {
		if info.shorthand != "" && (input == info.shorthand || input == info.fullName) {
			return info.scope, true
		}
	}
	return 0, false
}

// ParseChoice parses the "<action>[:<scope>]" prompt grammar. The scope
// defaults to current-only when omitted.
func ParseChoice(input string) (OverwriteAction, OverwriteScope, error) {
	actionPart, scopePart, _ := strings.Cut(input, ":")
	if strings.TrimSpace(actionPart) == "" {
		return 0, 0, fmt.Errorf("empty action")
	}
	action, ok := parseAction(actionPart)
	if !ok {
		return 0, 0, fmt.Errorf("invalid action %q", strings.TrimSpace(actionPart))
	}
	scope, ok := parseScope(scopePart)
	if !ok {
		return 0, 0, fmt.Errorf("invalid scope %q", strings.TrimSpace(scopePart))
	}
	return action, scope, nil
}

// ShouldOverwrite evaluates the action against the conflict's records.
func (a OverwriteAction) ShouldOverwrite(c Conflict) bool {
	switch a {
	case ActionYes:
		return true
	case ActionNo:
		return false
	case ActionLarger:
		return c.Source.Size > c.Target.Size
	case ActionOlder:
		return c.Source.Creation.Before(c.Target.Creation)
	case ActionNewer:
		return c.Source.Creation.After(c.Target.Creation)
	default:
		return false
	}
}

func (a OverwriteAction) String() string {
	for _, info := range actionInfos {
		if info.action == a {
			return info.fullName
		}
	}
	return "unknown"
}

func (s OverwriteScope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeFollowing:
		return "following"
	default:
		return "current"
	}
}
