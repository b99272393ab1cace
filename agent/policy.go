package agent

import (
	"strings"
)

var (
	PosixDestructiveKeywords   = []string{"rm ", "rm-", "sudo ", "shutdown", "reboot", "mkfs", "dd "}
	WindowsDestructiveKeywords = []string{"Remove-Item", "Format-Volume", "shutdown", "restart-computer"}
)

// DefaultDestructiveKeywords returns the keyword list for a GOOS value.
func DefaultDestructiveKeywords(goos string) []string {
	if goos == "windows" {
		return append([]string(nil), WindowsDestructiveKeywords...)
	}
	return append([]string(nil), PosixDestructiveKeywords...)
}

//go:generate mockgen -destination=policymocks_test.go -package=agent_test github.com/mimosa-flytrap/flytrap/agent ConfirmationPolicy
type ConfirmationPolicy interface {
	RequiresConfirmation(command string, autoMode bool) bool
}

// KeywordPolicy asks for confirmation when a command contains one of a fixed
// list of keywords, compared case-insensitively as plain substrings.
//
// This is a speed bump, not a sandbox. "rm" with no trailing space is not
// caught by the POSIX list, and a path that merely contains "sudo " is.
type KeywordPolicy struct {
	keywords []string
}

var _ ConfirmationPolicy = (*KeywordPolicy)(nil)

func NewKeywordPolicy(keywords []string) *KeywordPolicy {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k == "" {
			continue
		}
		lowered = append(lowered, strings.ToLower(k))
	}
	return &KeywordPolicy{keywords: lowered}
}

func (p *KeywordPolicy) RequiresConfirmation(command string, autoMode bool) bool {
	if autoMode {
		return false
	}
	_, ok := p.Match(command)
	return ok
}

// Match returns the first keyword contained in command.
func (p *KeywordPolicy) Match(command string) (string, bool) {
	lower := strings.ToLower(command)
	for _, k := range p.keywords {
		if strings.Contains(lower, k) {
			return k, true
		}
	}
	return "", false
}

func (p *KeywordPolicy) Keywords() []string {
	return append([]string(nil), p.keywords...)
}
