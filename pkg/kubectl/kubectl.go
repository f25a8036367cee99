// Package kubectl is the port through which the explorer lists live cluster
// objects. Callers issue kubectl-style commands and receive output lines.
package kubectl

import (
	"context"
	"strings"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
)

// Kubectl runs a kubectl-style command and returns its output lines, with the
// table header removed and empty lines dropped.
type Kubectl interface {
	AsLines(ctx context.Context, command string) types.Errorable[[]string]
}

// Func adapts a function to the Kubectl interface.
type Func func(ctx context.Context, command string) types.Errorable[[]string]

func (f Func) AsLines(ctx context.Context, command string) types.Errorable[[]string] {
	return f(ctx, command)
}

// Lines splits raw command output into lines, dropping the header line and
// any empty lines.
func Lines(output string) []string {
	raw := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	if len(raw) > 0 {
		raw = raw[1:]
	}
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// NameOf returns the first whitespace-separated column of an output line,
// which is the object name for "get" output.
func NameOf(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
