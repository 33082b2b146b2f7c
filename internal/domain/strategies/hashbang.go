package strategies

import (
	"path"
	"strings"

	"github.com/mattn/go-shellwords"

	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

func hashbangMatcher(table *rules.Table) headerMatcher {
	return func(line string, _ []byte) *m.Icon {
		return table.MatchByInterpreter(interpreterOf(line))
	}
}

// envOperands are the env(1) options that consume the following argument.
var envOperands = map[string]bool{
	"-u": true, "--unset": true,
	"-C": true, "--chdir": true,
}

// interpreterOf extracts the executable named by a `#!` directive. Programs
// launched through env are resolved past its options and variable
// assignments: "#!/usr/bin/env -S FOO=1 node --harmony" names "node".
func interpreterOf(line string) string {
	directive, ok := strings.CutPrefix(line, "#!")
	if !ok {
		return ""
	}

	directive = strings.TrimSpace(directive)

	args, err := shellwords.Parse(directive)
	if err != nil {
		args = strings.Fields(directive)
	}

	if len(args) == 0 {
		return ""
	}

	name := path.Base(args[0])
	if name != "env" {
		return name
	}

	for i := 1; i < len(args); i++ {
		arg := args[i]

		switch {
		case envOperands[arg]:
			i++
		case strings.HasPrefix(arg, "-"):
		case strings.Contains(arg, "="):
		default:
			return path.Base(arg)
		}
	}

	return ""
}
