package credential

import "path/filepath"

// escalationCommand is the privilege-elevation tool recognized by base name.
const escalationCommand = "sudo"

// IsEscalation reports whether the tokenized command invokes the escalation
// command, judged by the base name of the first token so absolute paths
// like /usr/bin/sudo are recognized too.
func IsEscalation(args []string) bool {
	if len(args) == 0 {
		return false
	}
	return filepath.Base(args[0]) == escalationCommand
}

// EnsureStdinFlag returns an argument vector that asks the escalation
// command to read the password from stdin. If an equivalent flag is already
// present the vector is returned unchanged; otherwise -S is inserted right
// after the command token.
func EnsureStdinFlag(args []string) []string {
	for _, arg := range args {
		if arg == "-S" || arg == "--stdin" || arg == "--askpass" {
			return args
		}
	}

	if len(args) == 1 {
		return append(args, "-S")
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[0], "-S")
	out = append(out, args[1:]...)
	return out
}
