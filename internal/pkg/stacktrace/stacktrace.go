package stacktrace

import "strings"

// InternalPaths extracts "internal/<pkg>/<file>.go:<line>" frames from a
// debug.Stack dump, dropping runtime and third-party frames.
func InternalPaths(stack []byte) []string {
	var paths []string

	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, "/internal/")
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}

		frame := line[idx+1:]
		if sp := strings.IndexByte(frame, ' '); sp != -1 {
			frame = frame[:sp]
		}
		paths = append(paths, frame)
	}

	return paths
}
