package chain

import "strings"

const taskSuffix = "Task"

// DisplayName derives the short name of a step type.
// Only the last segment of a qualified identifier is kept and a trailing "Task" is stripped:
// "tasks.MinifyTask" gives "Minify".
func DisplayName(stepType string) string {
	name := stepType
	if i := strings.LastIndexAny(name, "./"); i >= 0 {
		name = name[i+1:]
	}

	return strings.TrimSuffix(name, taskSuffix)
}

// StepName builds the generated name of a step.
func StepName(prefix, displayName string) string {
	return prefix + displayName
}
