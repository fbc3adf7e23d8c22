package store

import "fmt"

// Artifact names of a level's run outputs.

func TableArtifact(level string) string {
	return fmt.Sprintf("q_table_%s.json", level)
}

func ReportArtifact(level string) string {
	return fmt.Sprintf("report_%s.json", level)
}

func TraceArtifact(level string) string {
	return fmt.Sprintf("trace_%s.jsonl", level)
}
