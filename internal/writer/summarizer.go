package writer

import "strings"

// DigestWordLimit bounds the carry-forward context digest.
const DigestWordLimit = 100

// Digest compresses finished section content into a bounded carry-forward
// summary: the first DigestWordLimit words, or the full text if shorter.
// Pure and deterministic, no I/O; output length is independent of input
// length beyond the limit.
func Digest(content string) string {
	words := strings.Fields(content)
	if len(words) <= DigestWordLimit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:DigestWordLimit], " ") + "…"
}

// RunningContext joins prior-section digests, oldest first, into the
// context block handed to the next section's writer call.
func RunningContext(digests []string) string {
	nonEmpty := make([]string, 0, len(digests))
	for _, d := range digests {
		if strings.TrimSpace(d) != "" {
			nonEmpty = append(nonEmpty, d)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}
