package files

import (
	"io"
	"strconv"
	"strings"
)

// SubmissionRow is one user's recommended job tokens, best first.
type SubmissionRow struct {
	UserToken int
	JobTokens []int
}

// WriteSubmission writes a `UserId\tJobIds` TSV with space-separated job ids.
func WriteSubmission(w io.Writer, rows []SubmissionRow) error {
	if _, err := io.WriteString(w, "UserId\tJobIds\n"); err != nil {
		return err
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.Reset()
		sb.WriteString(strconv.Itoa(row.UserToken))
		sb.WriteByte('\t')
		for i, job := range row.JobTokens {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(job))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func WriteSubmissionFile(path string, rows []SubmissionRow) error {
	return writeFile(path, func(w io.Writer) error { return WriteSubmission(w, rows) })
}
