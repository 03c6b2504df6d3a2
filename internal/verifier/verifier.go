// Package verifier provides diff report integrity verification for GoCompare.
package verifier

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dbsmedya/gocompare/internal/compare"
	"github.com/dbsmedya/gocompare/internal/logger"
)

// Method defines how to verify a diff report.
type Method string

const (
	// MethodCount checks report completeness against the key union (fast)
	MethodCount Method = "count"
	// MethodChecksum recomputes the diff and compares SHA256 digests (slower but more thorough)
	MethodChecksum Method = "checksum"
	// MethodSkip skips verification entirely
	MethodSkip Method = "skip"
)

// VerifyResult holds the verification outcome for one comparison run.
type VerifyResult struct {
	Method             Method
	ReportRows         int
	UnionKeys          int
	ReportChecksum     string
	RecomputedChecksum string
	Match              bool
	ErrorMessage       string
}

// Verifier checks a finished diff report against the alignment it was
// produced from.
type Verifier struct {
	method Method
	logger *logger.Logger
}

// NewVerifier creates a new verifier. An empty method defaults to count.
func NewVerifier(method Method, log *logger.Logger) (*Verifier, error) {
	if log == nil {
		log = logger.NewDefault()
	}
	if method == "" {
		method = MethodCount
	}

	switch method {
	case MethodCount, MethodChecksum, MethodSkip:
	default:
		return nil, fmt.Errorf("unsupported verification method: %s", method)
	}

	return &Verifier{
		method: method,
		logger: log,
	}, nil
}

// Verify checks the report with the configured method. A mismatch returns
// both the populated result and an error; the comparison run treats it as
// fatal.
func (v *Verifier) Verify(alignment *compare.Alignment, report *compare.Report, caseSensitive bool) (*VerifyResult, error) {
	if v.method == MethodSkip {
		v.logger.Info("Verification SKIPPED (method=skip)")
		return &VerifyResult{Method: MethodSkip, Match: true}, nil
	}

	if alignment == nil || report == nil {
		return nil, fmt.Errorf("alignment and report are required")
	}

	v.logger.Infof("Starting verification (method=%s) for %d report rows", v.method, len(report.Rows))

	var result *VerifyResult
	switch v.method {
	case MethodCount:
		result = v.verifyByCount(alignment, report)
	case MethodChecksum:
		result = v.verifyByChecksum(alignment, report, caseSensitive)
	default:
		return nil, fmt.Errorf("unsupported verification method: %s", v.method)
	}

	if !result.Match {
		v.logger.Errorf("Verification FAILED: %s", result.ErrorMessage)
		return result, fmt.Errorf("verification mismatch: %s", result.ErrorMessage)
	}

	v.logger.Infof("Verification PASSED (method=%s, %d rows)", v.method, result.ReportRows)
	return result, nil
}

// verifyByCount checks that the report covers every unioned key exactly once
// and that each classification agrees with the key's side membership.
func (v *Verifier) verifyByCount(alignment *compare.Alignment, report *compare.Report) *VerifyResult {
	result := &VerifyResult{
		Method:     MethodCount,
		ReportRows: len(report.Rows),
		UnionKeys:  len(alignment.UnionKeys),
		Match:      true,
	}

	if result.ReportRows != result.UnionKeys {
		result.Match = false
		result.ErrorMessage = fmt.Sprintf("row count mismatch: report=%d, union keys=%d",
			result.ReportRows, result.UnionKeys)
		return result
	}

	seen := make(map[string]bool, len(report.Rows))
	for _, row := range report.Rows {
		if seen[row.Key] {
			result.Match = false
			result.ErrorMessage = fmt.Sprintf("key %q reported more than once", row.Key)
			return result
		}
		seen[row.Key] = true

		_, inMain := alignment.Main.Get(row.Key)
		_, inSecondary := alignment.Secondary.Get(row.Key)

		var consistent bool
		switch row.Change {
		case compare.Added:
			consistent = inMain && !inSecondary
		case compare.Removed:
			consistent = !inMain && inSecondary
		case compare.Modified, compare.Unchanged:
			consistent = inMain && inSecondary
		}

		if !consistent {
			result.Match = false
			result.ErrorMessage = fmt.Sprintf("key %q classified %s but present in main=%v, secondary=%v",
				row.Key, row.Change, inMain, inSecondary)
			return result
		}
	}

	return result
}

// verifyByChecksum recomputes the diff from the alignment and compares
// SHA256 digests of both reports.
func (v *Verifier) verifyByChecksum(alignment *compare.Alignment, report *compare.Report, caseSensitive bool) *VerifyResult {
	recomputed := compare.Diff(alignment, caseSensitive)

	result := &VerifyResult{
		Method:             MethodChecksum,
		ReportRows:         len(report.Rows),
		UnionKeys:          len(alignment.UnionKeys),
		ReportChecksum:     v.checksumReport(report),
		RecomputedChecksum: v.checksumReport(recomputed),
	}
	result.Match = result.ReportChecksum == result.RecomputedChecksum

	if !result.Match {
		result.ErrorMessage = fmt.Sprintf("checksum mismatch: report=%s, recomputed=%s",
			result.ReportChecksum[:16], result.RecomputedChecksum[:16])
	}

	return result
}

// checksumReport computes a SHA256 digest over a deterministic serialization
// of the report.
func (v *Verifier) checksumReport(report *compare.Report) string {
	hasher := sha256.New()
	for _, row := range report.Rows {
		hasher.Write([]byte(v.serializeRow(report.Columns, row)))
		hasher.Write([]byte("\n"))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// serializeRow converts one diff row to a deterministic string representation
// for hashing. Format: key, change type, then column=old|new per column.
func (v *Verifier) serializeRow(columns []string, row compare.DiffRow) string {
	parts := make([]string, 0, len(columns)+2)
	parts = append(parts, row.Key, string(row.Change))

	for _, column := range columns {
		pair := row.Cell(column)
		parts = append(parts, fmt.Sprintf("%s=%s|%s", column, pair.Old.String(), pair.New.String()))
	}

	// Use null byte separator to avoid ambiguity with column values containing commas
	return strings.Join(parts, "\x00")
}

// SetLogger sets a custom logger for the verifier.
func (v *Verifier) SetLogger(log *logger.Logger) {
	v.logger = log
}

// GetMethod returns the configured verification method.
func (v *Verifier) GetMethod() Method {
	return v.method
}
