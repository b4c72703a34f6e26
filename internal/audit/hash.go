package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for content-addressed finding identity. The version suffix
// enables future algorithm migration without ID collisions.
const domainFinding = "siteaudit/finding/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// FindingID computes the content-addressed ID for a finding.
//
// The ID is a pure function of the rule slug, the audit it was evaluated
// against, and the salient facts the rule keyed on. Re-evaluating the same
// rule against the same inputs always yields the same ID, which is what
// makes dedup across the category/topIssues/fastWins lists safe.
//
// Facts must contain only strings, integers, booleans, and
// arrays/maps thereof; floats are rejected.
func FindingID(auditID, rule string, facts map[string]any) (string, error) {
	obj := map[string]any{
		"audit_id": auditID,
		"rule":     rule,
	}
	if facts != nil {
		obj["facts"] = facts
	}

	canonical, err := marshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("FindingID: failed to marshal: %w", err)
	}
	return hashWithDomain(domainFinding, canonical), nil
}

// MustFindingID is like FindingID but panics on error. Use when the fact
// inputs are statically known to be valid.
func MustFindingID(auditID, rule string, facts map[string]any) string {
	id, err := FindingID(auditID, rule, facts)
	if err != nil {
		panic(err)
	}
	return id
}
