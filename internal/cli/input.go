package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sitepulse/siteaudit/internal/audit"
)

// Error codes surfaced in CLI responses.
const (
	ErrCodeGeneric   = "E001"
	ErrCodeAuditFile = "E002"
	ErrCodeRegistry  = "E003"
	ErrCodeWarehouse = "E004"
)

// LoadAudit reads a normalized audit from a JSON or YAML file, chosen by
// extension (.json, .yaml, .yml).
func LoadAudit(path string) (*audit.NormalizedAudit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audit file: %w", err)
	}

	var a audit.NormalizedAudit
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("decode audit json %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("decode audit yaml %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported audit file extension %q (want .json, .yaml, or .yml)", ext)
	}

	if a.AuditID == "" {
		return nil, fmt.Errorf("audit file %s: missing audit_id", path)
	}
	return &a, nil
}

// LoadAudits reads every given audit file, in argument order.
func LoadAudits(paths []string) ([]*audit.NormalizedAudit, error) {
	audits := make([]*audit.NormalizedAudit, 0, len(paths))
	for _, path := range paths {
		a, err := LoadAudit(path)
		if err != nil {
			return nil, err
		}
		audits = append(audits, a)
	}
	return audits, nil
}
