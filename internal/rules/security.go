package rules

import (
	"fmt"

	"github.com/sitepulse/siteaudit/internal/audit"
)

var securityRules = []Rule{
	{Slug: "security/no-https", Category: audit.CategorySecurity, Evaluate: noHTTPS},
	{Slug: "security/mixed-content", Category: audit.CategorySecurity, Evaluate: mixedContent},
	{Slug: "security/expiring-certificate", Category: audit.CategorySecurity, Evaluate: expiringCertificate},
	{Slug: "security/no-hsts", Category: audit.CategorySecurity, Evaluate: noHSTS},
}

func noHTTPS(a *audit.NormalizedAudit) *audit.Finding {
	if a.Security == nil || a.Security.HTTPS {
		return nil
	}
	return finding(a, "security/no-https", nil, audit.Finding{
		Category:   audit.CategorySecurity,
		Severity:   audit.SeverityBlocker,
		Title:      "Site is served over plain HTTP",
		Impact:     0.9,
		Confidence: 0.95,
		Penalty:    40,
		Evidence:   []string{"the site does not use HTTPS; browsers mark it \"Not secure\""},
		Fix:        "Install a TLS certificate and redirect all HTTP traffic to HTTPS.",
		Effort:     audit.EffortMedium,
		Tags:       []string{"tls"},
	})
}

func mixedContent(a *audit.NormalizedAudit) *audit.Finding {
	if a.Security == nil || !a.Security.HTTPS || !a.Security.MixedContent {
		return nil
	}
	return finding(a, "security/mixed-content", nil, audit.Finding{
		Category:   audit.CategorySecurity,
		Severity:   audit.SeverityMajor,
		Title:      "Secure page loads insecure resources",
		Impact:     0.5,
		Confidence: 0.85,
		Penalty:    15,
		Evidence:   []string{"the HTTPS page loads images or scripts over HTTP"},
		Fix:        "Serve every asset over HTTPS so browsers stop downgrading the padlock.",
		Effort:     audit.EffortLow,
		Tags:       []string{"tls", "mixed-content"},
	})
}

func expiringCertificate(a *audit.NormalizedAudit) *audit.Finding {
	if a.Security == nil || a.Security.CertExpiryDays == nil {
		return nil
	}
	days := *a.Security.CertExpiryDays
	if days >= 14 {
		return nil
	}
	facts := map[string]any{"days": days}
	return finding(a, "security/expiring-certificate", facts, audit.Finding{
		Category:   audit.CategorySecurity,
		Severity:   audit.SeverityMajor,
		Title:      "TLS certificate expires soon",
		Impact:     0.6,
		Confidence: 0.95,
		Penalty:    12,
		Evidence:   []string{fmt.Sprintf("the certificate expires in %d days", days)},
		Fix:        "Renew the certificate and enable automatic renewal.",
		Effort:     audit.EffortLow,
		Tags:       []string{"tls"},
	})
}

func noHSTS(a *audit.NormalizedAudit) *audit.Finding {
	if a.Security == nil || !a.Security.HTTPS || a.Security.HSTS {
		return nil
	}
	return finding(a, "security/no-hsts", nil, audit.Finding{
		Category:   audit.CategorySecurity,
		Severity:   audit.SeverityTrivial,
		Title:      "HSTS not enabled",
		Impact:     0.2,
		Confidence: 0.9,
		Penalty:    4,
		Evidence:   []string{"no Strict-Transport-Security header"},
		Fix:        "Send a Strict-Transport-Security header so browsers always connect over TLS.",
		Effort:     audit.EffortLow,
		Tags:       []string{"tls", "headers"},
	})
}
