package reconciliation

import (
	"fmt"
	"strings"

	"github.com/kevin07696/payment-reconciler/internal/domain"
)

// buildNote renders an audit note: headline, gateway status, then the
// method's reference and detail fields that are present.
func buildNote(headline string, result *domain.GatewayResult, profile domain.MethodProfile) string {
	var b strings.Builder
	b.WriteString(headline)

	if result == nil {
		return b.String()
	}
	if result.Status != "" {
		fmt.Fprintf(&b, " (Status=%s)", result.Status)
	}

	var parts []string
	if ref := result.Reference(profile); ref != "" {
		parts = append(parts, profile.ReferenceFieldFor(result.Status)+": "+ref)
	}
	for _, name := range profile.DetailFields {
		if v := result.Field(name); v != "" {
			parts = append(parts, name+": "+v)
		}
	}
	if len(parts) > 0 {
		b.WriteString(". ")
		b.WriteString(strings.Join(parts, ", "))
	}

	return b.String()
}

// errorReason formats the gateway error pair the way merchants see it in notes
func errorReason(result *domain.GatewayResult) string {
	return fmt.Sprintf("ErrCode=%s, ErrInfo=%s", result.ErrCode, result.ErrInfo)
}
