package utils

import (
	"regexp"
	"testing"
)

func TestGenRefCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{3}-\d{3}-\d{3}$`)
	for _, prefix := range []string{PrefixBatch, PrefixThirdParty, PrefixRun, PrefixContract, PrefixWarehouse, PrefixReprocess, PrefixShipment} {
		for i := 0; i < 20; i++ {
			code := GenRefCode(prefix)
			if !pattern.MatchString(code) {
				t.Fatalf("GenRefCode(%s) = %q, does not match PFX-NNN-NNN", prefix, code)
			}
			if code[:3] != prefix {
				t.Fatalf("GenRefCode(%s) = %q, wrong prefix", prefix, code)
			}
		}
	}
}
