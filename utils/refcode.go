package utils

import (
	"fmt"
	"math/rand"
)

// Reference-code prefixes per entity type.
const (
	PrefixBatch      = "BTH"
	PrefixThirdParty = "EXT"
	PrefixRun        = "RUN"
	PrefixContract   = "CON"
	PrefixWarehouse  = "WHE"
	PrefixReprocess  = "RPS"
	PrefixShipment   = "SHP"
)

// GenRefCode builds a human-readable reference like BTH-483-920: prefix plus
// six random digits. Uniqueness is enforced by the DB index; callers retry on
// a duplicate-key error.
func GenRefCode(prefix string) string {
	return fmt.Sprintf("%s-%03d-%03d", prefix, rand.Intn(1000), rand.Intn(1000))
}
