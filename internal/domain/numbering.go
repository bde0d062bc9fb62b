package domain

import (
	"fmt"
	"strings"
	"time"
)

// NextNumber suggests the next document number for a year-scoped series:
// "PREFIX-YYYY-NNNN", where NNNN is the count of existing numbers in the
// series plus one, zero-padded to 4 digits.
//
// The result is a suggestion, not a reservation: two callers racing on
// the same series can receive the same number, since the store does not
// serialize the scan against the subsequent write.
func NextNumber(prefix string, period time.Time, existing []string) string {
	seriesPrefix := fmt.Sprintf("%s-%s-", prefix, period.Format("2006"))

	count := 0
	for _, number := range existing {
		if strings.HasPrefix(number, seriesPrefix) {
			count++
		}
	}

	return fmt.Sprintf("%s%04d", seriesPrefix, count+1)
}
