package order

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

var invoiceSuffixRange = big.NewInt(10000)

// invoiceNumber renders INV-YYYYMMDD-HHMMSS-mmm-NNNN in UTC. The four digit
// suffix is drawn from entropy and falls back to the clock when that fails.
func invoiceNumber(now time.Time, entropy io.Reader) string {
	now = now.UTC()

	suffix := now.UnixNano() % 10000
	if n, err := rand.Int(entropy, invoiceSuffixRange); err == nil {
		suffix = n.Int64()
	}

	return fmt.Sprintf("INV-%s-%03d-%04d",
		now.Format("20060102-150405"),
		now.Nanosecond()/int(time.Millisecond),
		suffix,
	)
}
