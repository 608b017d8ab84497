package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// transaction numbers look like TXN20260829143015042: a fixed prefix, the
// second-resolution wall clock, and a random 3-digit suffix. The suffix keeps
// two sales in the same second from colliding most of the time; the unique
// index on the ledger catches the rest.
const (
	txnPrefix       = "TXN"
	txnTimeLayout   = "20060102150405"
	txnSuffixDigits = 3
	txnSuffixMax    = 1000
)

// GenerateTransactionNumber returns a new human-readable transaction number.
func GenerateTransactionNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(txnSuffixMax))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken;
		// fall back to the clock's sub-second digits.
		return fmt.Sprintf("%s%s%03d", txnPrefix, now.Format(txnTimeLayout), now.Nanosecond()%txnSuffixMax)
	}
	return fmt.Sprintf("%s%s%0*d", txnPrefix, now.Format(txnTimeLayout), txnSuffixDigits, n.Int64())
}
