package utils_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/kevmogita/duka-pos/pkg/utils"
)

func TestGenerateTransactionNumberFormat(t *testing.T) {
	// GIVEN: a fixed point in time
	now := time.Date(2026, 8, 29, 14, 30, 15, 0, time.UTC)

	// WHEN: a transaction number is generated
	txn := utils.GenerateTransactionNumber(now)

	// THEN: it is the TXN prefix, the second-resolution timestamp, and a
	// zero-padded 3-digit suffix
	pattern := regexp.MustCompile(`^TXN20260829143015\d{3}$`)
	if !pattern.MatchString(txn) {
		t.Errorf("transaction number %q does not match %s", txn, pattern)
	}
	if len(txn) != 20 {
		t.Errorf("transaction number length = %d, want 20", len(txn))
	}
}

func TestGenerateTransactionNumberEmbedsClock(t *testing.T) {
	// GIVEN: two distinct seconds
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	second := first.Add(time.Second)

	// WHEN: numbers are generated for each
	a := utils.GenerateTransactionNumber(first)
	b := utils.GenerateTransactionNumber(second)

	// THEN: the timestamp portion differs, so numbers from different seconds
	// can never collide
	if !strings.HasPrefix(a, "TXN20260102030405") {
		t.Errorf("unexpected timestamp portion in %q", a)
	}
	if !strings.HasPrefix(b, "TXN20260102030406") {
		t.Errorf("unexpected timestamp portion in %q", b)
	}
}

func TestGenerateTransactionNumberSuffixVaries(t *testing.T) {
	// GIVEN: the same second
	now := time.Date(2026, 8, 29, 14, 30, 15, 0, time.UTC)

	// WHEN: many numbers are generated within it
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[utils.GenerateTransactionNumber(now)] = true
	}

	// THEN: the random suffix spreads them out. With 200 draws over 1000
	// suffixes, a handful of collisions are expected; a single repeated
	// value would mean the suffix is not random at all.
	if len(seen) < 2 {
		t.Errorf("got %d distinct numbers from 200 draws, suffix looks constant", len(seen))
	}
}
