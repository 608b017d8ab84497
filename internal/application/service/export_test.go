package service

import "time"

// SetNow overrides the sale clock so tests get deterministic timestamps.
func (s *SaleService) SetNow(now func() time.Time) {
	s.now = now
}
