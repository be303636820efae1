package cache

import (
	"sort"
	"strings"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

// Cache key builders. Mutations must invalidate the entity's own key plus
// every list key that could contain it.

// List keys.
const (
	KeyAllIPOs      = "ipos:all"
	KeyUpcomingIPOs = "ipos:upcoming"
	KeyAllBrokers   = "brokers:all"
	KeyAllInvestors = "investors:all"
)

// IPOKey returns the by-id key for an IPO.
func IPOKey(id string) string {
	return "ipo:" + id
}

// IPOStatusKey returns the list key for a status-filtered IPO listing.
func IPOStatusKey(status string) string {
	return "ipos:status:" + status
}

// BrokerKey returns the by-id key for a broker.
func BrokerKey(id string) string {
	return "broker:" + id
}

// BrokerCompareKey derives a stable key from the requested broker IDs. The
// set is sorted so the same selection hits the same entry regardless of
// query order.
func BrokerCompareKey(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return "brokers:compare:" + strings.Join(sorted, "_")
}

// InvestorKey returns the by-id key for an investor.
func InvestorKey(id string) string {
	return "investor:" + id
}

// InvalidateIPOs removes every IPO key that a mutation could have staled:
// the full and upcoming lists, all per-status lists and, when given, the
// entity's own key.
func InvalidateIPOs(s *Store, id string) {
	keys := []string{KeyAllIPOs, KeyUpcomingIPOs}
	for _, status := range []string{
		model.IPOStatusUpcoming,
		model.IPOStatusOpen,
		model.IPOStatusPast,
		model.IPOStatusCancelled,
	} {
		keys = append(keys, IPOStatusKey(status))
	}
	if id != "" {
		keys = append(keys, IPOKey(id))
	}
	s.Delete(keys...)
}

// InvalidateBrokers removes the broker list key and, when given, the
// entity's own key. Comparison entries are left to expire on their short TTL.
func InvalidateBrokers(s *Store, id string) {
	keys := []string{KeyAllBrokers}
	if id != "" {
		keys = append(keys, BrokerKey(id))
	}
	s.Delete(keys...)
}

// InvalidateInvestors removes the investor list key and, when given, the
// entity's own key.
func InvalidateInvestors(s *Store, id string) {
	keys := []string{KeyAllInvestors}
	if id != "" {
		keys = append(keys, InvestorKey(id))
	}
	s.Delete(keys...)
}
