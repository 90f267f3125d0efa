package payouts

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/google/uuid"
)

// SettlementKey derives a deterministic key for a booking id set. Order does
// not matter: the ids are sorted before hashing, so the same set always maps
// to the same key.
func SettlementKey(bookingIDs []uuid.UUID) string {
	ids := make([]string, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
	}
	return hex.EncodeToString(h.Sum(nil))
}
