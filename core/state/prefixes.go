package state

import "encoding/binary"

var (
	subscriptionPrefix   = []byte("platform/subscription/")
	contentPrefix        = []byte("platform/content/")
	creatorIndexPrefix   = []byte("platform/creator-content/")
	creatorApprovePrefix = []byte("platform/creator-approved/")
	earningsPrefix       = []byte("platform/earnings/")
	accountPrefix        = []byte("platform/account/")

	adminKeyBytes   = []byte("platform/params/admin")
	priceKeyBytes   = []byte("platform/params/unit-price")
	pausedKeyBytes  = []byte("platform/params/paused")
	counterKeyBytes = []byte("platform/params/content-counter")
)

func prefixedAddrKey(prefix []byte, addr []byte) []byte {
	buf := make([]byte, 0, len(prefix)+len(addr))
	buf = append(buf, prefix...)
	return append(buf, addr...)
}

func prefixedIDKey(prefix []byte, id uint64) []byte {
	buf := make([]byte, len(prefix)+8)
	copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[len(prefix):], id)
	return buf
}
