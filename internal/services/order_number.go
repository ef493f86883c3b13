package services

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const orderNumberPrefix = "ORD"

// NewOrderNumber returns a human-readable order identifier such as
// ORD-MEW1K3TZS-1B9F2C: a base36 millisecond timestamp plus a base36 random
// component, uppercased. Collisions are possible but rare; the unique index
// on the orders table is the actual backstop, so no retry happens here.
func NewOrderNumber() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var buf [4]byte
	_, _ = rand.Read(buf[:])
	random := strconv.FormatInt(int64(binary.BigEndian.Uint32(buf[:])), 36)

	return strings.ToUpper(fmt.Sprintf("%s-%s-%s", orderNumberPrefix, ts, random))
}
