package wings

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

func checksum(b []byte) string {
	return fmt.Sprintf("%016X", xxhash.Sum64(b))
}
