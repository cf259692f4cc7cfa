// Package ids generates unique identifiers for creator-submitted records.
package ids

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

func idNode() *snowflake.Node {
	nodeOnce.Do(func() {
		n, err := snowflake.NewNode(int64(os.Getpid()) % 1024)
		if err != nil {
			n, _ = snowflake.NewNode(0)
		}
		node = n
	})
	return node
}

// NewProductID returns a fresh product id of the form
// prod_<unix-millis>_<suffix>. The snowflake suffix keeps ids unique across
// calls within the same millisecond; uniqueness is not re-checked against
// existing records.
func NewProductID() string {
	suffix := strings.ToLower(idNode().Generate().Base36())
	return fmt.Sprintf("prod_%d_%s", time.Now().UnixMilli(), suffix)
}
