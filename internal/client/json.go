package client

import (
	"encoding/json"
	"fmt"

	"github.com/yourusername/sway-cli/internal/ipc"
)

// unmarshal decodes a reply payload, mapping JSON failures onto the
// decode error category. The connection stays usable after one.
func unmarshal(payload []byte, v interface{}) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ipc.ErrDecode, err)
	}
	return nil
}
