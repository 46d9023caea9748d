package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Envelope wraps exported data with the report metadata downstream consumers
// key on.
type Envelope struct {
	Report      string `json:"report"`
	Period      string `json:"period"`
	Generated   string `json:"generated"`
	RecordCount int    `json:"record_count"`
	Data        any    `json:"data"`
}

// WriteJSONFile writes an indented envelope to path.
func WriteJSONFile(path string, env Envelope) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, env)
}

func WriteJSON(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
