package export

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

func JSON(b *Bundle) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// YAML goes through the JSON form so field names match the API and the JSON
// export.
func YAML(b *Bundle) ([]byte, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("export: encode bundle: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("export: decode bundle: %w", err)
	}
	return yaml.Marshal(generic)
}
