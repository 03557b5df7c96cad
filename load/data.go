package load

import (
	"fmt"
	"strings"
)

// ParseData turns command-line key=value pairs into template data.
func ParseData(pairs []string) (map[string]string, error) {
	data := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("data %q must be in the form 'key=value'", pair)
		}
		if _, dup := data[key]; dup {
			return nil, fmt.Errorf("data key %q given more than once", key)
		}
		data[key] = value
	}
	return data, nil
}
