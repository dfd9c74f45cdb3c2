package records

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var stringSliceType = reflect.TypeOf([]string{})

// DecodeStringList accepts the shapes list fields arrive in: a real list, a
// JSON-encoded list inside a string, or a comma separated string. Elements are
// trimmed and empty ones dropped.
func DecodeStringList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return cleanList(v), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			items = append(items, fmt.Sprint(item))
		}
		return cleanList(items), nil
	case string:
		return decodeListString(v), nil
	default:
		return nil, fmt.Errorf("cannot decode %T as a list of strings", value)
	}
}

func decodeListString(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var items []any
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			decoded, _ := DecodeStringList(items)
			return decoded
		}
		s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	}
	return cleanList(strings.Split(s, ","))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.Trim(strings.TrimSpace(item), `"'`)
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StringListHook is a mapstructure decode hook that routes every []string
// target through DecodeStringList.
func StringListHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != stringSliceType {
			return data, nil
		}
		return DecodeStringList(data)
	}
}

func decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       StringListHook(),
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	return decoder.Decode(input)
}
