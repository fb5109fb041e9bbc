package seeddata

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ZipCode is stored as text. Seed files may write it as a number or a string.
type ZipCode string

// UnmarshalYAML accepts integer and string scalars. Unquoted integers keep
// their literal digits so leading zeros survive.
func (z *ZipCode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: zip must be a scalar", value.Line)
	}

	switch value.ShortTag() {
	case "!!null":
		*z = ""
	case "!!int":
		if isDigits(value.Value) {
			*z = ZipCode(value.Value)
			return nil
		}
		n, err := strconv.ParseInt(value.Value, 0, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid zip %q: %w", value.Line, value.Value, err)
		}
		*z = ZipCode(strconv.FormatInt(n, 10))
	case "!!str":
		*z = ZipCode(value.Value)
	default:
		return fmt.Errorf("line %d: zip must be an integer or string, got %s", value.Line, value.ShortTag())
	}
	return nil
}

func (z ZipCode) String() string {
	return string(z)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
