package cli

import (
	"github.com/spf13/pflag"

	"github.com/aidanlsb/hdate/internal/resolver"
)

// directionValue is a --prefer flag that stays unset until given, so the text
// can decide the direction by default.
type directionValue struct {
	dir *resolver.Direction
}

var _ pflag.Value = (*directionValue)(nil)

func (v *directionValue) String() string {
	if v.dir == nil {
		return ""
	}
	return v.dir.String()
}

func (v *directionValue) Set(s string) error {
	d, err := resolver.ParseDirection(s)
	if err != nil {
		return err
	}
	v.dir = &d
	return nil
}

func (v *directionValue) Type() string {
	return "direction"
}

// changedBool returns the flag's value when it was given on the command line.
func changedBool(flags *pflag.FlagSet, name string) *bool {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}
