package config

import (
	"github.com/indigo-web/compressvary/errors"
	"github.com/indigo-web/utils/strcomp"
	"gopkg.in/yaml.v3"
)

// Flag is a boolean directive, which may be left unset in order to inherit the value
// from the enclosing scope.
type Flag uint8

const (
	Unset Flag = iota
	On
	Off
)

// Merge returns the flag itself if it's set, otherwise parent's value.
func (f Flag) Merge(parent Flag) Flag {
	if f == Unset {
		return parent
	}

	return f
}

// Bool returns whether the flag is on. Unset flags are off.
func (f Flag) Bool() bool {
	return f == On
}

func (f Flag) String() string {
	switch f {
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "unset"
	}
}

func ParseFlag(value string) (Flag, error) {
	switch {
	case strcomp.EqualFold(value, "on"), strcomp.EqualFold(value, "true"):
		return On, nil
	case strcomp.EqualFold(value, "off"), strcomp.EqualFold(value, "false"):
		return Off, nil
	}

	return Unset, errors.ErrBadFlag
}

func (f *Flag) UnmarshalYAML(value *yaml.Node) (err error) {
	*f, err = ParseFlag(value.Value)
	return err
}
