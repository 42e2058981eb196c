// Copyright 2018 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flagvar registers the fields of a struct as flags on a
// pflag.FlagSet. A field is annotated with a tag that carries the name of
// the flag, an optional default value and the usage message, which keeps
// each command's flags together with the data structure they fill in.
//
// Besides the usual scalar types, []byte fields are base64 flags and
// HexBytes fields are hex flags, which suits commands that exchange keys,
// ciphertexts and proofs as text.
package flagvar

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/spf13/pflag"
)

// HexBytes is a byte slice that is set from a hex encoded flag value.
type HexBytes []byte

// consume up to the separator or end of data, allowing for escaping using \.
func consume(t string, sep rune) (value, remaining string) {
	val := make([]rune, 0, len(t))
	escaped := false
	for i, r := range t {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		if !escaped && r == sep {
			return string(val), t[i:] // include sep
		}
		escaped = false
		val = append(val, r)
	}
	return string(val), ""
}

func parseField(t, field string, allowEmpty, expectMore bool) (value, remaining string, err error) {
	if len(t) > 0 && t[0] == '\'' {
		value, remaining = consume(t[1:], '\'')
		if len(remaining) == 0 {
			return "", "", fmt.Errorf("missing close quote (') for %v", field)
		}
		remaining = remaining[1:]
	} else if len(t) > 0 {
		value, remaining = consume(t, ',')
	}
	if !allowEmpty && len(value) == 0 {
		return "", "", fmt.Errorf("empty field for %v", field)
	}
	if !expectMore {
		if len(remaining) > 0 {
			return "", "", fmt.Errorf("spurious text after %v", field)
		}
		return value, "", nil
	}
	if len(remaining) == 0 {
		return "", "", fmt.Errorf("more fields expected after %v", field)
	}
	if remaining[0] == ',' {
		remaining = remaining[1:]
	}
	return value, remaining, nil
}

// ParseFlagTag parses the supplied string into a flag name, default literal
// value and description components. The tag format is:
//
//	<name>,<default-value>,<usage>
//
// <default-value> may be left empty, but <name> and <usage> must be
// supplied. All fields can be quoted (with ') if they need to contain a
// comma. Default values may contain environment variables, so
// $HOME/.aibe may be used for example.
func ParseFlagTag(t string) (name, value, usage string, err error) {
	if len(t) == 0 {
		return "", "", "", fmt.Errorf("empty or missing tag")
	}
	name, remaining, err := parseField(t, "<name>", false, true)
	if err != nil {
		return
	}
	value, remaining, err = parseField(remaining, "<default-value>", true, true)
	if err != nil {
		return
	}
	usage, _, err = parseField(remaining, "<usage>", false, false)
	return
}

// RegisterFlagsInStruct registers the fields of the struct pointed to by
// structWithFlags that carry the named tag as flags on fs. Computed default
// values may be supplied in valueDefaults and the defaults shown in usage
// messages may be overridden by usageDefaults; both maps are keyed by flag
// name. Embedded structs are walked provided that they are not themselves
// tagged and not embedded as pointers.
//
// Supported field types are int, int64, uint, uint64, bool, float64,
// string, time.Duration, []string, []byte (base64), HexBytes and any type
// whose pointer implements pflag.Value.
func RegisterFlagsInStruct(fs *pflag.FlagSet, tag string, structWithFlags interface{}, valueDefaults map[string]interface{}, usageDefaults map[string]string) error {
	val := reflect.ValueOf(structWithFlags)
	if val.Kind() != reflect.Ptr {
		return fmt.Errorf("%T is not addressable", structWithFlags)
	}
	if val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%T is not a pointer to a struct", structWithFlags)
	}
	if err := registerFlagsInStruct(fs, tag, val.Elem(), valueDefaults); err != nil {
		return err
	}
	for k := range valueDefaults {
		if fs.Lookup(k) == nil {
			return fmt.Errorf("flag %v does not exist but specified as a value default", k)
		}
	}
	for k, v := range usageDefaults {
		f := fs.Lookup(k)
		if f == nil {
			return fmt.Errorf("flag %v does not exist but specified as a usage default", k)
		}
		f.DefValue = v
	}
	return nil
}

// define registers ptr, the address of a struct field, with a zero default.
func define(fs *pflag.FlagSet, ptr interface{}, name, usage string) bool {
	switch p := ptr.(type) {
	case pflag.Value:
		fs.Var(p, name, usage)
	case *int:
		fs.IntVar(p, name, 0, usage)
	case *int64:
		fs.Int64Var(p, name, 0, usage)
	case *uint:
		fs.UintVar(p, name, 0, usage)
	case *uint64:
		fs.Uint64Var(p, name, 0, usage)
	case *bool:
		fs.BoolVar(p, name, false, usage)
	case *float64:
		fs.Float64Var(p, name, 0, usage)
	case *string:
		fs.StringVar(p, name, "", usage)
	case *time.Duration:
		fs.DurationVar(p, name, 0, usage)
	case *[]string:
		fs.StringSliceVar(p, name, nil, usage)
	case *[]byte:
		fs.BytesBase64Var(p, name, nil, usage)
	case *HexBytes:
		fs.BytesHexVar((*[]byte)(p), name, nil, usage)
	default:
		return false
	}
	return true
}

func registerFlagsInStruct(fs *pflag.FlagSet, tag string, val reflect.Value, valueDefaults map[string]interface{}) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		fieldType := typ.Field(i)
		tags, ok := fieldType.Tag.Lookup(tag)
		if !ok {
			if fieldType.Type.Kind() == reflect.Struct && fieldType.Anonymous {
				if err := registerFlagsInStruct(fs, tag, val.Field(i), valueDefaults); err != nil {
					return err
				}
			}
			continue
		}
		name, literal, usage, err := ParseFlagTag(tags)
		if err != nil {
			return fmt.Errorf("field %v: failed to parse tag: %v", fieldType.Name, tags)
		}
		if fs.Lookup(name) != nil {
			return fmt.Errorf("flag %v already defined for this flag.FlagSet", name)
		}
		errPrefix := fmt.Sprintf("field: %v of type %v for flag %v", fieldType.Name, fieldType.Type, name)
		if fieldType.Type.Kind() == reflect.Ptr {
			return fmt.Errorf("%v: field can't be a pointer", errPrefix)
		}
		field := val.Field(i)
		if !define(fs, field.Addr().Interface(), name, usage) {
			return fmt.Errorf("%v: does not implement pflag.Value", errPrefix)
		}
		f := fs.Lookup(name)
		if dv, ok := valueDefaults[name]; ok {
			v := reflect.ValueOf(dv)
			if !v.Type().ConvertibleTo(field.Type()) {
				return fmt.Errorf("%v: value default of type %T is not convertible", errPrefix, dv)
			}
			field.Set(v.Convert(field.Type()))
			f.DefValue = f.Value.String()
			continue
		}
		if len(literal) == 0 {
			f.DefValue = f.Value.String()
			continue
		}
		expanded := os.ExpandEnv(literal)
		if err := setLiteral(field, expanded); err != nil {
			return fmt.Errorf("%v: failed to set initial default value: %v", errPrefix, err)
		}
		if expanded != literal {
			f.DefValue = literal
		} else {
			f.DefValue = f.Value.String()
		}
	}
	return nil
}

// setLiteral parses literal into field through a flag on a scratch flag
// set, leaving the registered flag's value unchanged as far as the flag set
// is concerned.
func setLiteral(field reflect.Value, literal string) error {
	tmp := pflag.NewFlagSet("", pflag.ContinueOnError)
	define(tmp, field.Addr().Interface(), "default", "")
	return tmp.Lookup("default").Value.Set(literal)
}
