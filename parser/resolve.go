package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wippyai/s7layout/errors"
	"github.com/wippyai/s7layout/registry"
	"github.com/wippyai/s7layout/types"
)

const (
	prefixString  = "String"
	prefixWString = "WString"
	prefixArray   = "Array"
)

var arrayRe = regexp.MustCompile(`^Array\s*\[\s*(-?\d+)\s*\.\.\s*(-?\d+)\s*\]\s+(?i:of)\s+(.+)$`)

// ResolveType resolves a normalized type specifier (quotes and ';' removed).
func ResolveType(spec string, reg *registry.Registry) (types.Type, error) {
	spec = strings.TrimSpace(spec)

	if t, ok, err := resolveString(spec); ok || err != nil {
		return t, err
	}

	if m := arrayRe.FindStringSubmatch(spec); m != nil {
		return resolveArray(spec, m, reg)
	}
	if strings.HasPrefix(spec, prefixArray+"[") {
		return nil, errors.New(errors.PhaseResolve, errors.KindUnrecognizedType).
			TypeSpec(spec).
			Detail("expected Array[<start>..<end>] of <type>").
			Build()
	}

	if t, ok := reg.Lookup(spec); ok {
		return t, nil
	}
	return nil, errors.UnrecognizedType(nil, spec)
}

// resolveString handles String, String[N], WString and WString[N]. ok is false
// when spec is not a string specifier, e.g. a UDT named "StringTable".
func resolveString(spec string) (types.Type, bool, error) {
	var rest string
	var wide bool
	switch {
	case strings.HasPrefix(spec, prefixWString):
		rest, wide = spec[len(prefixWString):], true
	case strings.HasPrefix(spec, prefixString):
		rest = spec[len(prefixString):]
	default:
		return nil, false, nil
	}

	rest = strings.TrimSpace(rest)
	length := types.DefaultStringLength
	if rest != "" {
		if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") {
			return nil, false, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest[1 : len(rest)-1]))
		if err != nil || n < 0 {
			return nil, true, errors.New(errors.PhaseResolve, errors.KindUnrecognizedType).
				TypeSpec(spec).
				Detail("invalid string length").
				Cause(err).
				Build()
		}
		length = n
	}

	if wide {
		return types.NewWString(length), true, nil
	}
	return types.NewString(length), true, nil
}

func resolveArray(spec string, m []string, reg *registry.Registry) (types.Type, error) {
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, errors.New(errors.PhaseResolve, errors.KindUnrecognizedType).TypeSpec(spec).Cause(err).Build()
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, errors.New(errors.PhaseResolve, errors.KindUnrecognizedType).TypeSpec(spec).Cause(err).Build()
	}
	if end < start {
		return nil, errors.InvalidArrayBounds(nil, spec, start, end)
	}

	elem, err := ResolveType(m[3], reg)
	if err != nil {
		return nil, err
	}
	if err := checkArraySize(spec, start, end, elem); err != nil {
		return nil, err
	}
	return types.NewArray(spec, start, end, elem), nil
}

// checkArraySize rejects ranges too large to expand. end >= start.
func checkArraySize(spec string, start, end int, elem types.Type) error {
	// Unsigned difference of two's complement values cannot wrap for end >= start.
	span := uint64(end) - uint64(start)
	if span >= types.MaxArrayElements {
		return errors.New(errors.PhaseResolve, errors.KindInvalidArrayBounds).
			TypeSpec(spec).
			Detail("more than %d elements", types.MaxArrayElements).
			Build()
	}

	elemSize := int64(elem.Size())
	if total := (int64(span) + 1) * elemSize; elemSize > types.MaxSize || total > types.MaxSize {
		return errors.New(errors.PhaseResolve, errors.KindInvalidArrayBounds).
			TypeSpec(spec).
			Detail("size exceeds %d bits", types.MaxSize).
			Build()
	}
	return nil
}
