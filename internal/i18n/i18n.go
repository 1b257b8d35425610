// Package i18n holds the English and Japanese message catalogs.
package i18n

import (
	"fmt"
	"sort"
	"strings"
)

const (
	English  = "en"
	Japanese = "ja"
)

// Params fills {name} placeholders.
type Params map[string]any

type tree = map[string]any

var catalogs = map[string]map[string]string{
	English:  flatten(en),
	Japanese: flatten(ja),
}

// Normalize maps a requested locale to one we ship, defaulting to English.
func Normalize(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	if l == Japanese || strings.HasPrefix(l, "ja-") || strings.HasPrefix(l, "ja_") {
		return Japanese
	}
	return English
}

// T looks key up in locale, then English, and returns the key itself when
// neither has it.
func T(locale, key string, params Params) string {
	msg, ok := catalogs[Normalize(locale)][key]
	if !ok {
		msg, ok = catalogs[English][key]
	}
	if !ok {
		return key
	}
	return interpolate(msg, params)
}

// Has reports whether locale defines key without falling back.
func Has(locale, key string) bool {
	_, ok := catalogs[Normalize(locale)][key]
	return ok
}

// Keys lists every key of locale, sorted.
func Keys(locale string) []string {
	c := catalogs[Normalize(locale)]
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func interpolate(msg string, params Params) string {
	if len(params) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

func flatten(t tree) map[string]string {
	out := make(map[string]string)
	var walk func(prefix string, node tree)
	walk = func(prefix string, node tree) {
		for k, v := range node {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			switch val := v.(type) {
			case string:
				out[key] = val
			case tree:
				walk(key, val)
			default:
				panic(fmt.Sprintf("i18n: unsupported value for %s: %T", key, v))
			}
		}
	}
	walk("", t)
	return out
}
