//go:build !windows

package codec

import "os"

func systemCharset() string {
	for _, v := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if l := os.Getenv(v); l != "" {
			return charsetFromLocale(l)
		}
	}
	return "utf-8"
}
