package codec

import "strings"

// charsetFromLocale extracts the codeset of a POSIX locale name such as
// "de_DE.ISO-8859-1@euro". C and POSIX locales map to utf-8.
func charsetFromLocale(locale string) string {

	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}

	if locale == "" || locale == "C" || locale == "POSIX" {
		return "utf-8"
	}

	i := strings.IndexByte(locale, '.')
	if i < 0 || i == len(locale)-1 {
		return "utf-8"
	}
	return locale[i+1:]
}

// System is the host's preferred text encoding, UTF-8 when it can not be
// determined or is unsupported.
func System() Codec {
	if c, err := Lookup(systemCharset()); err == nil {
		return c
	}
	return UTF8
}
