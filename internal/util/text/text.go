package text

import (
	"fmt"
	"sort"
	"strings"
)

// AvailableMapKeys renders the sorted keys of a registry map for help and
// error messages.
func AvailableMapKeys[V any](m map[string]V) string {
	avail := make([]string, 0, len(m))
	for k := range m {
		avail = append(avail, fmt.Sprintf("'%s'", k))
	}
	sort.Strings(avail)
	return strings.Join(avail, ", ")
}

func Commify(inVal int) string {
	return Commify64(int64(inVal))
}

func Commify64(inVal int64) string {
	inStr := fmt.Sprintf("%d", inVal)

	var sign string
	if inVal < 0 {
		sign, inStr = "-", inStr[1:]
	}

	outStr := make([]byte, 0, len(inStr)+len(inStr)/3)
	for i := range inStr {
		if i > 0 && (len(inStr)-i)%3 == 0 {
			outStr = append(outStr, ',')
		}
		outStr = append(outStr, inStr[i])
	}

	return sign + string(outStr)
}
