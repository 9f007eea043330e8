package codec

import (
	"strconv"

	"golang.org/x/sys/windows"
)

var procGetACP = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetACP")

func systemCharset() string {
	if err := procGetACP.Find(); err != nil {
		return "utf-8"
	}
	cp, _, _ := procGetACP.Call()
	return codePageCharset(uint32(cp))
}

func codePageCharset(cp uint32) string {
	switch cp {
	case 65001:
		return "utf-8"
	case 936:
		return "gbk"
	case 932:
		return "shift_jis"
	case 949:
		return "euc-kr"
	case 950:
		return "big5"
	default:
		return "windows-" + strconv.FormatUint(uint64(cp), 10)
	}
}
