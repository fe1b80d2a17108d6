package amount

import "strings"

func formatFractional(str string) string {
	return strings.Repeat("0", FractionalCount-len(str)) + str
}

func padFractional(str string) string {
	return str + strings.Repeat("0", FractionalCount-len(str))
}
