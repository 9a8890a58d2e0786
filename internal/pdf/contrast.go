package pdf

import "strconv"

// ContrastYIQ picks black or white text for the given background color using
// the YIQ brightness formula. Invalid or unparsable colors fall back to black.
func ContrastYIQ(hexColor string) (r, g, b int) {
	cr, cg, cb, ok := parseHexColor(hexColor)
	if !ok {
		return 0, 0, 0
	}
	yiq := (cr*299 + cg*587 + cb*114) / 1000
	if yiq >= 128 {
		return 0, 0, 0
	}
	return 255, 255, 255
}

func parseHexColor(s string) (r, g, b int, ok bool) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}
