package scan

// isWordByte reports bytes that can form a bareword, used to test
// keyword boundaries.
func isWordByte(ch byte) bool {
	return ch == '_' ||
		('a' <= ch && ch <= 'z') ||
		('A' <= ch && ch <= 'Z') ||
		('0' <= ch && ch <= '9')
}

func foldUpper(ch byte) byte {
	if 'a' <= ch && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}

// IndexByteOutsideQuotes returns the index of the first occurrence of
// target at or after from that is not inside a quoted region. Bracket
// depth is ignored. Returns -1 when absent.
func IndexByteOutsideQuotes(input string, from int, target byte) int {
	st := stateNormal
	var quote byte
	for i := from; i < len(input); i++ {
		ch := input[i]
		switch st {
		case stateNormal:
			switch {
			case ch == '\'' || ch == '"':
				st = stateQuoted
				quote = ch
			case ch == target:
				return i
			}
		case stateQuoted:
			switch {
			case ch == '\\' && i+1 < len(input):
				i++
			case ch == quote:
				if i+1 < len(input) && input[i+1] == quote {
					i++
				} else {
					st = stateNormal
				}
			}
		}
	}
	return -1
}

// IndexKeyword returns the index of the first case-insensitive
// occurrence of word at or after from that sits outside quoted regions
// and on bareword boundaries. Returns -1 when absent. word must be
// uppercase ASCII.
func IndexKeyword(input string, from int, word string) int {
	if word == "" {
		return -1
	}
	st := stateNormal
	var quote byte
	for i := from; i < len(input); i++ {
		ch := input[i]
		switch st {
		case stateNormal:
			if ch == '\'' || ch == '"' {
				st = stateQuoted
				quote = ch
				continue
			}
			if foldUpper(ch) != word[0] {
				continue
			}
			if i > 0 && isWordByte(input[i-1]) {
				continue
			}
			end := i + len(word)
			if end > len(input) {
				continue
			}
			match := true
			for j := 0; j < len(word); j++ {
				if foldUpper(input[i+j]) != word[j] {
					match = false
					break
				}
			}
			if match && (end == len(input) || !isWordByte(input[end])) {
				return i
			}
		case stateQuoted:
			switch {
			case ch == '\\' && i+1 < len(input):
				i++
			case ch == quote:
				if i+1 < len(input) && input[i+1] == quote {
					i++
				} else {
					st = stateNormal
				}
			}
		}
	}
	return -1
}
