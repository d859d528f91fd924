package keycode

import (
	"fmt"
	"strings"
)

// Code is a USB HID keyboard usage ID (usage page 0x07).
type Code byte

// Keyboard usage IDs from the USB HID usage tables. Only the ranges a
// macro pad realistically binds are named here; anything else can still be
// expressed numerically in configuration.
const (
	CodeNone Code = 0x00

	// Letters
	CodeA Code = 0x04 + iota - 1
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ

	// Number row
	Code1
	Code2
	Code3
	Code4
	Code5
	Code6
	Code7
	Code8
	Code9
	Code0

	CodeEnter
	CodeEscape
	CodeBackspace
	CodeTab
	CodeSpace
	CodeMinus
	CodeEqual
	CodeLeftBracket
	CodeRightBracket
	CodeBackslash
	_ // 0x32 non-US hash
	CodeSemicolon
	CodeQuote
	CodeGrave
	CodeComma
	CodePeriod
	CodeSlash
	CodeCapsLock

	// Function keys F1-F12
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12

	CodePrintScreen
	CodeScrollLock
	CodePause
	CodeInsert
	CodeHome
	CodePageUp
	CodeDelete
	CodeEnd
	CodePageDown
	CodeRight
	CodeLeft
	CodeDown
	CodeUp

	// Keypad
	CodeNumLock
	CodeKPDivide
	CodeKPMultiply
	CodeKPMinus
	CodeKPPlus
	CodeKPEnter
	CodeKP1
	CodeKP2
	CodeKP3
	CodeKP4
	CodeKP5
	CodeKP6
	CodeKP7
	CodeKP8
	CodeKP9
	CodeKP0
	CodeKPPeriod
)

// Extended function keys F13-F24. These sit past a gap in the usage table,
// and are the usual choice for macro pads because desktop software rarely
// binds them by default.
const (
	CodeF13 Code = 0x68 + iota
	CodeF14
	CodeF15
	CodeF16
	CodeF17
	CodeF18
	CodeF19
	CodeF20
	CodeF21
	CodeF22
	CodeF23
	CodeF24
)

// codeNameMap maps key names (lowercase) to usage IDs.
var codeNameMap = buildCodeNameMap()

var namedCodes = map[string]Code{
	"enter":       CodeEnter,
	"return":      CodeEnter,
	"escape":      CodeEscape,
	"esc":         CodeEscape,
	"backspace":   CodeBackspace,
	"bs":          CodeBackspace,
	"tab":         CodeTab,
	"space":       CodeSpace,
	"minus":       CodeMinus,
	"equal":       CodeEqual,
	"lbracket":    CodeLeftBracket,
	"rbracket":    CodeRightBracket,
	"backslash":   CodeBackslash,
	"semicolon":   CodeSemicolon,
	"quote":       CodeQuote,
	"grave":       CodeGrave,
	"comma":       CodeComma,
	"period":      CodePeriod,
	"slash":       CodeSlash,
	"capslock":    CodeCapsLock,
	"printscreen": CodePrintScreen,
	"scrolllock":  CodeScrollLock,
	"pause":       CodePause,
	"insert":      CodeInsert,
	"ins":         CodeInsert,
	"home":        CodeHome,
	"pageup":      CodePageUp,
	"pgup":        CodePageUp,
	"delete":      CodeDelete,
	"del":         CodeDelete,
	"end":         CodeEnd,
	"pagedown":    CodePageDown,
	"pgdn":        CodePageDown,
	"right":       CodeRight,
	"left":        CodeLeft,
	"down":        CodeDown,
	"up":          CodeUp,
	"numlock":     CodeNumLock,
	"kpdivide":    CodeKPDivide,
	"kp/":         CodeKPDivide,
	"kpmultiply":  CodeKPMultiply,
	"kp*":         CodeKPMultiply,
	"kpminus":     CodeKPMinus,
	"kp-":         CodeKPMinus,
	"kpplus":      CodeKPPlus,
	"kp+":         CodeKPPlus,
	"kpenter":     CodeKPEnter,
	"kpperiod":    CodeKPPeriod,
	"kp.":         CodeKPPeriod,
}

// buildCodeNameMap combines the explicit names with the contiguous runs
// in the usage table (letters, digits, function keys, keypad digits),
// which are generated instead of spelling out sixty-odd map entries.
func buildCodeNameMap() map[string]Code {
	m := make(map[string]Code, len(namedCodes)+64)
	for name, c := range namedCodes {
		m[name] = c
	}
	for c := byte('a'); c <= 'z'; c++ {
		m[string(c)] = CodeA + Code(c-'a')
	}
	for c := byte('1'); c <= '9'; c++ {
		m[string(c)] = Code1 + Code(c-'1')
	}
	m["0"] = Code0
	for n := 1; n <= 12; n++ {
		m[fmt.Sprintf("f%d", n)] = CodeF1 + Code(n-1)
	}
	for n := 13; n <= 24; n++ {
		m[fmt.Sprintf("f%d", n)] = CodeF13 + Code(n-13)
	}
	for n := 1; n <= 9; n++ {
		m[fmt.Sprintf("kp%d", n)] = CodeKP1 + Code(n-1)
	}
	m["kp0"] = CodeKP0
	return m
}

// codeNames is the reverse of codeNameMap. Aliases ("esc", "pgup") resolve
// to the same code, so pick the longest spelling and then pin the few names
// where that heuristic gets it wrong.
var codeNames = func() map[Code]string {
	names := make(map[Code]string, len(codeNameMap))
	for name, c := range codeNameMap {
		if cur, ok := names[c]; !ok || len(name) > len(cur) || (len(name) == len(cur) && name < cur) {
			names[c] = name
		}
	}
	names[CodeEnter] = "enter"
	names[CodeKPDivide] = "kpdivide"
	names[CodeKPMultiply] = "kpmultiply"
	names[CodeKPMinus] = "kpminus"
	names[CodeKPPlus] = "kpplus"
	names[CodeKPPeriod] = "kpperiod"
	return names
}()

// String returns the canonical lowercase name for the code, or a hex form
// for codes without one.
func (c Code) String() string {
	if c == CodeNone {
		return "none"
	}
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("0x%02x", byte(c))
}

// IsFunctionKey reports whether c is a function key (F1-F24).
func (c Code) IsFunctionKey() bool {
	return (c >= CodeF1 && c <= CodeF12) || (c >= CodeF13 && c <= CodeF24)
}

// IsKeypadKey reports whether c is a numeric keypad key.
func (c Code) IsKeypadKey() bool {
	return c >= CodeNumLock && c <= CodeKPPeriod
}

// FromName returns the Code for a key name (case-insensitive).
// Returns CodeNone if the name is not recognized.
func FromName(name string) Code {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := codeNameMap[name]; ok {
		return c
	}
	return CodeNone
}
