package actions

import (
	"strconv"
	"strings"
)

// Kind is the decoded action of an inline button.
type Kind int

const (
	KindMalformed Kind = iota
	KindPromote
	KindRemove
	KindPageNext
	KindPagePrev
)

var wireKinds = map[string]Kind{
	"promote": KindPromote,
	"remove":  KindRemove,
	"next":    KindPageNext,
	"prev":    KindPagePrev,
}

// String returns the wire prefix of the kind.
func (k Kind) String() string {
	switch k {
	case KindPromote:
		return "promote"
	case KindRemove:
		return "remove"
	case KindPageNext:
		return "next"
	case KindPagePrev:
		return "prev"
	}
	return "malformed"
}

// Token is an action carried by an inline button as "<kind>_<param>". Param is a
// sender id for promote and remove, the page the button was rendered on for navigation.
type Token struct {
	Kind  Kind
	Param int64
}

// Encode returns the wire form.
func (t Token) Encode() string {
	return t.Kind.String() + "_" + strconv.FormatInt(t.Param, 10)
}

// Promote builds a promote token.
func Promote(senderID int64) Token { return Token{Kind: KindPromote, Param: senderID} }

// Remove builds a remove token.
func Remove(senderID int64) Token { return Token{Kind: KindRemove, Param: senderID} }

// Next builds a forward navigation token for the current page.
func Next(page int) Token { return Token{Kind: KindPageNext, Param: int64(page)} }

// Prev builds a backward navigation token for the current page.
func Prev(page int) Token { return Token{Kind: KindPagePrev, Param: int64(page)} }

// Parse decodes raw. Anything that is not a known kind followed by '_' and an
// unsigned decimal integer yields KindMalformed.
func Parse(raw string) Token {
	head, param, ok := strings.Cut(raw, "_")
	if !ok {
		return Token{}
	}
	kind, ok := wireKinds[head]
	if !ok || !isDigits(param) {
		return Token{}
	}
	n, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return Token{}
	}
	if (kind == KindPageNext || kind == KindPagePrev) && n > maxPage {
		return Token{}
	}
	return Token{Kind: kind, Param: n}
}

// maxPage keeps page arithmetic inside int on every platform.
const maxPage = 1 << 30

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
