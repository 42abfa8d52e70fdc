package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind names one of the five entity collections.
type Kind string

const (
	KindUser     Kind = "user"
	KindClient   Kind = "client"
	KindProject  Kind = "project"
	KindTask     Kind = "task"
	KindActivity Kind = "activity"
)

// Kinds lists the collections in load order.
var Kinds = []Kind{KindUser, KindClient, KindProject, KindTask, KindActivity}

// Prefix returns the id prefix for the kind.
func (k Kind) Prefix() string {
	switch k {
	case KindUser:
		return "USER"
	case KindClient:
		return "CLIENT"
	case KindProject:
		return "PROJ"
	case KindTask:
		return "TASK"
	case KindActivity:
		return "ACT"
	}
	return strings.ToUpper(string(k))
}

// Width is the zero-padded width of the numeric id suffix.
func (k Kind) Width() int {
	switch k {
	case KindTask, KindActivity:
		return 4
	}
	return 3
}

// FormatID renders seq as an id such as PROJ-007 or ACT-0042.
// Sequences wider than the padding are rendered in full.
func FormatID(k Kind, seq int) string {
	return fmt.Sprintf("%s-%0*d", k.Prefix(), k.Width(), seq)
}

// ParseID extracts the numeric suffix of an id for the given kind.
func ParseID(k Kind, id string) (int, bool) {
	suffix, ok := strings.CutPrefix(id, k.Prefix()+"-")
	if !ok || suffix == "" {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

const avatarBase = "https://placehold.co/100x100.png?text="

// AvatarURL returns the placeholder avatar for a display name.
func AvatarURL(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return avatarBase
	}
	return avatarBase + url.QueryEscape(string(r))
}
