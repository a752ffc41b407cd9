package wings

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/bodgit/wings/ship"
)

// Kind identifies the type of a Wings data file.
type Kind int

// Kinds of file recognised in a data directory
const (
	KindUnknown Kind = iota
	KindFont
	KindShip
	KindLevel
	KindPalette
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindFont:    "font",
	KindShip:    "ship",
	KindLevel:   "level",
	KindPalette: "palette",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// Classify works out the kind of file from its name and the first few
// bytes of its content. Ships are identified by their tag, everything else
// by name.
func Classify(name string, head []byte) Kind {
	if bytes.HasPrefix(head, []byte(ship.Magic)) {
		return KindShip
	}

	base := strings.ToUpper(filepath.Base(name))
	ext := filepath.Ext(base)

	switch {
	case strings.HasPrefix(base, "VGAFONT") && ext == ".PIC":
		return KindFont
	case ext == ".LEV":
		return KindLevel
	case ext == ".PCX":
		return KindPalette
	}
	return KindUnknown
}
