package models

import (
	"regexp"
	"sort"
	"strings"
)

const MaxNameLength = 32

var namePattern = regexp.MustCompile(`^[\w \-]+$`)

// Player is one member of a room. Marked only ever grows while the player
// is connected; CompletedRows, FullHouse and Score are derived from it.
type Player struct {
	ID            string
	Name          string
	Card          *Card
	Marked        map[int]bool
	CompletedRows [3]bool
	FullHouse     bool
	Score         int
}

// MarkedNumbers returns the marked set as a sorted slice for snapshots.
func (p *Player) MarkedNumbers() []int {
	out := make([]int, 0, len(p.Marked))
	for n := range p.Marked {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// ValidateName trims the raw name and checks it against the allowed
// character set. Returns the cleaned name.
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || len(name) > MaxNameLength {
		return "", ErrInvalidName
	}
	if !namePattern.MatchString(name) {
		return "", ErrInvalidName
	}
	return name, nil
}
