package booking

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Code is the human-readable booking identifier, e.g. BK1767225600000042.
type Code struct {
	value string
}

func GenerateCode(now time.Time) Code {
	return Code{value: fmt.Sprintf("BK%d%03d", now.UnixMilli(), rand.IntN(1000))}
}

func (c Code) String() string { return c.value }
