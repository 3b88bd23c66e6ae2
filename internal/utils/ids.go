package utils

import (
	"strconv"
	"sync"
	"time"
)

// Entity id prefixes. Identifiers look like "WLT-1693526400000".
const (
	PrefixWallet          = "WLT"
	PrefixTransaction     = "TXN"
	PrefixBudget          = "BGT"
	PrefixGoal            = "GOL"
	PrefixGoalTransaction = "GTX"
	PrefixUser            = "USR"
)

var (
	idMu       sync.Mutex
	lastMillis int64
)

// NewID generates a "{PREFIX}-{unix_millis}" identifier. The millisecond
// value is kept strictly increasing within the process so two ids generated
// in the same millisecond never collide.
func NewID(prefix string) string {
	idMu.Lock()
	defer idMu.Unlock()

	millis := time.Now().UnixMilli()
	if millis <= lastMillis {
		millis = lastMillis + 1
	}
	lastMillis = millis

	return prefix + "-" + strconv.FormatInt(millis, 10)
}
