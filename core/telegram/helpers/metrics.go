package helpers

import tele "gopkg.in/telebot.v4"

const (
	keyMessages = "messages"
	keyKeyboard = "kb"
)

// ResetCounters prepares the per-update response counters.
func ResetCounters(c tele.Context) {
	c.Set(keyMessages, 0)
	c.Set(keyKeyboard, false)
}

// CountMessage records one outbound message for the update summary log.
func CountMessage(c tele.Context, keyboard bool) {
	n, _ := c.Get(keyMessages).(int)
	c.Set(keyMessages, n+1)
	if keyboard {
		c.Set(keyKeyboard, true)
	}
}

// Counters returns the number of messages queued for the update and whether any carried
// a keyboard.
func Counters(c tele.Context) (int, bool) {
	n, _ := c.Get(keyMessages).(int)
	kb, _ := c.Get(keyKeyboard).(bool)
	return n, kb
}
