package login

// CodeLength is the number of digits in an OTP code.
const CodeLength = 6

// CodeInput models the six single-digit entry slots of the OTP form,
// including focus tracking, independent of any rendering concern.
// It is not safe for concurrent use; Flow guards it with its own mutex.
type CodeInput struct {
	slots [CodeLength]byte
	focus int
}

// EnterDigit places a numeric character into the given slot and advances
// focus. It reports whether every slot is now filled, which is the trigger
// for the automatic verification. Non-digit input and out-of-range slots
// are ignored.
func (c *CodeInput) EnterDigit(index int, value byte) bool {
	if index < 0 || index >= CodeLength {
		return false
	}
	if value < '0' || value > '9' {
		return false
	}

	c.slots[index] = value
	if index < CodeLength-1 {
		c.focus = index + 1
	} else {
		c.focus = index
	}
	return c.Complete()
}

// Backspace handles deletion at the given slot: a filled slot is cleared in
// place, an empty slot moves focus to the previous one.
func (c *CodeInput) Backspace(index int) {
	if index < 0 || index >= CodeLength {
		return
	}
	if c.slots[index] != 0 {
		c.slots[index] = 0
		c.focus = index
		return
	}
	if index > 0 {
		c.focus = index - 1
	}
}

// Complete reports whether all six slots hold a digit.
func (c *CodeInput) Complete() bool {
	for _, s := range c.slots {
		if s == 0 {
			return false
		}
	}
	return true
}

// String returns the digits entered so far, skipping empty slots.
func (c *CodeInput) String() string {
	buf := make([]byte, 0, CodeLength)
	for _, s := range c.slots {
		if s != 0 {
			buf = append(buf, s)
		}
	}
	return string(buf)
}

// Clear empties every slot and returns focus to the first one.
func (c *CodeInput) Clear() {
	c.slots = [CodeLength]byte{}
	c.focus = 0
}

// Focus returns the slot index that should receive the next keystroke.
func (c *CodeInput) Focus() int {
	return c.focus
}
