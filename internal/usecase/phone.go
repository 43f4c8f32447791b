package usecase

// ValidatePhone checks for a 10-digit Indian mobile number: the first digit
// must be 6-9, the rest numeric. Invalid numbers must never reach the network.
func ValidatePhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	if phone[0] < '6' || phone[0] > '9' {
		return false
	}
	for i := 1; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateCode checks for a complete 6-digit OTP code.
func ValidateCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
