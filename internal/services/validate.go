package services

import "strings"

// isValidCPF validates the two CPF check digits. Non-digit characters are
// stripped first; exactly 11 digits must remain and they must not all be
// the same digit.
func isValidCPF(cpf string) bool {
	digits := make([]int, 0, 11)
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) != 11 {
		return false
	}

	allSame := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += digits[i] * (10 - i)
	}
	check := 11 - sum%11
	if check >= 10 {
		check = 0
	}
	if check != digits[9] {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += digits[i] * (11 - i)
	}
	check = 11 - sum%11
	if check >= 10 {
		check = 0
	}
	return check == digits[10]
}

// isValidEmail is a permissive syntactic check: a single @ separating
// non-empty local and domain parts, no whitespace, and a dot inside the
// domain. Not full RFC validation.
func isValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t\n") {
		return false
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
