// Package cpfcnpj реализует проверку контрольных цифр и каноническое
// форматирование бразильских идентификаторов CPF (11 цифр) и CNPJ (14 цифр).
package cpfcnpj

import (
	"errors"
	"fmt"
	"strings"
)

// Длины идентификаторов в цифрах.
const (
	cpfLength  = 11
	cnpjLength = 14
)

// ErrInvalid возвращается для значений с неверной длиной или контрольной суммой.
var ErrInvalid = errors.New("invalid cpf/cnpj")

// digits удаляет из строки все символы, кроме цифр.
func digits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// allSame сообщает, состоит ли строка из одной повторяющейся цифры.
func allSame(v string) bool {
	for i := 1; i < len(v); i++ {
		if v[i] != v[0] {
			return false
		}
	}
	return true
}

// Valid проверяет контрольные цифры CPF или CNPJ.
// Значения из одной повторяющейся цифры отклоняются.
func Valid(value string) bool {
	v := digits(value)
	if v == "" || allSame(v) {
		return false
	}

	switch len(v) {
	case cpfLength:
		return validCPF(v)
	case cnpjLength:
		return validCNPJ(v)
	default:
		return false
	}
}

func validCPF(v string) bool {
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(v[i]-'0') * (10 - i)
	}
	rev := 11 - sum%11
	if rev >= 10 {
		rev = 0
	}
	if rev != int(v[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(v[i]-'0') * (11 - i)
	}
	rev = 11 - sum%11
	if rev >= 10 {
		rev = 0
	}
	return rev == int(v[10]-'0')
}

func validCNPJ(v string) bool {
	check := func(length int, startPos int) int {
		sum := 0
		pos := startPos
		for i := 0; i < length; i++ {
			sum += int(v[i]-'0') * pos
			pos--
			if pos < 2 {
				pos = 9
			}
		}
		if sum%11 < 2 {
			return 0
		}
		return 11 - sum%11
	}

	if check(12, 5) != int(v[12]-'0') {
		return false
	}
	return check(13, 6) == int(v[13]-'0')
}

// Format приводит CPF/CNPJ к каноническому виду с разделителями
// (000.000.000-00 или 00.000.000/0000-00). Значения неожиданной длины
// возвращаются без изменений.
func Format(value string) string {
	v := digits(value)
	switch len(v) {
	case cpfLength:
		return fmt.Sprintf("%s.%s.%s-%s", v[0:3], v[3:6], v[6:9], v[9:11])
	case cnpjLength:
		return fmt.Sprintf("%s.%s.%s/%s-%s", v[0:2], v[2:5], v[5:8], v[8:12], v[12:14])
	default:
		return value
	}
}
