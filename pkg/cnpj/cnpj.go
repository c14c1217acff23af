// Package cnpj valida y formatea el CNPJ (Cadastro Nacional da Pessoa Jurídica).
package cnpj

import (
	"errors"
	"fmt"
	"unicode"
)

// Length cantidad de dígitos del CNPJ sin máscara.
const Length = 14

var (
	ErrLength      = errors.New("cnpj: debe tener 14 dígitos")
	ErrRepeated    = errors.New("cnpj: dígitos repetidos")
	ErrCheckDigits = errors.New("cnpj: dígitos verificadores inválidos")
)

// pesos módulo 11 para el primer y segundo dígito verificador.
var (
	firstWeights  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Sanitize deja solo los dígitos: "11.222.333/0001-81" -> "11222333000181".
func Sanitize(s string) string {
	out := make([]byte, 0, Length)
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// Validate acepta el CNPJ con o sin máscara.
func Validate(s string) error {
	digits := Sanitize(s)
	if len(digits) != Length {
		return fmt.Errorf("%w, se encontraron %d", ErrLength, len(digits))
	}
	if allEqual(digits) {
		return ErrRepeated
	}
	first := checkDigit(digits[:12], firstWeights[:])
	second := checkDigit(digits[:12]+string(first), secondWeights[:])
	if digits[12] != first || digits[13] != second {
		return fmt.Errorf("%w: esperado %c%c, recibido %s", ErrCheckDigits, first, second, digits[12:])
	}
	return nil
}

// IsValid atajo de Validate.
func IsValid(s string) bool { return Validate(s) == nil }

// Format aplica la máscara 00.000.000/0000-00. Si no tiene 14 dígitos devuelve la entrada.
func Format(s string) string {
	d := Sanitize(s)
	if len(d) != Length {
		return s
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

func checkDigit(digits string, weights []int) byte {
	var sum int
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

func allEqual(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
