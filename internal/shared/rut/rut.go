// Package rut validates and normalises Chilean tax ids (Rol Único Tributario).
package rut

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalid = errors.New("invalid rut")

// minLength counts body plus check digit once separators are stripped.
const minLength = 7

// Clean strips every character except digits and K, upper-casing K.
func Clean(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= '0' && r <= '9') || r == 'K' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CheckDigit computes the modulo-11 verifier for the numeric body.
func CheckDigit(body string) string {
	sum, mul := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * mul
		mul++
		if mul > 7 {
			mul = 2
		}
	}

	switch dv := 11 - sum%11; dv {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(dv)
	}
}

// Normalize validates raw and returns it as "12345678-9".
func Normalize(raw string) (string, error) {
	clean := Clean(raw)
	if len(clean) < minLength {
		return "", ErrInvalid
	}

	body, dv := clean[:len(clean)-1], clean[len(clean)-1:]
	if strings.ContainsRune(body, 'K') {
		return "", ErrInvalid
	}
	body = strings.TrimLeft(body, "0")
	if body == "" {
		return "", ErrInvalid
	}
	if CheckDigit(body) != dv {
		return "", ErrInvalid
	}

	return body + "-" + dv, nil
}

func Valid(raw string) bool {
	_, err := Normalize(raw)
	return err == nil
}

// Format renders a normalised rut with thousands separators: 12.345.678-5.
func Format(normalized string) string {
	body, dv, ok := strings.Cut(normalized, "-")
	if !ok {
		return normalized
	}

	var out []byte
	for i := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, body[i])
	}
	return string(out) + "-" + dv
}
