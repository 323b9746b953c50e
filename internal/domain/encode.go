package domain

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Encode renders the request body the way the reference llama.cpp
// tooling does: ", " and ": " separators, non-ASCII escaped as \uXXXX,
// floats always carrying a fraction or exponent. json.Marshal would
// produce the compact form instead.
func (r CompletionRequest) Encode() ([]byte, error) {
	temperature, err := formatFloat(r.Temperature)
	if err != nil {
		return nil, fmt.Errorf("encode temperature: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(`{"prompt": `)
	writeString(&buf, r.Prompt)
	buf.WriteString(`, "n_predict": `)
	buf.WriteString(strconv.Itoa(r.NPredict))
	buf.WriteString(`, "temperature": `)
	buf.WriteString(temperature)
	buf.WriteString(`, "stop": `)
	if r.Stop == nil {
		buf.WriteString("null")
	} else {
		buf.WriteByte('[')
		for i, s := range r.Stop {
			if i > 0 {
				buf.WriteString(", ")
			}
			writeString(&buf, s)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(buf, `\u%04x`, r)
			case r < 0x80:
				buf.WriteRune(r)
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(buf, `\u%04x\u%04x`, hi, lo)
			default:
				fmt.Fprintf(buf, `\u%04x`, r)
			}
		}
	}
	buf.WriteByte('"')
}

// formatFloat uses positional notation for decimal exponents in [-4, 16)
// and scientific notation outside it.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("unsupported float value %v", f)
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil {
		return "", err
	}
	if exp < -4 || exp >= 16 {
		return sci, nil
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}
