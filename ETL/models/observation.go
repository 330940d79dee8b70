package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawValue хранит значение показателя в том виде, в каком его вернул API:
// число, строку или null
type RawValue struct {
	token json.RawMessage
}

// NumberValue создает RawValue из числа
func NumberValue(v float64) RawValue {
	return RawValue{token: json.RawMessage(strconv.FormatFloat(v, 'g', -1, 64))}
}

// StringValue создает RawValue из строки
func StringValue(s string) RawValue {
	data, _ := json.Marshal(s)
	return RawValue{token: data}
}

// NullValue возвращает пустое значение (null)
func NullValue() RawValue {
	return RawValue{}
}

// UnmarshalJSON сохраняет JSON-токен без преобразования
func (v *RawValue) UnmarshalJSON(data []byte) error {
	v.token = append(v.token[:0], data...)
	return nil
}

// MarshalJSON возвращает исходный JSON-токен
func (v RawValue) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}
	return v.token, nil
}

// IsNull сообщает, что значение отсутствует
func (v RawValue) IsNull() bool {
	tok := bytes.TrimSpace(v.token)
	return len(tok) == 0 || bytes.Equal(tok, []byte("null"))
}

// String возвращает значение для логов
func (v RawValue) String() string {
	if v.IsNull() {
		return "null"
	}
	return string(v.token)
}

// Float приводит значение к числу.
// Возвращает false для null, булевых значений, нечисловых строк, NaN и бесконечностей.
func (v RawValue) Float() (float64, bool) {
	if v.IsNull() {
		return 0, false
	}

	tok := bytes.TrimSpace(v.token)
	var text string
	switch tok[0] {
	case '"':
		if err := json.Unmarshal(tok, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
	case 't', 'f', '[', '{':
		return 0, false
	default:
		text = string(tok)
	}

	if isHexLiteral(text) {
		return 0, false
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isHexLiteral сообщает, что строка записана в шестнадцатеричной форме (0x1p4)
func isHexLiteral(text string) bool {
	text = strings.TrimLeft(text, "+-")
	return len(text) >= 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X')
}

// RawObservation одна запись ряда показателя, как ее вернул источник
type RawObservation struct {
	Year  int
	Value RawValue
}

// CleanseReport содержит диагностические счетчики очистки данных
type CleanseReport struct {
	Input   int // Количество входных записей
	Kept    int // Количество записей в таблице
	Dropped int // Отброшено (нечисловые значения и повторы годов)
}
