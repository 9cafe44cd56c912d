package domain

import (
	"sort"
	"strconv"
	"strings"
)

// SlotState состояние места в денормализованном кэше парковки
type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotOccupied  SlotState = "occupied"
)

// IsValid проверяет, что состояние из допустимого множества
func (s SlotState) IsValid() bool {
	return s == SlotAvailable || s == SlotOccupied
}

// SynthesizeSlotKey строит ключ места по порядковому номеру n (n >= 1):
// ряд = буква (n-1)/10 начиная с 'A', место = (n-1)%10 + 1.
// После 'Z' ряды продолжаются как в электронных таблицах: AA, AB, ...
func SynthesizeSlotKey(n int) string {
	if n < 1 {
		n = 1
	}
	row := (n - 1) / SlotsPerRow
	col := (n-1)%SlotsPerRow + 1
	return rowLetters(row) + strconv.Itoa(col)
}

// GenerateSlotKeys генерирует статическую карту ключей для новой парковки.
// Без префикса используется кодировка ряд/место (A1..A10, B1..), с префиксом - P1..Pn
func GenerateSlotKeys(total int, prefix string) []string {
	keys := make([]string, 0, total)
	prefix = strings.TrimSpace(prefix)
	for n := 1; n <= total; n++ {
		if prefix == "" {
			keys = append(keys, SynthesizeSlotKey(n))
		} else {
			keys = append(keys, prefix+strconv.Itoa(n))
		}
	}
	return keys
}

// CompareSlotKeys сравнивает ключи в "естественном" порядке: сначала буквенный префикс,
// затем числовой суффикс как число (A2 < A10), затем строка целиком
func CompareSlotKeys(a, b string) int {
	pa, na, okA := splitSlotKey(a)
	pb, nb, okB := splitSlotKey(b)

	if pa != pb {
		if len(pa) != len(pb) {
			if len(pa) < len(pb) {
				return -1
			}
			return 1
		}
		return strings.Compare(pa, pb)
	}
	if okA && okB && na != nb {
		if na < nb {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// SortSlotKeys сортирует ключи по возрастанию в естественном порядке
func SortSlotKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		return CompareSlotKeys(keys[i], keys[j]) < 0
	})
}

func splitSlotKey(key string) (prefix string, number int, ok bool) {
	i := len(key)
	for i > 0 && key[i-1] >= '0' && key[i-1] <= '9' {
		i--
	}
	if i == len(key) {
		return key, 0, false
	}
	n, err := strconv.Atoi(key[i:])
	if err != nil {
		return key, 0, false
	}
	return key[:i], n, true
}

func rowLetters(row int) string {
	letters := ""
	for {
		letters = string(rune('A'+row%26)) + letters
		row = row/26 - 1
		if row < 0 {
			return letters
		}
	}
}
