package models

import "sort"

// Option categories as they are titled on a listing's detail page
const (
	CategoryExterior     = "Экстерьер"
	CategorySafety       = "Системы безопасности"
	CategoryAirbags      = "Подушки"
	CategoryDriverAssist = "Системы помощи"
	CategoryInterior     = "Интерьер"
	CategoryComfort      = "Комфорт"
	CategoryHeating      = "Обогрев"
	CategoryClimate      = "Климат"
	CategoryMultimedia   = "Мультимедиа"
)

// knownCategories is the column order used when projecting an OptionMap.
var knownCategories = [...]string{
	CategoryExterior,
	CategorySafety,
	CategoryAirbags,
	CategoryDriverAssist,
	CategoryInterior,
	CategoryComfort,
	CategoryHeating,
	CategoryClimate,
	CategoryMultimedia,
}

// KnownCategories returns the nine fixed option categories in column order.
func KnownCategories() []string {
	out := make([]string, len(knownCategories))
	copy(out, knownCategories[:])
	return out
}

// OptionMap maps an option category to a comma-joined list of feature names.
//
// A map built with NewOptionMap always contains every known category; pages may
// add site-specific categories on top of those.
type OptionMap map[string]string

// NewOptionMap returns a fresh map with every known category set to "".
func NewOptionMap() OptionMap {
	m := make(OptionMap, len(knownCategories))
	for _, c := range knownCategories {
		m[c] = ""
	}
	return m
}

// Clone returns an independent copy of m.
func (m OptionMap) Clone() OptionMap {
	out := make(OptionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Known returns the values of the known categories in column order.
// Missing categories yield "".
func (m OptionMap) Known() []string {
	out := make([]string, len(knownCategories))
	for i, c := range knownCategories {
		out[i] = m[c]
	}
	return out
}

// Extra returns the sorted categories present in m that are not among the known ones.
func (m OptionMap) Extra() []string {
	var extra []string
	for k := range m {
		if !isKnown(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return extra
}

func isKnown(category string) bool {
	for _, c := range knownCategories {
		if c == category {
			return true
		}
	}
	return false
}
