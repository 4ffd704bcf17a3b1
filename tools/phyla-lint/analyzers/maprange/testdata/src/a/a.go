package a

import "sort"

type weights map[string]float32

func bad(m map[string]int, w weights) int {
	total := 0
	for _, v := range m { // want "range over map has random order"
		total += v
	}
	for k := range w { // want "range over map has random order"
		total += len(k)
	}
	return total
}

func good(m map[string]int, s []int) int {
	keys := make([]string, 0, len(m))
	for i := range s {
		keys = append(keys, string(rune('a'+i)))
	}
	sort.Strings(keys)
	total := 0
	for _, k := range keys {
		total += m[k]
	}
	return total
}
