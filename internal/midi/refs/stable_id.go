package refs

import (
	"hash/fnv"
	"strconv"
)

// StableID derives a unique id for hosts that do not assign one. The same
// port description and occurrence always hash to the same value, so the id
// survives re-enumeration as long as the port keeps its name.
func StableID(description string, occurrence int) int32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(description))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strconv.Itoa(occurrence)))
	return int32(h.Sum32() & 0x7FFFFFFF)
}

// Occurrences numbers repeated descriptions: for ["a", "b", "a"] it returns
// [0, 0, 1].
func Occurrences(descriptions []string) []int {
	seen := make(map[string]int, len(descriptions))
	out := make([]int, len(descriptions))
	for i, d := range descriptions {
		out[i] = seen[d]
		seen[d]++
	}
	return out
}
