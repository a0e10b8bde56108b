package util

import (
	"runtime"
	"sort"

	"go.uber.org/zap"
)

func LogMemory(logger *zap.Logger) {
	s := &runtime.MemStats{}
	runtime.ReadMemStats(s)
	logger.Debug("memory",
		zap.Uint64("alloc", s.Alloc),
		zap.Uint64("mallocs", s.Mallocs),
		zap.Uint64("frees", s.Frees),
		zap.Uint64("heapAlloc", s.HeapAlloc),
		zap.Uint64("heapObjects", s.HeapObjects),
		zap.Uint64("stackInuse", s.StackInuse))
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
