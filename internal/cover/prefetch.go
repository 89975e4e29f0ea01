package cover

import "github.com/sphene/coda/internal/library"

// CurrentIndex locates the track with the given key in the queue,
// returning -1 when the key is absent or empty.
func CurrentIndex(queue []library.Track, key string) int {
	if key == "" {
		return -1
	}
	for i, t := range queue {
		if t.Key == key {
			return i
		}
	}
	return -1
}

// PrefetchTargets plans which covers to warm around the current queue
// position: the keys one before and one after it, in that order, the
// current position itself excluded. current == -1 means nothing is
// playing and the plan is empty; neighbors falling off either end are
// skipped, as are empty and duplicate keys. The plan depends only on its
// arguments.
func PrefetchTargets(queue []library.Track, current int) []string {
	if current < 0 || current >= len(queue) {
		return nil
	}
	var keys []string
	for _, i := range []int{current - 1, current + 1} {
		if i < 0 || i >= len(queue) {
			continue
		}
		key := queue[i].Key
		if key == "" || (len(keys) > 0 && keys[0] == key) {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
