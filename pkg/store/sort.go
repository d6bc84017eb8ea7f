package store

// keyedTask pairs a task with its decoded deadline so the merge never
// re-parses and never fails halfway through.
type keyedTask struct {
	key  int
	task Task
}

// Sort reorders the store by ascending deadline using a stable merge sort.
//
// Every deadline is decoded before anything moves: if one fails, Sort
// returns ErrInvalidDateFormat and the store is left exactly as it was.
// The "too few records" short-circuit belongs to the caller; Sort itself is
// correct on zero or one task.
func (s *Store) Sort() error {
	sorted, err := SortByDeadline(s.tasks)
	if err != nil {
		return err
	}
	s.tasks = sorted
	return nil
}

// SortByDeadline returns a new slice holding tasks ordered by ascending
// deadline key. Tasks with equal keys keep their input order. The input is
// not modified.
func SortByDeadline(tasks []Task) ([]Task, error) {
	keyed := make([]keyedTask, len(tasks))
	for i, t := range tasks {
		k, err := DeadlineKey(t.Deadline)
		if err != nil {
			return nil, err
		}
		keyed[i] = keyedTask{key: k, task: t}
	}

	keyed = mergeSort(keyed)

	out := make([]Task, len(keyed))
	for i, kt := range keyed {
		out[i] = kt.task
	}
	return out, nil
}

func mergeSort(list []keyedTask) []keyedTask {
	if len(list) <= 1 {
		return list
	}

	mid := len(list) / 2
	left := mergeSort(list[:mid])
	right := mergeSort(list[mid:])

	return merge(left, right)
}

// merge takes from left on ties, which is what makes the sort stable.
func merge(left, right []keyedTask) []keyedTask {
	result := make([]keyedTask, 0, len(left)+len(right))
	i, j := 0, 0

	for i < len(left) && j < len(right) {
		if left[i].key <= right[j].key {
			result = append(result, left[i])
			i++
		} else {
			result = append(result, right[j])
			j++
		}
	}

	result = append(result, left[i:]...)
	result = append(result, right[j:]...)
	return result
}
