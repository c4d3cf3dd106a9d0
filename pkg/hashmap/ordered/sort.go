package ordered

// Sort reorders the insertion-order list by key according to less. It is an
// insertion sort over the linked list: near linear when the entries are
// already mostly sorted, which is the intended use, and it works purely by
// relinking so no extra storage is needed and bucket state is untouched.
func (m *Map[K, V]) Sort(less func(a, b K) bool) {
	if m.count < 2 {
		return
	}
	inserting := m.nodes.at(m.head).next
	for inserting != 0 {
		// walk back over everything inserting should come before
		after := uint32(0)
		for current := m.nodes.at(inserting).prev; current != 0; current = m.nodes.at(current).prev {
			if !less(m.nodes.at(inserting).key, m.nodes.at(current).key) {
				break
			}
			after = current
		}
		next := m.nodes.at(inserting).next
		if after != 0 {
			ins := m.nodes.at(inserting)
			// take inserting out of its current position
			m.nodes.at(ins.prev).next = next
			if next == 0 {
				m.tail = ins.prev
			} else {
				m.nodes.at(next).prev = ins.prev
			}
			// splice it back in between before and after
			before := m.nodes.at(after).prev
			if before == 0 {
				m.head = inserting
			} else {
				m.nodes.at(before).next = inserting
			}
			m.nodes.at(after).prev = inserting
			ins.prev = before
			ins.next = after
		}
		inserting = next
	}
}
