package news

// Tape is a bounded ring buffer of bulletins.
type Tape struct {
	buf   []Item
	size  int
	start int
	count int
}

// NewTape creates a new Tape with the given capacity.
func NewTape(capacity int) *Tape {
	if capacity <= 0 {
		capacity = 50
	}
	return &Tape{
		buf:  make([]Item, capacity),
		size: capacity,
	}
}

// Publish adds an item, overwriting the oldest when full.
func (t *Tape) Publish(item Item) {
	if t.count < t.size {
		t.buf[(t.start+t.count)%t.size] = item
		t.count++
		return
	}
	t.buf[t.start] = item
	t.start = (t.start + 1) % t.size
}

// Latest returns the last n items in chronological order (oldest first).
func (t *Tape) Latest(n int) []Item {
	if n <= 0 || t.count == 0 {
		return nil
	}
	if n > t.count {
		n = t.count
	}

	out := make([]Item, n)
	first := (t.start + (t.count - n)) % t.size
	for i := 0; i < n; i++ {
		out[i] = t.buf[(first+i)%t.size]
	}
	return out
}

// Count returns the number of items on the tape.
func (t *Tape) Count() int {
	return t.count
}
