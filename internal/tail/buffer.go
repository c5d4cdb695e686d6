package tail

// LineBuffer retains the most recently enqueued lines for one file during the
// catch-up phase. A bounded buffer overwrites its oldest line once full; an
// unbounded buffer (the -n +K form) keeps everything.
type LineBuffer struct {
	lines     []string
	next      int
	size      int
	capacity  int
	unbounded bool
}

// NewLineBuffer returns a buffer retaining at most capacity lines. A zero
// capacity buffer retains nothing and drains empty.
func NewLineBuffer(capacity int) *LineBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &LineBuffer{lines: make([]string, capacity), capacity: capacity}
}

// NewUnboundedLineBuffer returns a buffer that grows without evicting.
func NewUnboundedLineBuffer() *LineBuffer {
	return &LineBuffer{unbounded: true}
}

// Enqueue stores line, evicting the oldest retained line when a bounded
// buffer is full. The content is not inspected.
func (b *LineBuffer) Enqueue(line string) {
	if b.unbounded {
		b.lines = append(b.lines, line)
		b.size++
		return
	}
	if b.capacity == 0 {
		return
	}
	b.lines[b.next] = line
	b.next = (b.next + 1) % b.capacity
	if b.size < b.capacity {
		b.size++
	}
}

// Len reports the number of retained lines.
func (b *LineBuffer) Len() int {
	return b.size
}

// Drain returns the retained lines oldest first and empties the buffer,
// releasing its storage. The buffer is not meant to be reused afterwards.
func (b *LineBuffer) Drain() []string {
	if b.size == 0 {
		b.lines = nil
		return nil
	}

	var out []string
	if b.unbounded {
		out = b.lines
	} else {
		out = make([]string, b.size)
		start := 0
		if b.size == b.capacity {
			start = b.next
		}
		for i := 0; i < b.size; i++ {
			out[i] = b.lines[(start+i)%b.capacity]
		}
	}

	b.lines = nil
	b.next = 0
	b.size = 0
	return out
}
