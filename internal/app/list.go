package app

// repoList tracks the cursor and scroll offset of the repository list. Rows
// map to entries by index.
type repoList struct {
	length int
	cursor int
	offset int
	height int
}

func (l *repoList) setLen(n int) {
	l.length = n
	if l.cursor >= n {
		l.cursor = max(n-1, 0)
	}
	l.clampOffset()
}

func (l *repoList) setHeight(h int) {
	l.height = max(h, 1)
	l.clampOffset()
}

func (l *repoList) moveUp(n int) {
	l.setCursor(l.cursor - n)
}

func (l *repoList) moveDown(n int) {
	l.setCursor(l.cursor + n)
}

func (l *repoList) gotoTop() {
	l.setCursor(0)
}

func (l *repoList) gotoBottom() {
	l.setCursor(l.length - 1)
}

func (l *repoList) setCursor(i int) {
	if l.length == 0 {
		l.cursor = 0
		l.offset = 0
		return
	}
	l.cursor = min(max(i, 0), l.length-1)
	l.clampOffset()
}

func (l *repoList) clampOffset() {
	if l.height <= 0 {
		l.height = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	maxOffset := max(l.length-l.height, 0)
	l.offset = min(max(l.offset, 0), maxOffset)
}

// visible returns the half-open index range shown in the pane.
func (l *repoList) visible() (int, int) {
	return l.offset, min(l.offset+l.height, l.length)
}

// rowAt maps a row inside the pane to an entry index, or -1.
func (l *repoList) rowAt(row int) int {
	if row < 0 || row >= l.height {
		return -1
	}
	idx := l.offset + row
	if idx >= l.length {
		return -1
	}
	return idx
}
