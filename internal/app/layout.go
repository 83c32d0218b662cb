package app

// layoutDims holds computed layout dimensions for the UI.
type layoutDims struct {
	width           int
	height          int
	headerHeight    int
	footerHeight    int
	bodyHeight      int
	listHeight      int
	logHeight       int
	innerWidth      int
	listInnerHeight int
	logInnerHeight  int
	// listTop is the screen row of the first repository row.
	listTop int
}

func (m *Model) setWindowSize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height
	m.applyLayout(m.computeLayout())
	m.screens.Resize(width, height)
}

func (m *Model) computeLayout() layoutDims {
	width := m.windowWidth
	height := m.windowHeight
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 40
	}

	headerHeight := 1
	footerHeight := 1
	bodyHeight := max(height-headerHeight-footerHeight, 8)

	frameY := m.paneStyle(false).GetVerticalFrameSize()
	frameX := m.paneStyle(false).GetHorizontalFrameSize()

	listHeight := max(bodyHeight*3/5, 5)
	logHeight := max(bodyHeight-listHeight, 4)

	return layoutDims{
		width:           width,
		height:          height,
		headerHeight:    headerHeight,
		footerHeight:    footerHeight,
		bodyHeight:      bodyHeight,
		listHeight:      listHeight,
		logHeight:       logHeight,
		innerWidth:      max(1, width-frameX),
		listInnerHeight: max(1, listHeight-frameY-1),
		logInnerHeight:  max(1, logHeight-frameY-1),
		listTop:         headerHeight + m.paneStyle(false).GetBorderTopSize() + 1,
	}
}

func (m *Model) applyLayout(layout layoutDims) {
	m.list.setHeight(layout.listInnerHeight)
	atBottom := m.logView.AtBottom()
	m.logView.Width = layout.innerWidth
	m.logView.Height = layout.logInnerHeight
	if atBottom {
		m.logView.GotoBottom()
	}
}
