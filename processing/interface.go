package processing

// Source delivers query windows. Implementations close the channel when they are done.
type Source interface {
	ReadWindows(chan<- Window)
}

// Target consumes decomposition results until the channel is closed.
type Target interface {
	WriteResults(<-chan Result)
}
