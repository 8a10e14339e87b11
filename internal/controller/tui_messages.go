package controller

// Message types.
type planMsg struct {
	items []planItem
	err   error
}

type upcomingMsg struct {
	count int
}

type concurrencyMsg struct {
	threads    int
	shardIndex int
	shards     int
}

type startFileMsg struct {
	thread int
	path   string
}

type completedFileMsg struct {
	result runResult
}

type reportsMsg struct {
	results []runResult
}

type diffsMsg struct {
	diffs []diffItem
}

// List item types.
type planItem struct {
	path       string
	kind       string
	component  string
	injections int
	err        string
}

func (p planItem) FilterValue() string {
	return p.path + " " + p.kind
}

type runResult struct {
	path       string
	kind       string
	injections int
	cached     bool
	diff       string
	err        string
}

func (r runResult) FilterValue() string {
	return r.path + " " + r.kind
}

type diffItem struct {
	path string
	diff string
}
