package news

// Severity ranks a bulletin; higher is more important.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityImportant
)

// Item is one market bulletin.
type Item struct {
	ID       string
	Day      int
	Symbol   string // empty for market-wide bulletins
	Headline string
	Severity Severity
}
