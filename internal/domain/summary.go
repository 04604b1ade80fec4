package domain

const (
	SummaryFilename    = "summary.txt"
	SummaryPlaceholder = "No summary available."
)

type Summary struct {
	UserEmail string
	ProcessID string
	Content   string
}

func (s Summary) Available() bool {
	return s.Content != "" && s.Content != SummaryPlaceholder
}

type ProcessStatus struct {
	Status  string
	Token   string
	Message string
}

func (s ProcessStatus) Running() bool {
	return s.Status == "running" || s.Status == "processing" || s.Status == "pending"
}
