package domain

// DateRange is an inclusive calendar-date span in YYYY-MM-DD form.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Partition is one quarter's worth of records, written as its own artifact.
type Partition struct {
	Quarter     string    `json:"quarter"` // YYYY-Qn
	RecordCount int       `json:"recordCount"`
	DateRange   DateRange `json:"dateRange"`
	Data        []Record  `json:"data"`
}

// PartitionDescriptor summarizes one partition inside the index.
type PartitionDescriptor struct {
	Quarter     string    `json:"quarter"`
	RecordCount int       `json:"recordCount"`
	DateRange   DateRange `json:"dateRange"`
	FileName    string    `json:"fileName"`
}

// PartitionIndex describes every partition written for a dataset, ordered
// lexicographically by quarter key.
type PartitionIndex struct {
	Partitions      []PartitionDescriptor `json:"partitions"`
	TotalPartitions int                   `json:"totalPartitions"`
	TotalRecords    int                   `json:"totalRecords"`
	HasRecentFile   bool                  `json:"hasRecentFile"`
}
