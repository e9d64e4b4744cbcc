package responses

type BlockResponse struct {
	StartAddress int    `json:"start_address"`
	EndAddress   int    `json:"end_address"`
	Size         int    `json:"size"`
	Free         bool   `json:"free"`
	ProcessId    int    `json:"process_id"`
	Name         string `json:"name"`
}

type MemoryStepResponse struct {
	ProcessId int  `json:"process_id"`
	Size      int  `json:"size,omitempty"`
	Release   bool `json:"release,omitempty"`
	Address   int  `json:"address"`
	Success   bool `json:"success"`
}

type MemoryResponse struct {
	Strategy         string               `json:"strategy"`
	TotalSize        int                  `json:"total_size"`
	UsedSize         int                  `json:"used_size"`
	FreeSize         int                  `json:"free_size"`
	Utilization      float64              `json:"utilization"`
	Fragmentation    float64              `json:"fragmentation"`
	LargestFreeBlock int                  `json:"largest_free_block"`
	FreeBlockCount   int                  `json:"free_block_count"`
	Failures         int                  `json:"failures"`
	Compacted        bool                 `json:"compacted"`
	Steps            []MemoryStepResponse `json:"steps"`
	Blocks           []BlockResponse      `json:"blocks"`
	ReportURL        string               `json:"report_url,omitempty"`
}

type MemoryComparisonRow struct {
	Strategy         string  `json:"strategy"`
	Name             string  `json:"name"`
	Utilization      float64 `json:"utilization"`
	Fragmentation    float64 `json:"fragmentation"`
	LargestFreeBlock int     `json:"largest_free_block"`
	FreeBlockCount   int     `json:"free_block_count"`
	Failures         int     `json:"failures"`
}

type MemoryCompareResponse struct {
	TotalSize int                   `json:"total_size"`
	Results   []MemoryComparisonRow `json:"results"`
	ReportURL string                `json:"report_url,omitempty"`
}
