package requests

type MemoryOperation struct {
	ProcessId int    `json:"process_id" yaml:"process_id"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Size      int    `json:"size,omitempty" yaml:"size,omitempty"`
	Release   bool   `json:"release,omitempty" yaml:"release,omitempty"`
}

type MemoryRequests struct {
	TotalSize  int               `json:"total_size" yaml:"total_size"`
	Strategy   string            `json:"strategy" yaml:"strategy"`
	Operations []MemoryOperation `json:"requests" yaml:"requests"`
	Compact    bool              `json:"compact" yaml:"compact"`
}
