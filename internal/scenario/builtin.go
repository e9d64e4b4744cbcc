package scenario

import (
	"github.com/neptune-T/OS-Simulation-Platform/internal/core"
	"github.com/neptune-T/OS-Simulation-Platform/internal/requests"
)

const DefaultMemorySize = 1024

var builtin = map[string]Scenario{
	"desktop": {
		Name:        "desktop",
		Description: "everyday desktop applications starting one after another",
		TimeQuantum: 2,
		Jobs: []requests.Job{
			{ProcessId: 1, Name: "Notepad", ArrivalTime: 0, BurstTime: 5, Priority: int(core.PriorityNormal)},
			{ProcessId: 2, Name: "Calculator", ArrivalTime: 1, BurstTime: 3, Priority: int(core.PriorityHigh)},
			{ProcessId: 3, Name: "Browser", ArrivalTime: 2, BurstTime: 8, Priority: int(core.PriorityLow)},
			{ProcessId: 4, Name: "MusicPlayer", ArrivalTime: 3, BurstTime: 6, Priority: int(core.PriorityNormal)},
		},
	},
	"system-load": {
		Name:        "system-load",
		Description: "background system work competing with interactive programs",
		TimeQuantum: 2,
		Jobs: []requests.Job{
			{ProcessId: 1, Name: "SystemUpdate", ArrivalTime: 0, BurstTime: 10, Priority: int(core.PriorityLow)},
			{ProcessId: 2, Name: "Antivirus", ArrivalTime: 2, BurstTime: 4, Priority: int(core.PriorityHighest)},
			{ProcessId: 3, Name: "DocEditor", ArrivalTime: 4, BurstTime: 6, Priority: int(core.PriorityNormal)},
			{ProcessId: 4, Name: "VideoPlayer", ArrivalTime: 5, BurstTime: 3, Priority: int(core.PriorityHigh)},
			{ProcessId: 5, Name: "FileDownload", ArrivalTime: 7, BurstTime: 8, Priority: int(core.PriorityLow)},
		},
	},
	"memory-basic": {
		Name:        "memory-basic",
		Description: "a released hole reused by a later allocation",
		Memory: &requests.MemoryRequests{
			TotalSize: DefaultMemorySize,
			Strategy:  "first_fit",
			Operations: []requests.MemoryOperation{
				{ProcessId: 1, Name: "Browser", Size: 100},
				{ProcessId: 2, Name: "MusicPlayer", Size: 50},
				{ProcessId: 3, Name: "DocEditor", Size: 80},
				{ProcessId: 1, Release: true},
				{ProcessId: 4, Name: "VideoPlayer", Size: 90},
				{ProcessId: 5, Name: "Game", Size: 120},
			},
		},
	},
	"memory-fragmentation": {
		Name:        "memory-fragmentation",
		Description: "large allocations and releases that leave scattered holes",
		Memory: &requests.MemoryRequests{
			TotalSize: DefaultMemorySize,
			Strategy:  "first_fit",
			Operations: []requests.MemoryOperation{
				{ProcessId: 1, Name: "OS", Size: 200},
				{ProcessId: 2, Name: "Compiler", Size: 150},
				{ProcessId: 3, Name: "Database", Size: 300},
				{ProcessId: 2, Release: true},
				{ProcessId: 4, Name: "VM", Size: 250},
				{ProcessId: 3, Release: true},
				{ProcessId: 5, Name: "IDE", Size: 180},
				{ProcessId: 6, Name: "Browser", Size: 120},
			},
		},
	},
}
