package generation

// TaskType selects the generation workflow and its price.
type TaskType string

const (
	TaskMetadata  TaskType = "metadata"
	TaskAudit     TaskType = "audit"
	TaskThumbnail TaskType = "thumbnail"
	TaskScript    TaskType = "script"
)

const (
	// DefaultCost applies to any task type missing from the cost table.
	DefaultCost = 1
	// DefaultStartingCoins is the balance of a freshly created profile.
	DefaultStartingCoins = 50
)

var costs = map[TaskType]int{
	TaskMetadata:  1,
	TaskScript:    5,
	TaskAudit:     10,
	TaskThumbnail: 10,
}

// CostFor returns the coin price of a task type.
func CostFor(taskType string) int {
	if cost, ok := costs[TaskType(taskType)]; ok {
		return cost
	}
	return DefaultCost
}

// Known reports whether taskType has a workflow.
func Known(taskType string) bool {
	_, ok := costs[TaskType(taskType)]
	return ok
}
