package domain

// JobStatus is the lifecycle state reported by the remote service. The
// client never mutates it; jobs move queued -> running -> finished/failed
// entirely server-side.
type JobStatus string

const (
	StatusQueued   JobStatus = "queued"
	StatusRunning  JobStatus = "running"
	StatusFinished JobStatus = "finished"
	StatusFailed   JobStatus = "failed"
)

// Terminal reports whether the status will no longer change on its own.
// The service may report statuses outside the known set; anything that is
// not queued or running counts as terminal.
func (s JobStatus) Terminal() bool {
	return s != StatusQueued && s != StatusRunning
}

// ModelType selects the regression family trained server-side. The value is
// passed through verbatim; the service owns validation.
type ModelType string

const (
	ModelLinear ModelType = "linear"
	ModelRidge  ModelType = "ridge"
	ModelLasso  ModelType = "lasso"
	ModelTree   ModelType = "tree"
	ModelForest ModelType = "forest"
	ModelNN     ModelType = "nn"
)

// OptimizationType selects the server-side solver formulation.
type OptimizationType string

const (
	OptimizationMILP   OptimizationType = "milp"
	OptimizationAugLag OptimizationType = "auglag"
)

// RegressionJob describes a model-training submission for a single plant.
type RegressionJob struct {
	Id          string    `json:"id"`
	ModelType   ModelType `json:"model_type"`
	Inputs      []string  `json:"inputs"`
	Targets     []string  `json:"targets"`
	DatasetPath string    `json:"dataset_path"`
}

// OptimizationJob describes a set-point optimization submission. ModelId
// references a previously trained RegressionJob by its identifier.
type OptimizationJob struct {
	Id               string           `json:"id"`
	Type             OptimizationType `json:"optimization_type"`
	ModelId          string           `json:"model_id"`
	Periods          int              `json:"periods"`
	InputConfigPath  string           `json:"input_config_path"`
	OutputConfigPath string           `json:"output_config_path"`
}

// JobAck is the JSON payload the service returns on submission and on
// status reads.
type JobAck struct {
	Id          string    `json:"id"`
	Status      JobStatus `json:"status"`
	SubmittedAt string    `json:"submitted_at"`
	Detail      string    `json:"detail,omitempty"`
}
