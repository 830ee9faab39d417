package models

// Pipeline types are referenced by the execute-swap and status endpoints.
// The polling loop that drives a pipeline to completion lives upstream; this
// client only reports the task states it is handed.

type PipelineTaskStatus string

const (
	TaskPending     PipelineTaskStatus = "pending"
	TaskRunning     PipelineTaskStatus = "running"
	TaskSignPending PipelineTaskStatus = "sign_pending"
	TaskDeferred    PipelineTaskStatus = "deferred"
	TaskSuccess     PipelineTaskStatus = "success"
	TaskFailed      PipelineTaskStatus = "failed"
	TaskAbandoned   PipelineTaskStatus = "abandoned"
)

// TransactionData is an unsigned transaction a task may hand back for
// external signing.
type TransactionData struct {
	To                   string `json:"to"`
	Data                 string `json:"data"`
	Value                string `json:"value,omitempty"`
	Gas                  string `json:"gas,omitempty"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
	Nonce                *int64 `json:"nonce,omitempty"`
	ChainID              *int64 `json:"chainId,omitempty"`
}

type PipelineTask struct {
	TaskID      string             `json:"task_id"`
	ActionType  string             `json:"action_type"`
	Status      PipelineTaskStatus `json:"status"`
	Description string             `json:"description,omitempty"`
	TxHash      string             `json:"tx_hash,omitempty"`
	TxData      *TransactionData   `json:"tx_data,omitempty"`
	Log         string             `json:"log,omitempty"`
}
