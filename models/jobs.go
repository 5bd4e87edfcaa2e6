// ABOUTME: Job submission and status types for the automation backend
// ABOUTME: Mirrors the job runner's JSON contract including terminal states

package models

// Job status values reported by the automation backend. Completed and
// Failed are the only terminal states; polling stops at either.
const (
	JobStarting  = "starting"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// JobTerminal reports whether a status value ends polling.
func JobTerminal(status string) bool {
	return status == JobCompleted || status == JobFailed
}

// StartJobRequest carries the credentials the automation run needs.
type StartJobRequest struct {
	NaverID string `json:"naver_id"`
	NaverPW string `json:"naver_pw"`
}

// StartJobResponse is the gateway's reply to a job submission.
type StartJobResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"job_id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JobResult is one per-post outcome inside a finished job.
type JobResult struct {
	Title  string `json:"title"`
	Status string `json:"status"` // success | failure
	URL    string `json:"url,omitempty"`
}

// Job is a point-in-time snapshot of an automation run. The backend owns
// the state; the gateway and client only ever read it.
type Job struct {
	Success  bool        `json:"success"`
	JobID    string      `json:"job_id,omitempty"`
	Status   string      `json:"status"`
	Progress int         `json:"progress"`
	Message  string      `json:"message,omitempty"`
	Results  []JobResult `json:"results,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// User-facing job error messages, preserved from the original product.
const (
	MsgJobCredentialsRequired = "네이버 계정 정보가 필요합니다."
	MsgJobStartBackendFailed  = "작업 시작 실패(백엔드)"
	MsgJobStartFailed         = "작업 시작에 실패했습니다."
	MsgJobStartError          = "작업 시작 중 오류가 발생했습니다."
	MsgJobStarted             = "작업이 시작되었습니다."
	MsgJobIDRequired          = "작업 ID가 필요합니다."
	MsgJobStatusBackendFailed = "작업 상태 확인 실패(백엔드)"
	MsgJobStatusError         = "작업 상태 확인 중 오류가 발생했습니다."
)
