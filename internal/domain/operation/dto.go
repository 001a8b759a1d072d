package operation

import "time"

const DefaultLimit = 100

type LogRequest struct {
	ActorUserID  *string
	TargetUserID *string
	Action       string
	Metadata     map[string]interface{}
}

type OperationResponse struct {
	ID           string                 `json:"id"`
	ActorUserID  *string                `json:"actor_user_id"`
	TargetUserID *string                `json:"target_user_id"`
	Action       string                 `json:"action"`
	Metadata     map[string]interface{} `json:"metadata"`
	CreatedAt    string                 `json:"created_at"`
}

func NewOperationResponses(ops []Operation) []OperationResponse {
	out := make([]OperationResponse, 0, len(ops))
	for _, op := range ops {
		meta := op.Metadata
		if meta == nil {
			meta = map[string]interface{}{}
		}
		out = append(out, OperationResponse{
			ID:           op.ID,
			ActorUserID:  op.ActorUserID,
			TargetUserID: op.TargetUserID,
			Action:       op.Action,
			Metadata:     meta,
			CreatedAt:    op.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
