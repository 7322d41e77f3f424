package events

import "time"

const LifecycleTopic = "hr.lifecycle.v1"

const (
	AggregateCompany  = "company"
	AggregateEmployee = "employee"
	AggregateContract = "contract"
)

const (
	CompanyCreated  = "company_created"
	CompanyDeleted  = "company_deleted"
	EmployeeCreated = "employee_created"
	EmployeeDeleted = "employee_deleted"
	ContractCreated = "contract_created"
	ContractDeleted = "contract_deleted"
)

// LifecycleEvent is the payload published for every create and delete of a
// tenant-owned row. EventID equals the outbox row id and makes consumers
// idempotent.
type LifecycleEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	AggregateType string    `json:"aggregate_type"`
	AggregateID   string    `json:"aggregate_id"`
	OwnerID       string    `json:"owner_id"`
	CompanyID     string    `json:"company_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
