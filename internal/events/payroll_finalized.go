package events

import "time"

const PayrollFinalizedTopic = "hr.payroll.finalized.v1"

// PayrollFinalizedEvent is published once a company's payroll for a month has
// been written to the ledger. Downstream systems (payslip delivery, accounting
// exports) consume it; nothing in this service does.
type PayrollFinalizedEvent struct {
	EventType   string    `json:"event_type"`
	CompanyID   string    `json:"company_id"`
	Month       string    `json:"month"`
	RecordCount int       `json:"record_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}
