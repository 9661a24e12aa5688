// Package jobs defines the background jobs dispatched onto the queue.
// RegisterAll must be called once at boot so queue workers can
// deserialize job payloads by type name.
package jobs

import "github.com/aymanhs/souq/pkg/queue"

// RegisterAll registers every job type with the queue.
func RegisterAll() {
	queue.Register("*jobs.PurchaseReceiptJob", func() queue.Job { return &PurchaseReceiptJob{} })
	queue.Register("*jobs.PasswordResetJob", func() queue.Job { return &PasswordResetJob{} })
}
