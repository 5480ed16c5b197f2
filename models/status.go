package models

// BatchStatus tracks where a coffee lot sits in the purchase → export flow.
type BatchStatus string

const (
	StatusOrdered      BatchStatus = "ORDERED"
	StatusAtGate       BatchStatus = "AT_GATE"
	StatusAtWarehouse  BatchStatus = "AT_WAREHOUSE"
	StatusStored       BatchStatus = "STORED"
	StatusProcessed    BatchStatus = "PROCESSED"
	StatusRejected     BatchStatus = "REJECTED"
	StatusReprocessing BatchStatus = "REPROCESSING"
	StatusExportReady  BatchStatus = "EXPORT_READY"
	StatusInTransit    BatchStatus = "IN_TRANSIT"
	StatusShipped      BatchStatus = "SHIPPED"
)

// AllowedTransitions is the single source of truth for batch status changes.
// Every handler that flips a status must go through CanTransition; ad hoc
// assignments are not allowed.
var AllowedTransitions = map[BatchStatus][]BatchStatus{
	StatusOrdered:      {StatusAtGate, StatusAtWarehouse},
	StatusAtGate:       {StatusAtWarehouse, StatusRejected, StatusExportReady},
	StatusAtWarehouse:  {StatusStored, StatusRejected},
	StatusStored:       {StatusProcessed, StatusRejected, StatusReprocessing, StatusExportReady},
	StatusReprocessing: {StatusStored, StatusProcessed},
	StatusRejected:     {StatusReprocessing},
	StatusExportReady:  {StatusInTransit},
	StatusInTransit:    {StatusShipped},
	// PROCESSED and SHIPPED are terminal.
}

func CanTransition(from, to BatchStatus) bool {
	for _, next := range AllowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ApprovalStatus is shared by export contracts.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// RunStatus is the processing-run lifecycle: OPEN after start, COMPLETED once
// export/reject/waste are settled and bags are packed.
type RunStatus string

const (
	RunOpen      RunStatus = "OPEN"
	RunCompleted RunStatus = "COMPLETED"
)

// EntryType classifies a warehouse movement.
type EntryType string

const (
	EntryArrival EntryType = "ARRIVAL"
	EntryReject  EntryType = "REJECT"
	EntryExport  EntryType = "EXPORT"
)

// Roles used by route gating and notification targeting.
const (
	RoleAdmin         = "ADMIN"
	RoleSecurity      = "SECURITY"
	RoleWarehouse     = "WAREHOUSE"
	RoleQuality       = "QUALITY"
	RolePlantManager  = "PLANT_MANAGER"
	RoleExportManager = "EXPORT_MANAGER"
	RoleFinance       = "FINANCE"
	RoleCEO           = "CEO"
)

// CheckpointFirstQC is the arrival cupping session; later checkpoints are
// free-form tags (e.g. PRE_EXPORT).
const CheckpointFirstQC = "FIRST_QC"
