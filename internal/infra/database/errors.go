package database

import "fmt"

// Sentinel errors returned by the postgres repositories. Data absence is an
// explicit value here, never a panic: callers match on these and fall back to
// defaults or exclude the entity.
var (
	ErrMemberNotFound  = fmt.Errorf("member not found")
	ErrVehicleNotFound = fmt.Errorf("vehicle not found")
	ErrBatchNotFound   = fmt.Errorf("batch not found")
	ErrPolicyNotFound  = fmt.Errorf("car-wash policy not found for year")
)
