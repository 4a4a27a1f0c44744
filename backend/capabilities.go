package backend

import "slices"

// BackendCapability represents a capability that a backend can provide
type BackendCapability string

const (
	// Core capability required for a root
	CapabilityObjectStorage BackendCapability = "object_storage"

	// Content type is stored with the object instead of derived from its name
	CapabilityMetadata BackendCapability = "metadata"
	// Objects outlive the process
	CapabilityPersistent BackendCapability = "persistent"
	// CreateObject fails atomically when the key already exists
	CapabilityExclusiveCreate BackendCapability = "exclusive_create"
)

// BackendCapabilities describes what a backend supports
type BackendCapabilities struct {
	Capabilities  []BackendCapability `json:"capabilities"`
	MaxObjectSize int64               `json:"max_object_size"`
}

// Contains checks if a capability is supported
func (bc *BackendCapabilities) Contains(cap BackendCapability) bool {
	if bc == nil {
		return false
	}
	return slices.Contains(bc.Capabilities, cap)
}

// Accepts reports whether an object of the given size fits the backend limit.
func (bc *BackendCapabilities) Accepts(size int64) bool {
	if bc == nil || bc.MaxObjectSize <= 0 {
		return true
	}
	return size <= bc.MaxObjectSize
}
