package worker

import (
	"fmt"
	"strings"
)

// Role identifies which worker body a spawned process executes.
type Role int

const (
	// RoleProducer writes a bounded sequence of records to the write end.
	RoleProducer Role = iota + 1

	// RoleConsumer reads records from the read end until end-of-stream.
	RoleConsumer
)

// IsValid reports whether r is a recognized Role.
func (r Role) IsValid() bool {
	switch r {
	case RoleProducer, RoleConsumer:
		return true
	default:
		return false
	}
}

// String returns the lower-case role name used in logs and in the worker
// environment.
func (r Role) String() string {
	switch r {
	case RoleProducer:
		return "producer"
	case RoleConsumer:
		return "consumer"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Decode implements envconfig.Decoder so a Role can be read straight from the
// worker environment.
func (r *Role) Decode(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "producer":
		*r = RoleProducer
	case "consumer":
		*r = RoleConsumer
	default:
		return fmt.Errorf("unknown worker role %q", value)
	}
	return nil
}
