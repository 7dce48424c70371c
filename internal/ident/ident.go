package ident

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/segmentio/ksuid"
)

// Generator returns a new process-wide unique identifier on every call
type Generator func() string

const (
	StrategyUUID   = "uuid"
	StrategyKSUID  = "ksuid"
	StrategyNanoID = "nanoid"
)

// reduced character set that's less probable to mis-type
const nanoAlphabet = "abcdefghikmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// UUID generates random (version 4) UUIDs
func UUID() string {
	return uuid.New().String()
}

// KSUID generates k-sortable ids, so auto ids order by creation time
func KSUID() string {
	return ksuid.New().String()
}

// NanoID generates 21 character ids
func NanoID() string {
	return gonanoid.MustGenerate(nanoAlphabet, 21)
}

// ForStrategy resolves a configured strategy name to its generator
func ForStrategy(name string) (Generator, error) {
	switch name {
	case "", StrategyUUID:
		return UUID, nil
	case StrategyKSUID:
		return KSUID, nil
	case StrategyNanoID:
		return NanoID, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", name)
	}
}
