package ident

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestGeneratorsProduceUniqueIDs(t *testing.T) {
	for _, name := range []string{StrategyUUID, StrategyKSUID, StrategyNanoID} {
		t.Run(name, func(t *testing.T) {
			gen, err := ForStrategy(name)
			assert.NilError(t, err)

			seen := make(map[string]bool)
			for i := 0; i < 100; i++ {
				id := gen()
				assert.Assert(t, id != "")
				assert.Assert(t, !seen[id], "duplicate id %s", id)
				seen[id] = true
			}
		})
	}
}

func TestForStrategyDefaultsToUUID(t *testing.T) {
	gen, err := ForStrategy("")
	assert.NilError(t, err)
	assert.Equal(t, len(gen()), 36)
}

func TestForStrategyUnknown(t *testing.T) {
	_, err := ForStrategy("snowflake")
	assert.ErrorContains(t, err, `unknown id strategy "snowflake"`)
}

func TestNanoIDLength(t *testing.T) {
	assert.Equal(t, len(NanoID()), 21)
}
