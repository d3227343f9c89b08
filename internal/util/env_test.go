package util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github/chapool/go-xwc/internal/util"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("XWC_TEST_STRING", "abc")
	t.Setenv("XWC_TEST_INT", "42")
	t.Setenv("XWC_TEST_UINT32", "4294967295")
	t.Setenv("XWC_TEST_BOOL", "true")
	t.Setenv("XWC_TEST_DURATION", "45s")
	t.Setenv("XWC_TEST_ARR", "a|b")
	t.Setenv("XWC_TEST_BROKEN", "not-a-value")

	assert.Equal(t, "abc", util.GetEnv("XWC_TEST_STRING", "x"))
	assert.Equal(t, "x", util.GetEnv("XWC_TEST_MISSING", "x"))

	assert.Equal(t, 42, util.GetEnvAsInt("XWC_TEST_INT", 1))
	assert.Equal(t, 1, util.GetEnvAsInt("XWC_TEST_BROKEN", 1))

	assert.Equal(t, uint32(4294967295), util.GetEnvAsUint32("XWC_TEST_UINT32", 1))
	assert.Equal(t, uint32(1), util.GetEnvAsUint32("XWC_TEST_INT_OVERFLOW", 1))

	assert.True(t, util.GetEnvAsBool("XWC_TEST_BOOL", false))
	assert.True(t, util.GetEnvAsBool("XWC_TEST_BROKEN", true))

	assert.Equal(t, 45*time.Second, util.GetEnvAsDuration("XWC_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, util.GetEnvAsDuration("XWC_TEST_BROKEN", time.Second))

	assert.Equal(t, []string{"a", "b"}, util.GetEnvAsStringArr("XWC_TEST_ARR", nil, "|"))
	assert.Equal(t, []string{"d"}, util.GetEnvAsStringArr("XWC_TEST_MISSING", []string{"d"}))
}
