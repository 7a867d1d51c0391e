package tojson_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/tojson"
)

func TestEnvironmentDebug(t *testing.T) {
	for _, tc := range []struct {
		env      tojson.Environment
		expected bool
	}{
		{tojson.Development, true},
		{tojson.Testing, true},
		{tojson.Staging, false},
		{tojson.Production, false},
		{tojson.Environment("nope"), false},
	} {
		t.Run(tc.env.String(), func(t *testing.T) {
			require.Equal(t, tc.expected, tc.env.Debug())
		})
	}
}

func TestEnvVarOrBool(t *testing.T) {
	key := "TOJSON_TEST_BOOL"
	for _, tc := range []struct {
		name     string
		val      string
		def      bool
		expected bool
	}{
		{"Unset", "", true, true},
		{"True", "TRUE", false, true},
		{"One", "1", false, true},
		{"False", "false", true, false},
		{"Garbage", "yes please", false, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			t.Setenv(key, tc.val)

			// Act + Assert
			require.Equal(t, tc.expected, tojson.EnvVarOrBool(key, tc.def))
		})
	}
}

func TestEnvVarOrEnv(t *testing.T) {
	key := "TOJSON_TEST_ENV"

	t.Setenv(key, "")
	require.Equal(t, tojson.Production, tojson.EnvVarOrEnv(key, tojson.Production))

	t.Setenv(key, "testing")
	require.Equal(t, tojson.Testing, tojson.EnvVarOrEnv(key, tojson.Production))

	t.Setenv(key, "moon")
	require.Equal(t, tojson.Production, tojson.EnvVarOrEnv(key, tojson.Production))
}

func TestEnvVarOrOthers(t *testing.T) {
	key := "TOJSON_TEST_OTHER"

	t.Setenv(key, "")
	require.Equal(t, 3, tojson.EnvVarOrInt(key, 3))
	require.Equal(t, time.Second, tojson.EnvVarOrDuration(key, time.Second))
	require.Equal(t, "def", tojson.EnvVarOrString(key, "def"))

	t.Setenv(key, "42")
	require.Equal(t, 42, tojson.EnvVarOrInt(key, 3))
	require.Equal(t, "42", tojson.EnvVarOrString(key, "def"))

	t.Setenv(key, "5m")
	require.Equal(t, 5*time.Minute, tojson.EnvVarOrDuration(key, time.Second))
}
