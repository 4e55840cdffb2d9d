package vos

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleMapEnv() {
	env := NewMapEnv()
	env.Setenv("HOME", "/home/river")
	env.Setenv("SHELL", "/bin/riversh")

	fmt.Println(env.Getenv("HOME"))
	fmt.Println(env.ExpandEnv("shell is $SHELL"))
	fmt.Println(env.Environ())

	// Output: /home/river
	// shell is /bin/riversh
	// [HOME=/home/river SHELL=/bin/riversh]
}

func TestMapEnvLookup(t *testing.T) {
	env := NewMapEnv()

	_, ok := env.LookupEnv("MISSING")
	assert.False(t, ok)
	assert.Empty(t, env.Getenv("MISSING"))

	env.Setenv("EMPTY", "")
	val, ok := env.LookupEnv("EMPTY")
	assert.True(t, ok)
	assert.Empty(t, val)
}

func TestMapEnvUnset(t *testing.T) {
	env := NewMapEnv()
	env.Setenv("TEMP", "value")
	env.Unsetenv("TEMP")

	_, ok := env.LookupEnv("TEMP")
	assert.False(t, ok)
}

func TestCopyEnv(t *testing.T) {
	env := NewMapEnv()
	assert.NoError(t, CopyEnv(env, []string{"A=1", "B=2=3", "C"}))

	assert.Equal(t, "1", env.Getenv("A"))
	// Only the first '=' separates key from value.
	assert.Equal(t, "2=3", env.Getenv("B"))
	// An entry without '=' is an empty variable.
	val, ok := env.LookupEnv("C")
	assert.True(t, ok)
	assert.Empty(t, val)
}

func TestNewMapEnvFromEnvList(t *testing.T) {
	env := NewMapEnvFromEnvList([]string{"PATH=/bin", "HOME=/root"})
	assert.Equal(t, []string{"HOME=/root", "PATH=/bin"}, env.Environ())
}

func TestExpandEnvUndefined(t *testing.T) {
	env := NewMapEnv()
	assert.Equal(t, "value: ", env.ExpandEnv("value: $UNSET"))
}
